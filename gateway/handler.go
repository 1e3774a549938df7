package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/lixenwraith/liveheart/store"
)

// MaxRequestBytes bounds a save body, image included
const MaxRequestBytes = 8 << 20

// Store is the full share storage the handler serves from
type Store interface {
	Repository
	GetImage(ctx context.Context, slug string) ([]byte, error)
	RecentShares(ctx context.Context, limit int) ([]store.Share, error)
	TraitCounts(ctx context.Context, window int) (store.TraitCounts, error)
}

// Handler serves the save, share, image and stats endpoints
type Handler struct {
	store  Store
	local  *Local
	mux    *http.ServeMux
	tracer trace.Tracer
}

// NewHandler routes the endpoints over s; newSlug mints candidate slugs
func NewHandler(s Store, newSlug func() string) *Handler {
	h := &Handler{
		store:  s,
		local:  NewLocal(s, newSlug),
		mux:    http.NewServeMux(),
		tracer: otel.Tracer(tracerName),
	}
	h.mux.HandleFunc("POST /api/liveheart/save", h.save)
	h.mux.HandleFunc("GET /api/liveheart/stats", h.stats)
	h.mux.HandleFunc("GET /api/liveheart/{slug}", h.share)
	h.mux.HandleFunc("GET /api/liveheart/{slug}/image.png", h.image)
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
	ctx, span := h.tracer.Start(ctx, r.Method+" "+r.URL.Path,
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(attribute.String("http.method", r.Method)),
	)
	defer span.End()

	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	h.mux.ServeHTTP(rec, r.WithContext(ctx))
	span.SetAttributes(attribute.Int("http.status_code", rec.status))
	if rec.status >= http.StatusInternalServerError {
		span.SetStatus(codes.Error, http.StatusText(rec.status))
	}
}

func (h *Handler) save(w http.ResponseWriter, r *http.Request) {
	var req SaveRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxRequestBytes)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, SaveResponse{Error: "invalid request body"})
		return
	}
	if req.DNA == nil {
		writeJSON(w, http.StatusBadRequest, SaveResponse{Error: "Missing dna"})
		return
	}
	if err := req.DNA.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, SaveResponse{Error: "invalid dna: " + err.Error()})
		return
	}

	out := Request{DNA: *req.DNA, Title: req.Title}
	if req.ImageData != "" {
		png, err := DecodeImage(req.ImageData)
		if err != nil {
			log.Printf("gateway: dropping image for %q: %v", req.DNA.Name, err)
		} else {
			out.Image = png
		}
	}

	res, err := h.local.Save(r.Context(), out)
	if err != nil {
		log.Printf("gateway: save %q failed: %v", req.DNA.Name, err)
		writeJSON(w, http.StatusInternalServerError, SaveResponse{Error: "db error"})
		return
	}
	trace.SpanFromContext(r.Context()).SetAttributes(attribute.String("liveheart.slug", res.Slug))
	writeJSON(w, http.StatusOK, SaveResponse{Slug: res.Slug})
}

func (h *Handler) share(w http.ResponseWriter, r *http.Request) {
	sh, err := h.store.GetShare(r.Context(), r.PathValue("slug"))
	if err != nil {
		writeLookupError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, shareResponse(sh))
}

func (h *Handler) image(w http.ResponseWriter, r *http.Request) {
	png, err := h.store.GetImage(r.Context(), r.PathValue("slug"))
	if err != nil {
		writeLookupError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	counts, err := h.store.TraitCounts(r.Context(), StatsWindow)
	if err != nil {
		log.Printf("gateway: stats failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, SaveResponse{Error: "db error"})
		return
	}
	recent, err := h.store.RecentShares(r.Context(), RecentCount)
	if err != nil {
		log.Printf("gateway: stats gallery failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, SaveResponse{Error: "db error"})
		return
	}
	writeJSON(w, http.StatusOK, newStats(counts, recent))
}

func shareResponse(sh store.Share) ShareResponse {
	return ShareResponse{
		Slug:      sh.Slug,
		Title:     sh.Title,
		DNA:       sh.DNA,
		CreatedAt: sh.CreatedAt.UTC().Format(time.RFC3339),
		Label:     sh.DNA.Label(),
	}
}

func writeLookupError(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, SaveResponse{Error: "not found"})
		return
	}
	log.Printf("gateway: lookup failed: %v", err)
	writeJSON(w, http.StatusInternalServerError, SaveResponse{Error: "db error"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("gateway: write response: %v", err)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
