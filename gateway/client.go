package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/lixenwraith/liveheart/store"
)

const (
	tracerName = "github.com/lixenwraith/liveheart/gateway"

	// DefaultTimeout bounds one save round trip
	DefaultTimeout = 10 * time.Second

	maxResponseBytes = 64 << 10
)

// Client saves artifacts to a remote save endpoint over HTTP and reads shares back from its siblings
type Client struct {
	url    string
	http   *http.Client
	tracer trace.Tracer
}

// ClientOption configures a Client
type ClientOption func(*Client)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.http = hc }
}

// NewClient creates a client posting to url
func NewClient(url string, opts ...ClientOption) *Client {
	c := &Client{
		url:    url,
		http:   &http.Client{Timeout: DefaultTimeout},
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Save posts the DNA, title and optional image and returns the slug
func (c *Client) Save(ctx context.Context, req Request) (Result, error) {
	ctx, span := c.tracer.Start(ctx, "gateway.Client.Save",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("liveheart.dna", req.DNA.Name),
			attribute.Bool("liveheart.image", len(req.Image) > 0),
		),
	)
	defer span.End()

	res, err := c.save(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Result{}, err
	}
	span.SetAttributes(attribute.String("liveheart.slug", res.Slug))
	return res, nil
}

func (c *Client) save(ctx context.Context, req Request) (Result, error) {
	if len(req.DNA.Palette) == 0 {
		return Result{}, ErrEmptyDNA
	}
	d := req.DNA
	body, err := json.Marshal(SaveRequest{DNA: &d, Title: req.Title, ImageData: EncodeImage(req.Image)})
	if err != nil {
		return Result{}, fmt.Errorf("encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return Result{}, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(httpReq.Header))

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return Result{}, fmt.Errorf("post %s: %w", c.url, err)
	}
	defer resp.Body.Close()

	var out SaveResponse
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return Result{}, fmt.Errorf("read response: %w", err)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return Result{}, fmt.Errorf("decode response (status %d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK {
		msg := out.Error
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return Result{}, fmt.Errorf("save rejected (status %d): %s", resp.StatusCode, msg)
	}
	if out.Slug == "" {
		return Result{}, fmt.Errorf("save response missing slug")
	}
	return Result{Slug: out.Slug}, nil
}

// Fetch reads a share from the endpoint next to the save URL: .../save becomes .../{slug}
func (c *Client) Fetch(ctx context.Context, slug string) (store.Share, error) {
	ctx, span := c.tracer.Start(ctx, "gateway.Client.Fetch",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("liveheart.slug", slug)),
	)
	defer span.End()

	sh, err := c.fetch(ctx, slug)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return store.Share{}, err
	}
	span.SetAttributes(attribute.String("liveheart.dna", sh.DNA.Name))
	return sh, nil
}

func (c *Client) fetch(ctx context.Context, slug string) (store.Share, error) {
	target, err := c.shareURL(slug)
	if err != nil {
		return store.Share{}, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return store.Share{}, fmt.Errorf("build request: %w", err)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(httpReq.Header))

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return store.Share{}, fmt.Errorf("get %s: %w", target, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return store.Share{}, fmt.Errorf("read response: %w", err)
	}
	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return store.Share{}, fmt.Errorf("fetch %s: %w", slug, store.ErrNotFound)
	default:
		return store.Share{}, fmt.Errorf("fetch %s: status %d", slug, resp.StatusCode)
	}

	var out ShareResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return store.Share{}, fmt.Errorf("decode share: %w", err)
	}
	created, err := time.Parse(time.RFC3339, out.CreatedAt)
	if err != nil {
		return store.Share{}, fmt.Errorf("decode share time %q: %w", out.CreatedAt, err)
	}
	return store.Share{Slug: out.Slug, Title: out.Title, DNA: out.DNA, CreatedAt: created}, nil
}

func (c *Client) shareURL(slug string) (string, error) {
	if slug == "" || strings.ContainsAny(slug, "/?#") {
		return "", fmt.Errorf("invalid slug %q", slug)
	}
	u, err := url.Parse(c.url)
	if err != nil {
		return "", fmt.Errorf("parse save url: %w", err)
	}
	base := strings.TrimSuffix(strings.TrimSuffix(u.Path, "/"), "/save")
	u.Path = base + "/" + slug
	u.RawQuery = ""
	return u.String(), nil
}
