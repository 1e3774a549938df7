package gateway

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/lixenwraith/liveheart/store"
)

const (
	// MaxTitleRunes caps stored titles
	MaxTitleRunes = 120
	// slugAttempts bounds retries on slug collision
	slugAttempts = 3
)

// Repository is the share storage a local gateway saves into and replays from
type Repository interface {
	CreateShare(ctx context.Context, share store.Share) error
	PutImage(ctx context.Context, slug string, png []byte) error
	GetShare(ctx context.Context, slug string) (store.Share, error)
}

// Local saves straight into a repository, bypassing HTTP
type Local struct {
	repo    Repository
	newSlug func() string
	now     func() time.Time
}

// NewLocal creates a gateway over repo; newSlug mints candidate slugs
func NewLocal(repo Repository, newSlug func() string) *Local {
	return &Local{repo: repo, newSlug: newSlug, now: time.Now}
}

// NormalizeTitle trims, NFC-normalizes and caps a title, falling back to the DNA name
func NormalizeTitle(title, fallback string) string {
	title = strings.TrimSpace(norm.NFC.String(title))
	if title == "" {
		title = fallback
	}
	if r := []rune(title); len(r) > MaxTitleRunes {
		title = string(r[:MaxTitleRunes])
	}
	return title
}

// Save stores the share under a fresh slug, retrying on collision
// The image is stored best-effort; its failure is logged and does not fail the save
func (l *Local) Save(ctx context.Context, req Request) (Result, error) {
	if len(req.DNA.Palette) == 0 {
		return Result{}, ErrEmptyDNA
	}
	share := store.Share{
		Title:     NormalizeTitle(req.Title, req.DNA.Name),
		DNA:       req.DNA,
		CreatedAt: l.now(),
	}

	var err error
	for range slugAttempts {
		share.Slug = l.newSlug()
		err = l.repo.CreateShare(ctx, share)
		if !errors.Is(err, store.ErrAlreadyExists) {
			break
		}
		log.Printf("gateway: slug %s taken, retrying", share.Slug)
	}
	if err != nil {
		return Result{}, fmt.Errorf("create share: %w", err)
	}

	if len(req.Image) > 0 {
		if err := l.repo.PutImage(ctx, share.Slug, req.Image); err != nil {
			log.Printf("gateway: image for %s not stored: %v", share.Slug, err)
		}
	}
	return Result{Slug: share.Slug}, nil
}

// Fetch reads a saved share; an unknown slug wraps store.ErrNotFound
func (l *Local) Fetch(ctx context.Context, slug string) (store.Share, error) {
	sh, err := l.repo.GetShare(ctx, slug)
	if err != nil {
		return store.Share{}, fmt.Errorf("fetch %s: %w", slug, err)
	}
	return sh, nil
}
