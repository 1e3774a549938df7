// Package gateway persists finished artifacts and hands back a shareable slug
package gateway

import (
	"context"
	"errors"

	"github.com/lixenwraith/liveheart/dna"
	"github.com/lixenwraith/liveheart/store"
)

// ErrEmptyDNA rejects a save without a DNA payload
var ErrEmptyDNA = errors.New("missing dna")

// Request is one save call; Image is an optional PNG
type Request struct {
	DNA   dna.DNA
	Title string
	Image []byte
}

// Result identifies the saved share
type Result struct {
	Slug string
}

// Gateway stores an artifact
type Gateway interface {
	Save(ctx context.Context, req Request) (Result, error)
}

// Fetcher reads a saved share back by slug
type Fetcher interface {
	Fetch(ctx context.Context, slug string) (store.Share, error)
}

// Backend saves artifacts and replays saved ones
type Backend interface {
	Gateway
	Fetcher
}

// Func adapts a function to Gateway
type Func func(ctx context.Context, req Request) (Result, error)

func (f Func) Save(ctx context.Context, req Request) (Result, error) {
	return f(ctx, req)
}
