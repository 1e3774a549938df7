package engine

import (
	"context"
	"fmt"
	"log"
	"slices"

	"github.com/lixenwraith/liveheart/core"
	"github.com/lixenwraith/liveheart/event"
	"github.com/lixenwraith/liveheart/gateway"
)

// Gateway is the save backend consumed by the session
type Gateway = gateway.Gateway

// Snapshotter captures the current frame as an encoded image
type Snapshotter interface {
	Snapshot() ([]byte, error)
}

// prepareSave validates the phase and builds the request on the frame goroutine
// A failing snapshot degrades to a DNA-only request
func (s *Session) prepareSave(title string, snap Snapshotter) (gateway.Request, error) {
	a := s.a
	if a.phase != PhaseArtifact || a.dna == nil {
		return gateway.Request{}, ErrNotArtifact
	}
	if s.gw == nil {
		return gateway.Request{}, ErrNoGateway
	}

	d := *a.dna
	d.Palette = slices.Clone(d.Palette)
	req := gateway.Request{DNA: d, Title: title}
	if title == "" {
		req.Title = d.Name
	}

	if snap != nil {
		img, err := snap.Snapshot()
		if err != nil {
			log.Printf("save: snapshot failed, saving dna only: %v", err)
		} else {
			req.Image = img
		}
	}
	return req, nil
}

// Save persists the current artifact and blocks until the gateway answers
// Neither success nor failure changes phase or particles
func (s *Session) Save(ctx context.Context, title string, snap Snapshotter) (gateway.Result, error) {
	req, err := s.prepareSave(title, snap)
	if err != nil {
		return gateway.Result{}, err
	}
	res, err := s.gw.Save(ctx, req)
	s.recordSave(res, err, len(req.Image) > 0)
	if err != nil {
		return gateway.Result{}, fmt.Errorf("save %q: %w", req.DNA.Name, err)
	}
	return res, nil
}

// SaveAsync validates and snapshots now, then calls the gateway in the background
// The outcome arrives as an EventSaveResult on the session queue
func (s *Session) SaveAsync(ctx context.Context, title string, snap Snapshotter) error {
	req, err := s.prepareSave(title, snap)
	if err != nil {
		return err
	}
	if !s.saveBusy.CompareAndSwap(false, true) {
		return ErrSaveInFlight
	}

	gw := s.gw
	core.Go(func() {
		defer s.saveBusy.Store(false)
		res, err := gw.Save(ctx, req)
		if err != nil {
			err = fmt.Errorf("save %q: %w", req.DNA.Name, err)
		}
		s.recordSave(res, err, len(req.Image) > 0)
	})
	return nil
}

// Saving reports whether an asynchronous save is in flight
func (s *Session) Saving() bool {
	return s.saveBusy.Load()
}

// recordSave touches only atomics and the queue; safe from any goroutine
func (s *Session) recordSave(res gateway.Result, err error, hasImage bool) {
	if err != nil {
		s.stat.saveErrs.Add(1)
		log.Printf("save: failed: %v", err)
	} else {
		s.stat.saves.Add(1)
		s.stat.slug.Store(res.Slug)
		log.Printf("save: ok slug=%s image=%t", res.Slug, hasImage)
	}
	s.events.Push(event.SessionEvent{Type: event.EventSaveResult, Payload: &event.SavePayload{
		Slug:     res.Slug,
		Err:      err,
		HasImage: hasImage,
	}})
}
