package engine

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/lixenwraith/liveheart/parameter"
)

func TestCompleteFromIdleAndCollecting(t *testing.T) {
	for _, collecting := range []bool{false, true} {
		s, _ := newTestSession(t)
		if collecting {
			s.Sample(0, 0)
			s.Sample(100, 0)
		}
		if err := s.Complete(); err != nil {
			t.Fatalf("Complete() error = %v", err)
		}
		if s.Phase() != PhaseCrystallizing || s.DNA() == nil || !s.PendingTransition() {
			t.Errorf("after Complete: phase=%v dna=%v pending=%v", s.Phase(), s.DNA() != nil, s.PendingTransition())
		}
		if err := s.Complete(); !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("second Complete() error = %v, want %v", err, ErrInvalidTransition)
		}
	}
}

func TestShowcaseCycles(t *testing.T) {
	s, clock := newTestSession(t)
	sc := NewShowcase(s, 5*time.Second)

	sc.Step()
	s.Tick()
	if s.Phase() != PhaseCrystallizing {
		t.Fatalf("phase = %v, want crystallizing after first step", s.Phase())
	}
	first := s.DNA()

	clock.Advance(time.Second)
	sc.Step()
	s.Tick()
	if s.Phase() != PhaseArtifact {
		t.Fatalf("phase = %v, want artifact", s.Phase())
	}

	clock.Advance(4 * time.Second)
	sc.Step()
	if s.Phase() != PhaseArtifact || s.DNA() != first {
		t.Fatal("artifact replaced before its interval elapsed")
	}

	clock.Advance(time.Second)
	sc.Step()
	if s.Phase() != PhaseArtifact || !sc.Dispersing() {
		t.Fatalf("phase = %v dispersing = %v, want a dispersing artifact", s.Phase(), sc.Dispersing())
	}

	clock.Advance(parameter.DisperseDuration - time.Millisecond)
	sc.Step()
	if s.DNA() != first {
		t.Fatal("next artifact started before the disperse finished")
	}

	clock.Advance(time.Millisecond)
	sc.Step()
	if s.Phase() != PhaseCrystallizing {
		t.Fatalf("phase = %v, want crystallizing on the next cycle", s.Phase())
	}
	if sc.Dispersing() {
		t.Error("new cycle still dispersing")
	}
	if s.DNA() == first {
		t.Error("showcase kept the previous DNA")
	}
	if want := clock.Now().Add(6 * time.Second); !sc.Next().Equal(want) {
		t.Errorf("Next() = %v, want %v", sc.Next(), want)
	}
}

func TestShowcaseDisperseMovesOutward(t *testing.T) {
	s, clock := newTestSession(t)
	sc := NewShowcase(s, time.Second)
	sc.Step()
	clock.Advance(time.Second)
	s.Tick()
	for range 120 {
		clock.Advance(16 * time.Millisecond)
		s.Tick()
	}
	clock.Advance(time.Second)
	sc.Step()
	if !sc.Dispersing() {
		t.Fatal("showcase did not start dispersing")
	}

	w, h := s.Size()
	spread := func() (r, alpha float64) {
		ps := s.Field().Particles()
		for _, p := range ps {
			r += math.Hypot(p.Pos.X-w/2, p.Pos.Y-h/2)
			alpha += p.Alpha
		}
		return r / float64(len(ps)), alpha / float64(len(ps))
	}
	r0, a0 := spread()
	for range 30 {
		clock.Advance(16 * time.Millisecond)
		s.Tick()
	}
	r1, a1 := spread()
	if r1 <= r0 {
		t.Errorf("mean radius %v -> %v, want growth", r0, r1)
	}
	if a1 >= a0 {
		t.Errorf("mean alpha %v -> %v, want fade", a0, a1)
	}
}
