package engine

import (
	"sort"
	"time"
)

// Scheduled is a cancellable one-shot event owned by a Scheduler
type Scheduled struct {
	at        time.Time
	gen       uint64
	fn        func()
	cancelled bool
	fired     bool
}

// Cancel prevents the event from firing; safe on nil and after firing
func (s *Scheduled) Cancel() {
	if s != nil {
		s.cancelled = true
	}
}

// Pending reports whether the event will still fire
func (s *Scheduled) Pending() bool {
	return s != nil && !s.cancelled && !s.fired
}

// Deadline returns when the event is due
func (s *Scheduled) Deadline() time.Time {
	return s.at
}

// Scheduler runs deadline callbacks from the frame loop
// Events carry the generation they were scheduled under; Poll drops any from an older generation
// Not safe for concurrent use, it is driven by the single simulation goroutine
type Scheduler struct {
	events []*Scheduled
	gen    uint64
}

// NewScheduler creates an empty scheduler at generation 0
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// At schedules fn to run on the first Poll at or after t
func (s *Scheduler) At(t time.Time, fn func()) *Scheduled {
	ev := &Scheduled{at: t, gen: s.gen, fn: fn}
	s.events = append(s.events, ev)
	return ev
}

// Generation returns the current generation
func (s *Scheduler) Generation() uint64 {
	return s.gen
}

// Bump starts a new generation, invalidating everything scheduled before it
func (s *Scheduler) Bump() uint64 {
	s.gen++
	for _, ev := range s.events {
		ev.cancelled = true
	}
	s.events = s.events[:0]
	return s.gen
}

// Poll fires due events in deadline order and returns how many ran
func (s *Scheduler) Poll(now time.Time) int {
	if len(s.events) == 0 {
		return 0
	}

	var due, keep []*Scheduled
	for _, ev := range s.events {
		switch {
		case ev.cancelled || ev.gen != s.gen:
		case !now.Before(ev.at):
			due = append(due, ev)
		default:
			keep = append(keep, ev)
		}
	}
	s.events = keep

	sort.SliceStable(due, func(i, j int) bool { return due[i].at.Before(due[j].at) })

	ran := 0
	gen := s.gen
	for _, ev := range due {
		// A callback may bump the generation; later events from the old one must not run
		if ev.cancelled || ev.gen != gen || s.gen != gen {
			continue
		}
		ev.fired = true
		ev.fn()
		ran++
	}
	return ran
}

// Len returns the number of queued events
func (s *Scheduler) Len() int {
	return len(s.events)
}
