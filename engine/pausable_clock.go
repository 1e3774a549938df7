package engine

import (
	"sync"
	"time"
)

// PausableClock derives session time from a base provider, freezing while paused
// Scheduled deadlines are measured on this clock, so a pause also holds back pending transitions
type PausableClock struct {
	mu sync.RWMutex

	base        TimeProvider
	paused      bool
	pauseStart  time.Time     // base time when the current pause began
	totalPaused time.Duration // cumulative pause duration
}

// NewPausableClock wraps base, or the monotonic provider when base is nil
func NewPausableClock(base TimeProvider) *PausableClock {
	if base == nil {
		base = NewMonotonicTimeProvider()
	}
	return &PausableClock{base: base}
}

// Now returns base time minus all paused time; frozen during a pause
func (pc *PausableClock) Now() time.Time {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	if pc.paused {
		return pc.pauseStart.Add(-pc.totalPaused)
	}
	return pc.base.Now().Add(-pc.totalPaused)
}

// Pause stops time advancement
func (pc *PausableClock) Pause() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if !pc.paused {
		pc.paused = true
		pc.pauseStart = pc.base.Now()
	}
}

// Resume continues time advancement
func (pc *PausableClock) Resume() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if pc.paused {
		pc.totalPaused += pc.base.Now().Sub(pc.pauseStart)
		pc.paused = false
		pc.pauseStart = time.Time{}
	}
}

// Toggle flips the pause state and reports whether the clock is now paused
func (pc *PausableClock) Toggle() bool {
	if pc.IsPaused() {
		pc.Resume()
		return false
	}
	pc.Pause()
	return true
}

// IsPaused returns current pause state
func (pc *PausableClock) IsPaused() bool {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	return pc.paused
}
