package engine

import (
	"log"
	"time"

	"github.com/lixenwraith/liveheart/parameter"
)

// Complete ends collection as if the threshold had been reached
// Valid from idle and collecting; idle passes through collecting first
func (s *Session) Complete() error {
	a := s.a
	if !a.phase.AcceptsInput() {
		return ErrInvalidTransition
	}
	if a.phase == PhaseIdle && !s.transition(a, PhaseCollecting) {
		return ErrInvalidTransition
	}
	s.crystallize(a)
	s.stat.progress.Set(a.acc.Progress())
	return nil
}

// Showcase drives a session without pointer input, holding each artifact for an interval
// then dispersing it before the next one forms
type Showcase struct {
	s        *Session
	interval time.Duration
	next     time.Time
}

// NewShowcase cycles s every interval once an artifact is on screen
// An artifact already showing, such as a loaded share, is held for a full interval first
func NewShowcase(s *Session, interval time.Duration) *Showcase {
	sc := &Showcase{s: s, interval: interval}
	if s.Phase() == PhaseArtifact {
		sc.next = s.clock.Now().Add(interval)
	}
	return sc
}

// Step starts or advances the cycle; call once per frame before Tick
func (sc *Showcase) Step() {
	now := sc.s.clock.Now()
	switch sc.s.Phase() {
	case PhaseIdle, PhaseCollecting:
		if err := sc.s.Complete(); err == nil {
			sc.next = now.Add(sc.s.cfg.CrystallizeDelay + sc.interval)
		}
	case PhaseArtifact:
		if now.Before(sc.next) {
			return
		}
		f := sc.s.a.field
		if !f.Dispersed() {
			f.Disperse(sc.s.width, sc.s.height)
			sc.next = now.Add(parameter.DisperseDuration)
			log.Printf("showcase: dispersing %s", sc.s.a.dna.Name)
			return
		}
		if err := sc.s.Restart(); err == nil && sc.s.Complete() == nil {
			sc.next = now.Add(sc.s.cfg.CrystallizeDelay + sc.interval)
		}
	}
}

// Dispersing reports whether the current artifact is scattering before the next cycle
func (sc *Showcase) Dispersing() bool {
	return sc.s.a.phase == PhaseArtifact && sc.s.a.field.Dispersed()
}

// Next returns when the current hold or disperse ends
func (sc *Showcase) Next() time.Time {
	return sc.next
}
