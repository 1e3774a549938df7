package engine

import (
	"fmt"
	"log"

	"github.com/lixenwraith/liveheart/dna"
	"github.com/lixenwraith/liveheart/event"
)

// Load replaces whatever is on screen with a previously saved artifact
// The particle count is clamped to the supported range before validation
// Valid from any phase; any pending deadline is cancelled before the swap
func (s *Session) Load(d dna.DNA) error {
	d.ParticleCount = dna.ClampParticleCount(d.ParticleCount)
	if err := d.Validate(); err != nil {
		return fmt.Errorf("load %q: %w", d.Name, err)
	}

	old := s.a
	old.pending.Cancel()
	s.sched.Bump()

	fresh := s.newArena(PhaseArtifact, s.clock.Now())
	fresh.dna = &d
	fresh.field.Repopulate(fresh.dna, s.width, s.height)
	s.a = fresh
	s.publishArena()

	log.Printf("phase: %s -> %s (replay %s, gen %d)", old.phase, PhaseArtifact, d.Name, fresh.gen)
	s.events.Push(event.SessionEvent{Type: event.EventRestart})
	s.events.Push(event.SessionEvent{Type: event.EventCrystallize, Payload: &event.CrystallizePayload{
		Name:  d.Name,
		Label: d.Label(),
		Count: d.ParticleCount,
	}})
	s.events.Push(event.SessionEvent{Type: event.EventPhaseChange, Payload: &event.PhasePayload{
		From: old.phase.String(),
		To:   PhaseArtifact.String(),
	}})
	s.stat.dna.Store(d.Name)
	s.stat.particles.Store(int64(fresh.field.Len()))
	return nil
}
