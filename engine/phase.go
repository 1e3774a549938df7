package engine

import "time"

// Phase is the session state-machine stage
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseCollecting
	PhaseCrystallizing
	PhaseArtifact
)

var phaseNames = [...]string{"idle", "collecting", "crystallizing", "artifact"}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

// AcceptsInput reports whether pointer samples are accumulated in this phase
func (p Phase) AcceptsInput() bool {
	return p == PhaseIdle || p == PhaseCollecting
}

// validTransitions lists the allowed edges; restart is the edge back to collecting
var validTransitions = map[Phase][]Phase{
	PhaseIdle:          {PhaseCollecting},
	PhaseCollecting:    {PhaseCrystallizing},
	PhaseCrystallizing: {PhaseArtifact, PhaseCollecting},
	PhaseArtifact:      {PhaseCollecting},
}

// CanTransition checks if a phase transition is valid
func CanTransition(from, to Phase) bool {
	for _, p := range validTransitions[from] {
		if p == to {
			return true
		}
	}
	return false
}

// PhaseSnapshot provides a consistent view of phase state
type PhaseSnapshot struct {
	Phase     Phase
	StartTime time.Time
	Duration  time.Duration
	Progress  float64
	Gen       uint64
}
