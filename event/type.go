// Package event carries session notifications from producers to the host loop
package event

// EventType represents the type of session event
type EventType int

const (
	// EventPhaseChange signals a completed phase transition
	// Trigger: Session | Consumer: host log, audio | Payload: *PhasePayload
	EventPhaseChange EventType = iota

	// EventCollectTick signals pointer travel was accumulated
	// Trigger: Session.Sample | Consumer: audio | Payload: *ProgressPayload
	EventCollectTick

	// EventCrystallize signals a new DNA was generated and the field repopulated
	// Trigger: Session on collection complete | Consumer: host log, audio | Payload: *CrystallizePayload
	EventCrystallize

	// EventSaveResult reports the outcome of an asynchronous save
	// Trigger: save goroutine | Consumer: host status line, audio | Payload: *SavePayload
	EventSaveResult

	// EventRestart signals the session arena was swapped
	// Trigger: Session.Restart | Consumer: host | Payload: nil
	EventRestart
)

var eventNames = map[EventType]string{
	EventPhaseChange: "phase_change",
	EventCollectTick: "collect_tick",
	EventCrystallize: "crystallize",
	EventSaveResult:  "save_result",
	EventRestart:     "restart",
}

func (t EventType) String() string {
	if name, ok := eventNames[t]; ok {
		return name
	}
	return "unknown"
}

// SessionEvent is one queued notification
type SessionEvent struct {
	Type    EventType
	Payload any
}
