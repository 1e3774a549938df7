package engine

import "errors"

var (
	// ErrNotArtifact rejects a save outside the artifact phase
	ErrNotArtifact = errors.New("no finished artifact to save")
	// ErrNoGateway rejects a save when no backend is configured
	ErrNoGateway = errors.New("no save gateway configured")
	// ErrSaveInFlight rejects overlapping asynchronous saves
	ErrSaveInFlight = errors.New("save already in progress")
	// ErrInvalidTransition rejects a phase change the state machine does not allow
	ErrInvalidTransition = errors.New("invalid phase transition")
)
