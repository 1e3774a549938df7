package event

// PhasePayload names both ends of a transition by their string form
type PhasePayload struct {
	From string
	To   string
}

// ProgressPayload carries collection progress in percent
type ProgressPayload struct {
	Progress float64
}

// CrystallizePayload describes the generated artifact
type CrystallizePayload struct {
	Name  string
	Label string
	Count int
}

// SavePayload is the outcome of one save; Err is nil on success
type SavePayload struct {
	Slug     string
	Err      error
	HasImage bool
}
