package audio

// Cue names a sound the session can trigger
type Cue uint8

const (
	CueCollect Cue = iota
	CueCrystallize
	CueSaveOK
	CueSaveError
	CueRestart
	cueCount
)

var cueNames = [cueCount]string{"collect", "crystallize", "save_ok", "save_error", "restart"}

func (c Cue) String() string {
	if c < cueCount {
		return cueNames[c]
	}
	return "unknown"
}
