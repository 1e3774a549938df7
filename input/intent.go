package input

// IntentType discriminates semantic actions
type IntentType uint8

const (
	IntentNone IntentType = iota

	IntentQuit        // Esc, Ctrl+C, q
	IntentRestart     // r
	IntentSave        // s, Ctrl+S
	IntentToggleMute  // m
	IntentToggleDebug // d
	IntentPause       // p, space
	IntentResize      // surface changed size
)

var intentNames = map[IntentType]string{
	IntentNone:        "none",
	IntentQuit:        "quit",
	IntentRestart:     "restart",
	IntentSave:        "save",
	IntentToggleMute:  "toggle_mute",
	IntentToggleDebug: "toggle_debug",
	IntentPause:       "pause",
	IntentResize:      "resize",
}

func (t IntentType) String() string {
	if name, ok := intentNames[t]; ok {
		return name
	}
	return "unknown"
}
