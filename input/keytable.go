package input

import "github.com/gdamore/tcell/v2"

// KeyTable maps keys to intents
type KeyTable struct {
	SpecialKeys map[tcell.Key]IntentType
	Runes       map[rune]IntentType
}

// DefaultKeyTable returns the default key bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		SpecialKeys: map[tcell.Key]IntentType{
			tcell.KeyEscape: IntentQuit,
			tcell.KeyCtrlC:  IntentQuit,
			tcell.KeyCtrlQ:  IntentQuit,
			tcell.KeyCtrlS:  IntentSave,
			tcell.KeyCtrlR:  IntentRestart,
		},
		Runes: map[rune]IntentType{
			'q': IntentQuit,
			'r': IntentRestart,
			'R': IntentRestart,
			's': IntentSave,
			'S': IntentSave,
			'm': IntentToggleMute,
			'd': IntentToggleDebug,
			'p': IntentPause,
			' ': IntentPause,
		},
	}
}

// Resolve maps a key event to an intent
func (kt *KeyTable) Resolve(ev *tcell.EventKey) IntentType {
	return kt.ResolveKey(ev.Key(), ev.Rune())
}

// ResolveKey maps a key code, or a rune when key is KeyRune, to an intent
func (kt *KeyTable) ResolveKey(key tcell.Key, r rune) IntentType {
	if key == tcell.KeyRune {
		return kt.Runes[r]
	}
	return kt.SpecialKeys[key]
}
