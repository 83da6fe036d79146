package input

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/particle-field/event"
)

// IntentType discriminates semantic actions
type IntentType uint8

const (
	IntentNone IntentType = iota

	IntentQuit         // q, Esc, Ctrl+C
	IntentReset        // r - reinitialize the field at the current size
	IntentToggleStatus // s - show/hide the status line
)

// keyIntents maps printable keys to intents
var keyIntents = map[rune]IntentType{
	'q': IntentQuit,
	'Q': IntentQuit,
	'r': IntentReset,
	'R': IntentReset,
	's': IntentToggleStatus,
	'S': IntentToggleStatus,
}

// IntentFor resolves a key notification to its intent
func IntentFor(k event.Key) IntentType {
	if k.Rune != 0 {
		return keyIntents[k.Rune]
	}
	switch k.Name {
	case tcell.KeyNames[tcell.KeyEscape], tcell.KeyNames[tcell.KeyCtrlC]:
		return IntentQuit
	}
	return IntentNone
}
