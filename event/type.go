package event

// Pointer is a pointer-move notification in logical surface units
// Trigger: mouse motion | Consumer: background (repulsion source)
type Pointer struct {
	X, Y float64
}

// Resize is a viewport-size notification in logical surface units
// Trigger: terminal resize | Consumer: background (full reinitialize)
type Resize struct {
	Width, Height float64
}

// Key is a keyboard notification
// Trigger: key press | Consumer: run command (quit, reset, status toggle)
type Key struct {
	// Rune is set for printable keys, zero otherwise
	Rune rune
	// Name is the key name for non-printable keys ("Esc", "Ctrl-C"), empty for runes
	Name string
}
