//go:build !tinygo

package hal

// windowFrame is one frame of window keyboard input.
type windowFrame struct {
	// Down is true while any non-modifier key is held.
	Down bool
	// Fresh is true when a non-modifier key went down this frame.
	Fresh bool
	// Chars is the text typed this frame.
	Chars []rune
	// Named is the named key that went down this frame, or KeyUnknown.
	Named KeyCode
}

// nextKeyState folds a frame into the level sample. A fresh key that is
// neither text nor a named key clears Code and Rune, so F-keys, PageUp or
// ctrl chords produce a press that resolves to nothing instead of repeating
// the previous key.
func nextKeyState(prev KeyEvent, f windowFrame) KeyEvent {
	st := prev
	st.Press = f.Down
	switch {
	case len(f.Chars) > 0:
		st.Code = KeyUnknown
		st.Rune = f.Chars[len(f.Chars)-1]
	case f.Named != KeyUnknown:
		st.Code = f.Named
		st.Rune = 0
	case f.Fresh:
		st.Code = KeyUnknown
		st.Rune = 0
	}
	return st
}
