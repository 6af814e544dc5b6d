package view

// TextViewport is a fixed-height window over wrapped lines.
type TextViewport struct {
	Lines    []string
	Top      int
	Capacity int
}

func NewTextViewport(capacity int) *TextViewport {
	if capacity <= 0 {
		capacity = 1
	}
	return &TextViewport{Lines: []string{""}, Capacity: capacity}
}

// SetLines replaces the content and scrolls back to the top.
func (v *TextViewport) SetLines(lines []string) {
	if len(lines) == 0 {
		lines = []string{""}
	}
	v.Lines = lines
	v.Top = 0
}

// SetText wraps text at maxChars and shows it from the top.
func (v *TextViewport) SetText(text string, maxChars int) {
	v.SetLines(Wrap(text, maxChars))
}

func (v *TextViewport) CanScrollUp() bool { return v.Top > 0 }

// CanScrollDown is true while the last page is not yet fully in view.
func (v *TextViewport) CanScrollDown() bool { return v.Top+v.Capacity < len(v.Lines) }

// ScrollUp moves one line up; it reports whether anything moved.
func (v *TextViewport) ScrollUp() bool {
	if !v.CanScrollUp() {
		return false
	}
	v.Top--
	return true
}

// ScrollDown moves one line down, stopping once the last line is on the
// bottom row; it reports whether anything moved.
func (v *TextViewport) ScrollDown() bool {
	if !v.CanScrollDown() {
		return false
	}
	v.Top++
	return true
}

// Visible returns exactly Capacity rows, padding with empty strings.
func (v *TextViewport) Visible() []string {
	out := make([]string, v.Capacity)
	for i := range out {
		if idx := v.Top + i; idx < len(v.Lines) {
			out[i] = v.Lines[idx]
		}
	}
	return out
}
