package ui

import (
	"morsekey/morse/view"
)

// ListView is the visible part of an open list.
type ListView struct {
	Title     string
	Rows      []view.Row
	MoreAbove bool
	MoreBelow bool
}

// Snapshot is a copy of everything a renderer needs. It shares no memory
// with the Machine.
type Snapshot struct {
	Rev  uint64
	Mode Mode

	Direction string
	Hint      string
	LastInput string
	InputLine string

	Output        []string
	CanScrollUp   bool
	CanScrollDown bool

	// List is nil in Normal mode.
	List *ListView

	// Playing holds the wrapped morse while playback runs.
	Playing []string
}

func (m *Machine) Snapshot() Snapshot {
	s := Snapshot{
		Rev:           m.rev,
		Mode:          m.st.Mode,
		Direction:     m.st.Direction.String(),
		Hint:          MenuHint,
		LastInput:     m.st.LastInput,
		InputLine:     m.st.inputLine(),
		Output:        m.st.Output.Visible(),
		CanScrollUp:   m.st.Output.CanScrollUp(),
		CanScrollDown: m.st.Output.CanScrollDown(),
	}
	switch m.st.Mode {
	case ModeMenu:
		s.List = m.listView(m.st.Menu)
	case ModePreset:
		s.List = m.listView(m.st.Presets)
	}
	if m.st.Playing != "" {
		s.Playing = view.Wrap(m.st.Playing, PlayingWrap)
	}
	return s
}

func (m *Machine) listView(l *view.List) *ListView {
	rows := l.Visible()
	for i := range rows {
		if rows[i].Label == ItemSpeaker && l == m.st.Menu {
			rows[i].Label = speakerLabelOff
			if m.st.Speaker {
				rows[i].Label = speakerLabelOn
			}
		}
	}
	return &ListView{
		Title:     l.Title,
		Rows:      rows,
		MoreAbove: l.MoreAbove(),
		MoreBelow: l.MoreBelow(),
	}
}

// Selected returns the highlighted row, or false when the list is empty.
func (lv *ListView) Selected() (view.Row, bool) {
	for _, r := range lv.Rows {
		if r.Selected {
			return r, true
		}
	}
	return view.Row{}, false
}
