package ui

import (
	"morsekey/hal"
	"morsekey/morse/codec"
	"morsekey/morse/playback"
)

// Playback signals a morse string and returns when it is done.
type Playback interface {
	Play(morse string, tone bool) playback.Result
}

// Presenter receives snapshots the machine must show before it blocks, such
// as the "Playing:" screen.
type Presenter func(Snapshot)

// Config tunes a Machine. Zero values select the defaults.
type Config struct {
	Presets   []Preset
	Speaker   bool
	WrapWidth int
	Keymap    *Keymap
	Logger    hal.Logger
}

// Machine owns the translator state and applies one key per key-down edge.
//
// A Machine is not safe for concurrent use; it belongs to the tick loop.
type Machine struct {
	st      State
	presets []Preset
	keymap  Keymap
	wrap    int

	player  Playback
	present Presenter
	log     hal.Logger

	wasDown     bool
	pollFailing bool
	rev         uint64
}

func New(cfg Config, player Playback, present Presenter) *Machine {
	presets := cfg.Presets
	if presets == nil {
		presets = DefaultPresets()
	}
	km := DefaultKeymap()
	if cfg.Keymap != nil {
		km = *cfg.Keymap
	}
	wrap := cfg.WrapWidth
	if wrap <= 0 {
		wrap = OutputWrap
	}
	return &Machine{
		st:      newState(presets, cfg.Speaker, wrap),
		presets: presets,
		keymap:  km,
		wrap:    wrap,
		player:  player,
		present: present,
		log:     cfg.Logger,
		rev:     1,
	}
}

// Rev changes every time the visible state changes.
func (m *Machine) Rev() uint64 { return m.rev }

func (m *Machine) Mode() Mode { return m.st.Mode }

func (m *Machine) Direction() codec.Direction { return m.st.Direction }

func (m *Machine) Input() string { return string(m.st.Input) }

func (m *Machine) LastMorse() string { return m.st.LastMorse }

func (m *Machine) Speaker() bool { return m.st.Speaker }

// Poll samples kb once and feeds the result to Tick. A read error counts as
// "no key down" and is logged once per failure streak.
func (m *Machine) Poll(kb hal.Keyboard) bool {
	var ev hal.KeyEvent
	if kb != nil {
		var err error
		ev, err = kb.Poll()
		if err != nil {
			if !m.pollFailing {
				hal.Errorf(m.log, "ui: keyboard: %v", err)
			}
			m.pollFailing = true
			ev = hal.KeyEvent{}
		} else {
			m.pollFailing = false
		}
	}
	return m.Tick(ev)
}

// Tick acts only on the transition from no key down to some key down, so a
// held key fires once. It reports whether the visible state changed.
func (m *Machine) Tick(ev hal.KeyEvent) bool {
	edge := ev.Press && !m.wasDown
	m.wasDown = ev.Press
	if !edge {
		return false
	}
	return m.Press(m.keymap.Resolve(ev, m.st.Mode))
}

// Press applies one resolved key in the current mode.
func (m *Machine) Press(k Key) bool {
	if k.Action == ActNone {
		return false
	}
	var changed bool
	switch m.st.Mode {
	case ModeNormal:
		changed = m.pressNormal(k)
	case ModeMenu:
		changed = m.pressMenu(k)
	case ModePreset:
		changed = m.pressPreset(k)
	}
	if changed {
		m.rev++
	}
	return changed
}

func (m *Machine) pressNormal(k Key) bool {
	switch k.Action {
	case ActChar:
		m.st.Input = append(m.st.Input, k.Rune)
		return true
	case ActDelete:
		if len(m.st.Input) == 0 {
			return false
		}
		m.st.Input = m.st.Input[:len(m.st.Input)-1]
		return true
	case ActConfirm:
		m.translate()
		return true
	case ActMenu:
		m.st.Mode = ModeMenu
		m.st.Menu.Open()
		return true
	case ActScrollUp:
		return m.st.Output.ScrollUp()
	case ActScrollDown:
		return m.st.Output.ScrollDown()
	}
	return false
}

func (m *Machine) pressMenu(k Key) bool {
	switch k.Action {
	case ActPrev:
		m.st.Menu.Prev()
		return true
	case ActNext:
		m.st.Menu.Next()
		return true
	case ActCancel:
		m.st.Mode = ModeNormal
		return true
	case ActConfirm:
		m.confirmMenu(m.st.Menu.SelectedItem())
		return true
	}
	return false
}

func (m *Machine) pressPreset(k Key) bool {
	switch k.Action {
	case ActPrev:
		m.st.Presets.Prev()
		return true
	case ActNext:
		m.st.Presets.Next()
		return true
	case ActCancel:
		m.st.Mode = ModeNormal
		return true
	case ActConfirm:
		m.st.Mode = ModeNormal
		if i := m.st.Presets.Selected; i >= 0 && i < len(m.presets) {
			m.injectPreset(m.presets[i])
		}
		return true
	}
	return false
}

func (m *Machine) confirmMenu(item string) {
	switch item {
	case ItemPlayDemo:
		m.st.Mode = ModeNormal
		m.PlayDemo()
	case ItemSpeaker:
		m.st.Speaker = !m.st.Speaker
		hal.Debugf(m.log, "ui: speaker=%v", m.st.Speaker)
	case ItemPresets:
		m.st.Mode = ModePreset
		m.st.Presets.Open()
	case ItemSwitchMode:
		m.st.Mode = ModeNormal
		next := (int(m.st.Direction) + 1) % len(codec.Directions)
		m.st.Direction = codec.Directions[next]
		hal.Debugf(m.log, "ui: mode %s", m.st.Direction)
	}
}

// injectPreset replaces the input with the preset's label when encoding and
// with its morse when decoding.
func (m *Machine) injectPreset(p Preset) {
	src := p.Label
	if m.st.Direction == codec.MorseToText {
		src = p.Morse
	}
	m.st.Input = []rune(src)
}

// CloseMenu returns to Normal from either list. It is a no-op in Normal.
func (m *Machine) CloseMenu() bool {
	if m.st.Mode == ModeNormal {
		return false
	}
	m.st.Mode = ModeNormal
	m.rev++
	return true
}

func (m *Machine) translate() {
	in := m.st.Input
	if len(in) > 0 {
		head := in
		if len(head) > LastInputChars {
			head = head[:LastInputChars]
		}
		m.st.LastInput = LastInputPrefix + string(head)
	} else {
		m.st.LastInput = ""
	}

	out, stats := codec.Translate(m.st.Direction, string(in))
	if stats.Unmapped > 0 {
		hal.Debugf(m.log, "ui: %s: %d of %d symbols unmapped", m.st.Direction, stats.Unmapped, stats.Mapped+stats.Unmapped)
	}
	if m.st.Direction == codec.TextToMorse {
		m.st.LastMorse = out
	} else {
		m.st.LastMorse = ""
	}

	m.st.Output.SetText(out, m.wrap)
	m.st.Input = nil
}

// demoMorse is the last encoded output, or the first preset when nothing has
// been encoded yet.
func (m *Machine) demoMorse() string {
	if m.st.LastMorse != "" {
		return m.st.LastMorse
	}
	if len(m.presets) > 0 {
		return m.presets[0].Morse
	}
	return ""
}

// PlayDemo publishes the "Playing:" screen and blocks until playback ends.
func (m *Machine) PlayDemo() {
	morse := m.demoMorse()
	if morse == "" || m.player == nil {
		return
	}

	m.st.Playing = morse
	m.rev++
	if m.present != nil {
		m.present(m.Snapshot())
	}

	res := m.player.Play(morse, m.st.Speaker)
	hal.Debugf(m.log, "ui: played %d marks in %s", res.Marks, res.Duration)

	m.st.Playing = ""
	m.rev++
}
