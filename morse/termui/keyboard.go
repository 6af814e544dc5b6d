package termui

import (
	tea "github.com/charmbracelet/bubbletea"

	"morsekey/hal"
)

// Keyboard turns terminal key messages into level samples.
//
// A terminal only reports presses, so every key is held for one poll and
// released on the next. Push and Poll may run on different goroutines.
type Keyboard struct {
	keys chan hal.KeyEvent
	held bool
	last hal.KeyEvent
}

func NewKeyboard(buffer int) *Keyboard {
	if buffer <= 0 {
		buffer = 64
	}
	return &Keyboard{keys: make(chan hal.KeyEvent, buffer)}
}

// Push queues a key press. It drops the key if the queue is full.
func (k *Keyboard) Push(ev hal.KeyEvent) bool {
	ev.Press = true
	select {
	case k.keys <- ev:
		return true
	default:
		return false
	}
}

func (k *Keyboard) Poll() (hal.KeyEvent, error) {
	if k.held {
		k.held = false
		up := k.last
		up.Press = false
		return up, nil
	}
	select {
	case ev := <-k.keys:
		k.last = ev
		k.held = true
		return ev, nil
	default:
		return hal.KeyEvent{}, nil
	}
}

var namedKeys = map[tea.KeyType]hal.KeyCode{
	tea.KeyEnter:     hal.KeyEnter,
	tea.KeyBackspace: hal.KeyBackspace,
	tea.KeyDelete:    hal.KeyDelete,
	tea.KeyEsc:       hal.KeyEscape,
	tea.KeyTab:       hal.KeyTab,
	tea.KeyUp:        hal.KeyUp,
	tea.KeyDown:      hal.KeyDown,
	tea.KeyLeft:      hal.KeyLeft,
	tea.KeyRight:     hal.KeyRight,
	tea.KeyHome:      hal.KeyHome,
	tea.KeyEnd:       hal.KeyEnd,
}

// keyEvents converts one bubbletea key message into zero or more presses.
func keyEvents(msg tea.KeyMsg) []hal.KeyEvent {
	switch msg.Type {
	case tea.KeyRunes:
		out := make([]hal.KeyEvent, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			out = append(out, hal.KeyEvent{Rune: r})
		}
		return out
	case tea.KeySpace:
		return []hal.KeyEvent{{Rune: ' '}}
	}
	if code, ok := namedKeys[msg.Type]; ok {
		return []hal.KeyEvent{{Code: code}}
	}
	return nil
}
