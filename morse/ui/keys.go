package ui

import (
	"unicode"

	"morsekey/hal"
)

// Action is a logical key token. The machine never looks at raw key codes.
type Action uint8

const (
	ActNone Action = iota
	ActChar
	ActConfirm
	ActDelete
	ActCancel
	ActMenu
	ActPrev
	ActNext
	ActScrollUp
	ActScrollDown
)

func (a Action) String() string {
	switch a {
	case ActChar:
		return "char"
	case ActConfirm:
		return "confirm"
	case ActDelete:
		return "delete"
	case ActCancel:
		return "cancel"
	case ActMenu:
		return "menu"
	case ActPrev:
		return "prev"
	case ActNext:
		return "next"
	case ActScrollUp:
		return "scroll-up"
	case ActScrollDown:
		return "scroll-down"
	default:
		return "none"
	}
}

// Key is one resolved key press.
type Key struct {
	Action Action
	Rune   rune
}

// Keymap resolves keyboard samples into keys.
//
// The list runes only apply while a list is open; in Normal mode they are
// ordinary input characters.
type Keymap struct {
	Prev       rune
	Next       rune
	Cancel     rune
	ScrollUp   rune
	ScrollDown rune
}

// DefaultKeymap matches the handheld's layout, where ';' and '.' sit under
// the up and down arrows.
func DefaultKeymap() Keymap {
	return Keymap{
		Prev:       ';',
		Next:       '.',
		Cancel:     '`',
		ScrollUp:   '[',
		ScrollDown: ']',
	}
}

// Resolve maps a key sample to a Key for the given mode.
func (km Keymap) Resolve(ev hal.KeyEvent, mode Mode) Key {
	inList := mode != ModeNormal

	if ev.Rune == 0 {
		switch ev.Code {
		case hal.KeyEnter:
			return Key{Action: ActConfirm}
		case hal.KeyBackspace, hal.KeyDelete:
			return Key{Action: ActDelete}
		case hal.KeyEscape:
			return Key{Action: ActCancel}
		case hal.KeyTab:
			return Key{Action: ActMenu}
		case hal.KeyUp:
			if inList {
				return Key{Action: ActPrev}
			}
			return Key{Action: ActScrollUp}
		case hal.KeyDown:
			if inList {
				return Key{Action: ActNext}
			}
			return Key{Action: ActScrollDown}
		}
		return Key{}
	}

	r := ev.Rune
	switch r {
	case '\r', '\n':
		return Key{Action: ActConfirm}
	case '\b', 0x7f:
		return Key{Action: ActDelete}
	case 0x1b:
		return Key{Action: ActCancel}
	case '\t':
		return Key{Action: ActMenu}
	}

	if inList {
		switch r {
		case km.Prev:
			return Key{Action: ActPrev}
		case km.Next:
			return Key{Action: ActNext}
		case km.Cancel:
			return Key{Action: ActCancel}
		}
		return Key{}
	}

	switch r {
	case km.ScrollUp:
		return Key{Action: ActScrollUp}
	case km.ScrollDown:
		return Key{Action: ActScrollDown}
	}
	if unicode.IsPrint(r) {
		return Key{Action: ActChar, Rune: r}
	}
	return Key{}
}
