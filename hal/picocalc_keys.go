package hal

// PicoCalc keyboard MCU protocol: register 0x09 pops one (state, key) pair
// from its FIFO, 0x05 is the LCD backlight. Writes set bit 7 of the register.
const (
	picoCalcKbdAddr   uint16 = 0x1F
	picoCalcRegFIFO   byte   = 0x09
	picoCalcRegBKL    byte   = 0x05
	picoCalcWriteMask byte   = 0x80
)

const (
	picoCalcStatePressed  byte = 0x01
	picoCalcStateHeld     byte = 0x02
	picoCalcStateReleased byte = 0x03
)

const (
	picoCalcKeyAlt       byte = 0xA1
	picoCalcKeyShiftL    byte = 0xA2
	picoCalcKeyShiftR    byte = 0xA3
	picoCalcKeyCtrl      byte = 0xA5
	picoCalcKeyBackspace byte = 0x08
	picoCalcKeyTab       byte = 0x09
	picoCalcKeyEsc       byte = 0xB1
	picoCalcKeyLeft      byte = 0xB4
	picoCalcKeyUp        byte = 0xB5
	picoCalcKeyDown      byte = 0xB6
	picoCalcKeyRight     byte = 0xB7
	picoCalcKeyIns       byte = 0xD1
	picoCalcKeyHome      byte = 0xD2
	picoCalcKeyDel       byte = 0xD4
	picoCalcKeyEnd       byte = 0xD5
)

// picoCalcLevel folds FIFO events into level samples: Press stays true while
// any non-modifier key is down, and Code/Rune name the last key pressed.
type picoCalcLevel struct {
	state    KeyEvent
	down     [256]bool
	held     int
	ctrlDown bool
}

func (l *picoCalcLevel) apply(kind, code byte) KeyEvent {
	switch code {
	case picoCalcKeyAlt, picoCalcKeyShiftL, picoCalcKeyShiftR:
		return l.state
	case picoCalcKeyCtrl:
		switch kind {
		case picoCalcStatePressed, picoCalcStateHeld:
			l.ctrlDown = true
		case picoCalcStateReleased:
			l.ctrlDown = false
		}
		return l.state
	}

	switch kind {
	case picoCalcStatePressed:
		if !l.down[code] {
			l.down[code] = true
			l.held++
		}
		ev := l.key(code)
		ev.Press = true
		l.state = ev
	case picoCalcStateReleased:
		if l.down[code] {
			l.down[code] = false
			l.held--
		}
		l.state.Press = l.held > 0
	}
	return l.state
}

// key maps a key byte to an event. Keys without a meaning here, including
// ctrl chords, map to the zero event so they never repeat the previous key.
func (l *picoCalcLevel) key(code byte) KeyEvent {
	switch code {
	case '\r', '\n':
		return KeyEvent{Code: KeyEnter}
	case picoCalcKeyBackspace:
		return KeyEvent{Code: KeyBackspace}
	case picoCalcKeyTab, picoCalcKeyIns:
		return KeyEvent{Code: KeyTab}
	case picoCalcKeyEsc:
		return KeyEvent{Code: KeyEscape}
	case picoCalcKeyDel:
		return KeyEvent{Code: KeyDelete}
	case picoCalcKeyHome:
		return KeyEvent{Code: KeyHome}
	case picoCalcKeyEnd:
		return KeyEvent{Code: KeyEnd}
	case picoCalcKeyLeft:
		return KeyEvent{Code: KeyLeft}
	case picoCalcKeyRight:
		return KeyEvent{Code: KeyRight}
	case picoCalcKeyUp:
		return KeyEvent{Code: KeyUp}
	case picoCalcKeyDown:
		return KeyEvent{Code: KeyDown}
	}
	if l.ctrlDown || code < 0x20 || code >= 0x7F {
		return KeyEvent{}
	}
	return KeyEvent{Rune: rune(code)}
}
