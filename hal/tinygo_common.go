//go:build tinygo && baremetal

package hal

import (
	"machine"
	"time"
)

type tinyGoDisplay struct {
	fb Framebuffer
}

func (d tinyGoDisplay) Framebuffer() Framebuffer { return d.fb }

type tinyGoInput struct {
	kbd Keyboard
}

func (in tinyGoInput) Keyboard() Keyboard { return in.kbd }

type tinyGoClock struct{}

func (tinyGoClock) Now() time.Time        { return time.Now() }
func (tinyGoClock) Sleep(d time.Duration) { time.Sleep(d) }

type uartLogger struct {
	uart *machine.UART
}

func (l *uartLogger) WriteLineString(s string) {
	for i := 0; i < len(s); i++ {
		l.uart.WriteByte(s[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

func (l *uartLogger) WriteLineBytes(b []byte) {
	for i := 0; i < len(b); i++ {
		l.uart.WriteByte(b[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

// uartKeyboard turns bytes from a serial console into key samples.
//
// A terminal sends a byte per keystroke and no releases, so every byte is
// reported as held for one poll followed by one released poll.
type uartKeyboard struct {
	uart *machine.UART
	held bool
	last KeyEvent
	esc  int
}

func (k *uartKeyboard) Poll() (KeyEvent, error) {
	if k.held {
		k.held = false
		up := k.last
		up.Press = false
		return up, nil
	}
	for k.uart.Buffered() > 0 {
		b, err := k.uart.ReadByte()
		if err != nil {
			return KeyEvent{}, err
		}
		ev, ok := k.translate(b)
		if !ok {
			continue
		}
		k.last = ev
		k.held = true
		return ev, nil
	}
	up := k.last
	up.Press = false
	return up, nil
}

// translate decodes single bytes and the ESC [ A/B arrow sequences.
func (k *uartKeyboard) translate(b byte) (KeyEvent, bool) {
	switch k.esc {
	case 1:
		if b == '[' {
			k.esc = 2
			return KeyEvent{}, false
		}
		k.esc = 0
		return KeyEvent{Press: true, Code: KeyEscape}, true
	case 2:
		k.esc = 0
		switch b {
		case 'A':
			return KeyEvent{Press: true, Code: KeyUp}, true
		case 'B':
			return KeyEvent{Press: true, Code: KeyDown}, true
		case 'C':
			return KeyEvent{Press: true, Code: KeyRight}, true
		case 'D':
			return KeyEvent{Press: true, Code: KeyLeft}, true
		}
		return KeyEvent{}, false
	}

	switch b {
	case 0x1B:
		if k.uart.Buffered() == 0 {
			return KeyEvent{Press: true, Code: KeyEscape}, true
		}
		k.esc = 1
		return KeyEvent{}, false
	case '\r', '\n':
		return KeyEvent{Press: true, Code: KeyEnter}, true
	case 0x08, 0x7F:
		return KeyEvent{Press: true, Code: KeyBackspace}, true
	case '\t':
		return KeyEvent{Press: true, Code: KeyTab}, true
	}
	if b < 0x20 {
		return KeyEvent{}, false
	}
	return KeyEvent{Press: true, Rune: rune(b)}, true
}
