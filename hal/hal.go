package hal

import (
	"errors"
	"time"
)

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

var ErrNotImplemented = errors.New("not implemented")

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGB565 is 16bpp: rrrrrggggggbbbbb.
	PixelFormatRGB565 PixelFormat = iota + 1
)

// Framebuffer is a simple pixel buffer plus a "present" hook.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	ClearRGB(r, g, b uint8)
	Present() error
}

// KeyCode is a minimal key identifier.
type KeyCode uint16

const (
	KeyUnknown KeyCode = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyTab
	KeyDelete
	KeyHome
	KeyEnd
)

// KeyEvent is a keyboard level sample.
//
// Press reports whether any key is currently held. Code and Rune describe the
// most recently pressed key; Rune is set for printable keys, Code otherwise.
type KeyEvent struct {
	Code  KeyCode
	Press bool
	Rune  rune
}

// Keyboard is sampled once per tick.
//
// Poll never blocks. A non-nil error means the sample is unusable; callers
// treat it as "no key down".
type Keyboard interface {
	Poll() (KeyEvent, error)
}

// Display provides access to the framebuffer (if available).
type Display interface {
	Framebuffer() Framebuffer
}

// Input provides access to input devices (if available).
type Input interface {
	Keyboard() Keyboard
}

// Audio is a single-voice tone generator.
//
// Tone starts a square or sine tone and returns immediately; the tone stops on
// its own after d. Stop silences any tone in progress.
type Audio interface {
	Tone(hz uint32, d time.Duration) error
	Stop() error
}

// Backlight controls display brightness (0 = dark, 255 = full).
type Backlight interface {
	SetBrightness(level uint8)
	Brightness() uint8
}

// Clock is the time source for blocking waits.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// HAL provides the only contact point between the app and the outside world.
type HAL interface {
	Logger() Logger
	Display() Display
	Input() Input
	Audio() Audio
	Backlight() Backlight
	Clock() Clock
}
