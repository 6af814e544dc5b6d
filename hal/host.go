//go:build !tinygo

package hal

import (
	"io"
	"os"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	hostWidth  = 240
	hostHeight = 135
)

// HostConfig selects host-side collaborators.
type HostConfig struct {
	// LogLevel is a logrus level name ("debug", "info", ...). Empty means info.
	LogLevel string
	// LogOutput receives log lines. Nil means stderr.
	LogOutput io.Writer
	// Keys, when non-empty, replaces the window keyboard with a scripted one.
	// See ParseKeyScript for the syntax.
	Keys string
}

type hostHAL struct {
	logger *hostLogger
	fb     *hostFramebuffer
	kbd    Keyboard
	win    *hostKeyboard
	aud    Audio
	bl     *hostBacklight
	clock  Clock
}

// New returns a host HAL implementation with default config.
func New() HAL {
	return newHost(HostConfig{})
}

// NewHost returns a host HAL implementation.
func NewHost(cfg HostConfig) HAL {
	return newHost(cfg)
}

func newHost(cfg HostConfig) *hostHAL {
	logger := newHostLogger(cfg.LogLevel, cfg.LogOutput)
	win := newHostKeyboard()

	var kbd Keyboard = win
	if cfg.Keys != "" {
		// Callers validate the script first; a bad one runs up to the error.
		script, err := ParseKeyScript(cfg.Keys)
		if err != nil {
			Errorf(logger, "keys: %v", err)
		}
		kbd = NewScriptedKeyboard(script)
	}

	bl := &hostBacklight{level: 100, logger: logger}
	return &hostHAL{
		logger: logger,
		fb:     newHostFramebuffer(hostWidth, hostHeight),
		kbd:    kbd,
		win:    win,
		aud:    newHostAudio(logger),
		bl:     bl,
		clock:  hostClock{},
	}
}

func (h *hostHAL) Logger() Logger       { return h.logger }
func (h *hostHAL) Display() Display     { return hostDisplay{fb: h.fb} }
func (h *hostHAL) Input() Input         { return hostInput{kbd: h.kbd} }
func (h *hostHAL) Audio() Audio         { return h.aud }
func (h *hostHAL) Backlight() Backlight { return h.bl }
func (h *hostHAL) Clock() Clock         { return h.clock }

type hostDisplay struct {
	fb *hostFramebuffer
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }

type hostInput struct {
	kbd Keyboard
}

func (in hostInput) Keyboard() Keyboard { return in.kbd }

type hostLogger struct {
	entry *logrus.Entry
}

func newHostLogger(level string, out io.Writer) *hostLogger {
	if out == nil {
		out = os.Stderr
	}
	l := logrus.New()
	l.SetOutput(out)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)
	return &hostLogger{entry: l.WithField("session", uuid.NewString())}
}

func (l *hostLogger) WriteLineString(s string) {
	level, msg := SplitLevel(s)
	switch level {
	case LevelDebug:
		l.entry.Debug(msg)
	case LevelWarn:
		l.entry.Warn(msg)
	case LevelError:
		l.entry.Error(msg)
	default:
		l.entry.Info(msg)
	}
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.WriteLineString(string(b))
}

type hostBacklight struct {
	mu     sync.Mutex
	level  uint8
	logger *hostLogger
}

func (b *hostBacklight) SetBrightness(level uint8) {
	b.mu.Lock()
	b.level = level
	b.mu.Unlock()
	Debugf(b.logger, "backlight: %d", level)
}

func (b *hostBacklight) Brightness() uint8 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.level
}
