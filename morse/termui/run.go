package termui

import (
	"context"
	"errors"
	"io"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"morsekey/hal"
	"morsekey/morse/playback"
	"morsekey/morse/ui"
)

// Config controls the terminal runner.
type Config struct {
	Hz        int
	AltScreen bool
	Input     io.Reader
	Output    io.Writer
}

// NewAppFunc builds the per-tick step. present must be called with every
// snapshot the app wants shown.
type NewAppFunc func(h hal.HAL, present func(ui.Snapshot)) func() error

// Run drives the app from a terminal until ctx is done, the user presses
// ctrl+c, or a step fails.
//
// base supplies the logger, audio and clock; the keyboard, backlight and
// display are replaced by terminal versions.
func Run(ctx context.Context, base hal.HAL, newApp NewAppFunc, cfg Config) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}

	kb := NewKeyboard(0)
	model := NewModel(kb)

	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if cfg.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	if cfg.Input != nil {
		opts = append(opts, tea.WithInput(cfg.Input))
	}
	if cfg.Output != nil {
		opts = append(opts, tea.WithOutput(cfg.Output))
	}
	p := tea.NewProgram(model, opts...)

	h := &termHAL{
		base: base,
		kb:   kb,
		bl:   &backlight{level: playback.BaselineLevel, send: p.Send},
	}

	done := make(chan struct{})
	loopErr := make(chan error, 1)
	go func() {
		step := newApp(h, func(s ui.Snapshot) { p.Send(snapshotMsg(s)) })
		err := hal.TickLoop(done, cfg.Hz, 0, step)
		loopErr <- err
		p.Send(doneMsg{err: err})
	}()

	_, runErr := p.Run()
	close(done)
	if err := <-loopErr; err != nil {
		return err
	}
	if errors.Is(runErr, tea.ErrProgramKilled) && ctx.Err() != nil {
		return ctx.Err()
	}
	return runErr
}

type termHAL struct {
	base hal.HAL
	kb   *Keyboard
	bl   *backlight
}

func (h *termHAL) Logger() hal.Logger       { return h.base.Logger() }
func (h *termHAL) Display() hal.Display     { return noDisplay{} }
func (h *termHAL) Input() hal.Input         { return termInput{kb: h.kb} }
func (h *termHAL) Audio() hal.Audio         { return h.base.Audio() }
func (h *termHAL) Backlight() hal.Backlight { return h.bl }
func (h *termHAL) Clock() hal.Clock         { return h.base.Clock() }

type noDisplay struct{}

func (noDisplay) Framebuffer() hal.Framebuffer { return nil }

type termInput struct {
	kb *Keyboard
}

func (in termInput) Keyboard() hal.Keyboard { return in.kb }

// backlight shows brightness changes as the screen border color.
type backlight struct {
	mu    sync.Mutex
	level uint8
	send  func(tea.Msg)
}

func (b *backlight) SetBrightness(level uint8) {
	b.mu.Lock()
	b.level = level
	b.mu.Unlock()
	if b.send != nil {
		b.send(flashMsg(level))
	}
}

func (b *backlight) Brightness() uint8 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.level
}
