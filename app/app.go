package app

import (
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"morsekey/hal"
	"morsekey/morse/playback"
	"morsekey/morse/render"
	"morsekey/morse/ui"
)

// Config wires the translator to a HAL.
type Config struct {
	Machine ui.Config
	Timing  playback.Timing
	ToneHz  uint32

	// Present, if set, receives every snapshot after it has been drawn.
	Present func(ui.Snapshot)
}

// App is one translator instance bound to a HAL. Step must only be called
// from the tick loop.
type App struct {
	h        hal.HAL
	log      hal.Logger
	kbd      hal.Keyboard
	machine  *ui.Machine
	renderer *render.Renderer
	present  func(ui.Snapshot)

	drawn       uint64
	drawFailing bool
	halted      error
}

func New(h hal.HAL, cfg Config) *App {
	a := &App{h: h, log: h.Logger(), present: cfg.Present}

	if in := h.Input(); in != nil {
		a.kbd = in.Keyboard()
	}
	if disp := h.Display(); disp != nil {
		if fb := disp.Framebuffer(); fb != nil {
			a.renderer = render.New(fb)
		}
	}

	player := &playback.Player{
		Audio:     h.Audio(),
		Backlight: h.Backlight(),
		Clock:     h.Clock(),
		Logger:    a.log,
		Timing:    cfg.Timing,
		ToneHz:    cfg.ToneHz,
	}

	mcfg := cfg.Machine
	if mcfg.Logger == nil {
		mcfg.Logger = a.log
	}
	a.machine = ui.New(mcfg, player, a.show)

	hal.Logf(a.log, "morsekey: ready, unit=%s tone=%dHz", effectiveTiming(cfg.Timing).Unit, effectiveTone(cfg.ToneHz))
	return a
}

// NewStep returns the per-tick function expected by the host runners.
func NewStep(h hal.HAL, cfg Config) func() error {
	return New(h, cfg).Step
}

// Machine exposes the state machine, mainly for tests.
func (a *App) Machine() *ui.Machine { return a.machine }

// Step polls the keyboard once and redraws if anything changed.
//
// A panic inside the step is logged, drawn on screen and turned into an
// error; every later call returns the same error.
func (a *App) Step() (err error) {
	if a.halted != nil {
		return a.halted
	}
	defer func() {
		if r := recover(); r != nil {
			showPanic(a.h, r, debug.Stack())
			a.halted = fmt.Errorf("app: panic: %v", r)
			err = a.halted
		}
	}()

	a.machine.Poll(a.kbd)
	a.show(a.machine.Snapshot())
	return nil
}

func (a *App) show(s ui.Snapshot) {
	if s.Rev == a.drawn {
		return
	}
	if a.renderer != nil {
		err := a.renderer.Draw(s)
		if err != nil && !a.drawFailing {
			hal.Errorf(a.log, "app: draw: %v", err)
		}
		a.drawFailing = err != nil
	} else if a.present == nil {
		logSnapshot(a.log, s)
	}
	if a.present != nil {
		a.present(s)
	}
	a.drawn = s.Rev
}

// Run is the device entrypoint: it ticks forever and halts on the first
// error.
func Run(h hal.HAL, cfg Config) {
	bootScreen(h)
	step := NewStep(h, cfg)

	clock := h.Clock()
	const period = time.Second / 60
	for {
		if err := step(); err != nil {
			hal.Errorf(h.Logger(), "%v", err)
			select {}
		}
		if clock != nil {
			clock.Sleep(period)
		} else {
			time.Sleep(period)
		}
	}
}

// logSnapshot is the only output on boards without a panel.
func logSnapshot(l hal.Logger, s ui.Snapshot) {
	switch {
	case s.Playing != nil:
		hal.Logf(l, "%s %s", ui.PlayingTitle, strings.Join(s.Playing, " "))
	case s.List != nil:
		row, _ := s.List.Selected()
		hal.Logf(l, "%s: %s", s.List.Title, row.Label)
	default:
		out := make([]string, 0, len(s.Output))
		for _, line := range s.Output {
			if line != "" {
				out = append(out, line)
			}
		}
		hal.Logf(l, "%s | %s | %s", s.Direction, strings.Join(out, " "), s.InputLine)
	}
}

func effectiveTiming(t playback.Timing) playback.Timing {
	if t.Validate() != nil {
		return playback.DefaultTiming()
	}
	return t
}

func effectiveTone(hz uint32) uint32 {
	if hz == 0 {
		return playback.DefaultToneHz
	}
	return hz
}
