//go:build !tinygo

package hal

import (
	"context"
	"errors"
	"fmt"
)

var errScriptDone = errors.New("key script finished")

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Enabled bool
	Hz      int
	Ticks   uint64
	Host    HostConfig
}

// RunHeadless runs the app without opening a window.
//
// Without a key script there is no input; the loop still ticks so logging
// and scripted runs behave the same as on the device. With a script and no
// tick limit the run ends once every scripted key has been released.
func RunHeadless(ctx context.Context, newApp func(HAL) func() error, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	if cfg.Hz > 1000 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}

	h := newHost(cfg.Host)
	step := newApp(h)

	if sk, ok := h.kbd.(*ScriptedKeyboard); ok && cfg.Ticks == 0 {
		inner := step
		step = func() error {
			if err := inner(); err != nil {
				return err
			}
			if sk.Done() {
				return errScriptDone
			}
			return nil
		}
	}

	err := TickLoop(ctx.Done(), cfg.Hz, cfg.Ticks, step)
	if errors.Is(err, errScriptDone) {
		return nil
	}
	if err != nil {
		return err
	}
	return ctx.Err()
}
