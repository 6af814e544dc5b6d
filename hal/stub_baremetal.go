//go:build tinygo && baremetal

package hal

import "time"

// stubAudio is used when the buzzer pin has no PWM slice.
type stubAudio struct{}

func (stubAudio) Tone(hz uint32, d time.Duration) error {
	_ = hz
	_ = d
	return ErrNotImplemented
}

func (stubAudio) Stop() error { return nil }
