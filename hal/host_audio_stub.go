//go:build !tinygo && !cgo

package hal

import "time"

// hostAudio is a stub when CGO/window backends are unavailable.
type hostAudio struct {
	logger Logger
}

func newHostAudio(logger Logger) *hostAudio { return &hostAudio{logger: logger} }

func (a *hostAudio) Tone(hz uint32, d time.Duration) error {
	Debugf(a.logger, "audio: tone %dHz %s (no backend)", hz, d)
	return ErrNotImplemented
}

func (a *hostAudio) Stop() error { return nil }
