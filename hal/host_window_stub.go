//go:build !tinygo && !cgo

package hal

import "errors"

// WindowSupported reports whether RunWindow can open a window in this build.
const WindowSupported = false

// WindowConfig controls the desktop window runner.
type WindowConfig struct {
	Hz    int
	Scale int
	Host  HostConfig
}

func RunWindow(_ func(h HAL) func() error, _ WindowConfig) error {
	return errors.New("window mode requires cgo (build/run with CGO_ENABLED=1)")
}
