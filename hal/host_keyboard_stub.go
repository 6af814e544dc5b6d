//go:build !tinygo && !cgo

package hal

type hostKeyboard struct{}

func newHostKeyboard() *hostKeyboard {
	return &hostKeyboard{}
}

// Poll reports no keys: there is no keyboard without the window backend.
func (k *hostKeyboard) Poll() (KeyEvent, error) { return KeyEvent{}, nil }

func (k *hostKeyboard) poll() {}
