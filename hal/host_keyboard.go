//go:build !tinygo && cgo

package hal

import (
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// hostKeyboard samples ebiten key state on the window thread (poll) and hands
// the latest sample to the app loop (Poll).
type hostKeyboard struct {
	mu    sync.Mutex
	state KeyEvent

	pressed []ebiten.Key
	just    []ebiten.Key
	chars   []rune
}

func newHostKeyboard() *hostKeyboard {
	return &hostKeyboard{}
}

func (k *hostKeyboard) Poll() (KeyEvent, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.state, nil
}

var namedKeys = []struct {
	key  ebiten.Key
	code KeyCode
}{
	{ebiten.KeyArrowUp, KeyUp},
	{ebiten.KeyArrowDown, KeyDown},
	{ebiten.KeyArrowLeft, KeyLeft},
	{ebiten.KeyArrowRight, KeyRight},
	{ebiten.KeyEnter, KeyEnter},
	{ebiten.KeyNumpadEnter, KeyEnter},
	{ebiten.KeyEscape, KeyEscape},
	{ebiten.KeyBackspace, KeyBackspace},
	{ebiten.KeyTab, KeyTab},
	{ebiten.KeyDelete, KeyDelete},
	{ebiten.KeyHome, KeyHome},
	{ebiten.KeyEnd, KeyEnd},
}

func isModifier(key ebiten.Key) bool {
	switch key {
	case ebiten.KeyShiftLeft, ebiten.KeyShiftRight,
		ebiten.KeyControlLeft, ebiten.KeyControlRight,
		ebiten.KeyAltLeft, ebiten.KeyAltRight,
		ebiten.KeyMetaLeft, ebiten.KeyMetaRight,
		ebiten.KeyCapsLock:
		return true
	default:
		return false
	}
}

func (k *hostKeyboard) poll() {
	k.pressed = inpututil.AppendPressedKeys(k.pressed[:0])
	k.just = inpututil.AppendJustPressedKeys(k.just[:0])
	k.chars = ebiten.AppendInputChars(k.chars[:0])

	f := windowFrame{Chars: k.chars}
	for _, key := range k.pressed {
		if !isModifier(key) {
			f.Down = true
			break
		}
	}
	for _, key := range k.just {
		if !isModifier(key) {
			f.Fresh = true
			break
		}
	}
	for _, nk := range namedKeys {
		if inpututil.IsKeyJustPressed(nk.key) {
			f.Named = nk.code
			break
		}
	}

	k.mu.Lock()
	k.state = nextKeyState(k.state, f)
	k.mu.Unlock()
}
