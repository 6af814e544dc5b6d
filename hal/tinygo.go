//go:build tinygo && baremetal && !picocalc

package hal

import (
	"machine"
)

type tinyGoHAL struct {
	logger *uartLogger
	kbd    Keyboard
	audio  Audio
	bl     Backlight
}

// New returns a Pico (RP2040/RP2350) HAL implementation.
//
// UART: UART0 on GP0 (TX) / GP1 (RX), 115200 8N1; keys are read from the same
// console. Buzzer on GP2. The on-board LED is the flash indicator. There is
// no panel, so Display has no framebuffer.
func New() HAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})

	var audio Audio = stubAudio{}
	if t := newPWMTone(machine.GP2); t != nil {
		audio = t
	}

	return &tinyGoHAL{
		logger: &uartLogger{uart: uart},
		kbd:    &uartKeyboard{uart: uart},
		audio:  audio,
		bl:     newPWMBacklight(machine.LED),
	}
}

func (h *tinyGoHAL) Logger() Logger       { return h.logger }
func (h *tinyGoHAL) Display() Display     { return tinyGoDisplay{} }
func (h *tinyGoHAL) Input() Input         { return tinyGoInput{kbd: h.kbd} }
func (h *tinyGoHAL) Audio() Audio         { return h.audio }
func (h *tinyGoHAL) Backlight() Backlight { return h.bl }
func (h *tinyGoHAL) Clock() Clock         { return tinyGoClock{} }
