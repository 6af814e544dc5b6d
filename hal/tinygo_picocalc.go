//go:build tinygo && baremetal && picocalc

package hal

import (
	"machine"
)

type picoCalcHAL struct {
	logger *uartLogger
	fb     Framebuffer
	kbd    Keyboard
	audio  Audio
	bl     Backlight
}

// New returns a PicoCalc HAL implementation (Pico/Pico2 on the PicoCalc carrier).
//
// ILI9488 on SPI1, keyboard MCU on I2C (GP6/GP7), which also drives the LCD
// backlight used as the flash indicator. UART0 on GP0/GP1 carries logs and
// stands in for the keyboard if the MCU does not answer.
func New() HAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})
	logger := &uartLogger{uart: uart}

	h := &picoCalcHAL{logger: logger, audio: stubAudio{}}
	if t := newPWMTone(machine.GP2); t != nil {
		h.audio = t
	}

	if fb, err := newPicoCalcFramebuffer(); err == nil {
		h.fb = fb
	} else {
		Errorf(logger, "display: %v", err)
	}

	if bus, err := initPicoCalcBus(); err == nil {
		h.kbd = &picoCalcKeyboard{bus: bus}
		bl := &picoCalcBacklight{bus: bus, logger: logger}
		bl.SetBrightness(100)
		h.bl = bl
	} else {
		Errorf(logger, "%v; using the UART console", err)
		h.kbd = &uartKeyboard{uart: uart}
		h.bl = newPWMBacklight(machine.LED)
	}
	return h
}

func (h *picoCalcHAL) Logger() Logger       { return h.logger }
func (h *picoCalcHAL) Display() Display     { return tinyGoDisplay{fb: h.fb} }
func (h *picoCalcHAL) Input() Input         { return tinyGoInput{kbd: h.kbd} }
func (h *picoCalcHAL) Audio() Audio         { return h.audio }
func (h *picoCalcHAL) Backlight() Backlight { return h.bl }
func (h *picoCalcHAL) Clock() Clock         { return tinyGoClock{} }
