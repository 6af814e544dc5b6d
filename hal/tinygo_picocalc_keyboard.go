//go:build tinygo && baremetal && picocalc

package hal

import (
	"errors"
	"machine"
	"time"
)

// picoCalcBus talks to the keyboard MCU, which also owns the LCD backlight.
type picoCalcBus struct {
	i2c   *machine.I2C
	write [2]byte
	read  [2]byte
}

func initPicoCalcBus() (*picoCalcBus, error) {
	// Prefer I2C1 (PicoCalc wiring); some TinyGo targets expose only I2C0.
	for _, bus := range []*machine.I2C{machine.I2C1, machine.I2C0} {
		if bus == nil {
			continue
		}
		for _, freq := range []uint32{100_000, 400_000} {
			if err := bus.Configure(machine.I2CConfig{
				SCL:       machine.GP7,
				SDA:       machine.GP6,
				Frequency: freq,
			}); err != nil {
				continue
			}

			b := &picoCalcBus{i2c: bus}
			// The MCU is slow to answer right after power-on.
			for i := 0; i < 50; i++ {
				if _, _, err := b.next(); err == nil {
					return b, nil
				}
				time.Sleep(10 * time.Millisecond)
			}
		}
	}
	return nil, errors.New("keyboard: I2C unavailable")
}

// next pops one (state, key) pair; (0, 0) means the FIFO is empty.
func (b *picoCalcBus) next() (state, key byte, err error) {
	b.write[0] = picoCalcRegFIFO
	if err := b.i2c.Tx(picoCalcKbdAddr, b.write[:1], b.read[:]); err != nil {
		return 0, 0, err
	}
	return b.read[0], b.read[1], nil
}

func (b *picoCalcBus) setBacklight(level uint8) error {
	b.write[0] = picoCalcRegBKL | picoCalcWriteMask
	b.write[1] = level
	return b.i2c.Tx(picoCalcKbdAddr, b.write[:], nil)
}

// picoCalcKeyboard reads at most one FIFO entry per Poll so that a press and
// its release always land in different samples.
type picoCalcKeyboard struct {
	bus   *picoCalcBus
	level picoCalcLevel
}

func (k *picoCalcKeyboard) Poll() (KeyEvent, error) {
	state, key, err := k.bus.next()
	if err != nil {
		return KeyEvent{}, err
	}
	if state == 0 && key == 0 {
		return k.level.state, nil
	}
	return k.level.apply(state, key), nil
}

// picoCalcBacklight drives the LCD backlight through the keyboard MCU.
type picoCalcBacklight struct {
	bus    *picoCalcBus
	logger Logger
	level  uint8
	failed bool
}

func (b *picoCalcBacklight) SetBrightness(level uint8) {
	b.level = level
	if err := b.bus.setBacklight(level); err != nil {
		if !b.failed {
			Errorf(b.logger, "backlight: %v", err)
		}
		b.failed = true
		return
	}
	b.failed = false
}

func (b *picoCalcBacklight) Brightness() uint8 { return b.level }
