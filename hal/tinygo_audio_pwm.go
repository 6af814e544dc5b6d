//go:build tinygo && baremetal

package hal

import (
	"machine"
	"sync"
	"time"
)

type pwmDevice interface {
	Configure(config machine.PWMConfig) error
	Channel(pin machine.Pin) (uint8, error)
	Top() uint32
	Set(channel uint8, value uint32)
	Enable(enable bool)
}

func pwmForPin(pin machine.Pin) pwmDevice {
	slice, err := machine.PWMPeripheral(pin)
	if err != nil {
		return nil
	}
	switch slice {
	case 0:
		return machine.PWM0
	case 1:
		return machine.PWM1
	case 2:
		return machine.PWM2
	case 3:
		return machine.PWM3
	case 4:
		return machine.PWM4
	case 5:
		return machine.PWM5
	case 6:
		return machine.PWM6
	case 7:
		return machine.PWM7
	default:
		return nil
	}
}

// pwmTone drives a piezo/speaker with a 50% duty square wave.
type pwmTone struct {
	mu  sync.Mutex
	pin machine.Pin
	pwm pwmDevice
	ch  uint8
	gen uint32
}

func newPWMTone(pin machine.Pin) *pwmTone {
	pwm := pwmForPin(pin)
	if pwm == nil {
		return nil
	}
	return &pwmTone{pin: pin, pwm: pwm}
}

func (a *pwmTone) Tone(hz uint32, d time.Duration) error {
	if a == nil || a.pwm == nil || hz == 0 {
		return ErrNotImplemented
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.pwm.Configure(machine.PWMConfig{Period: 1e9 / uint64(hz)}); err != nil {
		return err
	}
	ch, err := a.pwm.Channel(a.pin)
	if err != nil {
		return err
	}
	a.ch = ch
	a.pwm.Set(a.ch, a.pwm.Top()/2)
	a.pwm.Enable(true)

	a.gen++
	gen := a.gen
	go func() {
		time.Sleep(d)
		a.mu.Lock()
		defer a.mu.Unlock()
		if a.gen == gen {
			a.silenceLocked()
		}
	}()
	return nil
}

func (a *pwmTone) Stop() error {
	if a == nil || a.pwm == nil {
		return nil
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.gen++
	a.silenceLocked()
	return nil
}

func (a *pwmTone) silenceLocked() {
	a.pwm.Set(a.ch, 0)
	a.pwm.Enable(false)
}

// pwmBacklight dims an LED or panel backlight pin.
type pwmBacklight struct {
	pwm   pwmDevice
	ch    uint8
	level uint8
}

func newPWMBacklight(pin machine.Pin) *pwmBacklight {
	pwm := pwmForPin(pin)
	if pwm == nil {
		return &pwmBacklight{}
	}
	// 1kHz carrier is well above flicker for an indicator.
	if err := pwm.Configure(machine.PWMConfig{Period: 1e6}); err != nil {
		return &pwmBacklight{}
	}
	ch, err := pwm.Channel(pin)
	if err != nil {
		return &pwmBacklight{}
	}
	pwm.Enable(true)
	return &pwmBacklight{pwm: pwm, ch: ch}
}

func (b *pwmBacklight) SetBrightness(level uint8) {
	b.level = level
	if b.pwm == nil {
		return
	}
	b.pwm.Set(b.ch, uint32(uint64(b.pwm.Top())*uint64(level)/255))
}

func (b *pwmBacklight) Brightness() uint8 { return b.level }
