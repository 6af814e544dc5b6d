package playback

import (
	"time"

	"morsekey/hal"
)

const (
	DefaultToneHz = 800

	FlashLevel    uint8 = 200
	DarkLevel     uint8 = 0
	BaselineLevel uint8 = 100
)

// Player executes a Sequence in real time on the calling goroutine.
//
// Marks always flash the backlight; the tone is only started when the caller
// asks for it. Playback cannot be interrupted.
type Player struct {
	Audio     hal.Audio
	Backlight hal.Backlight
	Clock     hal.Clock
	Logger    hal.Logger

	Timing Timing
	ToneHz uint32
}

// Result summarises one Play call.
type Result struct {
	Marks    int
	Events   int
	Duration time.Duration
}

// Play blocks until the whole string has been signalled, then restores the
// backlight to its baseline level.
func (p *Player) Play(morse string, tone bool) Result {
	timing := p.Timing
	if timing.Validate() != nil {
		timing = DefaultTiming()
	}
	hz := p.ToneHz
	if hz == 0 {
		hz = DefaultToneHz
	}

	var res Result
	audioFailed := false
	seq := NewSequence(morse, timing, tone && p.Audio != nil)
	for {
		ev, ok := seq.Next()
		if !ok {
			break
		}
		res.Events++
		res.Duration += ev.Duration

		if !ev.Signal() {
			p.sleep(ev.Duration)
			continue
		}

		res.Marks++
		p.setLight(FlashLevel)
		if ev.Tone && !audioFailed {
			if err := p.Audio.Tone(hz, ev.Duration); err != nil {
				// The flash still carries the message.
				audioFailed = true
				hal.Errorf(p.Logger, "playback: tone: %v", err)
			}
		}
		p.sleep(ev.Duration)
		p.setLight(DarkLevel)
	}

	if p.Audio != nil {
		_ = p.Audio.Stop()
	}
	p.setLight(BaselineLevel)
	hal.Debugf(p.Logger, "playback: marks=%d events=%d duration=%s tone=%v", res.Marks, res.Events, res.Duration, tone)
	return res
}

func (p *Player) setLight(level uint8) {
	if p.Backlight != nil {
		p.Backlight.SetBrightness(level)
	}
}

func (p *Player) sleep(d time.Duration) {
	if d <= 0 {
		return
	}
	if p.Clock != nil {
		p.Clock.Sleep(d)
		return
	}
	time.Sleep(d)
}
