//go:build !tinygo && cgo

package hal

import (
	"errors"
	"math"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

const hostSampleRate = 44100

// hostAudio plays tones through Ebiten's audio package.
//
// A single player streams from toneStream forever; Tone arms the stream with a
// frequency and a sample budget, after which it emits silence again.
type hostAudio struct {
	mu     sync.Mutex
	logger Logger
	ctx    *audio.Context
	player *audio.Player
	stream *toneStream
	failed bool
}

func newHostAudio(logger Logger) *hostAudio {
	return &hostAudio{logger: logger, stream: &toneStream{sampleRate: hostSampleRate}}
}

func (a *hostAudio) start() error {
	if a.player != nil {
		return nil
	}
	if a.failed {
		return errors.New("host audio: unavailable")
	}
	if a.ctx == nil {
		a.ctx = audio.CurrentContext()
		if a.ctx == nil {
			a.ctx = audio.NewContext(hostSampleRate)
		}
	}
	p, err := a.ctx.NewPlayer(a.stream)
	if err != nil {
		a.failed = true
		return err
	}
	p.SetBufferSize(20 * time.Millisecond)
	p.Play()
	a.player = p
	return nil
}

func (a *hostAudio) Tone(hz uint32, d time.Duration) error {
	if hz == 0 || d <= 0 {
		return errors.New("host audio: invalid tone")
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.start(); err != nil {
		return err
	}
	a.stream.arm(hz, d)
	return nil
}

func (a *hostAudio) Stop() error {
	a.stream.arm(0, 0)
	return nil
}

type toneStream struct {
	mu         sync.Mutex
	sampleRate int
	hz         float64
	remaining  int
	phase      float64
}

func (s *toneStream) arm(hz uint32, d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hz = float64(hz)
	s.remaining = int(d.Seconds() * float64(s.sampleRate))
	s.phase = 0
}

// Read implements io.Reader. Ebiten audio expects 16-bit little-endian stereo.
func (s *toneStream) Read(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	const amplitude = 0.3 * math.MaxInt16
	n := len(p) &^ 3
	for i := 0; i < n; i += 4 {
		var v int16
		if s.remaining > 0 && s.hz > 0 {
			v = int16(amplitude * math.Sin(2*math.Pi*s.phase))
			s.phase += s.hz / float64(s.sampleRate)
			if s.phase >= 1 {
				s.phase -= 1
			}
			s.remaining--
		}
		p[i+0] = byte(v)
		p[i+1] = byte(v >> 8)
		p[i+2] = byte(v)
		p[i+3] = byte(v >> 8)
	}
	return n, nil
}
