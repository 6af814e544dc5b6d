package app

import (
	"errors"
	"strings"
	"testing"
	"time"

	"morsekey/hal"
	"morsekey/morse/playback"
	"morsekey/morse/ui"
)

type memFramebuffer struct {
	w, h     int
	buf      []byte
	presents int
	err      error
}

func (f *memFramebuffer) Width() int              { return f.w }
func (f *memFramebuffer) Height() int             { return f.h }
func (f *memFramebuffer) Format() hal.PixelFormat { return hal.PixelFormatRGB565 }
func (f *memFramebuffer) StrideBytes() int        { return f.w * 2 }
func (f *memFramebuffer) Buffer() []byte          { return f.buf }
func (f *memFramebuffer) Present() error          { f.presents++; return f.err }
func (f *memFramebuffer) ClearRGB(r, g, b uint8) {
	for i := range f.buf {
		f.buf[i] = 0
	}
}

type lineLogger struct{ lines []string }

func (l *lineLogger) WriteLineString(s string) { l.lines = append(l.lines, s) }
func (l *lineLogger) WriteLineBytes(b []byte)  { l.WriteLineString(string(b)) }

func (l *lineLogger) contains(sub string) bool {
	for _, line := range l.lines {
		if strings.Contains(line, sub) {
			return true
		}
	}
	return false
}

type fakeClock struct{ slept time.Duration }

func (c *fakeClock) Now() time.Time        { return time.Time{}.Add(c.slept) }
func (c *fakeClock) Sleep(d time.Duration) { c.slept += d }

type fakeBacklight struct{ levels []uint8 }

func (b *fakeBacklight) SetBrightness(level uint8) { b.levels = append(b.levels, level) }
func (b *fakeBacklight) Brightness() uint8 {
	if len(b.levels) == 0 {
		return playback.BaselineLevel
	}
	return b.levels[len(b.levels)-1]
}

type silentAudio struct{ tones int }

func (a *silentAudio) Tone(uint32, time.Duration) error { a.tones++; return nil }
func (a *silentAudio) Stop() error                      { return nil }

type fakeHAL struct {
	log   *lineLogger
	fb    *memFramebuffer
	kbd   hal.Keyboard
	audio *silentAudio
	bl    *fakeBacklight
	clock *fakeClock
}

func newFakeHAL(t *testing.T, script string) *fakeHAL {
	t.Helper()
	keys, err := hal.ParseKeyScript(script)
	if err != nil {
		t.Fatalf("ParseKeyScript: %v", err)
	}
	return &fakeHAL{
		log:   &lineLogger{},
		fb:    &memFramebuffer{w: 240, h: 135, buf: make([]byte, 240*135*2)},
		kbd:   hal.NewScriptedKeyboard(keys),
		audio: &silentAudio{},
		bl:    &fakeBacklight{},
		clock: &fakeClock{},
	}
}

func (h *fakeHAL) Logger() hal.Logger       { return h.log }
func (h *fakeHAL) Display() hal.Display     { return h }
func (h *fakeHAL) Input() hal.Input         { return h }
func (h *fakeHAL) Audio() hal.Audio         { return h.audio }
func (h *fakeHAL) Backlight() hal.Backlight { return h.bl }
func (h *fakeHAL) Clock() hal.Clock         { return h.clock }

func (h *fakeHAL) Framebuffer() hal.Framebuffer {
	if h.fb == nil {
		return nil
	}
	return h.fb
}
func (h *fakeHAL) Keyboard() hal.Keyboard       { return h.kbd }

func stepN(t *testing.T, step func() error, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		if err := step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
}

func TestStepDrawsOnlyOnChange(t *testing.T) {
	h := newFakeHAL(t, "")
	step := NewStep(h, Config{})

	stepN(t, step, 5)
	if h.fb.presents != 1 {
		t.Fatalf("presents=%d, want 1", h.fb.presents)
	}
}

func TestStepTranslates(t *testing.T) {
	h := newFakeHAL(t, "sos<enter>")
	var shown []ui.Snapshot
	a := New(h, Config{Present: func(s ui.Snapshot) { shown = append(shown, s) }})

	stepN(t, a.Step, 10)

	if got := a.Machine().LastMorse(); got != "... --- ..." {
		t.Fatalf("LastMorse=%q", got)
	}
	last := shown[len(shown)-1]
	if last.Output[0] != "... --- ..." {
		t.Fatalf("output=%q", last.Output)
	}
	// One frame per key press; the first one also replaces the blank screen.
	if h.fb.presents != 4 {
		t.Fatalf("presents=%d, want 4", h.fb.presents)
	}
}

func TestPlayDemoFlashesAndRestores(t *testing.T) {
	h := newFakeHAL(t, "e<enter><tab><enter>")
	var shown []ui.Snapshot
	a := New(h, Config{
		Timing:  playback.Timing{Unit: 50 * time.Millisecond},
		Present: func(s ui.Snapshot) { shown = append(shown, s) },
	})

	stepN(t, a.Step, 10)

	want := []uint8{playback.FlashLevel, playback.DarkLevel, playback.BaselineLevel}
	if len(h.bl.levels) != len(want) {
		t.Fatalf("levels=%v, want %v", h.bl.levels, want)
	}
	for i := range want {
		if h.bl.levels[i] != want[i] {
			t.Fatalf("levels=%v, want %v", h.bl.levels, want)
		}
	}
	if h.audio.tones != 0 {
		t.Fatalf("tones=%d with the speaker off", h.audio.tones)
	}
	if h.clock.slept != 100*time.Millisecond {
		t.Fatalf("slept=%s, want 100ms", h.clock.slept)
	}

	var sawPlaying bool
	for _, s := range shown {
		if len(s.Playing) == 1 && s.Playing[0] == "." {
			sawPlaying = true
		}
	}
	if !sawPlaying {
		t.Fatal("playing screen was never presented")
	}
	if shown[len(shown)-1].Playing != nil {
		t.Fatal("main screen not restored after playback")
	}
}

type panicKeyboard struct{}

func (panicKeyboard) Poll() (hal.KeyEvent, error) { panic("scan matrix fault") }

func TestStepRecoversPanic(t *testing.T) {
	h := newFakeHAL(t, "")
	h.kbd = panicKeyboard{}
	step := NewStep(h, Config{})

	err := step()
	if err == nil || !strings.Contains(err.Error(), "scan matrix fault") {
		t.Fatalf("err=%v", err)
	}
	if again := step(); !errors.Is(again, err) {
		t.Fatalf("second step err=%v, want %v", again, err)
	}
	if !h.log.contains("morsekey panic: scan matrix fault") {
		t.Fatalf("panic not logged: %q", h.log.lines)
	}
	if h.fb.presents == 0 {
		t.Fatal("panic screen not presented")
	}
}

type brokenKeyboard struct{}

func (brokenKeyboard) Poll() (hal.KeyEvent, error) { return hal.KeyEvent{}, errors.New("i2c nack") }

func TestKeyboardErrorsDoNotStopTheLoop(t *testing.T) {
	h := newFakeHAL(t, "")
	h.kbd = brokenKeyboard{}
	step := NewStep(h, Config{})

	stepN(t, step, 3)

	var n int
	for _, line := range h.log.lines {
		if strings.Contains(line, "i2c nack") {
			n++
		}
	}
	if n != 1 {
		t.Fatalf("logged keyboard error %d times, want 1", n)
	}
}

func TestDrawErrorsLoggedOncePerStreak(t *testing.T) {
	h := newFakeHAL(t, "ab")
	h.fb.err = errors.New("spi timeout")
	step := NewStep(h, Config{})

	stepN(t, step, 4)

	var n int
	for _, line := range h.log.lines {
		if strings.Contains(line, "spi timeout") {
			n++
		}
	}
	if h.fb.presents < 2 {
		t.Fatalf("presents=%d, want every change drawn", h.fb.presents)
	}
	if n != 1 {
		t.Fatalf("logged draw error %d times, want 1", n)
	}
}

func TestNoPanelLogsSnapshots(t *testing.T) {
	h := newFakeHAL(t, "e<enter>")
	h.fb = nil
	step := NewStep(h, Config{})

	stepN(t, step, 4)

	if !h.log.contains("Text -> Morse | . | >") {
		t.Fatalf("translation not logged: %q", h.log.lines)
	}
}

func TestTakeRunes(t *testing.T) {
	p, r := takeRunes("héllo", 2)
	if p != "hé" || r != "llo" {
		t.Fatalf("takeRunes=%q,%q", p, r)
	}
	p, r = takeRunes("ab", 5)
	if p != "ab" || r != "" {
		t.Fatalf("takeRunes=%q,%q", p, r)
	}
}
