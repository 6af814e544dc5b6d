// Package playback turns Morse strings into timed signal events and plays
// them on the audio and backlight collaborators.
package playback

import (
	"errors"
	"time"
)

// Timing ratios in units.
const (
	DotUnits        = 1
	DashUnits       = 3
	ElementGapUnits = 1
	LetterGapUnits  = 3
	WordGapUnits    = 7
)

// DefaultUnit is one dot at 10 WPM.
const DefaultUnit = 120 * time.Millisecond

var ErrInvalidTiming = errors.New("playback: timing unit must be positive")

// Timing derives all durations from one unit.
type Timing struct {
	Unit time.Duration
}

func DefaultTiming() Timing { return Timing{Unit: DefaultUnit} }

// TimingFromWPM uses the PARIS convention: unit = 1200ms / wpm.
func TimingFromWPM(wpm int) (Timing, error) {
	if wpm <= 0 {
		return Timing{}, ErrInvalidTiming
	}
	return Timing{Unit: 1200 * time.Millisecond / time.Duration(wpm)}, nil
}

func (t Timing) Validate() error {
	if t.Unit <= 0 {
		return ErrInvalidTiming
	}
	return nil
}

func (t Timing) Dot() time.Duration        { return DotUnits * t.Unit }
func (t Timing) Dash() time.Duration       { return DashUnits * t.Unit }
func (t Timing) ElementGap() time.Duration { return ElementGapUnits * t.Unit }
func (t Timing) LetterGap() time.Duration  { return LetterGapUnits * t.Unit }
func (t Timing) WordGap() time.Duration    { return WordGapUnits * t.Unit }

// WPM is the inverse of TimingFromWPM, rounded down.
func (t Timing) WPM() int {
	if t.Unit <= 0 {
		return 0
	}
	return int(1200 * time.Millisecond / t.Unit)
}
