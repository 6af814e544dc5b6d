package playback

import "time"

// SignalEvent is one step of a playback plan.
type SignalEvent struct {
	Duration time.Duration
	Tone     bool
	Light    bool
}

// Signal reports whether the event is a mark (anything is emitted).
func (e SignalEvent) Signal() bool { return e.Tone || e.Light }

// Sequence lazily walks a Morse string and yields its events in order.
//
// Each element is a mark followed by one unit of silence. A run of separators
// between two elements becomes a single gap: a word gap if the run holds a
// '/', otherwise a letter gap. The gap only adds what the element silence has
// not already covered. Separator runs before the first or after the last
// element produce nothing. Other symbols are ignored.
//
// A Sequence is single use.
type Sequence struct {
	morse  string
	timing Timing
	tone   bool

	pos        int
	sawElement bool

	pending [2]SignalEvent
	head    int
	n       int
}

func NewSequence(morse string, timing Timing, tone bool) *Sequence {
	return &Sequence{morse: morse, timing: timing, tone: tone}
}

func (s *Sequence) Next() (SignalEvent, bool) {
	if s.head < s.n {
		ev := s.pending[s.head]
		s.head++
		return ev, true
	}
	s.head, s.n = 0, 0

	for s.pos < len(s.morse) {
		c := s.morse[s.pos]
		if c == '.' || c == '-' {
			s.pos++
			s.sawElement = true
			mark := s.timing.Dot()
			if c == '-' {
				mark = s.timing.Dash()
			}
			s.pending[0] = SignalEvent{Duration: mark, Tone: s.tone, Light: true}
			s.pending[1] = SignalEvent{Duration: s.timing.ElementGap()}
			s.head, s.n = 1, 2
			return s.pending[0], true
		}

		gap := s.scanRun()
		if gap <= 0 || !s.sawElement || s.pos >= len(s.morse) {
			continue
		}
		return SignalEvent{Duration: gap - s.timing.ElementGap()}, true
	}
	return SignalEvent{}, false
}

// scanRun consumes a run of non-element symbols and returns the total gap it
// stands for (0 if it holds no separator).
func (s *Sequence) scanRun() time.Duration {
	letter, word := false, false
	for s.pos < len(s.morse) {
		c := s.morse[s.pos]
		if c == '.' || c == '-' {
			break
		}
		switch c {
		case ' ':
			letter = true
		case '/':
			word = true
		}
		s.pos++
	}
	switch {
	case word:
		return s.timing.WordGap()
	case letter:
		return s.timing.LetterGap()
	default:
		return 0
	}
}

// Plan materialises the whole sequence.
func Plan(morse string, timing Timing, tone bool) []SignalEvent {
	var out []SignalEvent
	seq := NewSequence(morse, timing, tone)
	for {
		ev, ok := seq.Next()
		if !ok {
			return out
		}
		out = append(out, ev)
	}
}

// Total sums event durations.
func Total(events []SignalEvent) time.Duration {
	var d time.Duration
	for _, ev := range events {
		d += ev.Duration
	}
	return d
}
