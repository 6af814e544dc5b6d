// Package codec converts between text and Morse symbol strings.
//
// A Morse string uses '.' and '-' for elements, a single space between
// letters and " / " between words.
package codec

import (
	"strings"
)

const (
	LetterSep = " "
	WordSep   = " / "
)

// Direction selects which way Translate converts.
type Direction uint8

const (
	TextToMorse Direction = iota
	MorseToText
)

// Directions lists the translation modes in menu order.
var Directions = []Direction{TextToMorse, MorseToText}

func (d Direction) String() string {
	switch d {
	case TextToMorse:
		return "Text -> Morse"
	case MorseToText:
		return "Morse -> Text"
	default:
		return "unknown"
	}
}

// Stats counts table hits and misses for one conversion.
type Stats struct {
	Mapped   int
	Unmapped int
}

// Encode converts text to Morse. Unmapped characters become "?".
func Encode(text string) string {
	s, _ := EncodeStats(text)
	return s
}

// EncodeStats is Encode plus hit/miss counts.
func EncodeStats(text string) (string, Stats) {
	var st Stats
	words := strings.Fields(strings.ToUpper(text))
	morseWords := make([]string, 0, len(words))
	for _, w := range words {
		letters := make([]string, 0, len(w))
		for _, r := range w {
			code, ok := Lookup(r)
			if !ok {
				st.Unmapped++
				letters = append(letters, Unknown)
				continue
			}
			st.Mapped++
			letters = append(letters, code)
		}
		morseWords = append(morseWords, strings.Join(letters, LetterSep))
	}
	return strings.Join(morseWords, WordSep), st
}

// Decode converts Morse to text. Unknown codes become "?".
func Decode(morse string) string {
	s, _ := DecodeStats(morse)
	return s
}

// DecodeStats is Decode plus hit/miss counts.
func DecodeStats(morse string) (string, Stats) {
	var st Stats
	var words []string
	for _, w := range strings.Split(morse, "/") {
		var b strings.Builder
		for _, code := range strings.Fields(w) {
			r, ok := Reverse(code)
			if !ok {
				st.Unmapped++
				b.WriteString(Unknown)
				continue
			}
			st.Mapped++
			b.WriteRune(r)
		}
		if b.Len() > 0 {
			words = append(words, b.String())
		}
	}
	return strings.Join(words, " "), st
}

// Translate runs Encode or Decode depending on d.
func Translate(d Direction, s string) (string, Stats) {
	if d == MorseToText {
		return DecodeStats(s)
	}
	return EncodeStats(s)
}
