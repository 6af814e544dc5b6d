// Package view holds the scroll state for wrapped text and selection lists.
// It knows nothing about pixels.
package view

import (
	"strings"
	"unicode/utf8"
)

// Wrap greedily packs space-separated words into lines of at most maxChars
// runes. A word longer than maxChars sits alone on its own line and is never
// broken. Empty text yields a single empty line.
func Wrap(text string, maxChars int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}
	if maxChars <= 0 {
		return []string{strings.Join(words, " ")}
	}

	var lines []string
	var cur strings.Builder
	curLen := 0
	for _, w := range words {
		wl := utf8.RuneCountInString(w)
		if curLen > 0 && curLen+1+wl > maxChars {
			lines = append(lines, cur.String())
			cur.Reset()
			curLen = 0
		}
		if curLen > 0 {
			cur.WriteByte(' ')
			curLen++
		}
		cur.WriteString(w)
		curLen += wl
	}
	if curLen > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}
