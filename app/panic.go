package app

import (
	"fmt"
	"image/color"
	"strings"
	"unicode/utf8"

	"morsekey/hal"
	"morsekey/morse/render"
)

// showPanic logs a recovered panic with its stack and paints it on the
// framebuffer, black on white, wrapped to the screen width.
func showPanic(h hal.HAL, value any, stack []byte) {
	l := h.Logger()
	hal.Errorf(l, "morsekey panic: %v", value)
	for _, line := range strings.Split(string(stack), "\n") {
		if line == "" {
			continue
		}
		hal.Errorf(l, "%s", line)
	}

	disp := h.Display()
	if disp == nil {
		return
	}
	fb := disp.Framebuffer()
	if fb == nil {
		return
	}

	fb.ClearRGB(255, 255, 255)

	fontWidth := render.TextWidth("0")
	fontHeight := int16(render.LineHeight)
	if fontWidth <= 0 {
		_ = fb.Present()
		return
	}

	lines := []string{
		"morsekey panic:",
		fmt.Sprintf("panic: %v", value),
	}
	if len(stack) > 0 {
		lines = append(lines, "stack:")
		for _, line := range strings.Split(string(stack), "\n") {
			if line == "" {
				continue
			}
			lines = append(lines, strings.TrimSpace(line))
		}
	} else {
		lines = append(lines, "stack: unavailable")
	}

	d := render.NewDisplayer(fb)
	fg := color.RGBA{R: 0, G: 0, B: 0, A: 255}
	maxH := int16(fb.Height())
	cols := int16(fb.Width()) / fontWidth
	if cols <= 0 {
		cols = 1
	}

	y := int16(0)
	for _, line := range lines {
		for len(line) > 0 {
			if y+fontHeight > maxH {
				_ = fb.Present()
				return
			}
			chunk, rest := takeRunes(line, cols)
			d.WriteText(0, y, chunk, fg)
			y += fontHeight
			line = strings.TrimLeft(rest, " ")
		}
	}

	_ = fb.Present()
}

func takeRunes(s string, n int16) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	if int64(len(s)) <= int64(n) {
		return s, ""
	}
	var i int
	var count int16
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		if size <= 0 {
			break
		}
		i += size
		count++
	}
	if i >= len(s) {
		return s, ""
	}
	return s[:i], s[i:]
}
