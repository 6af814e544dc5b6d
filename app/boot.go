package app

import (
	"image/color"

	"morsekey/hal"
	"morsekey/internal/buildinfo"
	"morsekey/morse/render"
)

// bootScreen shows the build on the display until the first frame replaces
// it.
func bootScreen(h hal.HAL) {
	if h == nil {
		return
	}
	hal.Logf(h.Logger(), "morsekey %s booting", buildinfo.Short())
	disp := h.Display()
	if disp == nil {
		return
	}
	fb := disp.Framebuffer()
	if fb == nil {
		return
	}

	fb.ClearRGB(0, 0, 0)
	d := render.NewDisplayer(fb)
	fg := color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	d.WriteText(8, 8, "morsekey", fg)
	d.WriteText(8, 8+render.LineHeight, buildinfo.Short(), fg)
	_ = fb.Present()
}
