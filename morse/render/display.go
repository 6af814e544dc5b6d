package render

import (
	"image/color"

	"morsekey/hal"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// Font is the UI font.
var Font tinyfont.Fonter = &proggy.TinySZ8pt7b

// Font metrics: line advance and the distance from a line's top to its
// baseline.
const (
	LineHeight = 13
	Ascent     = 9
)

// Displayer adapts an RGB565 framebuffer to drivers.Displayer so tinyfont
// can draw into it.
type Displayer struct {
	fb hal.Framebuffer
}

var _ drivers.Displayer = (*Displayer)(nil)

func NewDisplayer(fb hal.Framebuffer) *Displayer {
	return &Displayer{fb: fb}
}

func (d *Displayer) Size() (x, y int16) {
	if d.fb == nil {
		return 0, 0
	}
	return int16(d.fb.Width()), int16(d.fb.Height())
}

func (d *Displayer) SetPixel(x, y int16, c color.RGBA) {
	if d.fb == nil || d.fb.Format() != hal.PixelFormatRGB565 {
		return
	}
	buf := d.fb.Buffer()
	ix, iy := int(x), int(y)
	if ix < 0 || ix >= d.fb.Width() || iy < 0 || iy >= d.fb.Height() {
		return
	}
	off := iy*d.fb.StrideBytes() + ix*2
	if off < 0 || off+1 >= len(buf) {
		return
	}
	pixel := rgb565From888(c.R, c.G, c.B)
	buf[off] = byte(pixel)
	buf[off+1] = byte(pixel >> 8)
}

func (d *Displayer) Display() error {
	if d.fb == nil {
		return nil
	}
	return d.fb.Present()
}

func (d *Displayer) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	if d.fb == nil || d.fb.Format() != hal.PixelFormatRGB565 {
		return nil
	}
	buf := d.fb.Buffer()
	w, h := d.fb.Width(), d.fb.Height()

	x0 := clampInt(int(x), 0, w)
	y0 := clampInt(int(y), 0, h)
	x1 := clampInt(int(x)+int(width), 0, w)
	y1 := clampInt(int(y)+int(height), 0, h)
	if x0 >= x1 || y0 >= y1 {
		return nil
	}

	pixel := rgb565From888(c.R, c.G, c.B)
	lo, hi := byte(pixel), byte(pixel>>8)
	stride := d.fb.StrideBytes()
	for py := y0; py < y1; py++ {
		row := py * stride
		for px := x0; px < x1; px++ {
			off := row + px*2
			if off+1 >= len(buf) {
				break
			}
			buf[off] = lo
			buf[off+1] = hi
		}
	}
	return nil
}

// Pixel reads back one pixel as RGB565.
func (d *Displayer) Pixel(x, y int) uint16 {
	if d.fb == nil || x < 0 || x >= d.fb.Width() || y < 0 || y >= d.fb.Height() {
		return 0
	}
	buf := d.fb.Buffer()
	off := y*d.fb.StrideBytes() + x*2
	if off+1 >= len(buf) {
		return 0
	}
	return uint16(buf[off]) | uint16(buf[off+1])<<8
}

// WriteText draws s with its top-left corner at (x, y).
func (d *Displayer) WriteText(x, y int16, s string, c color.RGBA) {
	tinyfont.WriteLine(d, Font, x, y+Ascent, s, c)
}

// TextWidth returns the advance width of s in pixels.
func TextWidth(s string) int16 {
	_, w := tinyfont.LineWidth(Font, s)
	return int16(w)
}

func rgb565From888(r, g, b uint8) uint16 {
	return uint16((uint16(r>>3)&0x1F)<<11 | (uint16(g>>2)&0x3F)<<5 | (uint16(b>>3) & 0x1F))
}

// RGB565 converts a 0xRRGGBB color to the framebuffer encoding.
func RGB565(c color.RGBA) uint16 { return rgb565From888(c.R, c.G, c.B) }

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
