// Package render draws ui snapshots onto a framebuffer.
package render

import (
	"image/color"

	"morsekey/hal"
	"morsekey/morse/ui"

	"tinygo.org/x/tinydraw"
)

var (
	colorBG      = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	colorFG      = color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xff}
	colorDim     = color.RGBA{R: 0x88, G: 0x88, B: 0x88, A: 0xff}
	colorArrow   = color.RGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff}
	colorMenuBG  = color.RGBA{R: 0xe9, G: 0xe8, B: 0xe8, A: 0xff}
	colorMenuFG  = color.RGBA{R: 0x22, G: 0x22, B: 0x22, A: 0xff}
	colorTitleBG = color.RGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff}
	colorSelBG   = color.RGBA{R: 0x00, G: 0x7a, B: 0xcc, A: 0xff}
	colorSelFG   = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// Screen layout in pixels.
const (
	marginX     = 8
	lastInputY  = 4
	hintX       = 160
	outputY     = 22
	outputStep  = 20
	directionY  = 70
	inputY      = 98
	arrowX      = 225
	arrowW      = 15
	playingX    = 10
	playingY    = 10
	playingBody = 30

	menuX      = 35
	menuY      = 8
	menuW      = 200
	menuH      = 122
	menuTitleH = 24
	menuHeadH  = 28
	menuRowH   = 22
)

// Renderer redraws the whole screen for every snapshot it is given.
type Renderer struct {
	fb hal.Framebuffer
	d  *Displayer
}

func New(fb hal.Framebuffer) *Renderer {
	return &Renderer{fb: fb, d: NewDisplayer(fb)}
}

// Draw paints s and presents the frame.
func (r *Renderer) Draw(s ui.Snapshot) error {
	if r.fb == nil {
		return nil
	}
	r.fb.ClearRGB(colorBG.R, colorBG.G, colorBG.B)

	if s.Playing != nil {
		r.drawPlaying(s.Playing)
	} else {
		r.drawMain(s)
		if s.List != nil {
			r.drawList(s.List)
		}
	}

	return r.fb.Present()
}

func (r *Renderer) drawMain(s ui.Snapshot) {
	d := r.d
	d.WriteText(marginX, lastInputY, s.LastInput, colorDim)
	d.WriteText(hintX, lastInputY, s.Hint, colorDim)

	for i, line := range s.Output {
		d.WriteText(marginX, int16(outputY+i*outputStep), line, colorFG)
	}
	r.drawScrollArrows(s.CanScrollUp, s.CanScrollDown)

	d.WriteText(marginX, directionY, s.Direction, colorFG)
	d.WriteText(marginX, inputY, s.InputLine, colorFG)
}

func (r *Renderer) drawScrollArrows(up, down bool) {
	cx := int16(arrowX + arrowW/2)
	if up {
		tinydraw.FilledTriangle(r.d, cx, 25, arrowX, 32, arrowX+10, 32, colorArrow)
	}
	if down {
		tinydraw.FilledTriangle(r.d, cx, 60, arrowX, 53, arrowX+10, 53, colorArrow)
	}
}

func (r *Renderer) drawList(lv *ui.ListView) {
	d := r.d
	_ = d.FillRectangle(menuX, menuY, menuW, menuH, colorMenuBG)
	_ = d.FillRectangle(menuX, menuY, menuW, menuTitleH, colorTitleBG)
	d.WriteText(menuX+8, menuY+5, lv.Title, colorMenuFG)

	for i, row := range lv.Rows {
		y := int16(menuY + menuHeadH + i*menuRowH)
		fg := colorMenuFG
		if row.Selected {
			_ = d.FillRectangle(menuX+2, y-2, menuW-4, 20, colorSelBG)
			fg = colorSelFG
		}
		d.WriteText(menuX+10, y+2, row.Label, fg)
	}

	right := int16(menuX + menuW)
	if lv.MoreAbove {
		tinydraw.FilledTriangle(d, right-18, menuY+8, right-23, menuY+16, right-13, menuY+16, colorDim)
	}
	if lv.MoreBelow {
		bottom := int16(menuY + menuH)
		tinydraw.FilledTriangle(d, right-18, bottom-8, right-23, bottom-16, right-13, bottom-16, colorDim)
	}
}

func (r *Renderer) drawPlaying(lines []string) {
	d := r.d
	d.WriteText(playingX, playingY, ui.PlayingTitle, colorFG)
	maxY := int16(r.fb.Height() - LineHeight)
	y := int16(playingBody)
	for _, line := range lines {
		if y > maxY {
			break
		}
		d.WriteText(playingX, y, line, colorFG)
		y += LineHeight
	}
}
