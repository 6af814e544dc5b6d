//go:build !tinygo && cgo

package hal

import (
	"image"
	"morsekey/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
)

// WindowSupported reports whether RunWindow can open a window in this build.
const WindowSupported = true

// WindowConfig controls the desktop window runner.
type WindowConfig struct {
	Hz    int
	Scale int
	Host  HostConfig
}

// RunWindow starts a desktop window that displays the framebuffer and forwards keyboard input.
// It blocks until the window closes or the app step fails.
//
// The app loop runs on its own goroutine so a blocking step (playback) does
// not stall window redraws; only that goroutine ever calls step.
func RunWindow(newApp func(HAL) func() error, cfg WindowConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	if cfg.Scale <= 0 {
		cfg.Scale = 3
	}

	h := newHost(cfg.Host)
	step := newApp(h)

	g := &hostGame{h: h, done: make(chan struct{}), errc: make(chan error, 1)}
	go func() {
		g.errc <- TickLoop(g.done, cfg.Hz, 0, step)
	}()
	defer close(g.done)

	ebiten.SetWindowTitle("morsekey (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(h.fb.width*cfg.Scale, h.fb.height*cfg.Scale)
	ebiten.SetTPS(60)
	return ebiten.RunGame(g)
}

type hostGame struct {
	h       *hostHAL
	img     *image.RGBA
	fbImg   *ebiten.Image
	scratch []byte

	done chan struct{}
	errc chan error
}

func (g *hostGame) Update() error {
	select {
	case err := <-g.errc:
		if err != nil {
			return err
		}
		return ebiten.Termination
	default:
	}
	g.h.win.poll()
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	fb := g.h.fb
	if g.img == nil || g.img.Bounds().Dx() != fb.width || g.img.Bounds().Dy() != fb.height {
		g.img = image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
		g.scratch = make([]byte, len(fb.buf))
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(fb.width, fb.height)
	}

	fb.snapshotRGB565(g.scratch)
	level := backlightScale(g.h.bl.Brightness())

	src := g.scratch
	dst := g.img.Pix
	for i := 0; i+1 < len(src) && i/2*4+3 < len(dst); i += 2 {
		r, gg, b := rgb888From565(uint16(src[i]) | uint16(src[i+1])<<8)
		j := (i / 2) * 4
		dst[j+0] = dim(r, level)
		dst[j+1] = dim(gg, level)
		dst[j+2] = dim(b, level)
		dst[j+3] = 0xFF
	}

	g.fbImg.WritePixels(g.img.Pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.h.fb.width, g.h.fb.height
}

// backlightScale maps a backlight level to a pixel scale. The device's normal
// level (100) and anything brighter render at full intensity on a desktop.
func backlightScale(level uint8) uint8 {
	if level >= 100 {
		return 255
	}
	return uint8(uint16(level) * 255 / 100)
}
