//go:build !tinygo && linux && cgo

package hal

import (
	"fmt"
	"image/color"

	fb "github.com/gonutz/framebuffer"
)

// fbdevDriver shows the LED matrix on a Linux framebuffer, one LED per
// scale x scale block.
type fbdevDriver struct {
	path   string
	scale  int
	logger Logger
}

func newFBDevDriver(path string, scale int, logger Logger) *fbdevDriver {
	if scale <= 0 {
		scale = 8
	}
	return &fbdevDriver{path: path, scale: scale, logger: logger}
}

func (d *fbdevDriver) OpenPanel(cfg PanelConfig) (Panel, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("fbdev: invalid panel %dx%d", cfg.Width, cfg.Height)
	}
	return &fbdevPanel{
		d:      d,
		width:  cfg.Width * max(cfg.Chain, 1),
		height: cfg.Height,
	}, nil
}

type fbdevPanel struct {
	d          *fbdevDriver
	dev        *fb.Device
	width      int
	height     int
	brightness uint8
}

func (p *fbdevPanel) Begin() bool {
	dev, err := fb.Open(p.d.path)
	if err != nil {
		p.d.logger.WriteLineString("fbdev: open " + p.d.path + ": " + err.Error())
		return false
	}
	b := dev.Bounds()
	if b.Dx() < p.width*p.d.scale || b.Dy() < p.height*p.d.scale {
		p.d.logger.WriteLineString(fmt.Sprintf("fbdev: %dx%d too small for %dx%d LEDs at scale %d",
			b.Dx(), b.Dy(), p.width, p.height, p.d.scale))
		dev.Close()
		return false
	}
	p.dev = dev
	p.brightness = 255
	return true
}

func (p *fbdevPanel) DrawPixelRGB888(x, y int16, r, g, b uint8) {
	if p.dev == nil {
		return
	}
	xi, yi := int(x), int(y)
	if xi < 0 || yi < 0 || xi >= p.width || yi >= p.height {
		return
	}
	c := color.RGBA{R: dim(r, p.brightness), G: dim(g, p.brightness), B: dim(b, p.brightness), A: 0xFF}
	p.fillLED(xi, yi, c)
}

func (p *fbdevPanel) SetBrightness8(level uint8) { p.brightness = level }

func (p *fbdevPanel) ClearScreen() {
	if p.dev == nil {
		return
	}
	black := color.RGBA{A: 0xFF}
	for y := 0; y < p.height; y++ {
		for x := 0; x < p.width; x++ {
			p.fillLED(x, y, black)
		}
	}
}

// Close releases the framebuffer device.
func (p *fbdevPanel) Close() error {
	if p.dev == nil {
		return nil
	}
	p.dev.Close()
	p.dev = nil
	return nil
}

func (p *fbdevPanel) fillLED(x, y int, c color.RGBA) {
	origin := p.dev.Bounds().Min
	s := p.d.scale
	// One-pixel gap between LEDs when there is room for it.
	dot := s
	if s > 2 {
		dot = s - 1
	}
	for dy := 0; dy < dot; dy++ {
		for dx := 0; dx < dot; dx++ {
			p.dev.Set(origin.X+x*s+dx, origin.Y+y*s+dy, c)
		}
	}
}

func dim(v, level uint8) uint8 {
	return uint8(uint16(v) * uint16(level) / 255)
}
