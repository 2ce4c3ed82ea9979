//go:build !tinygo && cgo

package hal

import (
	"image"
	"image/color"

	"ledgl/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunWindow starts a desktop window that shows the virtual panel.
// It blocks until the window closes.
func RunWindow(cfg WindowConfig, newApp func(HAL) func() error) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = 64, 32
	}
	if cfg.Scale <= 0 {
		cfg.Scale = 10
	}
	cfg.Host.FBDev = ""
	h := newHost(cfg.Host)
	step := newApp(h)

	g := &hostGame{h: h, step: step, w: cfg.Width, ht: cfg.Height, scale: cfg.Scale}
	ebiten.SetWindowTitle("ledgl (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(cfg.Width*cfg.Scale, cfg.Height*cfg.Scale)
	ebiten.SetTPS(60)
	return ebiten.RunGame(g)
}

type hostGame struct {
	h       *hostHAL
	w, ht   int
	scale   int
	img     *image.RGBA
	ledImg  *ebiten.Image
	scratch []byte
	step    func() error
}

func (g *hostGame) Update() error {
	if g.step != nil {
		if err := g.step(); err != nil {
			return err
		}
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 0x10, G: 0x10, B: 0x10, A: 0xFF})
	p := g.h.virtual.Panel()
	if p == nil || !p.Begun() {
		return
	}
	pw, ph := p.Width(), p.Height()
	if g.img == nil || g.img.Bounds().Dx() != pw*g.scale || g.img.Bounds().Dy() != ph*g.scale {
		g.img = image.NewRGBA(image.Rect(0, 0, pw*g.scale, ph*g.scale))
		if g.ledImg != nil {
			g.ledImg.Deallocate()
		}
		g.ledImg = ebiten.NewImage(pw*g.scale, ph*g.scale)
	}

	g.scratch = p.Snapshot(g.scratch)
	dot := g.scale
	if dot > 2 {
		dot--
	}
	stride := g.img.Stride
	for y := 0; y < ph; y++ {
		for x := 0; x < pw; x++ {
			i := (y*pw + x) * 3
			r, gg, b := g.scratch[i], g.scratch[i+1], g.scratch[i+2]
			for dy := 0; dy < g.scale; dy++ {
				row := (y*g.scale+dy)*stride + x*g.scale*4
				for dx := 0; dx < g.scale; dx++ {
					j := row + dx*4
					if dx < dot && dy < dot {
						g.img.Pix[j+0] = r
						g.img.Pix[j+1] = gg
						g.img.Pix[j+2] = b
					} else {
						g.img.Pix[j+0] = 0
						g.img.Pix[j+1] = 0
						g.img.Pix[j+2] = 0
					}
					g.img.Pix[j+3] = 0xFF
				}
			}
		}
	}

	g.ledImg.WritePixels(g.img.Pix)
	screen.DrawImage(g.ledImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.w * g.scale, g.ht * g.scale
}
