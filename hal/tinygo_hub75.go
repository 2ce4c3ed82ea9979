//go:build tinygo && baremetal && !virtualpanel

package hal

import (
	"errors"
	"image/color"
	"machine"
	"time"

	"tinygo.org/x/drivers/hub75"
)

// HUB75 wiring: SPI0 (GP18 SCK, GP19 SDO) shifts the color data, the row
// address lines A..D and the latch/output-enable strobes are plain GPIOs.
var (
	hub75Lat = machine.GP20
	hub75OE  = machine.GP21
	hub75A   = machine.GP10
	hub75B   = machine.GP11
	hub75C   = machine.GP12
	hub75D   = machine.GP13
)

type hub75Driver struct {
	logger Logger
	opened bool
}

func (d *hub75Driver) OpenPanel(cfg PanelConfig) (Panel, error) {
	if d.opened {
		return nil, errors.New("hub75: driver already claimed")
	}
	w := cfg.Width * max(cfg.Chain, 1)
	if w <= 0 || cfg.Height <= 0 || w > 0x7FFF || cfg.Height > 0x7FFF {
		return nil, errors.New("hub75: invalid geometry")
	}
	d.opened = true
	return &hub75Panel{logger: d.logger, width: int16(w), height: int16(cfg.Height)}, nil
}

type hub75Panel struct {
	logger Logger
	dev    hub75.Device
	width  int16
	height int16
	begun  bool
}

func (p *hub75Panel) Begin() bool {
	err := machine.SPI0.Configure(machine.SPIConfig{
		Frequency: 8000000,
		SCK:       machine.GP18,
		SDO:       machine.GP19,
		Mode:      0,
	})
	if err != nil {
		p.logger.WriteLineString("hub75: spi: " + err.Error())
		return false
	}
	p.dev = hub75.New(machine.SPI0, hub75Lat, hub75OE, hub75A, hub75B, hub75C, hub75D)
	p.dev.Configure(hub75.Config{
		Width:      p.width,
		Height:     p.height,
		RowPattern: p.height / 2,
		ColorDepth: 4,
	})
	p.begun = true
	go p.refresh()
	return true
}

// refresh scans the panel rows forever. The driver is never torn down, a
// reload goes through a CPU reset instead.
func (p *hub75Panel) refresh() {
	for {
		p.dev.Display()
		time.Sleep(100 * time.Microsecond)
	}
}

func (p *hub75Panel) DrawPixelRGB888(x, y int16, r, g, b uint8) {
	if !p.begun || x < 0 || y < 0 || x >= p.width || y >= p.height {
		return
	}
	p.dev.SetPixel(x, y, color.RGBA{R: r, G: g, B: b, A: 0xFF})
}

func (p *hub75Panel) SetBrightness8(level uint8) {
	if p.begun {
		p.dev.SetBrightness(level)
	}
}

func (p *hub75Panel) ClearScreen() {
	if p.begun {
		p.dev.ClearDisplay()
	}
}
