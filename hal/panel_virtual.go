package hal

import (
	"errors"
	"sync"
)

// VirtualPanel is an in-memory LED panel. It stores the RGB888 value of every
// LED and counts hardware writes, which makes it the panel of choice for the
// host window, headless runs and tests.
type VirtualPanel struct {
	mu         sync.Mutex
	width      int
	height     int
	buf        []byte
	brightness uint8
	begun      bool
	closed     bool
	failBegin  bool
	writes     uint64
	clears     uint64
}

// NewVirtualPanel returns a panel covering the whole chain.
func NewVirtualPanel(cfg PanelConfig) *VirtualPanel {
	w := cfg.Width * max(cfg.Chain, 1)
	h := cfg.Height
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &VirtualPanel{width: w, height: h, buf: make([]byte, w*h*3)}
}

func (p *VirtualPanel) Begin() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failBegin || p.closed {
		return false
	}
	p.begun = true
	return true
}

func (p *VirtualPanel) DrawPixelRGB888(x, y int16, r, g, b uint8) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.writes++
	xi, yi := int(x), int(y)
	if xi < 0 || yi < 0 || xi >= p.width || yi >= p.height {
		return
	}
	i := (yi*p.width + xi) * 3
	p.buf[i+0] = r
	p.buf[i+1] = g
	p.buf[i+2] = b
}

func (p *VirtualPanel) SetBrightness8(level uint8) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.brightness = level
}

func (p *VirtualPanel) ClearScreen() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.clears++
	clear(p.buf)
}

// Close releases the panel. A closed panel cannot begin again.
func (p *VirtualPanel) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	p.begun = false
	return nil
}

func (p *VirtualPanel) Width() int  { return p.width }
func (p *VirtualPanel) Height() int { return p.height }

// At returns the LED value at (x, y).
func (p *VirtualPanel) At(x, y int) (r, g, b uint8) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if x < 0 || y < 0 || x >= p.width || y >= p.height {
		return 0, 0, 0
	}
	i := (y*p.width + x) * 3
	return p.buf[i], p.buf[i+1], p.buf[i+2]
}

// Writes reports the number of DrawPixelRGB888 calls.
func (p *VirtualPanel) Writes() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.writes
}

// Clears reports the number of ClearScreen calls.
func (p *VirtualPanel) Clears() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.clears
}

func (p *VirtualPanel) Brightness() uint8 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.brightness
}

func (p *VirtualPanel) Begun() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.begun
}

// Snapshot copies the RGB888 buffer into dst and returns it.
func (p *VirtualPanel) Snapshot(dst []byte) []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	if cap(dst) < len(p.buf) {
		dst = make([]byte, len(p.buf))
	}
	dst = dst[:len(p.buf)]
	copy(dst, p.buf)
	return dst
}

var errPanelUnavailable = errors.New("panel unavailable")

// VirtualDriver opens VirtualPanels and remembers the last one opened.
type VirtualDriver struct {
	mu        sync.Mutex
	panel     *VirtualPanel
	opens     int
	FailBegin bool
	FailOpen  bool
}

func (d *VirtualDriver) OpenPanel(cfg PanelConfig) (Panel, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.opens++
	if d.FailOpen {
		return nil, errPanelUnavailable
	}
	p := NewVirtualPanel(cfg)
	p.failBegin = d.FailBegin
	d.panel = p
	return p, nil
}

// Panel returns the most recently opened panel, or nil.
func (d *VirtualDriver) Panel() *VirtualPanel {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.panel
}

// Opens reports how many times OpenPanel was called.
func (d *VirtualDriver) Opens() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.opens
}
