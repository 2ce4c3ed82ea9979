// Package display drives an LED matrix panel from whole-frame pixel lists.
//
// The Engine keeps the last color sent to every LED and only writes the LEDs
// whose color changed, so a static scene costs no panel traffic. Drawing
// calls are synchronous and must come from a single goroutine; they are
// silently ignored until the panel has been brought up (see Start).
package display

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"ledgl/gfx/framebuf"
	"ledgl/gfx/pixel"
	"ledgl/gfx/task"
	"ledgl/hal"
)

// DefaultBrightness is applied at bring-up when the config leaves it unset.
const DefaultBrightness = 90

const (
	defaultPanelWidth  = 64
	defaultPanelHeight = 32
	defaultChain       = 1
)

// Config selects the panel geometry. The display is PanelWidth*ChainLength
// pixels wide and PanelHeight pixels tall.
type Config struct {
	PanelWidth  int
	PanelHeight int
	ChainLength int
	Brightness  uint8 // 0 selects DefaultBrightness
}

// State is the hardware lifecycle state.
type State uint32

const (
	Uninitialized State = iota
	Initializing
	Ready
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Initializing:
		return "initializing"
	case Ready:
		return "ready"
	default:
		return "unknown"
	}
}

// Stats are cumulative counters for diagnostics.
type Stats struct {
	Frames uint64 // diff passes run
	Writes uint64 // LED writes sent to the panel
	Clears uint64
}

// Engine is the differential display engine.
type Engine struct {
	driver hal.PanelDriver
	mem    hal.Memory
	power  hal.Power
	log    hal.Logger
	cfg    Config
	w, h   int

	state     atomic.Uint32
	ready     chan struct{}
	readyOnce sync.Once
	bringMu   sync.Mutex
	job       *task.Handle

	// Owned by the bring-up task until Ready, then by the drawing goroutine.
	panel   hal.Panel
	prev    []pixel.Color
	cur     []pixel.Color
	touched []bool
	stats   Stats
}

// New returns an engine in the Uninitialized state. Invalid geometry falls
// back to a single 64x32 panel.
func New(driver hal.PanelDriver, mem hal.Memory, power hal.Power, log hal.Logger, cfg Config) *Engine {
	if cfg.PanelWidth <= 0 || cfg.PanelHeight <= 0 || cfg.ChainLength <= 0 {
		if log != nil {
			log.WriteLineString(fmt.Sprintf("display: invalid geometry %dx%dx%d, using %dx%dx%d",
				cfg.PanelWidth, cfg.PanelHeight, cfg.ChainLength,
				defaultPanelWidth, defaultPanelHeight, defaultChain))
		}
		cfg.PanelWidth, cfg.PanelHeight, cfg.ChainLength = defaultPanelWidth, defaultPanelHeight, defaultChain
	}
	if cfg.Brightness == 0 {
		cfg.Brightness = DefaultBrightness
	}
	return &Engine{
		driver: driver,
		mem:    mem,
		power:  power,
		log:    log,
		cfg:    cfg,
		w:      cfg.PanelWidth * cfg.ChainLength,
		h:      cfg.PanelHeight,
		ready:  make(chan struct{}),
	}
}

func (e *Engine) Width() int  { return e.w }
func (e *Engine) Height() int { return e.h }

func (e *Engine) State() State { return State(e.state.Load()) }
func (e *Engine) Ready() bool  { return e.State() == Ready }

// WaitReady blocks until the panel is up or ctx is done.
func (e *Engine) WaitReady(ctx context.Context) error {
	select {
	case <-e.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stats returns the counters. Call it from the drawing goroutine.
func (e *Engine) Stats() Stats { return e.stats }

func (e *Engine) inBounds(x, y int) bool {
	return x >= 0 && x < e.w && y >= 0 && y < e.h
}

// begin resets the touched map for a new frame.
func (e *Engine) begin() bool {
	if !e.Ready() {
		return false
	}
	clear(e.touched)
	return true
}

func (e *Engine) stage(p pixel.Pixel) {
	if !e.inBounds(p.X, p.Y) {
		return
	}
	i := p.Y*e.w + p.X
	e.cur[i] = p.Color
	e.touched[i] = true
}

// commit writes every LED whose resolved color differs from the last one
// sent. Untouched LEDs keep their color, or turn black with clearPrevious.
func (e *Engine) commit(clearPrevious bool) {
	e.stats.Frames++
	for i := range e.prev {
		var next pixel.Color
		switch {
		case e.touched[i]:
			next = e.cur[i]
		case clearPrevious:
			next = pixel.Black
		default:
			continue
		}
		if next == e.prev[i] {
			continue
		}
		r, g, b := next.Scaled()
		e.panel.DrawPixelRGB888(int16(i%e.w), int16(i/e.w), r, g, b)
		e.prev[i] = next
		e.stats.Writes++
	}
}

// SetBuffer shows pixels as the next frame. Pixels outside the display are
// ignored; when several share a cell the last one wins.
func (e *Engine) SetBuffer(pixels []pixel.Pixel, clearPrevious bool) {
	if !e.begin() {
		return
	}
	for _, p := range pixels {
		e.stage(p)
	}
	e.commit(clearPrevious)
}

// SetBufferFromRaw is SetBuffer for wire-encoded records. Only the first size
// bytes of data are read; a trailing partial record is ignored.
func (e *Engine) SetBufferFromRaw(data []byte, size int, clearPrevious bool) {
	if !e.begin() {
		return
	}
	size = min(max(size, 0), len(data))
	framebuf.Decode(data[:size], e.stage)
	e.commit(clearPrevious)
}

// SetBufferDirect shows the contents of fb. With clearPrevious the buffer is
// rewound afterwards so the caller can start the next frame in place.
func (e *Engine) SetBufferDirect(fb *framebuf.FrameBuffer, clearPrevious bool) {
	if fb == nil {
		return
	}
	e.SetBufferFromRaw(fb.Bytes(), fb.Len(), clearPrevious)
	if clearPrevious {
		fb.Clear()
	}
}

// Clear blanks the panel and forgets what it showed.
func (e *Engine) Clear() {
	if !e.Ready() {
		return
	}
	e.panel.ClearScreen()
	for i := range e.prev {
		e.prev[i] = pixel.Black
	}
	e.stats.Clears++
}

func (e *Engine) SetBrightness(level uint8) {
	if !e.Ready() {
		return
	}
	e.panel.SetBrightness8(level)
}

func (e *Engine) logf(format string, args ...any) {
	if e.log == nil {
		return
	}
	e.log.WriteLineString(fmt.Sprintf(format, args...))
}
