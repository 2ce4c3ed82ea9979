package app

import (
	"fmt"
	"time"

	"ledgl/gfx/display"
	"ledgl/gfx/framebuf"
	"ledgl/gfx/render"
	"ledgl/hal"
	"ledgl/internal/buildinfo"
)

// Config selects the demo and the panel it runs on.
type Config struct {
	Demo        string
	PanelWidth  int
	PanelHeight int
	Chain       int
	Brightness  uint8
	// Font names the text demo font: tiny, basic or mono.
	Font string
	// TexturePath is a BMP used by the texture demo instead of the built-in
	// brick pattern.
	TexturePath string
	// FPS paces Run. Host runners pace New's step themselves.
	FPS int
}

const (
	defaultDemo = "shapes"
	defaultFPS  = 30
	statsEvery  = 600
)

type system struct {
	log    hal.Logger
	engine *display.Engine
	r      *render.Renderer
	fb     *framebuf.FrameBuffer
	demo   *Demo
	frame  uint64
}

// New brings up the display and returns the per-frame step. Frames are
// skipped until the panel is ready.
func New(h hal.HAL, cfg Config) func() error {
	s := newSystem(h, cfg)
	return s.step
}

// Run starts the app and paces it forever (TinyGo/native entrypoint).
func Run(h hal.HAL, cfg Config) {
	step := New(h, cfg)
	fps := cfg.FPS
	if fps <= 0 {
		fps = defaultFPS
	}
	t := time.NewTicker(time.Second / time.Duration(fps))
	defer t.Stop()
	for range t.C {
		if err := step(); err != nil {
			if l := h.Logger(); l != nil {
				l.WriteLineString("app: " + err.Error())
			}
			select {}
		}
	}
}

func newSystem(h hal.HAL, cfg Config) *system {
	installPanicHandler(h)
	log := h.Logger()
	if log != nil {
		log.WriteLineString("ledgl " + buildinfo.Short())
	}

	engine := display.Acquire(h.Panels(), h.Memory(), h.Power(), log, display.Config{
		PanelWidth:  cfg.PanelWidth,
		PanelHeight: cfg.PanelHeight,
		ChainLength: cfg.Chain,
		Brightness:  cfg.Brightness,
	})
	w, ht := engine.Width(), engine.Height()

	name := cfg.Demo
	if name == "" {
		name = defaultDemo
	}
	opts := DemoOptions{Font: cfg.Font, TexturePath: cfg.TexturePath, Log: log}
	demo, err := NewDemo(name, w, ht, opts)
	if err != nil {
		if log != nil {
			log.WriteLineString(fmt.Sprintf("app: %v, using %s", err, defaultDemo))
		}
		demo, _ = NewDemo(defaultDemo, w, ht, opts)
	}

	return &system{
		log:    log,
		engine: engine,
		r:      render.New(w, ht, log),
		fb:     framebuf.Alloc(w, ht, h.Memory(), log),
		demo:   demo,
	}
}

func (s *system) step() error {
	if !s.engine.Ready() {
		return nil
	}
	s.demo.Frame(s.r, s.fb, s.frame)
	s.engine.SetBufferDirect(s.fb, true)
	s.frame++
	if s.frame%statsEvery == 0 && s.log != nil {
		st := s.engine.Stats()
		s.log.WriteLineString(fmt.Sprintf("app: %s frames=%d writes=%d", s.demo.Name, st.Frames, st.Writes))
	}
	return nil
}
