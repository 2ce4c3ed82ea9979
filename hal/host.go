//go:build !tinygo

package hal

import (
	"fmt"
	"os"
	"sync"
)

// HostConfig selects the host backends.
type HostConfig struct {
	// FBDev, when set, drives a Linux framebuffer device instead of the
	// in-memory panel.
	FBDev string
	// Scale is the size of one LED in framebuffer pixels.
	Scale int
	// PrimaryBytes and SecondaryBytes size the memory pools (<0 = unlimited).
	PrimaryBytes   int
	SecondaryBytes int
}

// WindowConfig controls the desktop window runner.
type WindowConfig struct {
	Host HostConfig
	// Width and Height are the LED counts of the whole chain.
	Width, Height int
	// Scale is the on-screen size of one LED.
	Scale int
}

type hostHAL struct {
	logger  *hostLogger
	virtual *VirtualDriver
	panels  PanelDriver
	mem     Pools
	power   *hostPower
}

// New returns a host HAL implementation backed by a virtual panel.
func New() HAL {
	return NewWithConfig(HostConfig{PrimaryBytes: -1, SecondaryBytes: -1})
}

// NewWithConfig returns a host HAL implementation.
func NewWithConfig(cfg HostConfig) HAL {
	return newHost(cfg)
}

func newHost(cfg HostConfig) *hostHAL {
	logger := &hostLogger{w: os.Stdout}
	h := &hostHAL{
		logger:  logger,
		virtual: &VirtualDriver{},
		mem: Pools{
			Main:  NewBudgetPool("psram", cfg.PrimaryBytes),
			Inner: NewBudgetPool("sram", cfg.SecondaryBytes),
		},
		power: &hostPower{logger: logger},
	}
	h.panels = h.virtual
	if cfg.FBDev != "" {
		h.panels = newFBDevDriver(cfg.FBDev, cfg.Scale, logger)
	}
	return h
}

func (h *hostHAL) Logger() Logger      { return h.logger }
func (h *hostHAL) Panels() PanelDriver { return h.panels }
func (h *hostHAL) Memory() Memory      { return h.mem }
func (h *hostHAL) Power() Power        { return h.power }

type hostLogger struct {
	mu sync.Mutex
	w  *os.File
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}

type hostPower struct {
	logger Logger
}

func (p *hostPower) Restart() {
	p.logger.WriteLineString("power: restarting process")
	restartProcess(p.logger)
}
