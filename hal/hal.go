package hal

import "errors"

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

var ErrNotImplemented = errors.New("not implemented")

// PanelConfig describes a chain of identical LED matrix panels.
type PanelConfig struct {
	Width  int // pixels per panel
	Height int
	Chain  int // panels chained horizontally
}

// Panel is an initialized LED matrix panel driver.
//
// Coordinates span the whole chain. Writes outside the chain are ignored by
// implementations.
type Panel interface {
	Begin() bool
	DrawPixelRGB888(x, y int16, r, g, b uint8)
	SetBrightness8(level uint8)
	ClearScreen()
}

// PanelDriver creates panel drivers. A panel that failed to begin may be
// released if it implements io.Closer.
type PanelDriver interface {
	OpenPanel(cfg PanelConfig) (Panel, error)
}

// MemoryPool is a capacity-limited allocation region.
type MemoryPool interface {
	Name() string
	Reserve(bytes int) bool
	Release(bytes int)
}

// Memory exposes the large external pool and the small internal pool.
type Memory interface {
	Primary() MemoryPool
	Secondary() MemoryPool
}

// Power controls the device.
type Power interface {
	// Restart reboots the device (or the process on hosts). It normally does
	// not return.
	Restart()
}

// HAL provides the only contact point between the engine and the outside world.
type HAL interface {
	Logger() Logger
	Panels() PanelDriver
	Memory() Memory
	Power() Power
}
