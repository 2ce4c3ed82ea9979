//go:build !tinygo && (!linux || !cgo)

package hal

import "fmt"

type fbdevDriver struct {
	path string
}

func newFBDevDriver(path string, scale int, logger Logger) *fbdevDriver {
	return &fbdevDriver{path: path}
}

func (d *fbdevDriver) OpenPanel(cfg PanelConfig) (Panel, error) {
	return nil, fmt.Errorf("fbdev %s: %w", d.path, ErrNotImplemented)
}
