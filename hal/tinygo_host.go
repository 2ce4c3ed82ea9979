//go:build tinygo && !baremetal

package hal

import "os"

type tinyGoHostHAL struct {
	logger  *tinyGoHostLogger
	virtual *VirtualDriver
	mem     Pools
}

// New returns a TinyGo-on-host HAL implementation.
//
// This is used by `tinygo run` targets like linux/wasm where there is no MCU pin mapping.
func New() HAL {
	return &tinyGoHostHAL{
		logger:  &tinyGoHostLogger{},
		virtual: &VirtualDriver{},
		mem: Pools{
			Main:  NewBudgetPool("heap", -1),
			Inner: NewBudgetPool("sram", -1),
		},
	}
}

func (h *tinyGoHostHAL) Logger() Logger      { return h.logger }
func (h *tinyGoHostHAL) Panels() PanelDriver { return h.virtual }
func (h *tinyGoHostHAL) Memory() Memory      { return h.mem }
func (h *tinyGoHostHAL) Power() Power        { return tinyGoHostPower{} }

type tinyGoHostLogger struct{}

func (l *tinyGoHostLogger) WriteLineString(s string) {
	println(s)
}

func (l *tinyGoHostLogger) WriteLineBytes(b []byte) {
	println(string(b))
}

type tinyGoHostPower struct{}

func (tinyGoHostPower) Restart() {
	println("power: restart requested, exiting")
	os.Exit(3)
}
