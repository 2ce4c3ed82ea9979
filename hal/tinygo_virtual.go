//go:build tinygo && baremetal && virtualpanel

package hal

type tinyGoVirtualHAL struct {
	logger  *uartLogger
	virtual *VirtualDriver
	mem     Pools
}

// New returns a board HAL whose panel lives in RAM, for bring-up on boards
// without a HUB75 connector.
func New() HAL {
	return &tinyGoVirtualHAL{
		logger:  &uartLogger{uart: newTinyGoUART()},
		virtual: &VirtualDriver{},
		mem:     newTinyGoMemory(),
	}
}

func (h *tinyGoVirtualHAL) Logger() Logger      { return h.logger }
func (h *tinyGoVirtualHAL) Panels() PanelDriver { return h.virtual }
func (h *tinyGoVirtualHAL) Memory() Memory      { return h.mem }
func (h *tinyGoVirtualHAL) Power() Power        { return cpuPower{} }
