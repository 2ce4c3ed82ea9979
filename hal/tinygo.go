//go:build tinygo && baremetal && !virtualpanel

package hal

type tinyGoHAL struct {
	logger *uartLogger
	panels PanelDriver
	mem    Pools
}

// New returns a Pico (RP2040) HAL implementation driving a HUB75 panel.
//
// UART: UART0 on GP0 (TX) / GP1 (RX), 115200 8N1.
func New() HAL {
	logger := &uartLogger{uart: newTinyGoUART()}
	return &tinyGoHAL{
		logger: logger,
		panels: &hub75Driver{logger: logger},
		mem:    newTinyGoMemory(),
	}
}

func (h *tinyGoHAL) Logger() Logger      { return h.logger }
func (h *tinyGoHAL) Panels() PanelDriver { return h.panels }
func (h *tinyGoHAL) Memory() Memory      { return h.mem }
func (h *tinyGoHAL) Power() Power        { return cpuPower{} }
