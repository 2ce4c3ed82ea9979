//go:build tinygo && baremetal

package hal

import "machine"

type uartLogger struct {
	uart *machine.UART
}

func (l *uartLogger) WriteLineString(s string) {
	for i := 0; i < len(s); i++ {
		l.uart.WriteByte(s[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

func (l *uartLogger) WriteLineBytes(b []byte) {
	for i := 0; i < len(b); i++ {
		l.uart.WriteByte(b[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

type cpuPower struct{}

func (cpuPower) Restart() { machine.CPUReset() }

// Pool budgets for RP2040-class boards: there is no external RAM, so the
// primary pool is carved from the heap and the secondary pool stays small.
const (
	tinyGoPrimaryBytes   = 192 * 1024
	tinyGoSecondaryBytes = 16 * 1024
)

func newTinyGoMemory() Pools {
	return Pools{
		Main:  NewBudgetPool("heap", tinyGoPrimaryBytes),
		Inner: NewBudgetPool("sram", tinyGoSecondaryBytes),
	}
}

func newTinyGoUART() *machine.UART {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})
	return uart
}
