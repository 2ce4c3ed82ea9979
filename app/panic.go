package app

import (
	"fmt"
	"strings"

	"ledgl/gfx/task"
	"ledgl/hal"
)

func installPanicHandler(h hal.HAL) {
	task.SetPanicHandler(func(info task.PanicInfo) {
		l := h.Logger()
		if l == nil {
			return
		}
		l.WriteLineString(fmt.Sprintf("ledgl panic: task=%s panic=%v", info.Task, info.Value))
		if len(info.Stack) == 0 {
			l.WriteLineString("stack: unavailable")
			return
		}
		for _, line := range strings.Split(string(info.Stack), "\n") {
			if line == "" {
				continue
			}
			l.WriteLineString(line)
		}
	})
}
