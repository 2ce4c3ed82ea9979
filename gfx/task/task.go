// Package task runs long-lived work on its own goroutine and reports panics
// instead of taking the process down.
package task

import (
	"sync/atomic"
)

// PanicInfo contains details about a recovered panic.
type PanicInfo struct {
	Task  string
	Value any
	Stack []byte
}

var (
	panicCount   atomic.Uint32
	panicHandler atomic.Value // func(PanicInfo)
)

// SetPanicHandler installs a process-wide panic handler. It must not panic.
func SetPanicHandler(fn func(PanicInfo)) {
	panicHandler.Store(fn)
}

// Panics reports how many task panics have been recovered.
func Panics() uint32 { return panicCount.Load() }

// Handle tracks a spawned task.
type Handle struct {
	name     string
	done     chan struct{}
	panicked atomic.Bool
}

// Spawn runs fn on a new goroutine. A panic in fn is recovered and handed to
// the panic handler; the task then counts as done.
func Spawn(name string, fn func()) *Handle {
	h := &Handle{name: name, done: make(chan struct{})}
	go h.run(fn)
	return h
}

func (h *Handle) run(fn func()) {
	defer close(h.done)
	defer func() {
		v := recover()
		if v == nil {
			return
		}
		h.panicked.Store(true)
		panicCount.Add(1)
		info := PanicInfo{Task: h.name, Value: v, Stack: captureStack()}
		if hv := panicHandler.Load(); hv != nil {
			if fn, ok := hv.(func(PanicInfo)); ok && fn != nil {
				fn(info)
			}
		}
	}()
	fn()
}

func (h *Handle) Name() string { return h.name }

// Done is closed once the task returns or panics.
func (h *Handle) Done() <-chan struct{} { return h.done }

// Panicked reports whether the task ended in a panic.
func (h *Handle) Panicked() bool { return h.panicked.Load() }
