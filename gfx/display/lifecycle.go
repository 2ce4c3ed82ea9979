package display

import (
	"io"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"ledgl/gfx/pixel"
	"ledgl/gfx/task"
	"ledgl/hal"
)

// driverLoaded is set once a panel has been brought up in this process. The
// panel's DMA engine cannot be torn down and started again, so a second
// bring-up restarts the device instead.
var driverLoaded atomic.Bool

// restartDelay lets the log drain before a restart.
var restartDelay = 100 * time.Millisecond

// colorBytes is the size of one stored color: three channels plus a float32
// alpha.
const colorBytes = 8

// Start brings the panel up on a dedicated task and returns immediately.
// Calling it again after a successful bring-up restarts the device.
//
// A panel that came up is never closed: the engine leaks it on shutdown and
// only a process restart reclaims it.
func (e *Engine) Start() {
	e.state.CompareAndSwap(uint32(Uninitialized), uint32(Initializing))
	e.job = task.Spawn("display-init", e.bringUp)
}

// Done is closed when the most recent bring-up task has finished, nil before
// Start.
func (e *Engine) Done() <-chan struct{} {
	if e.job == nil {
		return nil
	}
	return e.job.Done()
}

func (e *Engine) bringUp() {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	e.bringMu.Lock()
	defer e.bringMu.Unlock()

	if driverLoaded.Load() {
		e.logf("display: driver already loaded, restarting to reset the panel")
		time.Sleep(restartDelay)
		if e.power != nil {
			e.power.Restart()
		}
		return
	}

	if e.driver == nil {
		e.logf("display: no panel driver")
		return
	}
	p, err := e.driver.OpenPanel(hal.PanelConfig{
		Width:  e.cfg.PanelWidth,
		Height: e.cfg.PanelHeight,
		Chain:  e.cfg.ChainLength,
	})
	if err != nil {
		e.logf("display: open panel: %v", err)
		return
	}
	if p == nil || !p.Begin() {
		e.logf("display: hardware init failed")
		if c, ok := p.(io.Closer); ok {
			_ = c.Close()
		}
		return
	}
	driverLoaded.Store(true)

	cells := e.w * e.h
	if !reserve(e.mem, cells*colorBytes*2, true) {
		e.logf("display: out of memory for %d color bytes", cells*colorBytes*2)
		return
	}
	if !reserve(e.mem, cells, false) {
		e.mem.Primary().Release(cells * colorBytes * 2)
		e.logf("display: out of memory for %d mask bytes", cells)
		return
	}

	e.prev = make([]pixel.Color, cells)
	e.cur = make([]pixel.Color, cells)
	e.touched = make([]bool, cells)
	for i := range e.prev {
		e.prev[i] = pixel.Black
		e.cur[i] = pixel.Black
	}

	p.SetBrightness8(e.cfg.Brightness)
	p.ClearScreen()
	e.panel = p

	e.state.Store(uint32(Ready))
	e.readyOnce.Do(func() { close(e.ready) })
	e.logf("display: ready %dx%d", e.w, e.h)
}

// reserve takes n bytes from the primary pool, or from the secondary pool
// when primaryOnly is false. A nil Memory always succeeds.
func reserve(mem hal.Memory, n int, primaryOnly bool) bool {
	if mem == nil {
		return true
	}
	pools := []hal.MemoryPool{mem.Primary()}
	if !primaryOnly {
		pools = append(pools, mem.Secondary())
	}
	for _, pool := range pools {
		if pool != nil && pool.Reserve(n) {
			return true
		}
	}
	return false
}

var (
	instanceMu sync.Mutex
	instance   *Engine
)

// Acquire returns the process-wide engine, creating it on first use, and
// starts it. Arguments are ignored once the engine exists.
func Acquire(driver hal.PanelDriver, mem hal.Memory, power hal.Power, log hal.Logger, cfg Config) *Engine {
	instanceMu.Lock()
	defer instanceMu.Unlock()
	if instance == nil {
		instance = New(driver, mem, power, log, cfg)
	}
	instance.Start()
	return instance
}
