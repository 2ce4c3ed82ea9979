package task

import (
	"testing"
	"time"
)

func wait(t *testing.T, h *Handle) {
	t.Helper()
	select {
	case <-h.Done():
	case <-time.After(2 * time.Second):
		t.Fatalf("task %q did not finish", h.Name())
	}
}

func TestSpawnRuns(t *testing.T) {
	ran := make(chan struct{})
	h := Spawn("worker", func() { close(ran) })
	wait(t, h)
	select {
	case <-ran:
	default:
		t.Fatalf("expected fn to run")
	}
	if h.Panicked() {
		t.Fatalf("expected clean exit")
	}
}

func TestSpawnRecoversPanic(t *testing.T) {
	got := make(chan PanicInfo, 1)
	SetPanicHandler(func(info PanicInfo) { got <- info })
	defer SetPanicHandler(nil)

	before := Panics()
	h := Spawn("display", func() { panic("boom") })
	wait(t, h)

	if !h.Panicked() {
		t.Fatalf("expected Panicked")
	}
	if Panics() != before+1 {
		t.Fatalf("expected panic count to grow")
	}
	select {
	case info := <-got:
		if info.Task != "display" || info.Value != "boom" {
			t.Fatalf("unexpected info %+v", info)
		}
		if len(info.Stack) == 0 {
			t.Fatalf("expected a stack trace")
		}
	default:
		t.Fatalf("expected handler to be called")
	}
}
