//go:build tinygo

package task

// TinyGo cannot format goroutine stacks.
func captureStack() []byte { return nil }
