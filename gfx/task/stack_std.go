//go:build !tinygo

package task

import "runtime/debug"

func captureStack() []byte {
	return debug.Stack()
}
