//go:build !tinygo && unix

package hal

import (
	"os"

	"golang.org/x/sys/unix"
)

// restartProcess replaces the process image with a fresh copy of itself,
// which drops every driver handle the old image held.
func restartProcess(log Logger) {
	exe, err := os.Executable()
	if err == nil {
		err = unix.Exec(exe, os.Args, os.Environ())
	}
	log.WriteLineString("power: exec failed: " + err.Error())
	os.Exit(1)
}
