//go:build !tinygo && !unix

package hal

import "os"

func restartProcess(log Logger) {
	log.WriteLineString("power: exec unsupported, exiting")
	os.Exit(1)
}
