//go:build tinygo

package main

import (
	"ledgl/app"
	"ledgl/hal"
)

func main() {
	app.Run(hal.New(), app.Config{
		Demo:        "solar",
		PanelWidth:  64,
		PanelHeight: 64,
		Chain:       1,
	})
}
