//go:build !tinygo

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"ledgl/app"
	"ledgl/hal"
)

func main() {
	var cfg hal.HeadlessConfig
	var appCfg app.Config
	var brightness uint
	var scale int
	flag.BoolVar(&cfg.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&cfg.Hz, "hz", 60, "Tick rate in headless mode.")
	flag.Uint64Var(&cfg.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.StringVar(&appCfg.Demo, "demo", "shapes", "Demo to run: "+strings.Join(app.DemoNames(), ", ")+".")
	flag.IntVar(&appCfg.PanelWidth, "panel-width", 64, "Width of one panel in LEDs.")
	flag.IntVar(&appCfg.PanelHeight, "panel-height", 64, "Height of one panel in LEDs.")
	flag.IntVar(&appCfg.Chain, "chain", 1, "Number of chained panels.")
	flag.UintVar(&brightness, "brightness", 0, "Panel brightness 1-255 (0 = default).")
	flag.StringVar(&appCfg.Font, "font", "tiny", "Text demo font: tiny, basic, mono.")
	flag.StringVar(&appCfg.TexturePath, "texture", "", "BMP file for the texture demo.")
	flag.StringVar(&cfg.Host.FBDev, "fbdev", "", "Draw on a Linux framebuffer device (e.g. /dev/fb0).")
	flag.IntVar(&scale, "scale", 8, "On-screen size of one LED.")
	flag.IntVar(&cfg.Host.PrimaryBytes, "psram-bytes", -1, "Primary memory pool budget (-1 = unlimited).")
	flag.IntVar(&cfg.Host.SecondaryBytes, "sram-bytes", -1, "Secondary memory pool budget (-1 = unlimited).")
	flag.Parse()

	appCfg.Brightness = uint8(min(brightness, 255))
	cfg.Host.Scale = scale
	newApp := func(h hal.HAL) func() error { return app.New(h, appCfg) }

	if cfg.Enabled || cfg.Host.FBDev != "" {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := hal.RunHeadless(ctx, newApp, cfg); err != nil {
			if err == context.Canceled {
				return
			}
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if err := hal.RunWindow(hal.WindowConfig{
		Host:   cfg.Host,
		Width:  appCfg.PanelWidth * appCfg.Chain,
		Height: appCfg.PanelHeight,
		Scale:  scale,
	}, newApp); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
