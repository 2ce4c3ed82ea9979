// Package pixel defines the color and pixel values shared by the rasterizer,
// the wire encoder and the display engine.
package pixel

import (
	"math"
	"strings"
)

// Color is an 8-bit RGB triple plus a floating alpha in [0,1].
//
// Buffers store colors exactly as given; alpha is only applied when a color is
// written to hardware. Two colors are equal when all four components are equal.
type Color struct {
	R, G, B uint8
	A       float32
}

// Common colors.
var (
	Black   = Color{0, 0, 0, 1}
	White   = Color{255, 255, 255, 1}
	Red     = Color{255, 0, 0, 1}
	Green   = Color{0, 255, 0, 1}
	Blue    = Color{0, 0, 255, 1}
	Yellow  = Color{255, 255, 0, 1}
	Magenta = Color{255, 0, 255, 1}
	Cyan    = Color{0, 255, 255, 1}
)

var named = map[string]Color{
	"black":   Black,
	"white":   White,
	"red":     Red,
	"green":   Green,
	"blue":    Blue,
	"yellow":  Yellow,
	"magenta": Magenta,
	"cyan":    Cyan,
}

// RGB returns an opaque color.
func RGB(r, g, b uint8) Color { return Color{R: r, G: g, B: b, A: 1} }

// RGBA returns a color with the given alpha.
func RGBA(r, g, b uint8, a float32) Color { return Color{R: r, G: g, B: b, A: a} }

// Named resolves one of the predefined color names (case-insensitive).
func Named(name string) (Color, bool) {
	c, ok := named[strings.ToLower(strings.TrimSpace(name))]
	return c, ok
}

// Alpha returns A clamped to [0,1]. NaN is treated as 0.
func (c Color) Alpha() float32 {
	switch {
	case c.A != c.A:
		return 0
	case c.A < 0:
		return 0
	case c.A > 1:
		return 1
	}
	return c.A
}

// Alpha8 encodes the alpha as round(alpha*255).
func (c Color) Alpha8() uint8 {
	return uint8(math.Round(float64(c.Alpha()) * 255))
}

// Scaled returns the channels multiplied by alpha, truncated toward zero.
// This is the value written to a panel.
func (c Color) Scaled() (r, g, b uint8) {
	a := c.Alpha()
	return uint8(float32(c.R) * a), uint8(float32(c.G) * a), uint8(float32(c.B) * a)
}

// WithAlpha returns c with A replaced.
func (c Color) WithAlpha(a float32) Color {
	c.A = a
	return c
}

// FromAlpha8 decodes an alpha byte back into [0,1].
func FromAlpha8(a uint8) float32 { return float32(a) / 255 }

// Pixel is a device coordinate plus a color.
type Pixel struct {
	X, Y int
	Color
}
