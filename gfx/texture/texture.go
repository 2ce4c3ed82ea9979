// Package texture holds 2D color grids sampled by textured shapes.
package texture

import (
	"image"
	"image/color"

	"ledgl/gfx/pixel"
	"ledgl/hal"
)

// WrapMode selects how out-of-range coordinates are resolved.
type WrapMode uint8

const (
	Repeat WrapMode = iota
	Clamp
)

func (m WrapMode) String() string {
	if m == Clamp {
		return "clamp"
	}
	return "repeat"
}

// ParseWrapMode resolves "repeat" or "clamp".
func ParseWrapMode(s string) (WrapMode, bool) {
	switch s {
	case "repeat":
		return Repeat, true
	case "clamp":
		return Clamp, true
	}
	return Repeat, false
}

// Texture is an immutable width x height grid of colors plus a wrap mode.
// The zero value is an invalid texture.
type Texture struct {
	w, h   int
	texels []pixel.Color
	wrap   WrapMode
	valid  bool
}

// Invalid returns a texture that samples opaque black everywhere.
func Invalid() *Texture { return &Texture{} }

// New builds a texture from rows of colors. All rows must have the width of
// the first one; otherwise the texture is invalid.
func New(rows [][]pixel.Color) *Texture {
	h := len(rows)
	if h == 0 || len(rows[0]) == 0 {
		return Invalid()
	}
	w := len(rows[0])
	t := &Texture{w: w, h: h, texels: make([]pixel.Color, 0, w*h), valid: true}
	for _, row := range rows {
		if len(row) != w {
			return Invalid()
		}
		t.texels = append(t.texels, row...)
	}
	return t
}

// FromImage copies img into a texture, keeping straight (non-premultiplied)
// alpha.
func FromImage(img image.Image) *Texture {
	b := img.Bounds()
	if b.Empty() {
		return Invalid()
	}
	t := &Texture{w: b.Dx(), h: b.Dy(), texels: make([]pixel.Color, b.Dx()*b.Dy()), valid: true}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			t.texels[(y-b.Min.Y)*t.w+(x-b.Min.X)] = pixel.Color{R: c.R, G: c.G, B: c.B, A: pixel.FromAlpha8(c.A)}
		}
	}
	return t
}

func (t *Texture) Valid() bool { return t != nil && t.valid }
func (t *Texture) Width() int  { return t.w }
func (t *Texture) Height() int { return t.h }

func (t *Texture) WrapMode() WrapMode { return t.wrap }

// SetWrapMode sets the wrap mode. Unknown values fall back to Repeat.
func (t *Texture) SetWrapMode(m WrapMode) {
	if m != Clamp {
		m = Repeat
	}
	t.wrap = m
}

// SetWrapModeName sets the wrap mode by name, logging and falling back to
// repeat for unknown names.
func (t *Texture) SetWrapModeName(name string, log hal.Logger) {
	m, ok := ParseWrapMode(name)
	if !ok && log != nil {
		log.WriteLineString("texture: invalid wrap mode " + name + ", using repeat")
	}
	t.wrap = m
}

// Sample returns the texel at integer coordinates (u, v) resolved by the
// wrap mode. Invalid textures sample opaque black.
func (t *Texture) Sample(u, v int) pixel.Color {
	if !t.Valid() || t.w == 0 || t.h == 0 {
		return pixel.Black
	}
	switch t.wrap {
	case Clamp:
		u = min(max(u, 0), t.w-1)
		v = min(max(v, 0), t.h-1)
	default:
		u %= t.w
		v %= t.h
		if u < 0 {
			u += t.w
		}
		if v < 0 {
			v += t.h
		}
	}
	return t.texels[v*t.w+u]
}
