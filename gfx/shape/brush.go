package shape

import (
	"math"

	"ledgl/gfx/pixel"
	"ledgl/gfx/raster"
)

// brush returns the shader for a shape drawn under f.
//
// Untextured shapes are solid. Textured shapes map each device pixel back to
// texture space: through the full inverse transform, or, with the fix-texture
// flag, through the translation alone so the texture stays axis-aligned while
// the shape rotates and scales. The UV transform is applied last, and the
// result takes the texture color with alpha = shape alpha × texel alpha.
func (a *Attrs) brush(f frame) raster.Brush {
	if a.tex == nil {
		return raster.Solid(a.color)
	}
	tex := a.tex
	alpha := a.color.A

	toLocal := func(x, y float64) (float64, float64) {
		return x - f.shift.X, y - f.shift.Y
	}
	if !a.fixTex {
		inv, ok := raster.Invert(f.m)
		if !ok {
			return raster.BrushFunc(func(int, int) (pixel.Color, bool) { return pixel.Color{}, false })
		}
		toLocal = func(x, y float64) (float64, float64) { return raster.Apply(inv, x, y) }
	}

	sin, cos := math.Sincos(-a.uvRot * math.Pi / 180)
	su, sv := a.uvScale.X, a.uvScale.Y
	if su == 0 {
		su = 1
	}
	if sv == 0 {
		sv = 1
	}
	ax, ay := a.anchor.X, a.anchor.Y
	ou, ov := a.uvOffset.X, a.uvOffset.Y

	return raster.BrushFunc(func(x, y int) (pixel.Color, bool) {
		lx, ly := toLocal(float64(x), float64(y))
		lx -= ax
		ly -= ay
		u := (lx*cos-ly*sin)/su + ou
		v := (lx*sin+ly*cos)/sv + ov
		s := tex.Sample(raster.Floor(u), raster.Floor(v))
		s.A *= alpha
		return s, true
	})
}
