package fonts

import (
	"fmt"
	"image"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/math/fixed"
)

// maskThreshold is the coverage at which an outline pixel counts as lit.
const maskThreshold = 0x80

// Face adapts a golang.org/x/image/font face. Glyph masks are thresholded,
// LED panels have no use for coverage.
type Face struct {
	face   font.Face
	ascent int
	height int
}

// FromFace adapts face.
func FromFace(face font.Face) *Face {
	m := face.Metrics()
	return &Face{face: face, ascent: m.Ascent.Ceil(), height: max(m.Height.Ceil(), m.Ascent.Ceil()+m.Descent.Ceil())}
}

// Basic returns the 7x13 fixed font from x/image.
func Basic() *Face { return FromFace(basicfont.Face7x13) }

// FromTrueType parses a TrueType font and renders it at size points (72 DPI).
func FromTrueType(ttf []byte, size float64) (*Face, error) {
	f, err := truetype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("fonts: parse truetype: %w", err)
	}
	if size <= 0 {
		size = 8
	}
	return FromFace(truetype.NewFace(f, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingFull})), nil
}

// Mono returns Go Mono at size points.
func Mono(size float64) (*Face, error) { return FromTrueType(gomono.TTF, size) }

func (f *Face) Height() int { return f.height }

func (f *Face) bounds(r rune) (minX, maxX, adv int, ok bool) {
	b, a, ok := f.face.GlyphBounds(r)
	if !ok {
		return 0, 0, 0, false
	}
	return b.Min.X.Floor(), b.Max.X.Ceil(), a.Round(), true
}

func (f *Face) CharWidth(r rune) int {
	minX, maxX, _, ok := f.bounds(r)
	if !ok {
		return 0
	}
	return max(maxX-minX, 0)
}

func (f *Face) CharSpacing(r rune) int {
	minX, maxX, adv, ok := f.bounds(r)
	if !ok {
		return 0
	}
	return max(adv-(maxX-minX), 0)
}

func (f *Face) Glyph(r rune, set func(x, y int)) {
	minX, _, _, ok := f.bounds(r)
	if !ok {
		return
	}
	dot := fixed.P(-minX, f.ascent)
	dr, mask, mp, _, ok := f.face.Glyph(dot, r)
	if !ok || mask == nil {
		return
	}
	// Hinting may push a few pixels outside the measured cell; drop them.
	for y := max(dr.Min.Y, 0); y < min(dr.Max.Y, f.height); y++ {
		for x := max(dr.Min.X, 0); x < dr.Max.X; x++ {
			p := image.Pt(mp.X+x-dr.Min.X, mp.Y+y-dr.Min.Y)
			_, _, _, a := mask.At(p.X, p.Y).RGBA()
			if a>>8 >= maskThreshold {
				set(x, y)
			}
		}
	}
}
