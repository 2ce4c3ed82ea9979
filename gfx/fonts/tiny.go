package fonts

import (
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

// Tiny wraps a tinyfont font.
type Tiny struct {
	f      tinyfont.Fonter
	ascent int
	height int
}

// FromTiny adapts f. The baseline is placed below the tallest printable
// ASCII glyph.
func FromTiny(f tinyfont.Fonter) *Tiny {
	t := &Tiny{f: f}
	for r := rune(' '); r <= '~'; r++ {
		info := f.GetGlyph(r).Info()
		if a := -int(info.YOffset); a > t.ascent {
			t.ascent = a
		}
		if d := int(info.YOffset) + int(info.Height); t.ascent+d > t.height {
			t.height = t.ascent + d
		}
	}
	if ya := int(f.GetYAdvance()); ya > t.height {
		t.height = ya
	}
	return t
}

var defaultFont = FromTiny(&tinyfont.TomThumb)

// Default returns the built-in font.
func Default() Font { return defaultFont }

func (t *Tiny) Height() int { return t.height }

func (t *Tiny) CharWidth(r rune) int {
	return int(t.f.GetGlyph(r).Info().Width)
}

func (t *Tiny) CharSpacing(r rune) int {
	info := t.f.GetGlyph(r).Info()
	return max(int(info.XAdvance)-int(info.Width), 0)
}

func (t *Tiny) Glyph(r rune, set func(x, y int)) {
	g := t.f.GetGlyph(r)
	info := g.Info()
	// Undo the bearing so the cell starts at x = 0.
	g.Draw(glyphSink{set: set, w: int16(info.Width) + 64, h: int16(t.height) + 64}, -int16(info.XOffset), int16(t.ascent), color.RGBA{A: 0xFF})
}

var _ drivers.Displayer = glyphSink{}

// glyphSink is a drivers.Displayer that forwards lit pixels.
type glyphSink struct {
	set  func(x, y int)
	w, h int16
}

func (s glyphSink) Size() (x, y int16) { return s.w, s.h }

func (s glyphSink) SetPixel(x, y int16, _ color.RGBA) { s.set(int(x), int(y)) }

func (s glyphSink) Display() error { return nil }
