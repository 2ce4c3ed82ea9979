// Package fonts adapts bitmap and outline fonts to the fixed-height font
// contract used by text layout.
package fonts

// Font is a fixed-height bitmap font.
//
// Glyph calls set for every lit pixel of r, relative to the top-left corner of
// the character cell. Text layout advances the cursor by CharWidth plus
// CharSpacing.
type Font interface {
	Height() int
	CharWidth(r rune) int
	CharSpacing(r rune) int
	Glyph(r rune, set func(x, y int))
}

// Advance is the horizontal cursor step for r.
func Advance(f Font, r rune) int { return f.CharWidth(r) + f.CharSpacing(r) }

// TextWidth measures s on a single line.
func TextWidth(f Font, s string) int {
	n := 0
	for _, r := range s {
		n += Advance(f, r)
	}
	return n
}
