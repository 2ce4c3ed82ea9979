package render

import (
	"strings"
	"testing"

	"ledgl/gfx/framebuf"
	"ledgl/gfx/pixel"
	"ledgl/gfx/shape"
)

type recordLogger struct {
	lines []string
}

func (l *recordLogger) WriteLineString(s string) { l.lines = append(l.lines, s) }
func (l *recordLogger) WriteLineBytes(b []byte)  { l.lines = append(l.lines, string(b)) }

func (l *recordLogger) contains(sub string) bool {
	for _, s := range l.lines {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// blockFont lights every pixel of a 3x5 cell, one pixel apart. Spaces are
// blank.
type blockFont struct{}

func (blockFont) Height() int            { return 5 }
func (blockFont) CharWidth(rune) int     { return 3 }
func (blockFont) CharSpacing(rune) int   { return 1 }
func (blockFont) Glyph(r rune, set func(x, y int)) {
	if r == ' ' {
		return
	}
	for y := 0; y < 5; y++ {
		for x := 0; x < 3; x++ {
			set(x, y)
		}
	}
}

func index(px []pixel.Pixel) map[[2]int]pixel.Color {
	m := make(map[[2]int]pixel.Color, len(px))
	for _, p := range px {
		m[[2]int{p.X, p.Y}] = p.Color
	}
	return m
}

func TestNewFallsBackOnInvalidSize(t *testing.T) {
	log := &recordLogger{}
	for _, sz := range [][2]int{{0, 32}, {64, -1}, {513, 64}, {64, 1000}} {
		r := New(sz[0], sz[1], log)
		if r.Width() != 64 || r.Height() != 64 {
			t.Fatalf("New(%d, %d): expected 64x64, got %dx%d", sz[0], sz[1], r.Width(), r.Height())
		}
	}
	if len(log.lines) != 4 {
		t.Fatalf("expected one diagnostic per invalid size, got %d", len(log.lines))
	}
	if r := New(512, 16, nil); r.Width() != 512 || r.Height() != 16 {
		t.Fatalf("expected 512x16 to be accepted")
	}
}

func TestRenderDeduplicates(t *testing.T) {
	r := New(16, 16, nil)
	scene := shape.NewCollection(0, 0)
	scene.Add(shape.NewRectangle(0, 0, 4, 4, true, pixel.Red))
	scene.Add(shape.NewRectangle(2, 2, 4, 4, true, pixel.Blue))

	px := r.Render(nil, scene)
	if len(px) != 28 {
		t.Fatalf("expected 28 distinct pixels, got %d", len(px))
	}
	idx := index(px)
	if idx[[2]int{3, 3}] != pixel.Blue {
		t.Fatalf("expected later shape to win at (3,3), got %v", idx[[2]int{3, 3}])
	}
	if idx[[2]int{0, 0}] != pixel.Red {
		t.Fatalf("expected red at (0,0)")
	}
	if px[0].X != 0 || px[0].Y != 0 {
		t.Fatalf("expected paint order to be preserved, first pixel %+v", px[0])
	}
}

func TestRenderClearsAndClips(t *testing.T) {
	r := New(8, 8, nil)
	scene := shape.NewCollection(0, 0)
	scene.Add(shape.NewRectangle(6, 6, 4, 4, true, pixel.Green))

	dst := []pixel.Pixel{{X: 1, Y: 1, Color: pixel.White}}
	px := r.Render(dst, scene)
	if len(px) != 4 {
		t.Fatalf("expected 4 clipped pixels, got %d", len(px))
	}
	for _, p := range px {
		if p.X < 6 || p.Y < 6 || p.X >= 8 || p.Y >= 8 {
			t.Fatalf("pixel %+v outside clipped area", p)
		}
	}

	// A second frame must not remember cells from the first.
	scene2 := shape.NewCollection(0, 0)
	scene2.Add(shape.NewPoint(7, 7, pixel.Red))
	px = r.Render(px, scene2)
	if len(px) != 1 || px[0].Color != pixel.Red {
		t.Fatalf("expected a single red pixel, got %+v", px)
	}
}

func TestRenderNilScene(t *testing.T) {
	r := New(8, 8, nil)
	if px := r.Render(make([]pixel.Pixel, 3), nil); len(px) != 0 {
		t.Fatalf("expected empty list")
	}
}

func TestDrawTextAppends(t *testing.T) {
	r := New(16, 16, nil)
	dst := []pixel.Pixel{{X: 15, Y: 15, Color: pixel.White}}
	px := r.DrawText(dst, "a b", 0, 0, blockFont{}, pixel.Red, false)
	if len(px) != 1+30 {
		t.Fatalf("expected 31 pixels, got %d", len(px))
	}
	idx := index(px)
	if _, ok := idx[[2]int{4, 0}]; ok {
		t.Fatalf("expected space cell to stay blank")
	}
	if _, ok := idx[[2]int{8, 0}]; !ok {
		t.Fatalf("expected third glyph at x=8")
	}
}

func TestDrawTextWrap(t *testing.T) {
	r := New(10, 16, nil)

	px := index(r.DrawText(nil, "abc", 0, 0, blockFont{}, pixel.Red, true))
	if _, ok := px[[2]int{0, 5}]; !ok {
		t.Fatalf("expected third glyph wrapped to the next line")
	}
	if _, ok := px[[2]int{8, 0}]; ok {
		t.Fatalf("expected nothing at x=8 once wrapped")
	}

	px = index(r.DrawText(nil, "abc", 0, 0, blockFont{}, pixel.Red, false))
	if _, ok := px[[2]int{9, 0}]; !ok {
		t.Fatalf("expected unwrapped glyph clipped at the edge")
	}
	if len(px) != 15+15+10 {
		t.Fatalf("expected 40 pixels, got %d", len(px))
	}
}

func TestDrawTextNewline(t *testing.T) {
	r := New(32, 32, nil)
	px := index(r.DrawText(nil, "a\nb", 2, 1, blockFont{}, pixel.Red, false))
	if _, ok := px[[2]int{2, 6}]; !ok {
		t.Fatalf("expected second line at the origin x")
	}
	if len(px) != 30 {
		t.Fatalf("expected 30 pixels, got %d", len(px))
	}
}

func TestDrawTextNilFont(t *testing.T) {
	r := New(32, 32, nil)
	if px := r.DrawText(nil, "hello", 0, 0, nil, pixel.Red, true); len(px) != 0 {
		t.Fatalf("expected nil font to draw nothing")
	}
}

func TestRenderTo(t *testing.T) {
	r := New(8, 8, nil)
	fb := framebuf.New(8, 8)
	fb.Append(pixel.Pixel{X: 0, Y: 0, Color: pixel.White})

	scene := shape.NewCollection(0, 0)
	scene.Add(shape.NewRectangle(0, 0, 2, 2, true, pixel.Red))
	r.RenderTo(fb, scene)
	if fb.Records() != 4 {
		t.Fatalf("expected 4 records, got %d", fb.Records())
	}
}

func TestDrawTextToOverflow(t *testing.T) {
	log := &recordLogger{}
	r := New(8, 8, log)
	fb := framebuf.New(1, 1)
	r.DrawTextTo(fb, "a", 0, 0, blockFont{}, pixel.Red, false)
	if fb.Records() != framebuf.Oversize {
		t.Fatalf("expected buffer full at %d records, got %d", framebuf.Oversize, fb.Records())
	}
	if !log.contains("FrameBuffer overflow") {
		t.Fatalf("expected overflow to be logged, got %q", log.lines)
	}
}

func TestDrawTextToDefaultFont(t *testing.T) {
	r := New(32, 32, nil)
	fb := framebuf.New(32, 32)
	r.DrawTextTo(fb, "A", 0, 0, nil, pixel.White, false)
	if fb.Records() == 0 {
		t.Fatalf("expected the default font to draw")
	}
	before := fb.Records()
	r.DrawTextTo(fb, "A", 8, 0, nil, pixel.White, false)
	if fb.Records() != 2*before {
		t.Fatalf("expected text to append, got %d after %d", fb.Records(), before)
	}
}
