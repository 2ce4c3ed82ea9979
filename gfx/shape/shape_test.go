package shape

import (
	"image"
	"math"
	"testing"

	"ledgl/gfx/pixel"
	"ledgl/gfx/texture"

	"seehuhn.de/go/geom/vec"
)

type testCanvas struct {
	w, h int
	px   map[[2]int]pixel.Color
}

func newCanvas() *testCanvas {
	return &testCanvas{w: 64, h: 64, px: map[[2]int]pixel.Color{}}
}

func (c *testCanvas) Size() (int, int) { return c.w, c.h }

func (c *testCanvas) SetPixel(x, y int, col pixel.Color) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.px[[2]int{x, y}] = col
}

func (c *testCanvas) at(x, y int) (pixel.Color, bool) {
	col, ok := c.px[[2]int{x, y}]
	return col, ok
}

func render(s Shape) *testCanvas {
	c := newCanvas()
	Draw(c, s)
	return c
}

func TestTranslateComposes(t *testing.T) {
	a := NewRectangle(0, 0, 3, 3, true, pixel.Red)
	a.Translate(2, 1)
	a.Translate(3, 4)
	b := NewRectangle(0, 0, 3, 3, true, pixel.Red)
	b.SetPosition(5, 5)

	ca, cb := render(a), render(b)
	if len(ca.px) != 9 || len(ca.px) != len(cb.px) {
		t.Fatalf("expected 9 pixels each, got %d and %d", len(ca.px), len(cb.px))
	}
	for k := range ca.px {
		if _, ok := cb.px[k]; !ok {
			t.Fatalf("pixel %v differs between composed and direct translation", k)
		}
	}
	if _, ok := ca.at(5, 5); !ok {
		t.Fatalf("expected (5,5) lit")
	}
	if _, ok := ca.at(4, 5); ok {
		t.Fatalf("expected (4,5) dark")
	}
}

func TestTransformOrderMatters(t *testing.T) {
	direct := NewRectangle(10, 10, 4, 2, true, pixel.Red)
	direct.SetPivot(10, 10)
	direct.Rotate(90)
	direct.SetScaleX(2)

	child := NewRectangle(10, 10, 4, 2, true, pixel.Red)
	child.SetPivot(10, 10)
	child.SetScaleX(2)
	group := NewCollection(0, 0)
	group.SetPivot(10, 10)
	group.Rotate(90)
	group.Add(child)

	cd, cg := render(direct), render(group)
	if _, ok := cd.at(7, 12); !ok {
		t.Fatalf("expected rotate-then-scale to cover (7,12)")
	}
	if _, ok := cd.at(9, 16); ok {
		t.Fatalf("expected rotate-then-scale to leave (9,16) dark")
	}
	if _, ok := cg.at(9, 16); !ok {
		t.Fatalf("expected scaled child in rotated group to cover (9,16)")
	}
	if _, ok := cg.at(7, 12); ok {
		t.Fatalf("expected scaled child in rotated group to leave (7,12) dark")
	}
}

func TestZOrderWithinCollection(t *testing.T) {
	scene := NewCollection(0, 0)
	top := NewRectangle(0, 0, 4, 4, true, pixel.Red)
	top.SetZ(5)
	bottom := NewRectangle(2, 2, 4, 4, true, pixel.Blue)
	bottom.SetZ(1)
	scene.Add(top)
	scene.Add(bottom)
	if col, _ := render(scene).at(3, 3); col != pixel.Red {
		t.Fatalf("expected higher z to paint last, got %v", col)
	}

	tie := NewCollection(0, 0)
	tie.Add(NewRectangle(0, 0, 4, 4, true, pixel.Red))
	tie.Add(NewRectangle(2, 2, 4, 4, true, pixel.Blue))
	if col, _ := render(tie).at(3, 3); col != pixel.Blue {
		t.Fatalf("expected equal z to keep insertion order, got %v", col)
	}
}

func TestNestedCollectionDefaultPivot(t *testing.T) {
	earth := NewCollection(32, 32)
	earth.SetPivot(32, 32)
	moons := NewCollection(52, 32)
	moons.Add(NewCircle(60, 32, 1, true, pixel.White))
	earth.Add(moons)

	moons.Rotate(180)
	c := render(earth)
	if _, ok := c.at(44, 32); !ok {
		t.Fatalf("expected moon to orbit its collection's own position")
	}
	if _, ok := c.at(60, 32); ok {
		t.Fatalf("expected moon to have left its construction position")
	}
}

func TestRectangleOutline(t *testing.T) {
	c := render(NewRectangle(1, 1, 4, 3, false, pixel.White))
	if len(c.px) != 10 {
		t.Fatalf("expected 10 outline pixels, got %d", len(c.px))
	}
	for _, p := range [][2]int{{1, 1}, {4, 1}, {4, 3}, {1, 3}} {
		if _, ok := c.at(p[0], p[1]); !ok {
			t.Fatalf("expected corner %v lit", p)
		}
	}
	if _, ok := c.at(2, 2); ok {
		t.Fatalf("expected interior dark")
	}
}

func TestCircleFillAndOutline(t *testing.T) {
	fill := render(NewCircle(10, 10, 2, true, pixel.Blue))
	if len(fill.px) != 13 {
		t.Fatalf("expected 13 pixels in a radius-2 disc, got %d", len(fill.px))
	}
	ring := render(NewCircle(10, 10, 5, false, pixel.Blue))
	if _, ok := ring.at(15, 10); !ok {
		t.Fatalf("expected (15,10) on the ring")
	}
	if _, ok := ring.at(10, 10); ok {
		t.Fatalf("expected ring center dark")
	}
}

func TestPolygonAndLine(t *testing.T) {
	tri := NewPolygon(10, 10, []vec.Vec2{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 0, Y: 4}}, true, pixel.Green)
	c := render(tri)
	if _, ok := c.at(10, 10); !ok {
		t.Fatalf("expected polygon to be placed at its position")
	}
	if _, ok := c.at(13, 13); ok {
		t.Fatalf("expected (13,13) outside the triangle")
	}

	line := render(NewLineSegment(0, 20, 63, 35, pixel.White))
	if _, ok := line.at(0, 20); !ok {
		t.Fatalf("expected line start lit")
	}
	if _, ok := line.at(63, 35); !ok {
		t.Fatalf("expected line end lit")
	}
}

func TestRegularPolygonSideLength(t *testing.T) {
	p := NewRegularPolygonSide(0, 0, 6, 10, true, pixel.Green)
	if math.Abs(p.Radius()-10) > 1e-9 {
		t.Fatalf("expected hexagon radius 10, got %v", p.Radius())
	}
	if NewRegularPolygon(0, 0, 1, 5, true, pixel.Green).Sides() != 3 {
		t.Fatalf("expected sides to be raised to 3")
	}
}

func TestSingularScaleDrawsNothing(t *testing.T) {
	r := NewRectangle(0, 0, 8, 8, true, pixel.Red)
	r.SetScale(0, 1)
	if c := render(r); len(c.px) != 0 {
		t.Fatalf("expected nothing drawn, got %d pixels", len(c.px))
	}
}

func TestCollider(t *testing.T) {
	tri := NewRegularPolygon(32, 60, 3, 4, true, pixel.Green)
	enemy := NewRectangle(20, 0, 10, 10, true, pixel.Red)
	if tri.Intersects(enemy) {
		t.Fatalf("expected no intersection without colliders")
	}
	tri.AddCollider(nil)
	enemy.AddCollider(nil)
	if tri.Intersects(enemy) {
		t.Fatalf("expected far shapes not to intersect")
	}
	enemy.Translate(0, 50)
	if !tri.Intersects(enemy) || !enemy.Intersects(tri) {
		t.Fatalf("expected overlapping shapes to intersect")
	}
	enemy.RemoveCollider()
	if tri.Intersects(enemy) {
		t.Fatalf("expected removed collider to stop intersecting")
	}
	if tri.Intersects(nil) {
		t.Fatalf("expected nil other to never intersect")
	}
}

func TestExplicitCollider(t *testing.T) {
	a := NewPoint(10, 10, pixel.Red)
	a.AddCollider(&Collider{Rect: image.Rect(0, 0, 5, 5)})
	b := NewPoint(14, 14, pixel.Red)
	b.AddCollider(nil)
	if !a.Intersects(b) {
		t.Fatalf("expected explicit box [10,15) to contain (14,14)")
	}
	b.SetPosition(15, 15)
	if a.Intersects(b) {
		t.Fatalf("expected (15,15) outside the half-open box")
	}
}

func checker() *texture.Texture {
	return texture.New([][]pixel.Color{
		{pixel.Red, pixel.Green},
		{pixel.Blue, pixel.White},
	})
}

func TestTextureSampling(t *testing.T) {
	r := NewRectangle(10, 10, 4, 4, true, pixel.RGBA(255, 255, 255, 0.5))
	r.SetTexture(checker())
	r.SetTextureScale(2, 2)
	c := render(r)
	if col, _ := c.at(11, 10); col != pixel.RGBA(255, 0, 0, 0.5) {
		t.Fatalf("expected red at half alpha, got %v", col)
	}
	if col, _ := c.at(12, 10); col.G != 255 || col.R != 0 {
		t.Fatalf("expected green, got %v", col)
	}
}

func TestFixTexture(t *testing.T) {
	free := NewRectangle(10, 10, 4, 4, true, pixel.White)
	free.SetTexture(checker())
	free.SetPivot(10, 10)
	free.SetScale(2, 2)

	fixed := NewRectangle(10, 10, 4, 4, true, pixel.White)
	fixed.SetTexture(checker())
	fixed.SetFixTexture(true)
	fixed.SetPivot(10, 10)
	fixed.SetScale(2, 2)

	if col, _ := render(free).at(12, 10); col != pixel.Green {
		t.Fatalf("expected texture to scale with the shape, got %v", col)
	}
	if col, _ := render(fixed).at(12, 10); col != pixel.Red {
		t.Fatalf("expected fixed texture to ignore the shape scale, got %v", col)
	}
}

func TestInvalidTextureIsBlack(t *testing.T) {
	r := NewRectangle(0, 0, 2, 2, true, pixel.White)
	r.SetTexture(texture.Invalid())
	if col, _ := render(r).at(0, 0); col != pixel.Black {
		t.Fatalf("expected black, got %v", col)
	}
}

func TestQRCode(t *testing.T) {
	q, err := NewQRCode(0, 0, "ledgl", 1, pixel.White)
	if err != nil {
		t.Fatalf("qrcode: %v", err)
	}
	dark := 0
	for y := 0; y < q.Modules(); y++ {
		for x := 0; x < q.Modules(); x++ {
			if q.Dark(x, y) {
				dark++
			}
		}
	}
	c := render(q)
	if dark == 0 || len(c.px) != dark {
		t.Fatalf("expected %d lit modules, got %d", dark, len(c.px))
	}
	if _, ok := c.at(0, 0); !ok {
		t.Fatalf("expected finder pattern corner to be dark")
	}
}

func TestCollectionIgnoresSelf(t *testing.T) {
	c := NewCollection(0, 0)
	c.Add(c)
	c.Add(nil)
	if c.Len() != 0 {
		t.Fatalf("expected self and nil to be ignored")
	}
}

func TestScaleAfterScaleAboutUsesPivot(t *testing.T) {
	r := NewRectangle(10, 10, 2, 2, true, pixel.Red)
	r.SetScaleAbout(3, 3, 0, 0)
	r.SetScale(2, 2)
	fresh := NewRectangle(10, 10, 2, 2, true, pixel.Red)
	fresh.SetScale(2, 2)

	got, want := render(r), render(fresh)
	if len(got.px) != len(want.px) {
		t.Fatalf("expected %d pixels, got %d", len(want.px), len(got.px))
	}
	for k := range want.px {
		if _, ok := got.px[k]; !ok {
			t.Fatalf("expected %v lit after rescaling about the pivot", k)
		}
	}
	if _, ok := got.at(10, 10); !ok {
		t.Fatalf("expected the pivot corner to stay put")
	}

	r.SetScaleAbout(3, 3, 0, 0)
	r.SetScaleX(2)
	r.SetScaleY(2)
	if c := render(r); len(c.px) != len(want.px) {
		t.Fatalf("expected per-axis setters to drop the origin too, got %d pixels", len(c.px))
	}
}

func TestHugeGeometryIsClipped(t *testing.T) {
	line := render(NewLineSegment(0, 10, 1e10, 10, pixel.White))
	if len(line.px) != 64 {
		t.Fatalf("expected the line clipped to one canvas row, got %d pixels", len(line.px))
	}
	if _, ok := line.at(63, 10); !ok {
		t.Fatalf("expected the line to reach the right edge")
	}

	if c := render(NewCircle(32, 32, 1e10, false, pixel.White)); len(c.px) != 0 {
		t.Fatalf("expected a ring far outside the canvas to draw nothing, got %d", len(c.px))
	}

	rect := NewRectangle(32, 32, 4, 4, false, pixel.White)
	rect.SetScale(1e10, 1e10)
	c := render(rect)
	if len(c.px) != 63 {
		t.Fatalf("expected the two visible outline edges, got %d pixels", len(c.px))
	}
	if _, ok := c.at(63, 32); !ok {
		t.Fatalf("expected the top edge to reach the right border")
	}
	if _, ok := c.at(32, 63); !ok {
		t.Fatalf("expected the left edge to reach the bottom border")
	}

	if c := render(NewLineSegment(0, 0, math.Inf(1), 0, pixel.White)); len(c.px) != 0 {
		t.Fatalf("expected a non-finite segment to draw nothing")
	}
}
