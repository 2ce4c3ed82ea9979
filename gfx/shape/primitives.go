package shape

import (
	"math"

	"ledgl/gfx/pixel"
	"ledgl/gfx/raster"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
)

// box is an axis-aligned bounding box in continuous coordinates.
type box struct {
	x0, y0, x1, y1 float64
}

func boxOf(pts []vec.Vec2) (box, bool) {
	if len(pts) == 0 {
		return box{}, false
	}
	b := box{pts[0].X, pts[0].Y, pts[0].X, pts[0].Y}
	for _, p := range pts[1:] {
		b = b.add(p)
	}
	return b, true
}

func (b box) add(p vec.Vec2) box {
	return box{math.Min(b.x0, p.X), math.Min(b.y0, p.Y), math.Max(b.x1, p.X), math.Max(b.y1, p.Y)}
}

func (b box) union(o box) box {
	return box{math.Min(b.x0, o.x0), math.Min(b.y0, o.y0), math.Max(b.x1, o.x1), math.Max(b.y1, o.y1)}
}

// Point is a single pixel.
type Point struct {
	Attrs
}

func NewPoint(x, y float64, c pixel.Color) *Point {
	p := &Point{}
	p.init(p, x, y, c)
	return p
}

func (p *Point) draw(c raster.Canvas, f frame) {
	x, y := raster.Apply(f.m, p.anchor.X, p.anchor.Y)
	raster.Point(c, raster.Round(x), raster.Round(y), p.brush(f))
}

func (p *Point) bounds(m matrix.Matrix) (box, bool) {
	return boxOf([]vec.Vec2{raster.ApplyVec(m, p.anchor)})
}

// LineSegment joins its position to a second endpoint.
type LineSegment struct {
	Attrs
	end vec.Vec2 // relative to the anchor
}

// NewLineSegment builds a segment from (x, y) to (x2, y2).
func NewLineSegment(x, y, x2, y2 float64, c pixel.Color) *LineSegment {
	l := &LineSegment{end: vec.Vec2{X: x2 - x, Y: y2 - y}}
	l.init(l, x, y, c)
	return l
}

func (l *LineSegment) points() []vec.Vec2 {
	return []vec.Vec2{l.anchor, l.anchor.Add(l.end)}
}

func (l *LineSegment) draw(c raster.Canvas, f frame) {
	pts := raster.Transform(nil, f.m, l.points())
	raster.Polyline(c, pts, false, l.brush(f))
}

func (l *LineSegment) bounds(m matrix.Matrix) (box, bool) {
	return boxOf(raster.Transform(nil, m, l.points()))
}

// Polygon is an arbitrary vertex loop, vertices relative to its position.
type Polygon struct {
	Attrs
	verts []vec.Vec2
	fill  bool
}

func NewPolygon(x, y float64, vertices []vec.Vec2, fill bool, c pixel.Color) *Polygon {
	p := &Polygon{verts: append([]vec.Vec2(nil), vertices...), fill: fill}
	p.init(p, x, y, c)
	return p
}

func (p *Polygon) points() []vec.Vec2 {
	pts := make([]vec.Vec2, len(p.verts))
	for i, v := range p.verts {
		pts[i] = p.anchor.Add(v)
	}
	return pts
}

func (p *Polygon) draw(c raster.Canvas, f frame) {
	drawPath(c, f, p.points(), p.fill, p.brush(f))
}

func (p *Polygon) bounds(m matrix.Matrix) (box, bool) {
	return boxOf(raster.Transform(nil, m, p.points()))
}

// Rectangle is anchored at its top-left corner.
type Rectangle struct {
	Attrs
	w, h float64
	fill bool
}

func NewRectangle(x, y, w, h float64, fill bool, c pixel.Color) *Rectangle {
	r := &Rectangle{w: w, h: h, fill: fill}
	r.init(r, x, y, c)
	return r
}

func (r *Rectangle) Width() float64  { return r.w }
func (r *Rectangle) Height() float64 { return r.h }

func (r *Rectangle) corners(inset float64) []vec.Vec2 {
	x0, y0 := r.anchor.X, r.anchor.Y
	x1, y1 := x0+r.w-inset, y0+r.h-inset
	return []vec.Vec2{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}}
}

func (r *Rectangle) draw(c raster.Canvas, f frame) {
	if r.w <= 0 || r.h <= 0 {
		return
	}
	if r.fill {
		raster.FillPolygon(c, raster.Transform(nil, f.m, r.corners(0)), r.brush(f))
		return
	}
	// The outline runs through the corner pixels, one pixel inside the area.
	raster.Polyline(c, raster.Transform(nil, f.m, r.corners(1)), true, r.brush(f))
}

func (r *Rectangle) bounds(m matrix.Matrix) (box, bool) {
	return boxOf(raster.Transform(nil, m, r.corners(0)))
}

// Circle is centered on its position.
type Circle struct {
	Attrs
	r    float64
	fill bool
}

func NewCircle(x, y, radius float64, fill bool, c pixel.Color) *Circle {
	ci := &Circle{r: math.Max(radius, 0), fill: fill}
	ci.init(ci, x, y, c)
	return ci
}

func (ci *Circle) Radius() float64 { return ci.r }

// extent is the half-size of the transformed circle's bounding box.
func (ci *Circle) extent(m matrix.Matrix) (float64, float64) {
	return ci.r * math.Hypot(m[0], m[2]), ci.r * math.Hypot(m[1], m[3])
}

func (ci *Circle) draw(c raster.Canvas, f frame) {
	b := ci.brush(f)
	cx, cy := raster.Apply(f.m, ci.anchor.X, ci.anchor.Y)
	if !ci.fill {
		if s, ok := raster.Similarity(f.m); ok {
			raster.Circle(c, raster.Round(cx), raster.Round(cy), raster.Round(ci.r*s), b)
			return
		}
		raster.Polyline(c, raster.Transform(nil, f.m, ci.outline(f.m)), true, b)
		return
	}
	inv, ok := raster.Invert(f.m)
	if !ok {
		return
	}
	ex, ey := ci.extent(f.m)
	r2 := ci.r * ci.r
	inside := func(x, y int) bool {
		u, v := raster.Apply(inv, float64(x), float64(y))
		du, dv := u-ci.anchor.X, v-ci.anchor.Y
		return du*du+dv*dv <= r2
	}
	raster.FillRegion(c,
		raster.Floor(cx-ex), raster.Floor(cy-ey),
		raster.Ceil(cx+ex)+1, raster.Ceil(cy+ey)+1,
		inside, b)
}

// outline approximates the circle by a polygon fine enough that no segment
// spans more than about two device pixels.
func (ci *Circle) outline(m matrix.Matrix) []vec.Vec2 {
	n := int(math.Min(math.Max(math.Ceil(math.Pi*ci.r*raster.MaxScale(m)), 12), 720))
	pts := make([]vec.Vec2, n)
	for i := range pts {
		s, c := math.Sincos(2 * math.Pi * float64(i) / float64(n))
		pts[i] = vec.Vec2{X: ci.anchor.X + ci.r*c, Y: ci.anchor.Y + ci.r*s}
	}
	return pts
}

func (ci *Circle) bounds(m matrix.Matrix) (box, bool) {
	cx, cy := raster.Apply(m, ci.anchor.X, ci.anchor.Y)
	ex, ey := ci.extent(m)
	return box{cx - ex, cy - ey, cx + ex, cy + ey}, true
}

// RegularPolygon has equal sides around its position. The first vertex
// points straight up.
type RegularPolygon struct {
	Attrs
	sides  int
	radius float64
	fill   bool
}

// NewRegularPolygon builds a polygon from its circumradius. Fewer than three
// sides are raised to three.
func NewRegularPolygon(x, y float64, sides int, radius float64, fill bool, c pixel.Color) *RegularPolygon {
	p := &RegularPolygon{sides: max(sides, 3), radius: math.Max(radius, 0), fill: fill}
	p.init(p, x, y, c)
	return p
}

// NewRegularPolygonSide builds a polygon from its side length.
func NewRegularPolygonSide(x, y float64, sides int, side float64, fill bool, c pixel.Color) *RegularPolygon {
	n := max(sides, 3)
	return NewRegularPolygon(x, y, n, side/(2*math.Sin(math.Pi/float64(n))), fill, c)
}

func (p *RegularPolygon) Sides() int      { return p.sides }
func (p *RegularPolygon) Radius() float64 { return p.radius }

func (p *RegularPolygon) points() []vec.Vec2 {
	pts := make([]vec.Vec2, p.sides)
	for i := range pts {
		a := -math.Pi/2 + 2*math.Pi*float64(i)/float64(p.sides)
		s, c := math.Sincos(a)
		pts[i] = vec.Vec2{X: p.anchor.X + p.radius*c, Y: p.anchor.Y + p.radius*s}
	}
	return pts
}

func (p *RegularPolygon) draw(c raster.Canvas, f frame) {
	drawPath(c, f, p.points(), p.fill, p.brush(f))
}

func (p *RegularPolygon) bounds(m matrix.Matrix) (box, bool) {
	return boxOf(raster.Transform(nil, m, p.points()))
}

func drawPath(c raster.Canvas, f frame, pts []vec.Vec2, fill bool, b raster.Brush) {
	dev := raster.Transform(make([]vec.Vec2, 0, len(pts)), f.m, pts)
	if fill {
		raster.FillPolygon(c, dev, b)
		return
	}
	raster.Polyline(c, dev, true, b)
}
