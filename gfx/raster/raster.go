// Package raster turns transformed geometry into device pixels.
//
// A device pixel (x, y) is sampled at the integer point (x, y). Filled
// polygons use the even-odd rule with half-open spans (xl <= x < xr) on
// half-open edges (ymin <= y < ymax), so shapes sharing an edge never both
// claim it. Outlines are drawn with Bresenham lines between rounded vertices.
// There is no anti-aliasing.
package raster

import (
	"math"
	"slices"

	"ledgl/gfx/pixel"

	"seehuhn.de/go/geom/vec"
)

// Canvas is a pixel sink. Implementations should clip out-of-bounds
// coordinates.
type Canvas interface {
	Size() (w, h int)
	SetPixel(x, y int, c pixel.Color)
}

// Brush shades a device pixel. Returning false leaves the pixel untouched.
type Brush interface {
	Shade(x, y int) (pixel.Color, bool)
}

// Solid paints every pixel with one color.
type Solid pixel.Color

func (s Solid) Shade(int, int) (pixel.Color, bool) { return pixel.Color(s), true }

// BrushFunc adapts a function to Brush.
type BrushFunc func(x, y int) (pixel.Color, bool)

func (f BrushFunc) Shade(x, y int) (pixel.Color, bool) { return f(x, y) }

func plot(c Canvas, x, y int, b Brush) {
	if col, ok := b.Shade(x, y); ok {
		c.SetPixel(x, y, col)
	}
}

// coordLimit bounds device coordinates. Anything past it is far off any
// canvas, and keeps sums of two coordinates inside a 32-bit int.
const coordLimit = 1 << 24

// Round rounds to the nearest integer, halves toward +Inf. The result is
// clamped to ±coordLimit; NaN maps to -coordLimit.
func Round(v float64) int { return Floor(v + 0.5) }

// Floor is math.Floor clamped like Round.
func Floor(v float64) int { return clampCoord(math.Floor(v)) }

// Ceil is math.Ceil clamped like Round.
func Ceil(v float64) int { return clampCoord(math.Ceil(v)) }

func clampCoord(v float64) int {
	switch {
	case !(v > -coordLimit):
		return -coordLimit
	case v > coordLimit:
		return coordLimit
	}
	return int(v)
}

// Point plots a single sample.
func Point(c Canvas, x, y int, b Brush) { plot(c, x, y, b) }

// Line draws a Bresenham line including both endpoints. The segment is
// clipped to the canvas first, so the cost is bounded by the canvas size.
func Line(c Canvas, x0, y0, x1, y1 int, b Brush) {
	segment(c, vec.Vec2{X: float64(x0), Y: float64(y0)}, vec.Vec2{X: float64(x1), Y: float64(y1)}, b)
}

func segment(c Canvas, a, e vec.Vec2, b Brush) {
	w, h := c.Size()
	// One pixel of margin keeps the rounded endpoints of a clipped segment
	// on the same Bresenham path as the unclipped one near the edges.
	a, e, ok := clipSegment(a, e, -1, -1, float64(w), float64(h))
	if !ok {
		return
	}
	bresenham(c, Round(a.X), Round(a.Y), Round(e.X), Round(e.Y), b)
}

// clipSegment clips a-e to [xmin,xmax]x[ymin,ymax] (Liang-Barsky).
func clipSegment(a, e vec.Vec2, xmin, ymin, xmax, ymax float64) (vec.Vec2, vec.Vec2, bool) {
	if !finite(a) || !finite(e) {
		return a, e, false
	}
	d := e.Sub(a)
	t0, t1 := 0.0, 1.0
	for _, pq := range [4][2]float64{
		{-d.X, a.X - xmin},
		{d.X, xmax - a.X},
		{-d.Y, a.Y - ymin},
		{d.Y, ymax - a.Y},
	} {
		p, q := pq[0], pq[1]
		if p == 0 {
			if q < 0 {
				return a, e, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return a, e, false
			}
			t0 = math.Max(t0, r)
		} else {
			if r < t0 {
				return a, e, false
			}
			t1 = math.Min(t1, r)
		}
	}
	if t1 < 1 {
		e = vec.Vec2{X: a.X + t1*d.X, Y: a.Y + t1*d.Y}
	}
	if t0 > 0 {
		a = vec.Vec2{X: a.X + t0*d.X, Y: a.Y + t0*d.Y}
	}
	return a, e, true
}

func finite(v vec.Vec2) bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) && !math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

func bresenham(c Canvas, x0, y0, x1, y1 int, b Brush) {
	dx := absInt(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -absInt(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		plot(c, x0, y0, b)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// Polyline joins consecutive points with lines, closing the loop when closed
// is set.
func Polyline(c Canvas, pts []vec.Vec2, closed bool, b Brush) {
	switch len(pts) {
	case 0:
		return
	case 1:
		plot(c, Round(pts[0].X), Round(pts[0].Y), b)
		return
	}
	for i := 0; i+1 < len(pts); i++ {
		segment(c, pts[i], pts[i+1], b)
	}
	if closed && len(pts) > 2 {
		segment(c, pts[len(pts)-1], pts[0], b)
	}
}

// FillPolygon fills pts with the even-odd rule.
func FillPolygon(c Canvas, pts []vec.Vec2, b Brush) {
	if len(pts) < 3 {
		return
	}
	w, h := c.Size()
	minY, maxY := pts[0].Y, pts[0].Y
	for _, p := range pts[1:] {
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	y0 := max(Ceil(minY), 0)
	y1 := min(Ceil(maxY)-1, h-1)

	xs := make([]float64, 0, 8)
	for y := y0; y <= y1; y++ {
		fy := float64(y)
		xs = xs[:0]
		for i := range pts {
			a := pts[i]
			e := pts[(i+1)%len(pts)]
			if a.Y == e.Y {
				continue
			}
			lo, hi := a, e
			if lo.Y > hi.Y {
				lo, hi = hi, lo
			}
			if fy < lo.Y || fy >= hi.Y {
				continue
			}
			xs = append(xs, lo.X+(fy-lo.Y)*(hi.X-lo.X)/(hi.Y-lo.Y))
		}
		slices.Sort(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			xl := max(Ceil(xs[i]), 0)
			xr := min(Ceil(xs[i+1])-1, w-1)
			for x := xl; x <= xr; x++ {
				plot(c, x, y, b)
			}
		}
	}
}

// Circle draws a midpoint circle outline. A ring that misses the canvas
// draws nothing; one much larger than the canvas is swept by canvas rows and
// columns instead of walked point by point.
func Circle(c Canvas, cx, cy, r int, b Brush) {
	if r < 0 {
		return
	}
	if r == 0 {
		plot(c, cx, cy, b)
		return
	}
	w, h := c.Size()
	if !ringMeetsCanvas(cx, cy, r, w, h) {
		return
	}
	if r > w+h {
		sweepCircle(c, cx, cy, r, w, h, b)
		return
	}
	x, y := r, 0
	err := 1 - r
	for x >= y {
		plot(c, cx+x, cy+y, b)
		plot(c, cx+y, cy+x, b)
		plot(c, cx-y, cy+x, b)
		plot(c, cx-x, cy+y, b)
		plot(c, cx-x, cy-y, b)
		plot(c, cx-y, cy-x, b)
		plot(c, cx+y, cy-x, b)
		plot(c, cx+x, cy-y, b)
		y++
		if err < 0 {
			err += 2*y + 1
		} else {
			x--
			err += 2*(y-x) + 1
		}
	}
}

// ringMeetsCanvas reports whether a ring of radius r, one pixel thick either
// way, can touch the canvas.
func ringMeetsCanvas(cx, cy, r, w, h int) bool {
	fx, fy, fr := float64(cx), float64(cy), float64(r)
	nx := math.Max(0, math.Max(-fx, fx-float64(w-1)))
	ny := math.Max(0, math.Max(-fy, fy-float64(h-1)))
	if math.Hypot(nx, ny) > fr+1 {
		return false
	}
	fxf := math.Max(math.Abs(fx), math.Abs(fx-float64(w-1)))
	fyf := math.Max(math.Abs(fy), math.Abs(fy-float64(h-1)))
	return math.Hypot(fxf, fyf) >= fr-1
}

// sweepCircle plots the octant points of a large ring that fall on canvas
// rows and columns. x-major octants get one point per row on each side,
// y-major octants one per column.
func sweepCircle(c Canvas, cx, cy, r, w, h int, b Brush) {
	fr := float64(r)
	lim := fr / math.Sqrt2
	for y := 0; y < h; y++ {
		d := float64(y - cy)
		if math.Abs(d) > lim {
			continue
		}
		x := Round(math.Sqrt(fr*fr - d*d))
		plot(c, cx+x, y, b)
		plot(c, cx-x, y, b)
	}
	for x := 0; x < w; x++ {
		d := float64(x - cx)
		if math.Abs(d) > lim {
			continue
		}
		y := Round(math.Sqrt(fr*fr - d*d))
		plot(c, x, cy+y, b)
		plot(c, x, cy-y, b)
	}
}

// FillRegion samples every device pixel of the clip rectangle
// [x0,x1)x[y0,y1) and plots those for which inside reports true.
func FillRegion(c Canvas, x0, y0, x1, y1 int, inside func(x, y int) bool, b Brush) {
	w, h := c.Size()
	x0, y0 = max(x0, 0), max(y0, 0)
	x1, y1 = min(x1, w), min(y1, h)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if inside(x, y) {
				plot(c, x, y, b)
			}
		}
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
