package shape

import (
	"image"

	"ledgl/gfx/raster"
)

// Collider is an axis-aligned hit box. A nil *Collider passed to AddCollider
// fits the box to the shape's transformed bounds on every test.
type Collider struct {
	// Rect is relative to the shape's current position.
	Rect image.Rectangle
}

// AddCollider attaches c, or a fitted box when c is nil.
func (a *Attrs) AddCollider(c *Collider) {
	if c == nil {
		c = &Collider{}
		a.collider = c
		a.fitted = true
		return
	}
	cp := *c
	a.collider = &cp
	a.fitted = false
}

func (a *Attrs) RemoveCollider() {
	a.collider = nil
	a.fitted = false
}

func (a *Attrs) HasCollider() bool { return a.collider != nil }

// Intersects reports whether the hit boxes of the shape and other overlap.
// Both are taken in their parent's coordinates, so the shapes should share a
// parent. Shapes without a collider never intersect.
func (a *Attrs) Intersects(other Shape) bool {
	if other == nil || a.self == nil {
		return false
	}
	r1, ok1 := hitBox(a.self)
	r2, ok2 := hitBox(other)
	return ok1 && ok2 && r1.Overlaps(r2)
}

// HitBox returns the collider box of s in its parent's coordinates.
func HitBox(s Shape) (image.Rectangle, bool) { return hitBox(s) }

func hitBox(s Shape) (image.Rectangle, bool) {
	a := s.Attributes()
	if a.collider == nil {
		return image.Rectangle{}, false
	}
	if !a.fitted {
		p := image.Pt(raster.Floor(a.pos.X), raster.Floor(a.pos.Y))
		return a.collider.Rect.Canon().Add(p), true
	}
	b, ok := s.bounds(s.Matrix())
	if !ok {
		return image.Rectangle{}, false
	}
	x0, y0 := raster.Floor(b.x0), raster.Floor(b.y0)
	x1 := max(raster.Ceil(b.x1), x0+1)
	y1 := max(raster.Ceil(b.y1), y0+1)
	return image.Rect(x0, y0, x1, y1), true
}
