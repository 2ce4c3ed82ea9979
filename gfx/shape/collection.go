package shape

import (
	"slices"

	"ledgl/gfx/pixel"
	"ledgl/gfx/raster"

	"seehuhn.de/go/geom/matrix"
)

// Collection groups shapes under one transform.
type Collection struct {
	Attrs
	children []Shape
}

// NewCollection returns an empty group at (x, y). Children keep their own
// absolute coordinates; the group's transform is applied on top of theirs.
func NewCollection(x, y float64) *Collection {
	c := &Collection{}
	c.init(c, x, y, pixel.Black)
	return c
}

// Add appends s. nil and the collection itself are ignored.
func (c *Collection) Add(s Shape) {
	if s == nil || s == Shape(c) {
		return
	}
	c.children = append(c.children, s)
}

// AddShape is an alias for Add.
func (c *Collection) AddShape(s Shape) { c.Add(s) }

// Children returns the children in insertion order.
func (c *Collection) Children() []Shape { return c.children }

func (c *Collection) Len() int { return len(c.children) }

// painted returns the children in paint order: ascending z, stable.
func (c *Collection) painted() []Shape {
	order := slices.Clone(c.children)
	slices.SortStableFunc(order, func(a, b Shape) int {
		za, zb := a.Attributes().z, b.Attributes().z
		switch {
		case za < zb:
			return -1
		case za > zb:
			return 1
		}
		return 0
	})
	return order
}

func (c *Collection) draw(cv raster.Canvas, f frame) {
	for _, ch := range c.painted() {
		drawChild(cv, ch, f)
	}
}

func (c *Collection) bounds(m matrix.Matrix) (box, bool) {
	return c.boundsDepth(m, 0)
}

func (c *Collection) boundsDepth(m matrix.Matrix, depth int) (box, bool) {
	if depth >= maxDepth {
		return box{}, false
	}
	var out box
	found := false
	for _, ch := range c.children {
		var b box
		var ok bool
		cm := ch.Matrix().Mul(m)
		if sub, isColl := ch.(*Collection); isColl {
			b, ok = sub.boundsDepth(cm, depth+1)
		} else {
			b, ok = ch.bounds(cm)
		}
		if !ok {
			continue
		}
		if !found {
			out, found = b, true
		} else {
			out = out.union(b)
		}
	}
	return out, found
}
