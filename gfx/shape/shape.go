package shape

import (
	"ledgl/gfx/pixel"
	"ledgl/gfx/raster"
	"ledgl/gfx/texture"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
)

// Shape is any drawable scene node.
type Shape interface {
	Attributes() *Attrs
	// Matrix maps the shape's construction coordinates into its parent.
	Matrix() matrix.Matrix

	draw(c raster.Canvas, f frame)
	bounds(m matrix.Matrix) (box, bool)
}

// frame is the accumulated state of the ancestors of a shape.
type frame struct {
	m     matrix.Matrix // construction space → device
	shift vec.Vec2      // translation-only part of m
	depth int
}

// Attrs holds the attributes common to every shape. Shapes embed it, so its
// methods are available on every concrete shape.
type Attrs struct {
	self Shape

	anchor vec.Vec2
	pos    vec.Vec2
	z      float64
	angle  float64
	sx, sy float64

	pivot     vec.Vec2
	pivotSet  bool
	origin    vec.Vec2
	originSet bool

	color pixel.Color

	tex      *texture.Texture
	fixTex   bool
	uvOffset vec.Vec2
	uvScale  vec.Vec2
	uvRot    float64

	collider *Collider
	fitted   bool
}

func (a *Attrs) init(self Shape, x, y float64, c pixel.Color) {
	a.self = self
	a.anchor = vec.Vec2{X: x, Y: y}
	a.pos = a.anchor
	a.sx, a.sy = 1, 1
	a.uvScale = vec.Vec2{X: 1, Y: 1}
	a.color = c
}

func (a *Attrs) Attributes() *Attrs { return a }

// Matrix returns the local transform.
func (a *Attrs) Matrix() matrix.Matrix {
	p := a.pivotPoint()
	o := a.originPoint()
	d := a.pos.Sub(a.anchor)
	return matrix.Identity.
		Translate(d.X, d.Y).
		Translate(-p.X, -p.Y).
		RotateDeg(a.angle).
		Translate(p.X, p.Y).
		Translate(-o.X, -o.Y).
		Mul(matrix.Scale(a.sx, a.sy)).
		Translate(o.X, o.Y)
}

func (a *Attrs) pivotPoint() vec.Vec2 {
	if a.pivotSet {
		return a.pivot
	}
	return a.pos
}

func (a *Attrs) originPoint() vec.Vec2 {
	if a.originSet {
		return a.origin
	}
	return a.pivotPoint()
}

func (a *Attrs) SetPosition(x, y float64) { a.pos = vec.Vec2{X: x, Y: y} }

func (a *Attrs) Translate(dx, dy float64) {
	a.pos.X += dx
	a.pos.Y += dy
}

func (a *Attrs) SetX(x float64) { a.pos.X = x }
func (a *Attrs) SetY(y float64) { a.pos.Y = y }
func (a *Attrs) X() float64     { return a.pos.X }
func (a *Attrs) Y() float64     { return a.pos.Y }

// SetPivot fixes the rotation center, in parent coordinates.
func (a *Attrs) SetPivot(x, y float64) {
	a.pivot = vec.Vec2{X: x, Y: y}
	a.pivotSet = true
}

// Rotate adds delta degrees to the rotation angle.
func (a *Attrs) Rotate(delta float64)           { a.angle += delta }
func (a *Attrs) SetRotationAngle(deg float64)   { a.angle = deg }
func (a *Attrs) RotationAngle() float64         { return a.angle }
func (a *Attrs) ScaleX() float64                { return a.sx }
func (a *Attrs) ScaleY() float64                { return a.sy }
func (a *Attrs) SetColor(c pixel.Color)         { a.color = c }
func (a *Attrs) Color() pixel.Color             { return a.color }
func (a *Attrs) SetZ(z float64)                 { a.z = z }
func (a *Attrs) Z() float64                     { return a.z }
func (a *Attrs) SetTexture(t *texture.Texture)  { a.tex = t }
func (a *Attrs) Texture() *texture.Texture      { return a.tex }
func (a *Attrs) SetFixTexture(fixed bool)       { a.fixTex = fixed }
func (a *Attrs) SetTextureRotation(deg float64) { a.uvRot = deg }
func (a *Attrs) SetUVRotation(deg float64)      { a.uvRot = deg }
func (a *Attrs) SetUVOffsetX(x float64)         { a.uvOffset.X = x }
func (a *Attrs) SetUVOffsetY(y float64)         { a.uvOffset.Y = y }
func (a *Attrs) SetUVScaleX(x float64)          { a.uvScale.X = x }
func (a *Attrs) SetUVScaleY(y float64)          { a.uvScale.Y = y }

// SetScale sets both scale factors about the pivot, dropping any origin
// left by SetScaleAbout. SetScaleX and SetScaleY do the same per axis.
func (a *Attrs) SetScale(sx, sy float64) {
	a.sx, a.sy = sx, sy
	a.originSet = false
}

func (a *Attrs) SetScaleX(sx float64) {
	a.sx = sx
	a.originSet = false
}

func (a *Attrs) SetScaleY(sy float64) {
	a.sy = sy
	a.originSet = false
}

// SetScaleAbout scales about a fixed origin instead of the pivot.
func (a *Attrs) SetScaleAbout(sx, sy, ox, oy float64) {
	a.sx, a.sy = sx, sy
	a.origin = vec.Vec2{X: ox, Y: oy}
	a.originSet = true
}

func (a *Attrs) SetTextureOffset(x, y float64) { a.uvOffset = vec.Vec2{X: x, Y: y} }
func (a *Attrs) SetTextureScale(x, y float64)  { a.uvScale = vec.Vec2{X: x, Y: y} }

// Draw rasterizes root and everything below it onto c.
func Draw(c raster.Canvas, root Shape) {
	if c == nil || root == nil {
		return
	}
	drawChild(c, root, frame{m: matrix.Identity})
}

// maxDepth bounds collection nesting, so a collection that ends up inside
// itself cannot recurse forever.
const maxDepth = 64

func drawChild(c raster.Canvas, s Shape, parent frame) {
	if s == nil || parent.depth >= maxDepth {
		return
	}
	a := s.Attributes()
	f := frame{
		m:     s.Matrix().Mul(parent.m),
		shift: parent.shift.Add(a.pos.Sub(a.anchor)),
		depth: parent.depth + 1,
	}
	if _, ok := raster.Invert(f.m); !ok {
		return
	}
	s.draw(c, f)
}
