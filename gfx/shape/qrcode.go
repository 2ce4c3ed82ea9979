package shape

import (
	"fmt"

	"ledgl/gfx/pixel"
	"ledgl/gfx/raster"

	"github.com/skip2/go-qrcode"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
)

// QRCode draws a QR symbol with its top-left corner at its position, each
// module a filled square of the given size. Light modules are left empty.
type QRCode struct {
	Attrs
	bits   [][]bool
	module float64
}

// NewQRCode encodes content at medium error correction, without the quiet
// zone border.
func NewQRCode(x, y float64, content string, module float64, c pixel.Color) (*QRCode, error) {
	q, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("shape: qrcode: %w", err)
	}
	q.DisableBorder = true
	if module <= 0 {
		module = 1
	}
	s := &QRCode{bits: q.Bitmap(), module: module}
	s.init(s, x, y, c)
	return s, nil
}

// Modules is the symbol size in modules.
func (q *QRCode) Modules() int { return len(q.bits) }

// Dark reports whether the module at (col, row) is dark.
func (q *QRCode) Dark(col, row int) bool {
	if row < 0 || row >= len(q.bits) || col < 0 || col >= len(q.bits[row]) {
		return false
	}
	return q.bits[row][col]
}

func (q *QRCode) draw(c raster.Canvas, f frame) {
	b := q.brush(f)
	sq := make([]vec.Vec2, 4)
	dev := make([]vec.Vec2, 0, 4)
	for row, bits := range q.bits {
		for col, dark := range bits {
			if !dark {
				continue
			}
			x0 := q.anchor.X + float64(col)*q.module
			y0 := q.anchor.Y + float64(row)*q.module
			x1, y1 := x0+q.module, y0+q.module
			sq[0], sq[1], sq[2], sq[3] = vec.Vec2{X: x0, Y: y0}, vec.Vec2{X: x1, Y: y0}, vec.Vec2{X: x1, Y: y1}, vec.Vec2{X: x0, Y: y1}
			raster.FillPolygon(c, raster.Transform(dev[:0], f.m, sq), b)
		}
	}
}

func (q *QRCode) bounds(m matrix.Matrix) (box, bool) {
	size := float64(len(q.bits)) * q.module
	x0, y0 := q.anchor.X, q.anchor.Y
	return boxOf(raster.Transform(nil, m, []vec.Vec2{
		{X: x0, Y: y0}, {X: x0 + size, Y: y0}, {X: x0 + size, Y: y0 + size}, {X: x0, Y: y0 + size},
	}))
}
