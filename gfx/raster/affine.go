package raster

import (
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
)

// Matrices use the row-vector convention of seehuhn.de/go/geom:
//
//	x' = m[0]*x + m[2]*y + m[4]
//	y' = m[1]*x + m[3]*y + m[5]

const eps = 1e-9

// Apply maps (x, y) through m.
func Apply(m matrix.Matrix, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// ApplyVec maps v through m.
func ApplyVec(m matrix.Matrix, v vec.Vec2) vec.Vec2 {
	x, y := Apply(m, v.X, v.Y)
	return vec.Vec2{X: x, Y: y}
}

// Transform maps every point of src through m, appending to dst.
func Transform(dst []vec.Vec2, m matrix.Matrix, src []vec.Vec2) []vec.Vec2 {
	for _, p := range src {
		dst = append(dst, ApplyVec(m, p))
	}
	return dst
}

// Det returns the determinant of the linear part of m.
func Det(m matrix.Matrix) float64 { return m[0]*m[3] - m[1]*m[2] }

// Invert returns the inverse of m. It reports false for singular matrices,
// which draw nothing.
func Invert(m matrix.Matrix) (matrix.Matrix, bool) {
	d := Det(m)
	if math.Abs(d) < eps || math.IsNaN(d) || math.IsInf(d, 0) {
		return matrix.Matrix{}, false
	}
	a, b, c, dd := m[3]/d, -m[1]/d, -m[2]/d, m[0]/d
	return matrix.Matrix{
		a, b,
		c, dd,
		-(m[4]*a + m[5]*c), -(m[4]*b + m[5]*dd),
	}, true
}

// Similarity reports whether m preserves circles, and its scale factor.
func Similarity(m matrix.Matrix) (float64, bool) {
	rot := math.Abs(m[0]-m[3]) < 1e-6 && math.Abs(m[1]+m[2]) < 1e-6
	refl := math.Abs(m[0]+m[3]) < 1e-6 && math.Abs(m[1]-m[2]) < 1e-6
	if !rot && !refl {
		return 0, false
	}
	return math.Hypot(m[0], m[1]), true
}

// MaxScale is the largest stretch m applies to a unit vector, bounded by the
// Frobenius norm of its linear part.
func MaxScale(m matrix.Matrix) float64 {
	return math.Sqrt(m[0]*m[0] + m[1]*m[1] + m[2]*m[2] + m[3]*m[3])
}
