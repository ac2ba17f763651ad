// Package homography solves the 8-coefficient projective mapping between two
// planar quadrilaterals.
package homography

import (
	"errors"
	"math"
)

// ErrDegenerateCorrespondence is returned when the four correspondences do not
// determine a projective mapping, typically because three or more points of
// either quad are collinear.
var ErrDegenerateCorrespondence = errors.New("homography: degenerate correspondence")

// Quad is four (x, y) points stored as a flat sequence [x0 y0 x1 y1 x2 y2 x3 y3].
type Quad [8]float64

// Point returns the i-th corner.
func (q Quad) Point(i int) (x, y float64) {
	return q[2*i], q[2*i+1]
}

// Rect returns the quad of a w x h rectangle in the corner order used for
// side faces: (0,h), (w,h), (w,0), (0,0).
func Rect(w, h float64) Quad {
	return Quad{0, h, w, h, w, 0, 0, 0}
}

// Coefficients are the projective coefficients a..h. A point (x, y) maps to
//
//	X = (a*x + b*y + c) / (g*x + h*y + 1)
//	Y = (d*x + e*y + f) / (g*x + h*y + 1)
type Coefficients [8]float64

// Identity returns the coefficients of the identity mapping.
func Identity() Coefficients {
	return Coefficients{1, 0, 0, 0, 1, 0, 0, 0}
}

// Apply maps (x, y). ok is false when the projective denominator vanishes.
func (c Coefficients) Apply(x, y float64) (X, Y float64, ok bool) {
	w := c[6]*x + c[7]*y + 1
	if w == 0 {
		return 0, 0, false
	}
	return (c[0]*x + c[1]*y + c[2]) / w, (c[3]*x + c[4]*y + c[5]) / w, true
}

// collinearTolerance is relative to the squared extent of the quad.
const collinearTolerance = 1e-9

// pivotTolerance bounds the smallest acceptable pivot after row scaling.
const pivotTolerance = 1e-12

// Solve returns the coefficients mapping every corner of from onto the
// corner of to with the same index. Callers pass the quads in a consistent
// corner order.
func Solve(from, to Quad) (Coefficients, error) {
	if degenerate(from) || degenerate(to) {
		return Coefficients{}, ErrDegenerateCorrespondence
	}

	var a [8][9]float64
	for i := 0; i < 4; i++ {
		x, y := from.Point(i)
		X, Y := to.Point(i)
		// X*(g*x + h*y + 1) = a*x + b*y + c
		a[2*i] = [9]float64{x, y, 1, 0, 0, 0, -x * X, -y * X, X}
		// Y*(g*x + h*y + 1) = d*x + e*y + f
		a[2*i+1] = [9]float64{0, 0, 0, x, y, 1, -x * Y, -y * Y, Y}
	}

	sol, ok := solveAugmented(a)
	if !ok {
		return Coefficients{}, ErrDegenerateCorrespondence
	}
	for _, v := range sol {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Coefficients{}, ErrDegenerateCorrespondence
		}
	}
	return Coefficients(sol), nil
}

// degenerate reports whether any three corners of q are collinear.
func degenerate(q Quad) bool {
	extent := 0.0
	for i := 0; i < 4; i++ {
		for j := i + 1; j < 4; j++ {
			xi, yi := q.Point(i)
			xj, yj := q.Point(j)
			extent = math.Max(extent, (xi-xj)*(xi-xj)+(yi-yj)*(yi-yj))
		}
	}
	if extent == 0 {
		return true
	}
	for skip := 0; skip < 4; skip++ {
		var idx [3]int
		n := 0
		for i := 0; i < 4; i++ {
			if i != skip {
				idx[n] = i
				n++
			}
		}
		x0, y0 := q.Point(idx[0])
		x1, y1 := q.Point(idx[1])
		x2, y2 := q.Point(idx[2])
		area2 := (x1-x0)*(y2-y0) - (y1-y0)*(x2-x0)
		if math.Abs(area2) <= collinearTolerance*extent {
			return true
		}
	}
	return false
}
