// Package quad holds the destination quad of a face design episode and the
// rotate/flip permutations applied to it.
package quad

import (
	"github.com/Faultbox/cubyot/pkg/homography"
	"github.com/Faultbox/cubyot/pkg/math"
)

// Destination is the ordered set of four texture-space points, one per
// control point corner identity. The zero value is empty.
type Destination struct {
	points homography.Quad
	set    bool
}

// corner is a rectangle corner expressed as fractions of (width, height).
type corner struct{ u, v float64 }

var (
	bottomLeft  = corner{0, 1}
	bottomRight = corner{1, 1}
	topRight    = corner{1, 0}
	topLeft     = corner{0, 0}
)

// Seed corner layouts per face normal. The top and bottom faces start rotated
// so the photo reads upright on the default cube texture orientation.
var (
	sideSeed   = [4]corner{bottomLeft, bottomRight, topRight, topLeft}
	topSeed    = [4]corner{bottomRight, topRight, topLeft, bottomLeft}
	bottomSeed = [4]corner{topLeft, bottomLeft, bottomRight, topRight}
)

// Seed initializes the quad for a w x h texture on a face with the given
// outward normal.
func Seed(normal math.Vec3, w, h int) Destination {
	layout := sideSeed
	if axis, sign := normal.DominantAxis(); axis == math.AxisY {
		layout = bottomSeed
		if sign > 0 {
			layout = topSeed
		}
	}

	var d Destination
	for i, c := range layout {
		d.points[2*i] = c.u * float64(w)
		d.points[2*i+1] = c.v * float64(h)
	}
	d.set = true
	return d
}

// FromQuad wraps an explicit point sequence.
func FromQuad(q homography.Quad) Destination {
	return Destination{points: q, set: true}
}

// Empty reports whether the quad has not been seeded.
func (d Destination) Empty() bool {
	return !d.set
}

// Quad returns the flat point sequence.
func (d Destination) Quad() homography.Quad {
	return d.points
}

// Rotate moves every point one position to the left: point 0 becomes point 3.
func (d Destination) Rotate() Destination {
	return d.permute([4]int{1, 2, 3, 0})
}

// FlipVertical reorders the points as [p3, p2, p1, p0].
func (d Destination) FlipVertical() Destination {
	return d.permute([4]int{3, 2, 1, 0})
}

// FlipHorizontal reorders the points as [p1, p0, p3, p2].
func (d Destination) FlipHorizontal() Destination {
	return d.permute([4]int{1, 0, 3, 2})
}

// permute returns a quad whose i-th point is the order[i]-th point of d.
// An empty quad stays empty.
func (d Destination) permute(order [4]int) Destination {
	if !d.set {
		return d
	}
	out := Destination{set: true}
	for i, from := range order {
		out.points[2*i] = d.points[2*from]
		out.points[2*i+1] = d.points[2*from+1]
	}
	return out
}
