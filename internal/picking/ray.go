package picking

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/cubyot/pkg/math"
)

// Ray represents a ray in 3D space with origin and normalized direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3
}

// NewRay returns a ray with a normalized direction.
func NewRay(origin, direction math.Vec3) Ray {
	return Ray{Origin: origin, Direction: direction.Normalize()}
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// ScreenToRay converts pixel coordinates to a world-space ray.
// invViewProj is the inverse of the view-projection matrix.
func ScreenToRay(screenX, screenY, viewportW, viewportH float32, invViewProj math.Mat4) Ray {
	ndcX := 2*screenX/viewportW - 1
	ndcY := 1 - 2*screenY/viewportH

	near := invViewProj.TransformVec3(math.Vec3{X: ndcX, Y: ndcY, Z: -1})
	far := invViewProj.TransformVec3(math.Vec3{X: ndcX, Y: ndcY, Z: 1})
	return NewRay(near, far.Sub(near))
}

// triangleEpsilon rejects rays parallel to the triangle plane.
const triangleEpsilon = 1e-7

// IntersectTriangle returns the distance along r to triangle (a, b, c).
// Triangles facing away from the ray are not hit.
func (r Ray) IntersectTriangle(a, b, c math.Vec3) (float32, bool) {
	e1 := b.Sub(a)
	e2 := c.Sub(a)
	if e1.Cross(e2).Dot(r.Direction) >= 0 {
		return 0, false
	}

	p := r.Direction.Cross(e2)
	det := e1.Dot(p)
	if math32.Abs(det) < triangleEpsilon {
		return 0, false
	}
	inv := 1 / det

	s := r.Origin.Sub(a)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}
	q := s.Cross(e1)
	v := r.Direction.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t := e2.Dot(q) * inv
	if t < 0 {
		return 0, false
	}
	return t, true
}
