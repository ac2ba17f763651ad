package picking

import "github.com/Faultbox/cubyot/pkg/math"

// Mesh is a triangle mesh that can be hit-tested.
type Mesh interface {
	TriangleCount() int
	Triangle(i int) (a, b, c math.Vec3)
}

// Hit is the result of a successful hit test.
type Hit struct {
	Triangle int
	Point    math.Vec3
	Normal   math.Vec3
	Distance float32
}

// Picker hit-tests a pointer ray against the scene.
type Picker interface {
	Pick(r Ray) (Hit, bool)
}

// MeshPicker hit-tests rays against the front faces of a mesh.
type MeshPicker struct {
	Mesh Mesh
}

// Pick returns the nearest front-facing triangle hit by r.
func (p MeshPicker) Pick(r Ray) (Hit, bool) {
	var best Hit
	found := false
	for i := 0; i < p.Mesh.TriangleCount(); i++ {
		a, b, c := p.Mesh.Triangle(i)
		t, ok := r.IntersectTriangle(a, b, c)
		if !ok || (found && t >= best.Distance) {
			continue
		}
		best = Hit{
			Triangle: i,
			Point:    r.At(t),
			Normal:   b.Sub(a).Cross(c.Sub(a)).Normalize(),
			Distance: t,
		}
		found = true
	}
	return best, found
}
