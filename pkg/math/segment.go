package math

// Segment is a line segment between two points.
type Segment struct {
	A, B Vec3
}
