// Package picking keeps a face design episode's control points on their
// picking plane, derives the source quad from them, and hit-tests pointer
// rays against the cube.
package picking

import (
	"errors"
	"fmt"

	"github.com/Faultbox/cubyot/pkg/homography"
	"github.com/Faultbox/cubyot/pkg/math"
)

// CornerCount is the number of control points on a picking plane.
const CornerCount = 4

// ErrEmptyFootprint is returned when a plane cannot be fitted on a face.
var ErrEmptyFootprint = errors.New("picking: face or image has no area")

// ControlPoint is a draggable corner. Corner is stable for the lifetime of
// the point.
type ControlPoint struct {
	Corner   int
	Position math.Vec3
}

// Plane is a flat rectangle just outside a face, sized to the uploaded
// image's aspect ratio, on which the control points live.
type Plane struct {
	Normal      math.Vec3
	Bounds      math.Box3
	ImageWidth  int
	ImageHeight int

	key     faceKey
	mapping axisMapping
}

// NewPlane fits an imageWidth x imageHeight picture inside the footprint of
// a face with the given bounds and outward normal, preserving aspect, and
// places it offset units outside the face.
func NewPlane(face math.Box3, normal math.Vec3, imageWidth, imageHeight int, offset float32) (*Plane, error) {
	if imageWidth <= 0 || imageHeight <= 0 {
		return nil, fmt.Errorf("image %dx%d: %w", imageWidth, imageHeight, ErrEmptyFootprint)
	}
	key, m := mappingFor(normal)

	size := face.Size()
	faceW, faceH := size.Get(m.u), size.Get(m.v)
	if faceW <= 0 || faceH <= 0 {
		return nil, fmt.Errorf("face %v: %w", size, ErrEmptyFootprint)
	}

	imageRatio := float32(imageWidth) / float32(imageHeight)
	width, height := faceW, faceW/imageRatio
	if faceW/faceH > imageRatio {
		width, height = faceH*imageRatio, faceH
	}

	center := face.Center()
	level := face.Max.Get(key.axis)
	if key.sign < 0 {
		level = face.Min.Get(key.axis)
	}
	level += float32(key.sign) * offset

	var lo, hi math.Vec3
	lo = lo.With(m.u, center.Get(m.u)-width/2).With(m.v, center.Get(m.v)-height/2).With(key.axis, level)
	hi = hi.With(m.u, center.Get(m.u)+width/2).With(m.v, center.Get(m.v)+height/2).With(key.axis, level)

	return &Plane{
		Normal:      normal,
		Bounds:      math.Box3{Min: lo, Max: hi},
		ImageWidth:  imageWidth,
		ImageHeight: imageHeight,
		key:         key,
		mapping:     m,
	}, nil
}

// Level returns the plane's coordinate along the face normal axis.
func (p *Plane) Level() float32 {
	return p.Bounds.Min.Get(p.key.axis)
}

// Constrain clamps position to the plane's bounds on the two in-plane axes
// and pins it to the plane level on the normal axis.
func (p *Plane) Constrain(position math.Vec3) math.Vec3 {
	return p.Bounds.Clamp(position).With(p.key.axis, p.Level())
}

// Pixel maps a position on the plane to image pixel coordinates.
func (p *Plane) Pixel(position math.Vec3) (x, y float64) {
	m := p.mapping
	x = toPixel(position.Get(m.u), p.Bounds.Min.Get(m.u), p.Bounds.Max.Get(m.u), p.ImageWidth, m.uFlip)
	y = toPixel(position.Get(m.v), p.Bounds.Min.Get(m.v), p.Bounds.Max.Get(m.v), p.ImageHeight, m.vFlip)
	return x, y
}

// Position maps image pixel coordinates to a point on the plane.
func (p *Plane) Position(x, y float64) math.Vec3 {
	m := p.mapping
	var pos math.Vec3
	pos = pos.With(m.u, fromPixel(x, p.Bounds.Min.Get(m.u), p.Bounds.Max.Get(m.u), p.ImageWidth, m.uFlip))
	pos = pos.With(m.v, fromPixel(y, p.Bounds.Min.Get(m.v), p.Bounds.Max.Get(m.v), p.ImageHeight, m.vFlip))
	return pos.With(p.key.axis, p.Level())
}

// ControlPoints returns the four initial control points at the image's
// bottom-left, bottom-right, top-right and top-left corners.
func (p *Plane) ControlPoints() [CornerCount]ControlPoint {
	w, h := float64(p.ImageWidth), float64(p.ImageHeight)
	pixels := homography.Quad{0, h, w, h, w, 0, 0, 0}
	var pts [CornerCount]ControlPoint
	for i := range pts {
		x, y := pixels.Point(i)
		pts[i] = ControlPoint{Corner: i, Position: p.Position(x, y)}
	}
	return pts
}

// SourceQuad rescales the control points' in-plane coordinates into image
// pixel space, ordered by corner identity.
func (p *Plane) SourceQuad(points [CornerCount]ControlPoint) homography.Quad {
	var q homography.Quad
	for _, cp := range points {
		x, y := p.Pixel(cp.Position)
		q[2*cp.Corner] = x
		q[2*cp.Corner+1] = y
	}
	return q
}

// Outline returns the edges connecting the control points: 3-2, 3-0, 1-2
// and 1-0.
func Outline(points [CornerCount]ControlPoint) []math.Segment {
	var byCorner [CornerCount]math.Vec3
	for _, cp := range points {
		byCorner[cp.Corner] = cp.Position
	}
	return []math.Segment{
		{A: byCorner[3], B: byCorner[2]},
		{A: byCorner[3], B: byCorner[0]},
		{A: byCorner[1], B: byCorner[2]},
		{A: byCorner[1], B: byCorner[0]},
	}
}
