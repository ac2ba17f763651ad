// Package cube models the editable cube: its mesh, its six faces and the
// scale widget used while the shape is being designed.
package cube

import (
	"fmt"
	"image"
	"image/color"

	"github.com/Faultbox/cubyot/pkg/math"
)

// FaceCount is the number of cube sides.
const FaceCount = 6

const (
	verticesPerFace  = 4
	trianglesPerFace = 2
)

// Face is one side of the cube. Texture is nil until a face design episode
// commits a resample.
type Face struct {
	Index       int
	Normal      math.Vec3
	Color       color.RGBA
	Texture     *image.RGBA
	Highlighted bool
}

// Cube is a box mesh with four vertices and two triangles per face.
// Faces are ordered +X, -X, +Y, -Y, +Z, -Z.
type Cube struct {
	Positions []math.Vec3
	UVs       []math.Vec2
	Indices   []uint32
	Faces     [FaceCount]Face
}

// faceLayout describes how a face's 2x2 vertex grid maps onto the axes.
type faceLayout struct {
	u, v, w    math.Axis
	uDir, vDir float32
	wSign      float32
}

var layouts = [FaceCount]faceLayout{
	{u: math.AxisZ, v: math.AxisY, w: math.AxisX, uDir: -1, vDir: -1, wSign: 1},
	{u: math.AxisZ, v: math.AxisY, w: math.AxisX, uDir: 1, vDir: -1, wSign: -1},
	{u: math.AxisX, v: math.AxisZ, w: math.AxisY, uDir: 1, vDir: 1, wSign: 1},
	{u: math.AxisX, v: math.AxisZ, w: math.AxisY, uDir: 1, vDir: -1, wSign: -1},
	{u: math.AxisX, v: math.AxisY, w: math.AxisZ, uDir: 1, vDir: -1, wSign: 1},
	{u: math.AxisX, v: math.AxisY, w: math.AxisZ, uDir: -1, vDir: -1, wSign: -1},
}

// New builds a unit cube centered at the origin with every face painted col.
func New(col color.RGBA) *Cube {
	cb := &Cube{
		Positions: make([]math.Vec3, 0, FaceCount*verticesPerFace),
		UVs:       make([]math.Vec2, 0, FaceCount*verticesPerFace),
		Indices:   make([]uint32, 0, FaceCount*trianglesPerFace*3),
	}
	for i, l := range layouts {
		base := uint32(len(cb.Positions))
		for iy := 0; iy < 2; iy++ {
			for ix := 0; ix < 2; ix++ {
				var p math.Vec3
				p = p.With(l.u, (float32(ix)-0.5)*l.uDir)
				p = p.With(l.v, (float32(iy)-0.5)*l.vDir)
				p = p.With(l.w, 0.5*l.wSign)
				cb.Positions = append(cb.Positions, p)
				cb.UVs = append(cb.UVs, math.Vec2{X: float32(ix), Y: 1 - float32(iy)})
			}
		}
		a, b, c, d := base, base+2, base+3, base+1
		cb.Indices = append(cb.Indices, a, b, d, b, c, d)

		cb.Faces[i] = Face{
			Index:  i,
			Normal: math.Vec3{}.With(l.w, l.wSign),
			Color:  col,
		}
	}
	return cb
}

// FaceOfTriangle collapses a triangle index to the index of the face it
// belongs to.
func FaceOfTriangle(triangle int) int {
	return (triangle - triangle%trianglesPerFace) / trianglesPerFace
}

// TriangleCount returns the number of triangles in the mesh.
func (c *Cube) TriangleCount() int {
	return len(c.Indices) / 3
}

// Triangle returns the three corners of triangle i.
func (c *Cube) Triangle(i int) (a, b, d math.Vec3) {
	return c.Positions[c.Indices[3*i]], c.Positions[c.Indices[3*i+1]], c.Positions[c.Indices[3*i+2]]
}

// Face returns face i or an error for an index outside 0..5.
func (c *Cube) Face(i int) (*Face, error) {
	if i < 0 || i >= FaceCount {
		return nil, fmt.Errorf("face index %d out of range", i)
	}
	return &c.Faces[i], nil
}

// Corners returns the four vertices of face i in grid order: (0,0), (1,0),
// (0,1), (1,1).
func (c *Cube) Corners(face int) [4]math.Vec3 {
	base := face * verticesPerFace
	return [4]math.Vec3{
		c.Positions[base],
		c.Positions[base+1],
		c.Positions[base+2],
		c.Positions[base+3],
	}
}

// Bounds returns the bounding box of face i.
func (c *Cube) Bounds(face int) math.Box3 {
	p := c.Corners(face)
	return math.BoxFromPoints(p[:]...)
}

// Outline returns the four boundary edges of face i.
func (c *Cube) Outline(face int) []math.Segment {
	p := c.Corners(face)
	return []math.Segment{
		{A: p[0], B: p[1]},
		{A: p[1], B: p[3]},
		{A: p[3], B: p[2]},
		{A: p[2], B: p[0]},
	}
}

// Bake applies m to every vertex position permanently.
func (c *Cube) Bake(m math.Mat4) {
	for i, p := range c.Positions {
		c.Positions[i] = m.TransformVec3(p)
	}
}

// Material is what an exporter paints a face with. Texture, when present,
// is tinted by Color.
type Material struct {
	Color   color.RGBA
	Texture *image.RGBA
}

// Material returns the face's base material. Hover highlighting is a
// presentation detail and never leaks into it.
func (f *Face) Material() Material {
	return Material{Color: f.Color, Texture: f.Texture}
}
