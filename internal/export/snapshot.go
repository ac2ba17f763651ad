// Package export hands a finished cube to an asset exporter: a deep-copied
// snapshot of the mesh and per-face materials plus the export options, and
// a writer that lays them out on disk.
package export

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/clone"
	"github.com/jinzhu/copier"

	"github.com/Faultbox/cubyot/internal/cube"
	"github.com/Faultbox/cubyot/pkg/math"
)

// Options are the two switches the exporter understands.
type Options struct {
	TRS    bool // embed transforms as translation/rotation/scale
	Binary bool // package as a single binary asset
}

// AssetName returns the file name of the asset the exporter produces.
func (o Options) AssetName() string {
	if o.Binary {
		return "cubyot.glb"
	}
	return "cubyot.gltf"
}

// FaceMaterial is one face's material: a flat color, optionally tinted
// onto a baked texture.
type FaceMaterial struct {
	Index   int
	Normal  math.Vec3
	Color   string
	Texture *image.RGBA
}

// Snapshot is an immutable copy of the cube taken at export time. It shares
// no memory with the live session.
type Snapshot struct {
	Positions []math.Vec3
	UVs       []math.Vec2
	Indices   []uint32
	Materials []FaceMaterial
	Options   Options
}

// Capture copies c into a new Snapshot.
func Capture(c *cube.Cube, opts Options) (*Snapshot, error) {
	snap := &Snapshot{Options: opts}
	if err := copier.CopyWithOption(snap, c, copier.Option{DeepCopy: true}); err != nil {
		return nil, fmt.Errorf("copying mesh: %w", err)
	}

	snap.Materials = make([]FaceMaterial, 0, cube.FaceCount)
	for i := range c.Faces {
		m := c.Faces[i].Material()
		fm := FaceMaterial{
			Index:  c.Faces[i].Index,
			Normal: c.Faces[i].Normal,
			Color:  cube.Hex(m.Color),
		}
		if m.Texture != nil {
			fm.Texture = clone.AsRGBA(m.Texture)
		}
		snap.Materials = append(snap.Materials, fm)
	}
	return snap, nil
}

// Textured reports how many faces carry a texture.
func (s *Snapshot) Textured() int {
	n := 0
	for _, m := range s.Materials {
		if m.Texture != nil {
			n++
		}
	}
	return n
}
