package cube

import (
	"fmt"

	"github.com/Faultbox/cubyot/pkg/math"
)

// ScaleWidget is the in-memory transform widget attached to the cube during
// shape design. It only reports a per-axis scale factor.
type ScaleWidget struct {
	scale math.Vec3
}

// NewScaleWidget returns a widget at identity scale.
func NewScaleWidget() *ScaleWidget {
	return &ScaleWidget{scale: math.Vec3{X: 1, Y: 1, Z: 1}}
}

// Scale returns the current scale factor.
func (w *ScaleWidget) Scale() math.Vec3 {
	return w.scale
}

// SetScale sets the scale factor. Every component must be positive so the
// face normals keep pointing outward.
func (w *ScaleWidget) SetScale(s math.Vec3) error {
	if s.X <= 0 || s.Y <= 0 || s.Z <= 0 {
		return fmt.Errorf("scale components must be positive, got %v", s)
	}
	w.scale = s
	return nil
}

// Matrix returns the transform the widget currently applies to the mesh.
func (w *ScaleWidget) Matrix() math.Mat4 {
	return math.Scale(w.scale)
}

// Reset returns the widget to identity scale.
func (w *ScaleWidget) Reset() {
	w.scale = math.Vec3{X: 1, Y: 1, Z: 1}
}
