// Package camera provides the viewpoint used to turn screen coordinates into
// pick rays against the cube.
package camera

import (
	"errors"

	"github.com/chewxy/math32"

	"github.com/Faultbox/cubyot/internal/picking"
	"github.com/Faultbox/cubyot/pkg/math"
)

// ErrSingularView is returned when the view-projection cannot be inverted,
// e.g. when Position equals Target.
var ErrSingularView = errors.New("camera: view-projection is not invertible")

// Camera is a perspective camera orbiting a target point.
type Camera struct {
	Position math.Vec3
	Target   math.Vec3

	FOV       float32 // vertical, degrees
	Near, Far float32
	Width     int
	Height    int

	// Constraints
	MinDistance float32
	MaxDistance float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32
}

// New creates a camera at position looking at target.
func New(position, target math.Vec3, fov float32, width, height int) *Camera {
	return &Camera{
		Position:        position,
		Target:          target,
		FOV:             fov,
		Near:            0.1,
		Far:             1000,
		Width:           width,
		Height:          height,
		MinDistance:     1,
		MaxDistance:     100,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
}

// ViewMatrix returns the view matrix for this camera.
func (c *Camera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position, c.Target, math.Vec3{Y: 1})
}

// ProjectionMatrix returns the perspective projection for the viewport.
func (c *Camera) ProjectionMatrix() math.Mat4 {
	aspect := float32(c.Width) / float32(c.Height)
	return math.Perspective(c.FOV*math32.Pi/180, aspect, c.Near, c.Far)
}

// ViewProjection returns projection * view.
func (c *Camera) ViewProjection() math.Mat4 {
	return c.ProjectionMatrix().Mul(c.ViewMatrix())
}

// Ray returns the world-space ray through screen pixel (x, y), with the
// origin at the top-left of the viewport.
func (c *Camera) Ray(x, y float32) (picking.Ray, error) {
	inv, ok := c.ViewProjection().Inverse()
	if !ok {
		return picking.Ray{}, ErrSingularView
	}
	return picking.ScreenToRay(x, y, float32(c.Width), float32(c.Height), inv), nil
}

// Project returns the screen pixel p lands on. ok is false for points behind
// the camera.
func (c *Camera) Project(p math.Vec3) (x, y float32, ok bool) {
	clip := c.ViewProjection().MulVec4(math.Vec4{p.X, p.Y, p.Z, 1})
	if clip[3] <= 0 {
		return 0, 0, false
	}
	ndcX, ndcY := clip[0]/clip[3], clip[1]/clip[3]
	x = (ndcX + 1) / 2 * float32(c.Width)
	y = (1 - ndcY) / 2 * float32(c.Height)
	return x, y, true
}

// Distance returns the distance from the camera to its target.
func (c *Camera) Distance() float32 {
	return c.Position.Sub(c.Target).Length()
}

// HandleDrag orbits the camera around the target based on a pointer drag.
func (c *Camera) HandleDrag(deltaX, deltaY float32) {
	offset := c.Position.Sub(c.Target)
	r := offset.Length()
	if r == 0 {
		return
	}
	yaw := math32.Atan2(offset.X, offset.Z)
	pitch := math32.Asin(offset.Y / r)

	yaw -= deltaX * c.DragSensitivity
	pitch += deltaY * c.DragSensitivity
	if pitch > c.MaxPitch {
		pitch = c.MaxPitch
	}
	if pitch < -c.MaxPitch {
		pitch = -c.MaxPitch
	}

	c.Position = c.Target.Add(math.Vec3{
		X: r * math32.Cos(pitch) * math32.Sin(yaw),
		Y: r * math32.Sin(pitch),
		Z: r * math32.Cos(pitch) * math32.Cos(yaw),
	})
}

// HandleZoom moves the camera toward or away from the target.
func (c *Camera) HandleZoom(delta float32) {
	offset := c.Position.Sub(c.Target)
	r := offset.Length()
	if r == 0 {
		return
	}
	next := r - delta*r*c.ZoomSensitivity
	if next < c.MinDistance {
		next = c.MinDistance
	}
	if next > c.MaxDistance {
		next = c.MaxDistance
	}
	c.Position = c.Target.Add(offset.Scale(next / r))
}
