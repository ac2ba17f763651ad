package session

import "errors"

var (
	// ErrNoActiveFace is returned by face design operations when no face is selected.
	ErrNoActiveFace = errors.New("session: no active face")

	// ErrWrongStage is returned when an action is not valid in the current stage.
	ErrWrongStage = errors.New("session: operation not valid in current stage")

	// ErrNoHit is returned when a selection ray misses the cube.
	ErrNoHit = errors.New("session: ray does not hit the cube")

	// ErrNoControlPoints is returned when dragging before an image was uploaded.
	ErrNoControlPoints = errors.New("session: no control points")
)
