package session

import "go.uber.org/zap"

// Stage is the interaction mode gating which operations are valid.
type Stage int

const (
	// ShapeDesign is the initial stage: the cube is reshaped via the scale widget.
	ShapeDesign Stage = iota
	// FacePicking lets the user hover and select a face.
	FacePicking
	// FaceDesign edits the selected face's color or photo texture.
	FaceDesign
)

func (s Stage) String() string {
	switch s {
	case ShapeDesign:
		return "shape-design"
	case FacePicking:
		return "face-picking"
	case FaceDesign:
		return "face-design"
	default:
		return "unknown"
	}
}

// transition leaves the current stage and enters next. Leaving a stage drops
// everything scoped to it.
func (s *Session) transition(next Stage) {
	switch s.stage {
	case FacePicking:
		s.clearHover()
	case FaceDesign:
		s.episode = nil
		s.active = noFace
		s.outline = nil
	}
	s.log.Debug("stage changed", zap.Stringer("from", s.stage), zap.Stringer("to", next))
	s.stage = next
}
