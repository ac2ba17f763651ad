// Package session implements the cube designer's stage state machine and the
// face design episode that turns dragged control points into a warped face
// texture.
//
// A Session is safe for concurrent use; every operation runs to completion,
// including any resample it triggers, before the next one starts.
package session

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/cubyot/internal/cube"
	"github.com/Faultbox/cubyot/internal/logger"
	"github.com/Faultbox/cubyot/internal/picking"
	"github.com/Faultbox/cubyot/pkg/math"
	"github.com/Faultbox/cubyot/pkg/warp"
)

const noFace = -1

// Options configures a Session.
type Options struct {
	PlaneOffset    float32
	EdgeMode       warp.EdgeMode
	MaxTextureSize int
	DefaultColor   color.RGBA
	HighlightColor color.RGBA

	// Picker hit-tests rays. Defaults to a MeshPicker over the session cube.
	Picker picking.Picker

	// OnTexture is called with the new raster every time a face texture is
	// replaced. It runs with the session locked and must not call back into it.
	OnTexture func(face int, tex *image.RGBA)

	Logger *zap.Logger
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		PlaneOffset:    0.005,
		EdgeMode:       warp.EdgeClamp,
		MaxTextureSize: 2048,
		DefaultColor:   cube.White,
		HighlightColor: cube.Highlight,
	}
}

// Session owns the cube and all interaction state for one design session.
type Session struct {
	mu sync.Mutex

	opts   Options
	log    *zap.Logger
	cube   *cube.Cube
	widget *cube.ScaleWidget
	picker picking.Picker

	stage       Stage
	hovered     int
	active      int
	pickerColor color.RGBA
	outline     []math.Segment
	episode     *episode
}

// New creates a session in ShapeDesign with a fresh unit cube.
func New(opts Options) *Session {
	if opts.Logger == nil {
		opts.Logger = logger.Named("session")
	}
	c := cube.New(opts.DefaultColor)
	picker := opts.Picker
	if picker == nil {
		picker = picking.MeshPicker{Mesh: c}
	}
	return &Session{
		opts:        opts,
		log:         opts.Logger,
		cube:        c,
		widget:      cube.NewScaleWidget(),
		picker:      picker,
		stage:       ShapeDesign,
		hovered:     noFace,
		active:      noFace,
		pickerColor: opts.DefaultColor,
	}
}

// Stage returns the active stage.
func (s *Session) Stage() Stage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stage
}

// View runs fn with the cube while the session is locked. fn must not keep
// references to the cube after it returns.
func (s *Session) View(fn func(c *cube.Cube)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.cube)
}

// Scale returns the scale widget's current factor.
func (s *Session) Scale() math.Vec3 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.widget.Scale()
}

// SetScale updates the transient scale factor during ShapeDesign.
func (s *Session) SetScale(v math.Vec3) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stage != ShapeDesign {
		return fmt.Errorf("set scale in %s: %w", s.stage, ErrWrongStage)
	}
	return s.widget.SetScale(v)
}

// CommitShape bakes the widget's scale into the vertex positions, resets the
// widget and moves on to FacePicking. There is no way back.
func (s *Session) CommitShape() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stage != ShapeDesign {
		return fmt.Errorf("commit shape in %s: %w", s.stage, ErrWrongStage)
	}
	scale := s.widget.Scale()
	s.cube.Bake(s.widget.Matrix())
	s.widget.Reset()
	s.log.Info("shape committed",
		zap.Float32("sx", scale.X), zap.Float32("sy", scale.Y), zap.Float32("sz", scale.Z))
	s.transition(FacePicking)
	return nil
}

// Hover highlights the face under r and returns its index, or -1 when r
// misses the cube. The previously hovered face returns to its base color.
func (s *Session) Hover(r picking.Ray) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stage != FacePicking {
		return noFace, fmt.Errorf("hover in %s: %w", s.stage, ErrWrongStage)
	}
	s.clearHover()
	hit, ok := s.picker.Pick(r)
	if !ok {
		return noFace, nil
	}
	face := cube.FaceOfTriangle(hit.Triangle)
	s.hovered = face
	s.cube.Faces[face].Highlighted = true
	return face, nil
}

// HoveredFace returns the highlighted face index, or -1.
func (s *Session) HoveredFace() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hovered
}

// FaceColor returns the color a renderer should currently draw face i with,
// the highlight color while it is hovered.
func (s *Session) FaceColor(i int) (color.RGBA, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.cube.Face(i)
	if err != nil {
		return color.RGBA{}, err
	}
	if f.Highlighted {
		return s.opts.HighlightColor, nil
	}
	return f.Color, nil
}

func (s *Session) clearHover() {
	if s.hovered != noFace {
		s.cube.Faces[s.hovered].Highlighted = false
	}
	s.hovered = noFace
}

// Select picks the face under r and enters FaceDesign for it.
func (s *Session) Select(r picking.Ray) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stage != FacePicking {
		return noFace, fmt.Errorf("select in %s: %w", s.stage, ErrWrongStage)
	}
	hit, ok := s.picker.Pick(r)
	if !ok {
		return noFace, ErrNoHit
	}
	face := cube.FaceOfTriangle(hit.Triangle)
	s.selectFace(face)
	return face, nil
}

// SelectFace enters FaceDesign for face i directly.
func (s *Session) SelectFace(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stage != FacePicking {
		return fmt.Errorf("select face in %s: %w", s.stage, ErrWrongStage)
	}
	if _, err := s.cube.Face(i); err != nil {
		return err
	}
	s.selectFace(i)
	return nil
}

func (s *Session) selectFace(i int) {
	s.transition(FaceDesign)
	s.active = i
	s.pickerColor = s.cube.Faces[i].Color
	s.outline = s.cube.Outline(i)
	s.log.Info("face selected", zap.Int("face", i))
}

// ActiveFace returns the face being designed.
func (s *Session) ActiveFace() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active, s.active != noFace
}

// FaceOutline returns the boundary edges of the selected face, or nil.
func (s *Session) FaceOutline() []math.Segment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]math.Segment(nil), s.outline...)
}

// PickerColor returns the color shown in the color picker. It is seeded from
// the selected face's base color.
func (s *Session) PickerColor() color.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pickerColor
}

// PickColor paints the active face with c.
func (s *Session) PickColor(c color.RGBA) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == noFace {
		return fmt.Errorf("pick color: %w", ErrNoActiveFace)
	}
	s.cube.Faces[s.active].Color = c
	s.pickerColor = c
	s.log.Debug("face painted", zap.Int("face", s.active), zap.String("color", cube.Hex(c)))
	return nil
}

// Finish ends the FaceDesign episode and returns to FacePicking. The face
// keeps its color and any texture already computed.
func (s *Session) Finish() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == noFace {
		return fmt.Errorf("finish: %w", ErrNoActiveFace)
	}
	s.log.Info("face design finished", zap.Int("face", s.active),
		zap.Bool("textured", s.cube.Faces[s.active].Texture != nil))
	s.transition(FacePicking)
	return nil
}
