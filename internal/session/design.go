package session

import (
	"errors"
	"fmt"
	"image"

	"go.uber.org/zap"

	"github.com/Faultbox/cubyot/internal/picking"
	"github.com/Faultbox/cubyot/internal/quad"
	"github.com/Faultbox/cubyot/internal/texture"
	"github.com/Faultbox/cubyot/pkg/homography"
	"github.com/Faultbox/cubyot/pkg/math"
	"github.com/Faultbox/cubyot/pkg/warp"
)

// episode is the state of one photo placement on the active face. It exists
// from a successful upload until Finish.
type episode struct {
	face    int
	source  *image.RGBA
	plane   *picking.Plane
	points  [picking.CornerCount]picking.ControlPoint
	dest    quad.Destination
	outline []math.Segment
}

// Upload decodes data and starts a new episode on the active face, replacing
// any previous one. On a decode failure the session is left untouched.
func (s *Session) Upload(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == noFace {
		return fmt.Errorf("upload: %w", ErrNoActiveFace)
	}

	img, format, err := texture.Decode(data)
	if err != nil {
		s.log.Warn("upload rejected", zap.Int("face", s.active), zap.Error(err))
		return err
	}
	img = texture.Fit(img, s.opts.MaxTextureSize)
	w, h := img.Bounds().Dx(), img.Bounds().Dy()

	face := &s.cube.Faces[s.active]
	plane, err := picking.NewPlane(s.cube.Bounds(s.active), face.Normal, w, h, s.opts.PlaneOffset)
	if err != nil {
		s.log.Warn("upload rejected", zap.Int("face", s.active), zap.Error(err))
		return err
	}

	ep := &episode{
		face:   s.active,
		source: img,
		plane:  plane,
		points: plane.ControlPoints(),
		dest:   quad.Seed(face.Normal, w, h),
	}
	ep.outline = picking.Outline(ep.points)
	if err := s.startEpisode(ep); err != nil {
		return err
	}
	s.log.Info("image uploaded", zap.Int("face", s.active), zap.String("format", format),
		zap.Int("width", w), zap.Int("height", h))
	return nil
}

// startEpisode renders ep and makes it the active episode. If rendering
// fails the previous episode stays in place.
func (s *Session) startEpisode(ep *episode) error {
	if err := s.render("upload", ep); err != nil {
		return err
	}
	s.episode = ep
	return nil
}

// ControlPoints returns the active control points, or nil before an upload.
func (s *Session) ControlPoints() []picking.ControlPoint {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.episode == nil {
		return nil
	}
	return append([]picking.ControlPoint(nil), s.episode.points[:]...)
}

// ControlOutline returns the edges joining the control points as of the last
// completed drag, or nil.
func (s *Session) ControlOutline() []math.Segment {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.episode == nil {
		return nil
	}
	return append([]math.Segment(nil), s.episode.outline...)
}

// DestinationQuad returns the current destination quad.
func (s *Session) DestinationQuad() (homography.Quad, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.episode == nil || s.episode.dest.Empty() {
		return homography.Quad{}, false
	}
	return s.episode.dest.Quad(), true
}

// SourceQuad returns the source quad derived from the control points.
func (s *Session) SourceQuad() (homography.Quad, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.episode == nil {
		return homography.Quad{}, false
	}
	return s.episode.plane.SourceQuad(s.episode.points), true
}

// Drag moves a control point toward pos and returns where it ended up after
// being confined to the picking plane. Nothing is recomputed until EndDrag.
func (s *Session) Drag(corner int, pos math.Vec3) (math.Vec3, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ep, err := s.activeEpisode("drag")
	if err != nil {
		return math.Vec3{}, err
	}
	i, err := ep.index(corner)
	if err != nil {
		return math.Vec3{}, err
	}
	p := ep.plane.Constrain(pos)
	ep.points[i].Position = p
	return p, nil
}

// EndDrag rebuilds the control outline and recomputes the face texture.
// If the points are degenerate the points stay where they were dropped and
// the previous texture is kept.
func (s *Session) EndDrag(corner int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ep, err := s.activeEpisode("end drag")
	if err != nil {
		return err
	}
	if _, err := ep.index(corner); err != nil {
		return err
	}
	ep.outline = picking.Outline(ep.points)
	return s.render("drag", ep)
}

// Rotate turns the photo 90 degrees on the face.
func (s *Session) Rotate() error {
	return s.permute("rotate", quad.Destination.Rotate)
}

// FlipVertical mirrors the photo top to bottom.
func (s *Session) FlipVertical() error {
	return s.permute("vertical flip", quad.Destination.FlipVertical)
}

// FlipHorizontal mirrors the photo left to right.
func (s *Session) FlipHorizontal() error {
	return s.permute("horizontal flip", quad.Destination.FlipHorizontal)
}

// permute applies op to the destination quad and recomputes. It is a no-op
// before an upload. A failed recompute restores the previous quad.
func (s *Session) permute(name string, op func(quad.Destination) quad.Destination) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == noFace {
		return fmt.Errorf("%s: %w", name, ErrNoActiveFace)
	}
	ep := s.episode
	if ep == nil || ep.dest.Empty() {
		return nil
	}
	prev := ep.dest
	ep.dest = op(prev)
	if err := s.render(name, ep); err != nil {
		ep.dest = prev
		return err
	}
	return nil
}

func (s *Session) activeEpisode(op string) (*episode, error) {
	if s.active == noFace {
		return nil, fmt.Errorf("%s: %w", op, ErrNoActiveFace)
	}
	if s.episode == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrNoControlPoints)
	}
	return s.episode, nil
}

// index returns the slot holding the given corner identity.
func (ep *episode) index(corner int) (int, error) {
	for i, cp := range ep.points {
		if cp.Corner == corner {
			return i, nil
		}
	}
	return 0, fmt.Errorf("control point %d does not exist", corner)
}

// render solves the destination to source homography for ep and resamples
// the photo into the face texture. On a degenerate correspondence the
// previous texture is kept.
func (s *Session) render(op string, ep *episode) error {
	src := ep.plane.SourceQuad(ep.points)
	coeffs, err := homography.Solve(ep.dest.Quad(), src)
	if err != nil {
		if errors.Is(err, homography.ErrDegenerateCorrespondence) {
			s.log.Warn("resample skipped", zap.String("op", op), zap.Int("face", ep.face), zap.Error(err))
		}
		return err
	}

	tex := warp.Resample(coeffs, ep.source, s.opts.EdgeMode)
	s.cube.Faces[ep.face].Texture = tex
	s.log.Debug("face texture updated", zap.String("op", op), zap.Int("face", ep.face))
	if s.opts.OnTexture != nil {
		s.opts.OnTexture(ep.face, tex)
	}
	return nil
}
