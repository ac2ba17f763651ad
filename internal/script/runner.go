package script

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/cubyot/internal/camera"
	"github.com/Faultbox/cubyot/internal/cube"
	"github.com/Faultbox/cubyot/internal/session"
	"github.com/Faultbox/cubyot/internal/texture"
	"github.com/Faultbox/cubyot/pkg/homography"
	"github.com/Faultbox/cubyot/pkg/math"
)

// Report summarizes a run.
type Report struct {
	Executed int
	Failed   int
}

// Runner applies script steps to a session.
type Runner struct {
	session *session.Session
	camera  *camera.Camera
	baseDir string
	log     *zap.Logger
}

// NewRunner creates a runner. Upload paths are resolved relative to baseDir.
func NewRunner(s *session.Session, cam *camera.Camera, baseDir string, log *zap.Logger) *Runner {
	return &Runner{session: s, camera: cam, baseDir: baseDir, log: log}
}

// recoverable reports whether err is a user-level failure that leaves the
// session usable.
func recoverable(err error) bool {
	return errors.Is(err, homography.ErrDegenerateCorrespondence) ||
		errors.Is(err, texture.ErrUnsupportedFileType) ||
		errors.Is(err, session.ErrNoActiveFace) ||
		errors.Is(err, session.ErrWrongStage) ||
		errors.Is(err, session.ErrNoHit) ||
		errors.Is(err, session.ErrNoControlPoints)
}

// Run executes every step in order. Recoverable failures are logged and
// counted; anything else stops the run.
func (r *Runner) Run(sc *Script) (Report, error) {
	var rep Report
	for i, st := range sc.Steps {
		action, err := st.Action()
		if err != nil {
			return rep, fmt.Errorf("step %d: %w", i+1, err)
		}
		err = r.step(action, st)
		rep.Executed++
		if err == nil {
			r.log.Debug("step done", zap.Int("step", i+1), zap.String("action", action))
			continue
		}
		if !recoverable(err) {
			return rep, fmt.Errorf("step %d (%s): %w", i+1, action, err)
		}
		rep.Failed++
		r.log.Warn("step failed", zap.Int("step", i+1), zap.String("action", action), zap.Error(err))
	}
	return rep, nil
}

func (r *Runner) step(action string, st Step) error {
	s := r.session
	switch action {
	case "scale":
		return s.SetScale(vec(*st.Scale))
	case "commit":
		return s.CommitShape()
	case "orbit":
		r.camera.HandleDrag(st.Orbit.X, st.Orbit.Y)
		return nil
	case "zoom":
		r.camera.HandleZoom(*st.Zoom)
		return nil
	case "hover":
		ray, err := r.camera.Ray(st.Hover.X, st.Hover.Y)
		if err != nil {
			return err
		}
		face, err := s.Hover(ray)
		if err == nil {
			r.log.Debug("hover", zap.Int("face", face))
		}
		return err
	case "click":
		ray, err := r.camera.Ray(st.Click.X, st.Click.Y)
		if err != nil {
			return err
		}
		_, err = s.Select(ray)
		return err
	case "select_face":
		return s.SelectFace(*st.SelectFace)
	case "color":
		c, err := cube.ParseHex(st.Color)
		if err != nil {
			return err
		}
		return s.PickColor(c)
	case "upload":
		data, err := os.ReadFile(r.resolve(st.Upload))
		if err != nil {
			return err
		}
		return s.Upload(data)
	case "drag":
		if _, err := s.Drag(st.Drag.Corner, vec(st.Drag.To)); err != nil {
			return err
		}
		return s.EndDrag(st.Drag.Corner)
	case "rotate":
		return s.Rotate()
	case "vflip":
		return s.FlipVertical()
	case "hflip":
		return s.FlipHorizontal()
	case "finish":
		return s.Finish()
	}
	return fmt.Errorf("unknown action %q", action)
}

func (r *Runner) resolve(path string) string {
	if filepath.IsAbs(path) || r.baseDir == "" {
		return path
	}
	return filepath.Join(r.baseDir, path)
}

func vec(v [3]float32) math.Vec3 {
	return math.Vec3{X: v[0], Y: v[1], Z: v[2]}
}
