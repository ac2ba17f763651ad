// Package main is the entry point for the cubyot designer. It replays a
// session script against a fresh cube and writes the export bundle.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/cubyot/internal/camera"
	"github.com/Faultbox/cubyot/internal/config"
	"github.com/Faultbox/cubyot/internal/cube"
	"github.com/Faultbox/cubyot/internal/export"
	"github.com/Faultbox/cubyot/internal/logger"
	"github.com/Faultbox/cubyot/internal/script"
	"github.com/Faultbox/cubyot/internal/session"
	"github.com/Faultbox/cubyot/pkg/math"
	"github.com/Faultbox/cubyot/pkg/warp"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== cubyot ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(cfg); err != nil {
		logger.Error("run failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	path := config.ScriptPath()
	if path == "" {
		return fmt.Errorf("no session script given, use -script")
	}
	sc, err := script.Load(path)
	if err != nil {
		return fmt.Errorf("loading script: %w", err)
	}

	opts, err := sessionOptions(cfg)
	if err != nil {
		return err
	}
	s := session.New(opts)

	cc := cfg.Camera
	cam := camera.New(
		math.Vec3{X: cc.Position[0], Y: cc.Position[1], Z: cc.Position[2]},
		math.Vec3{X: cc.Target[0], Y: cc.Target[1], Z: cc.Target[2]},
		cc.FOV, cc.Width, cc.Height,
	)

	runner := script.NewRunner(s, cam, filepath.Dir(path), logger.Named("script"))
	rep, err := runner.Run(sc)
	if err != nil {
		return err
	}
	logger.Info("script finished", zap.Int("steps", rep.Executed), zap.Int("failed", rep.Failed),
		zap.Stringer("stage", s.Stage()))

	var snap *export.Snapshot
	s.View(func(c *cube.Cube) {
		snap, err = export.Capture(c, export.Options{TRS: cfg.Export.TRS, Binary: cfg.Export.Binary})
	})
	if err != nil {
		return err
	}
	m, err := export.NewWriter(cfg.Export.OutputDir).Write(snap)
	if err != nil {
		return err
	}
	logger.Info("export written", zap.String("dir", cfg.Export.OutputDir),
		zap.String("asset", m.Asset), zap.Int("textured", snap.Textured()))
	return nil
}

func sessionOptions(cfg *config.Config) (session.Options, error) {
	opts := session.DefaultOptions()
	opts.Logger = logger.Named("session")
	opts.PlaneOffset = cfg.Design.PlaneOffset
	opts.MaxTextureSize = cfg.Design.MaxTextureSize

	mode, err := warp.ParseEdgeMode(cfg.Design.EdgeMode)
	if err != nil {
		return opts, err
	}
	opts.EdgeMode = mode

	if opts.DefaultColor, err = cube.ParseHex(cfg.Design.DefaultColor); err != nil {
		return opts, err
	}
	if opts.HighlightColor, err = cube.ParseHex(cfg.Design.HighlightColor); err != nil {
		return opts, err
	}
	return opts, nil
}
