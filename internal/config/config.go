// Package config handles cubyot configuration loading and management.
package config

import (
	"fmt"

	"github.com/Faultbox/cubyot/internal/cube"
	"github.com/Faultbox/cubyot/pkg/warp"
)

// Config holds all settings.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Design  DesignConfig  `yaml:"design"`
	Camera  CameraConfig  `yaml:"camera"`
	Export  ExportConfig  `yaml:"export"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// DesignConfig holds face design settings.
type DesignConfig struct {
	PlaneOffset    float32 `yaml:"plane_offset"`     // gap between face and picking plane
	EdgeMode       string  `yaml:"edge_mode"`        // clamp | transparent
	MaxTextureSize int     `yaml:"max_texture_size"` // 0 keeps uploads at full size
	DefaultColor   string  `yaml:"default_color"`
	HighlightColor string  `yaml:"highlight_color"`
}

// CameraConfig describes the viewpoint used to turn screen clicks into rays.
type CameraConfig struct {
	Position [3]float32 `yaml:"position"`
	Target   [3]float32 `yaml:"target"`
	FOV      float32    `yaml:"fov"` // vertical, degrees
	Width    int        `yaml:"width"`
	Height   int        `yaml:"height"`
}

// ExportConfig holds export bundle settings.
type ExportConfig struct {
	TRS       bool   `yaml:"trs"`
	Binary    bool   `yaml:"binary"`
	OutputDir string `yaml:"output_dir"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level: "info",
		},
		Design: DesignConfig{
			PlaneOffset:    0.005,
			EdgeMode:       "clamp",
			MaxTextureSize: 2048,
			DefaultColor:   "#ffffff",
			HighlightColor: "#ffff00",
		},
		Camera: CameraConfig{
			Position: [3]float32{4, 4, 4},
			FOV:      50,
			Width:    1280,
			Height:   720,
		},
		Export: ExportConfig{
			OutputDir: "export",
		},
	}
}

// Validate checks values that would otherwise fail deep inside a session.
func (c *Config) Validate() error {
	if c.Design.PlaneOffset < 0 {
		return fmt.Errorf("design.plane_offset must not be negative, got %v", c.Design.PlaneOffset)
	}
	if c.Design.MaxTextureSize < 0 {
		return fmt.Errorf("design.max_texture_size must not be negative, got %d", c.Design.MaxTextureSize)
	}
	if _, err := warp.ParseEdgeMode(c.Design.EdgeMode); err != nil {
		return fmt.Errorf("design.edge_mode: %w", err)
	}
	if _, err := cube.ParseHex(c.Design.DefaultColor); err != nil {
		return fmt.Errorf("design.default_color: %w", err)
	}
	if _, err := cube.ParseHex(c.Design.HighlightColor); err != nil {
		return fmt.Errorf("design.highlight_color: %w", err)
	}
	if c.Camera.Width <= 0 || c.Camera.Height <= 0 {
		return fmt.Errorf("camera viewport must be positive, got %dx%d", c.Camera.Width, c.Camera.Height)
	}
	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		return fmt.Errorf("camera.fov must be in (0, 180), got %v", c.Camera.FOV)
	}
	return nil
}
