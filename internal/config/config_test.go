package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Design.EdgeMode != "clamp" {
		t.Errorf("expected edge mode 'clamp', got %s", cfg.Design.EdgeMode)
	}
	if cfg.Design.PlaneOffset != 0.005 {
		t.Errorf("expected plane offset 0.005, got %v", cfg.Design.PlaneOffset)
	}
	if cfg.Design.MaxTextureSize != 2048 {
		t.Errorf("expected max texture size 2048, got %d", cfg.Design.MaxTextureSize)
	}
	if cfg.Camera.Position != [3]float32{4, 4, 4} || cfg.Camera.FOV != 50 {
		t.Errorf("unexpected camera defaults: %+v", cfg.Camera)
	}
	if cfg.Export.Binary || cfg.Export.TRS {
		t.Error("export options should default to false")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	yamlContent := `
logging:
  level: "debug"
  log_file: "cubyot.log"

design:
  plane_offset: 0.02
  edge_mode: transparent
  max_texture_size: 512
  default_color: "#808080"

camera:
  position: [0, 0, 6]
  fov: 35
  width: 800
  height: 600

export:
  binary: true
  output_dir: out
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Logging.Level != "debug" || cfg.Logging.LogFile != "cubyot.log" {
		t.Errorf("logging = %+v", cfg.Logging)
	}
	if cfg.Design.PlaneOffset != 0.02 || cfg.Design.EdgeMode != "transparent" || cfg.Design.MaxTextureSize != 512 {
		t.Errorf("design = %+v", cfg.Design)
	}
	// Unset keys keep their defaults.
	if cfg.Design.HighlightColor != "#ffff00" {
		t.Errorf("highlight color = %s, want default", cfg.Design.HighlightColor)
	}
	if cfg.Camera.Position != [3]float32{0, 0, 6} || cfg.Camera.Width != 800 {
		t.Errorf("camera = %+v", cfg.Camera)
	}
	if !cfg.Export.Binary || cfg.Export.OutputDir != "out" {
		t.Errorf("export = %+v", cfg.Export)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "invalid.yaml")
	invalidYAML := `
design:
  plane_offset: not a number
  invalid syntax here
`
	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if err := loadFromFile(Default(), configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if err := loadFromFile(Default(), "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative offset", func(c *Config) { c.Design.PlaneOffset = -1 }},
		{"negative texture size", func(c *Config) { c.Design.MaxTextureSize = -5 }},
		{"unknown edge mode", func(c *Config) { c.Design.EdgeMode = "mirror" }},
		{"bad default color", func(c *Config) { c.Design.DefaultColor = "white" }},
		{"bad highlight color", func(c *Config) { c.Design.HighlightColor = "#12" }},
		{"empty viewport", func(c *Config) { c.Camera.Width = 0 }},
		{"flat fov", func(c *Config) { c.Camera.FOV = 180 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))
	t.Setenv("HOME", tmpDir)

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	if err := os.WriteFile(filepath.Join(tmpDir, "config.yaml"), []byte("design:\n  edge_mode: clamp\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}
	if path := findConfigFile(); path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "edge flag",
			setup: func() { *flagEdge = "transparent" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Design.EdgeMode != "transparent" {
					t.Errorf("expected edge mode transparent, got %s", cfg.Design.EdgeMode)
				}
			},
			teardown: func() { *flagEdge = "" },
		},
		{
			name:  "export flags",
			setup: func() { *flagBinary, *flagTRS, *flagOut = true, true, "dist" },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Export.Binary || !cfg.Export.TRS || cfg.Export.OutputDir != "dist" {
					t.Errorf("export = %+v", cfg.Export)
				}
			},
			teardown: func() { *flagBinary, *flagTRS, *flagOut = false, false, "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	yamlContent := `
design:
  edge_mode: transparent
  max_texture_size: 256
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagEdge = "clamp"
	defer func() {
		*flagConfig = ""
		*flagEdge = ""
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Design.EdgeMode != "clamp" {
		t.Errorf("expected edge mode from flag, got %s", cfg.Design.EdgeMode)
	}
	if cfg.Design.MaxTextureSize != 256 {
		t.Errorf("expected max texture size 256 from file, got %d", cfg.Design.MaxTextureSize)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.Design.EdgeMode = "transparent"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("loadFromFile() error = %v", err)
	}
	if loaded.Design.EdgeMode != "transparent" {
		t.Errorf("edge mode = %s after round trip", loaded.Design.EdgeMode)
	}
}
