package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Window.Width != 1000 {
		t.Errorf("expected width 1000, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 1000 {
		t.Errorf("expected height 1000, got %d", cfg.Window.Height)
	}
	if cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if !cfg.Window.VSync {
		t.Error("expected vsync to be true by default")
	}

	if cfg.Model.FaceLayout != "v/vt" {
		t.Errorf("expected face layout v/vt, got %s", cfg.Model.FaceLayout)
	}
	if cfg.Camera.Near != 0.1 || cfg.Camera.Far != 10 {
		t.Errorf("expected near/far 0.1/10, got %f/%f", cfg.Camera.Near, cfg.Camera.Far)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
window:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false

model:
  obj_path: "objects/Scaniverse.obj"
  texture_path: "textures/Scaniverse.jpg"
  face_layout: "v/vt/vn"
  adjust: [0, 0.5, -2.2]

camera:
  fov_degrees: 45
  spin_speed: 0.5

logging:
  level: "debug"
  log_file: "viewer.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Window.Width != 1920 {
		t.Errorf("expected width 1920, got %d", cfg.Window.Width)
	}
	if !cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Window.VSync {
		t.Error("expected vsync to be false")
	}

	if cfg.Model.OBJPath != "objects/Scaniverse.obj" {
		t.Errorf("unexpected obj path %s", cfg.Model.OBJPath)
	}
	if cfg.Model.TexturePath != "textures/Scaniverse.jpg" {
		t.Errorf("unexpected texture path %s", cfg.Model.TexturePath)
	}
	if cfg.Model.FaceLayout != "v/vt/vn" {
		t.Errorf("unexpected face layout %s", cfg.Model.FaceLayout)
	}
	if cfg.Model.Adjust != [3]float32{0, 0.5, -2.2} {
		t.Errorf("unexpected adjust %v", cfg.Model.Adjust)
	}

	if cfg.Camera.FOVDegrees != 45 {
		t.Errorf("expected fov 45, got %f", cfg.Camera.FOVDegrees)
	}
	// Untouched keys keep their defaults
	if cfg.Camera.Far != 10 {
		t.Errorf("expected default far 10, got %f", cfg.Camera.Far)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "viewer.log" {
		t.Errorf("expected log file 'viewer.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
window:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	tmpDir := t.TempDir()
	os.Chdir(tmpDir)

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("window:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestFaceLayoutSlots(t *testing.T) {
	tests := []struct {
		layout                     FaceLayout
		position, normal, texcoord int
	}{
		{"v", 0, -1, -1},
		{"v/vt", 0, -1, 1},
		{"v/vt/vn", 0, 2, 1},
		{"v//vn", 0, 2, -1},
		{"v/-/vn", 0, 2, -1},
		{"vn/v", 1, 0, -1},
	}

	for _, tc := range tests {
		t.Run(string(tc.layout), func(t *testing.T) {
			p, n, tx, err := tc.layout.Slots()
			if err != nil {
				t.Fatalf("Slots failed: %v", err)
			}
			if p != tc.position || n != tc.normal || tx != tc.texcoord {
				t.Errorf("got (%d, %d, %d), want (%d, %d, %d)", p, n, tx, tc.position, tc.normal, tc.texcoord)
			}
		})
	}
}

func TestFaceLayoutSlotsInvalid(t *testing.T) {
	for _, layout := range []FaceLayout{"", "vt/vn", "v/v", "v/uv"} {
		if _, _, _, err := layout.Slots(); !errors.Is(err, ErrInvalidFaceLayout) {
			t.Errorf("%q: expected ErrInvalidFaceLayout, got %v", layout, err)
		}
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name: "model flags",
			setup: func() {
				*flagOBJ = "bunny.obj"
				*flagTexture = "bunny.png"
				*flagLayout = "v//vn"
			},
			verify: func(cfg *Config) {
				if cfg.Model.OBJPath != "bunny.obj" {
					t.Errorf("expected obj bunny.obj, got %s", cfg.Model.OBJPath)
				}
				if cfg.Model.TexturePath != "bunny.png" {
					t.Errorf("expected texture bunny.png, got %s", cfg.Model.TexturePath)
				}
				if cfg.Model.FaceLayout != "v//vn" {
					t.Errorf("expected layout v//vn, got %s", cfg.Model.FaceLayout)
				}
			},
			teardown: func() {
				*flagOBJ = ""
				*flagTexture = ""
				*flagLayout = ""
			},
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(cfg *Config) {
				if !cfg.Window.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(cfg *Config) {
				if cfg.Window.Width != 2560 || cfg.Window.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Window.Width, cfg.Window.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
window:
  width: 1600
  height: 900
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Window.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Window.Height)
	}
}

func TestLoadRejectsBadLayout(t *testing.T) {
	*flagConfig = filepath.Join(t.TempDir(), "none.yaml")
	os.WriteFile(*flagConfig, []byte("model:\n  face_layout: \"vt\"\n"), 0644)
	defer func() { *flagConfig = "" }()

	if _, err := Load(); !errors.Is(err, ErrInvalidFaceLayout) {
		t.Errorf("expected ErrInvalidFaceLayout, got %v", err)
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Model.FaceLayout = "v/vt/vn"
	cfg.Model.Adjust = [3]float32{1, 2, 3}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if loaded.Model.FaceLayout != "v/vt/vn" || loaded.Model.Adjust != [3]float32{1, 2, 3} {
		t.Errorf("reloaded model config mismatch: %+v", loaded.Model)
	}
}
