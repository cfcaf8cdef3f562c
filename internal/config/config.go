// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Model   ModelConfig   `yaml:"model"`
	Camera  CameraConfig  `yaml:"camera"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
	ShowFPS    bool   `yaml:"show_fps"`

	ScreenshotDir string `yaml:"screenshot_dir"`
}

// ModelConfig describes the model to load and how its faces are laid out.
type ModelConfig struct {
	OBJPath     string     `yaml:"obj_path"`
	TexturePath string     `yaml:"texture_path"`
	FaceLayout  FaceLayout `yaml:"face_layout"` // e.g. "v/vt/vn", "v//vn", "v"
	Adjust      [3]float32 `yaml:"adjust"`      // offset added after centering
}

// CameraConfig holds projection and motion settings.
type CameraConfig struct {
	FOVDegrees float32 `yaml:"fov_degrees"`
	Near       float32 `yaml:"near"`
	Far        float32 `yaml:"far"`
	SpinSpeed  float32 `yaml:"spin_speed"` // radians per second around Y
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:      "OBJ Viewer",
			Width:      1000,
			Height:     1000,
			Fullscreen: false,
			VSync:      true,
			ShowFPS:    true,

			ScreenshotDir: "screenshots",
		},
		Model: ModelConfig{
			OBJPath:     "objects/model.obj",
			TexturePath: "",
			FaceLayout:  "v/vt",
			Adjust:      [3]float32{0, 0, -2.2},
		},
		Camera: CameraConfig{
			FOVDegrees: 60,
			Near:       0.1,
			Far:        10,
			SpinSpeed:  1,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
