// Package viewer implements the main loop that loads, uploads and spins a model.
package viewer

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/objviewer/internal/config"
	"github.com/Faultbox/objviewer/internal/engine/camera"
	"github.com/Faultbox/objviewer/internal/engine/debug"
	"github.com/Faultbox/objviewer/internal/engine/input"
	"github.com/Faultbox/objviewer/internal/engine/renderer"
	"github.com/Faultbox/objviewer/internal/engine/shader"
	"github.com/Faultbox/objviewer/internal/engine/texture"
	"github.com/Faultbox/objviewer/internal/engine/window"
	"github.com/Faultbox/objviewer/internal/logger"
)

// untexturedTint colors models drawn without texture or normals.
var untexturedTint = [3]float32{0.8, 0.8, 0.8}

// Viewer is the main viewer instance.
type Viewer struct {
	config  *config.Config
	running bool
	paused  bool

	// captureNext saves the next rendered frame before it is swapped.
	captureNext bool

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	camera   *camera.ModelCamera
	shots    *debug.ScreenshotCapture

	gpuMesh *renderer.GPUMesh
	texture *renderer.Texture
}

// New creates the window and GL state and uploads the configured model.
func New(cfg *config.Config) (*Viewer, error) {
	logger.Info("initializing viewer",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
	)

	// Parse the model first so a bad file fails before a window opens.
	m, err := LoadModel(cfg.Model)
	if err != nil {
		return nil, fmt.Errorf("failed to load model: %w", err)
	}

	v := &Viewer{config: cfg}

	v.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Renderer needs the GL context the window created.
	width, height := v.window.Size()
	v.renderer, err = renderer.New(renderer.Config{Width: width, Height: height})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	v.gpuMesh, err = v.renderer.UploadMesh(m)
	if err != nil {
		v.Close()
		return nil, fmt.Errorf("failed to upload mesh: %w", err)
	}

	if cfg.Model.TexturePath != "" {
		v.texture = v.renderer.UploadTexture(texture.LoadOrMissing(cfg.Model.TexturePath))
	}

	v.camera = camera.NewModelCamera(cfg.Camera.FOVDegrees, cfg.Camera.Near, cfg.Camera.Far, width, height)
	v.camera.FitBounds(m.Bounds(), cfg.Model.Adjust)

	v.input = input.New()
	v.shots = debug.NewScreenshotCapture(cfg.Window.ScreenshotDir, "objviewer")

	logger.Info("viewer initialized successfully")
	return v, nil
}

// Run starts the main loop and returns when the window is closed.
func (v *Viewer) Run() error {
	v.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	logger.Info("starting render loop")

	for v.running {
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		if v.input.Update() {
			v.running = false
			break
		}

		for _, event := range v.input.Events() {
			switch event.Type {
			case input.EventWindowResize:
				v.resize()
			case input.EventKeyDown:
				v.handleKey(event.Key)
			}
		}

		if !v.paused {
			v.camera.Rotate(v.config.Camera.SpinSpeed * dt)
		}

		v.render()
		if v.captureNext {
			v.captureNext = false
			v.screenshot()
		}
		v.window.SwapBuffers()

		frameCount++
		if elapsed := time.Since(fpsTimer); elapsed >= time.Second {
			fps := float64(frameCount) / elapsed.Seconds()
			if v.config.Window.ShowFPS {
				v.window.SetTitle(fmt.Sprintf("%s - %.0f FPS", v.config.Window.Title, fps))
			}
			logger.Debug("fps", zap.Float64("fps", fps), zap.Float32("dt_ms", dt*1000))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (v *Viewer) handleKey(key sdl.Keycode) {
	switch key {
	case sdl.K_ESCAPE, sdl.K_q:
		v.running = false
	case sdl.K_SPACE:
		v.paused = !v.paused
		logger.Debug("spin toggled", zap.Bool("paused", v.paused))
	case sdl.K_HOME:
		v.camera.ResetRotation()
	case sdl.K_F12:
		v.captureNext = true
	case sdl.K_r:
		if err := v.reload(); err != nil {
			logger.Error("reload failed, keeping current model", zap.Error(err))
		}
	}
}

// reload rebuilds the mesh from disk and swaps it in. The old GPU mesh is
// kept until the new one has been uploaded.
func (v *Viewer) reload() error {
	m, err := LoadModel(v.config.Model)
	if err != nil {
		return err
	}
	g, err := v.renderer.UploadMesh(m)
	if err != nil {
		return err
	}

	v.renderer.DeleteMesh(v.gpuMesh)
	v.gpuMesh = g
	v.camera.FitBounds(m.Bounds(), v.config.Model.Adjust)

	if v.config.Model.TexturePath != "" {
		v.renderer.DeleteTexture(v.texture)
		v.texture = v.renderer.UploadTexture(texture.LoadOrMissing(v.config.Model.TexturePath))
	}
	return nil
}

func (v *Viewer) screenshot() {
	pixels, width, height := v.renderer.ReadPixels()
	path, err := v.shots.CaptureFromPixels(pixels, width, height)
	if err != nil {
		logger.Error("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}

// resize reads the drawable size, which differs from the event size on HiDPI displays.
func (v *Viewer) resize() {
	width, height := v.window.Size()
	v.renderer.Resize(width, height)
	v.camera.Resize(width, height)
}

func (v *Viewer) render() {
	v.renderer.Begin()
	v.renderer.DrawMesh(v.gpuMesh, renderer.DrawParams{
		MVP:     shader.Mat4(v.camera.MVP()),
		Texture: v.texture,
		Tint:    untexturedTint,
	})
}

// Close releases GPU resources, the window and SDL.
func (v *Viewer) Close() {
	logger.Info("closing viewer")

	if v.renderer != nil {
		v.renderer.DeleteMesh(v.gpuMesh)
		v.renderer.DeleteTexture(v.texture)
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}
