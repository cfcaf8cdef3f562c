// Package camera provides the model-viewing camera.
package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/objviewer/internal/engine/mesh"
)

// ModelCamera looks down -Z at a single model that is normalized to fit a
// 2-unit cube, offset and spun around its own Y axis.
type ModelCamera struct {
	FOV  float32 // vertical field of view, radians
	Near float32
	Far  float32

	aspect     float32
	projection mgl32.Mat4
	normalize  mgl32.Mat4 // recenters and rescales the model
	offset     mgl32.Vec3
	angle      float32
}

// NewModelCamera creates a camera with a perspective projection.
func NewModelCamera(fovDegrees, near, far float32, width, height int) *ModelCamera {
	c := &ModelCamera{
		FOV:       fovDegrees * math32.Pi / 180,
		Near:      near,
		Far:       far,
		normalize: mgl32.Ident4(),
	}
	c.Resize(width, height)
	return c
}

// Resize rebuilds the projection for a new viewport size.
func (c *ModelCamera) Resize(width, height int) {
	if height <= 0 {
		height = 1
	}
	c.aspect = float32(width) / float32(height)
	c.projection = mgl32.Perspective(c.FOV, c.aspect, c.Near, c.Far)
}

// Aspect returns the current width/height ratio.
func (c *ModelCamera) Aspect() float32 {
	return c.aspect
}

// FitBounds centers the model on the origin, scales its largest dimension to
// 2 units and moves it by offset.
func (c *ModelCamera) FitBounds(b mesh.Bounds, offset [3]float32) {
	scale := float32(1)
	if d := b.MaxDimension(); d > 0 {
		scale = 2 / d
	}
	center := b.Center()

	c.normalize = mgl32.Scale3D(scale, scale, scale).
		Mul4(mgl32.Translate3D(-center[0], -center[1], -center[2]))
	c.offset = mgl32.Vec3{offset[0], offset[1], offset[2]}
}

// Rotate spins the model around its vertical axis by delta radians.
func (c *ModelCamera) Rotate(delta float32) {
	c.angle = math32.Mod(c.angle+delta, 2*math32.Pi)
}

// Angle returns the current spin angle in radians.
func (c *ModelCamera) Angle() float32 {
	return c.angle
}

// ResetRotation returns the model to its initial orientation.
func (c *ModelCamera) ResetRotation() {
	c.angle = 0
}

// Model returns the model matrix.
func (c *ModelCamera) Model() mgl32.Mat4 {
	return mgl32.Translate3D(c.offset.X(), c.offset.Y(), c.offset.Z()).
		Mul4(mgl32.HomogRotate3DY(c.angle)).
		Mul4(c.normalize)
}

// Projection returns the projection matrix.
func (c *ModelCamera) Projection() mgl32.Mat4 {
	return c.projection
}

// MVP returns projection * model. The view is the identity.
func (c *ModelCamera) MVP() mgl32.Mat4 {
	return c.projection.Mul4(c.Model())
}
