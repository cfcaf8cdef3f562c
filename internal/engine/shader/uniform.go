package shader

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/objviewer/internal/logger"
)

// UniformValue is a value that can be uploaded to a uniform location.
type UniformValue interface {
	set(loc int32)
}

// Int is an int uniform.
type Int int32

// Float is a float uniform.
type Float float32

// Vec2 is a vec2 uniform.
type Vec2 [2]float32

// Vec3 is a vec3 uniform.
type Vec3 [3]float32

// Vec4 is a vec4 uniform.
type Vec4 [4]float32

// Mat4 is a column-major mat4 uniform.
type Mat4 mgl32.Mat4

func (v Int) set(loc int32) { gl.Uniform1i(loc, int32(v)) }
func (v Float) set(loc int32) { gl.Uniform1f(loc, float32(v)) }
func (v Vec2) set(loc int32) { gl.Uniform2f(loc, v[0], v[1]) }
func (v Vec3) set(loc int32) { gl.Uniform3f(loc, v[0], v[1], v[2]) }
func (v Vec4) set(loc int32) { gl.Uniform4f(loc, v[0], v[1], v[2], v[3]) }
func (v Mat4) set(loc int32) { gl.UniformMatrix4fv(loc, 1, false, &v[0]) }

// Set uploads value to the named uniform of p, which must be in use.
// Missing uniforms are logged once per name and otherwise ignored; the
// compiler drops uniforms a shader never reads.
func (p *Program) Set(name string, value UniformValue) {
	loc := p.Uniform(name)
	if loc < 0 {
		if p.missing == nil {
			p.missing = make(map[string]bool)
		}
		if !p.missing[name] {
			p.missing[name] = true
			logger.Warn("uniform not found", zap.String("name", name), zap.Uint32("program", p.ID))
		}
		return
	}
	value.set(loc)
}
