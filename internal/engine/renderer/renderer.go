// Package renderer uploads meshes and textures to OpenGL and draws them.
package renderer

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/objviewer/internal/engine/mesh"
	"github.com/Faultbox/objviewer/internal/engine/renderer/shaders"
	"github.com/Faultbox/objviewer/internal/engine/shader"
	"github.com/Faultbox/objviewer/internal/logger"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
}

// GPUMesh holds the GL objects created for one mesh. Draw calls take it
// explicitly; nothing relies on the currently bound buffers.
type GPUMesh struct {
	VAO          uint32
	VBO          uint32
	EBO          uint32
	ElementCount int32
	Channels     []mesh.Channel
}

// Texture is an uploaded 2D texture.
type Texture struct {
	ID uint32
}

// Renderer owns the mesh shader program and GL state.
type Renderer struct {
	config  Config
	program *shader.Program
	log     *zap.Logger
}

// New creates a renderer. Must be called after the OpenGL context exists.
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
		log:    logger.Named("renderer"),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.ClearColor(0.1, 0.1, 0.15, 1.0)
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	program, err := shader.CompileProgram(shaders.MeshVertexShader, shaders.MeshFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("mesh shader: %w", err)
	}
	r.program = program

	return r, nil
}

// Close releases the shader program.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	if r.program != nil {
		r.program.Delete()
	}
}

// Resize updates the viewport.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized", zap.Int("width", width), zap.Int("height", height))
}

// UploadMesh creates a VAO with the interleaved vertex buffer and element
// buffer of m, and binds one attribute pointer per layout attribute.
func (r *Renderer) UploadMesh(m *mesh.Mesh) (*GPUMesh, error) {
	vertices := m.Vertices()
	elements := m.Elements()
	if len(vertices) == 0 || len(elements) == 0 {
		return nil, fmt.Errorf("mesh has no triangles")
	}

	layout := m.Layout()
	g := &GPUMesh{
		ElementCount: int32(len(elements)),
		Channels:     m.Schema().FaceLayout().Enabled(),
	}

	gl.GenVertexArrays(1, &g.VAO)
	gl.BindVertexArray(g.VAO)

	gl.GenBuffers(1, &g.VBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	gl.GenBuffers(1, &g.EBO)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.EBO)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(elements)*4, gl.Ptr(elements), gl.STATIC_DRAW)

	stride := int32(layout.Stride())
	for _, a := range layout.Attributes() {
		gl.VertexAttribPointerWithOffset(a.Index, int32(a.Components), glType(a.Type), false, stride, uintptr(a.Offset))
		gl.EnableVertexAttribArray(a.Index)
	}

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)

	r.log.Debug("mesh uploaded",
		zap.Uint32("vao", g.VAO),
		zap.Int("vertices", m.VertexCount()),
		zap.Int("stride", layout.Stride()),
	)
	return g, nil
}

// DeleteMesh releases the GL objects of g.
func (r *Renderer) DeleteMesh(g *GPUMesh) {
	if g == nil {
		return
	}
	gl.DeleteBuffers(1, &g.VBO)
	gl.DeleteBuffers(1, &g.EBO)
	gl.DeleteVertexArrays(1, &g.VAO)
	*g = GPUMesh{}
}

// UploadTexture uploads an RGBA image with nearest filtering and repeat wrap.
func (r *Renderer) UploadTexture(img *image.RGBA) *Texture {
	t := &Texture{}
	gl.GenTextures(1, &t.ID)
	gl.BindTexture(gl.TEXTURE_2D, t.ID)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)

	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA,
		int32(img.Bounds().Dx()), int32(img.Bounds().Dy()),
		0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))

	gl.BindTexture(gl.TEXTURE_2D, 0)
	return t
}

// DeleteTexture releases t.
func (r *Renderer) DeleteTexture(t *Texture) {
	if t == nil || t.ID == 0 {
		return
	}
	gl.DeleteTextures(1, &t.ID)
	t.ID = 0
}

// Begin clears the frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// ReadPixels reads the current framebuffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	width, height := r.config.Width, r.config.Height
	pixels := make([]byte, width*height*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, width, height
}

// DrawParams carries the per-draw inputs of DrawMesh.
type DrawParams struct {
	MVP     shader.Mat4
	Texture *Texture // nil draws with Tint
	Tint    [3]float32
}

// DrawMesh draws g with the given transform and texture.
func (r *Renderer) DrawMesh(g *GPUMesh, p DrawParams) {
	r.program.Use()
	r.program.Set("uMVP", p.MVP)
	r.program.Set("uTint", shader.Vec3(p.Tint))
	r.program.Set("uHasNormal", boolUniform(hasChannel(g.Channels, mesh.Normal)))

	textured := p.Texture != nil && hasChannel(g.Channels, mesh.TexCoord)
	r.program.Set("uHasTexCoord", boolUniform(textured))
	if textured {
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, p.Texture.ID)
		r.program.Set("uTexture", shader.Int(0))
	}

	gl.BindVertexArray(g.VAO)
	gl.DrawElements(gl.TRIANGLES, g.ElementCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

// glType maps a component type to its GL enum. Float32 is the only type.
func glType(mesh.ComponentType) uint32 {
	return gl.FLOAT
}

func hasChannel(chs []mesh.Channel, ch mesh.Channel) bool {
	for _, c := range chs {
		if c == ch {
			return true
		}
	}
	return false
}

func boolUniform(b bool) shader.Int {
	if b {
		return 1
	}
	return 0
}
