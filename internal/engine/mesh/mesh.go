package mesh

import "github.com/chewxy/math32"

// Mesh holds the finished buffers of a model ready for GPU upload.
// It is immutable once built; reloading a model builds a new Mesh.
type Mesh struct {
	vertices    []float32
	indices     IndexBuffers
	schema      *Schema
	bounds      Bounds
	diagnostics []Diagnostic
}

// Vertices returns a copy of the interleaved vertex buffer.
func (m *Mesh) Vertices() []float32 {
	out := make([]float32, len(m.vertices))
	copy(out, m.vertices)
	return out
}

// Indices returns a copy of the index buffer of ch.
// Channels absent from the layout return an empty slice.
func (m *Mesh) Indices(ch Channel) []uint32 {
	out := make([]uint32, len(m.indices[ch]))
	copy(out, m.indices[ch])
	return out
}

// Elements returns the draw order of the interleaved buffer: vertex i is drawn
// i-th, three vertices per triangle.
func (m *Mesh) Elements() []uint32 {
	n := m.VertexCount()
	out := make([]uint32, n)
	for i := range out {
		out[i] = uint32(i)
	}
	return out
}

// Layout returns the vertex layout of the interleaved buffer.
func (m *Mesh) Layout() *VertexLayout {
	return m.schema.VertexLayout()
}

// Schema returns the schema the mesh was built with.
func (m *Mesh) Schema() *Schema {
	return m.schema
}

// VertexCount returns the number of interleaved vertices.
func (m *Mesh) VertexCount() int {
	fpv := m.Layout().FloatsPerVertex()
	if fpv == 0 {
		return 0
	}
	return len(m.vertices) / fpv
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return m.VertexCount() / 3
}

// Bounds returns the bounding box of the referenced positions.
func (m *Mesh) Bounds() Bounds {
	return m.bounds
}

// Diagnostics returns the face components that were coerced to index 0.
func (m *Mesh) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(m.diagnostics))
	copy(out, m.diagnostics)
	return out
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// EmptyBounds returns an inverted box that any point will expand.
func EmptyBounds() Bounds {
	return Bounds{
		Min: [3]float32{math32.MaxFloat32, math32.MaxFloat32, math32.MaxFloat32},
		Max: [3]float32{-math32.MaxFloat32, -math32.MaxFloat32, -math32.MaxFloat32},
	}
}

// BoundsOf returns the bounding box of points. An empty input yields a zero box.
func BoundsOf(points [][3]float32) Bounds {
	if len(points) == 0 {
		return Bounds{}
	}
	b := EmptyBounds()
	for _, p := range points {
		b.Extend(p)
	}
	return b
}

// Extend grows the box to contain p.
func (b *Bounds) Extend(p [3]float32) {
	for i := 0; i < 3; i++ {
		b.Min[i] = math32.Min(b.Min[i], p[i])
		b.Max[i] = math32.Max(b.Max[i], p[i])
	}
}

// Center returns the midpoint of the box.
func (b Bounds) Center() [3]float32 {
	return [3]float32{
		(b.Min[0] + b.Max[0]) / 2,
		(b.Min[1] + b.Max[1]) / 2,
		(b.Min[2] + b.Max[2]) / 2,
	}
}

// Size returns the extent of the box on each axis.
func (b Bounds) Size() [3]float32 {
	return [3]float32{
		b.Max[0] - b.Min[0],
		b.Max[1] - b.Min[1],
		b.Max[2] - b.Min[2],
	}
}

// MaxDimension returns the largest extent of the box.
func (b Bounds) MaxDimension() float32 {
	s := b.Size()
	return math32.Max(s[0], math32.Max(s[1], s[2]))
}
