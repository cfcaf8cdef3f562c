package mesh

import "fmt"

// Attribute describes one field of an interleaved vertex.
type Attribute struct {
	Index      uint32        // shader attribute location
	Components int           // scalar components per vertex
	Bytes      int           // byte size of the component group
	Type       ComponentType // scalar type
	Offset     int           // byte offset inside the vertex, set by NewVertexLayout
}

// FloatAttribute returns a float32 attribute with the given component count.
func FloatAttribute(index uint32, components int) Attribute {
	return Attribute{
		Index:      index,
		Components: components,
		Bytes:      components * Float32.Size(),
		Type:       Float32,
	}
}

// VertexLayout is an ordered list of attributes with precomputed offsets.
type VertexLayout struct {
	attrs  []Attribute
	stride int
}

// NewVertexLayout builds a layout from attributes in interleaving order.
// Offsets are the running sum of the byte sizes of preceding attributes.
func NewVertexLayout(attrs ...Attribute) (*VertexLayout, error) {
	l := &VertexLayout{attrs: make([]Attribute, 0, len(attrs))}
	seen := make(map[uint32]bool, len(attrs))

	for _, a := range attrs {
		if seen[a.Index] {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateAttribute, a.Index)
		}
		if a.Components <= 0 || a.Bytes <= 0 {
			return nil, fmt.Errorf("%w: index %d has %d components, %d bytes", ErrInvalidAttribute, a.Index, a.Components, a.Bytes)
		}
		seen[a.Index] = true

		a.Offset = l.stride
		l.stride += a.Bytes
		l.attrs = append(l.attrs, a)
	}

	return l, nil
}

// Stride returns the byte size of one interleaved vertex.
func (l *VertexLayout) Stride() int {
	return l.stride
}

// Attributes returns a copy of the attributes in interleaving order.
func (l *VertexLayout) Attributes() []Attribute {
	out := make([]Attribute, len(l.attrs))
	copy(out, l.attrs)
	return out
}

// Len returns the number of attributes.
func (l *VertexLayout) Len() int {
	return len(l.attrs)
}

// FloatsPerVertex returns the stride measured in float32 values.
func (l *VertexLayout) FloatsPerVertex() int {
	return l.stride / Float32.Size()
}

// Offset returns the byte offset of the attribute at position i.
func (l *VertexLayout) Offset(i int) int {
	return l.attrs[i].Offset
}
