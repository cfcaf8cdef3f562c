package mesh

import "fmt"

// Schema couples a face layout with the vertex layout derived from it, so the
// channels read from faces and the fields of the vertex buffer share one order.
type Schema struct {
	face   *FaceLayout
	vertex *VertexLayout
}

// NewSchema derives the vertex layout from the channels enabled in fl.
// Every channel is a float32 attribute bound at its shader location.
func NewSchema(fl *FaceLayout) (*Schema, error) {
	if !fl.Has(Position) {
		return nil, ErrNoPositionChannel
	}

	enabled := fl.Enabled()
	attrs := make([]Attribute, 0, len(enabled))
	for _, ch := range enabled {
		attrs = append(attrs, FloatAttribute(ch.Location(), ch.Components()))
	}

	vl, err := NewVertexLayout(attrs...)
	if err != nil {
		return nil, err
	}
	return &Schema{face: fl, vertex: vl}, nil
}

// NewSchemaFromSlots is shorthand for NewFaceLayout followed by NewSchema.
func NewSchemaFromSlots(position, normal, texcoord Slot) (*Schema, error) {
	fl, err := NewFaceLayout(position, normal, texcoord)
	if err != nil {
		return nil, err
	}
	return NewSchema(fl)
}

// FaceLayout returns the face layout of the schema.
func (s *Schema) FaceLayout() *FaceLayout {
	return s.face
}

// VertexLayout returns the vertex layout of the schema.
func (s *Schema) VertexLayout() *VertexLayout {
	return s.vertex
}

// Validate checks that vl interleaves exactly the channels enabled in fl, in
// the same order and with matching component counts.
func Validate(fl *FaceLayout, vl *VertexLayout) error {
	enabled := fl.Enabled()
	if len(enabled) != vl.Len() {
		return fmt.Errorf("%w: %d channels enabled, %d attributes", ErrLayoutMismatch, len(enabled), vl.Len())
	}
	for i, ch := range enabled {
		a := vl.attrs[i]
		if a.Index != ch.Location() {
			return fmt.Errorf("%w: attribute %d is location %d, want %s at %d",
				ErrLayoutMismatch, i, a.Index, ch, ch.Location())
		}
		if a.Components != ch.Components() {
			return fmt.Errorf("%w: %s has %d components, want %d",
				ErrLayoutMismatch, ch, a.Components, ch.Components())
		}
		if a.Type != Float32 {
			return fmt.Errorf("%w: %s has type %s", ErrLayoutMismatch, ch, a.Type)
		}
	}
	return nil
}
