package mesh

import (
	"fmt"

	"github.com/Faultbox/objviewer/pkg/formats"
)

// Build turns parsed OBJ records into a mesh laid out by schema.
// Face tuples are resolved in face order, then interleaved.
func Build(obj *formats.OBJ, schema *Schema) (*Mesh, error) {
	fl := schema.FaceLayout()

	var bufs IndexBuffers
	var diags []Diagnostic
	for _, face := range obj.Faces {
		for _, tuple := range face.Tuples {
			d, err := fl.UpdateIndices(tuple, &bufs)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", face.Line, err)
			}
			for i := range d {
				d[i].Line = face.Line
			}
			diags = append(diags, d...)
		}
	}

	vertices, err := fl.MakeVertices(CoordinatesOf(obj), bufs)
	if err != nil {
		return nil, err
	}

	// Bounds cover the positions the faces actually reference.
	bounds := Bounds{}
	if pos := bufs[Position]; len(pos) > 0 {
		bounds = EmptyBounds()
		for _, i := range pos {
			bounds.Extend(obj.Positions[i])
		}
	}

	return &Mesh{
		vertices:    vertices,
		indices:     bufs,
		schema:      schema,
		bounds:      bounds,
		diagnostics: diags,
	}, nil
}

// BuildFromSource parses OBJ data and builds a mesh from it.
func BuildFromSource(data []byte, schema *Schema) (*Mesh, error) {
	obj, err := formats.ParseOBJ(data)
	if err != nil {
		return nil, err
	}
	return Build(obj, schema)
}

// BuildFromFile loads an OBJ file and builds a mesh from it.
func BuildFromFile(path string, schema *Schema) (*Mesh, error) {
	obj, err := formats.LoadOBJ(path)
	if err != nil {
		return nil, err
	}
	m, err := Build(obj, schema)
	if err != nil {
		return nil, fmt.Errorf("build mesh %s: %w", path, err)
	}
	return m, nil
}
