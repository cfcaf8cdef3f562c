// Package formats provides parsers for 3D model file formats.
package formats

// Note: Wavefront OBJ is implemented in obj.go
