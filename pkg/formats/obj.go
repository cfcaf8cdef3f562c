// Package formats provides parsers for 3D model file formats.
package formats

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// OBJ format errors.
var (
	ErrMalformedCoordinate = errors.New("malformed OBJ coordinate record")
	ErrShortFace           = errors.New("OBJ face has fewer than 3 vertices")
)

// FaceDelimiter separates the components of a face-index tuple ("v/vt/vn").
const FaceDelimiter = "/"

// FaceVertexCount is the number of tuples read from every face record.
// Polygons with more vertices are truncated to their first triangle.
const FaceVertexCount = 3

// Maximum line length accepted by the scanner.
const maxLineBytes = 1 << 20

// OBJFaceTuple is one face vertex reference split on FaceDelimiter.
// Components are kept verbatim; resolving them to indices is up to the caller.
type OBJFaceTuple []string

// OBJFace is a triangular face record.
type OBJFace struct {
	Line   int // 1-based source line
	Tuples [FaceVertexCount]OBJFaceTuple
}

// OBJ holds the raw records of an OBJ file in parse order.
type OBJ struct {
	Positions [][3]float32
	Normals   [][3]float32
	TexCoords [][2]float32
	Faces     []OBJFace

	// DroppedVertices counts face tuples past the third that were ignored.
	DroppedVertices int
	// SkippedLines counts non-blank lines with an unknown leading token.
	SkippedLines int
}

// LoadOBJ reads and parses an OBJ file from disk.
func LoadOBJ(path string) (*OBJ, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj %s: %w", path, err)
	}
	defer f.Close()

	obj, err := ParseOBJReader(f)
	if err != nil {
		return nil, fmt.Errorf("parse obj %s: %w", path, err)
	}
	return obj, nil
}

// ParseOBJ parses OBJ data held in memory.
func ParseOBJ(data []byte) (*OBJ, error) {
	return ParseOBJReader(bytes.NewReader(data))
}

// ParseOBJReader parses OBJ records from r.
// A malformed coordinate record aborts the whole parse.
func ParseOBJReader(r io.Reader) (*OBJ, error) {
	obj := &OBJ{}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			v, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: position: %w", line, err)
			}
			obj.Positions = append(obj.Positions, v)
		case "vn":
			v, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: normal: %w", line, err)
			}
			obj.Normals = append(obj.Normals, v)
		case "vt":
			v, err := parseVec2(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: texcoord: %w", line, err)
			}
			obj.TexCoords = append(obj.TexCoords, v)
		case "f":
			face, dropped, err := parseFace(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			face.Line = line
			obj.Faces = append(obj.Faces, face)
			obj.DroppedVertices += dropped
		default:
			obj.SkippedLines++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read obj: %w", err)
	}

	return obj, nil
}

func parseFace(tokens []string) (OBJFace, int, error) {
	var face OBJFace
	if len(tokens) < FaceVertexCount {
		return face, 0, fmt.Errorf("%w: got %d", ErrShortFace, len(tokens))
	}
	for i := 0; i < FaceVertexCount; i++ {
		face.Tuples[i] = strings.Split(tokens[i], FaceDelimiter)
	}
	return face, len(tokens) - FaceVertexCount, nil
}

func parseVec3(tokens []string) ([3]float32, error) {
	var v [3]float32
	if err := parseFloats(tokens, v[:]); err != nil {
		return v, err
	}
	return v, nil
}

func parseVec2(tokens []string) ([2]float32, error) {
	var v [2]float32
	if err := parseFloats(tokens, v[:]); err != nil {
		return v, err
	}
	return v, nil
}

// parseFloats fills dst from the leading tokens; extra tokens are ignored.
func parseFloats(tokens []string, dst []float32) error {
	if len(tokens) < len(dst) {
		return fmt.Errorf("%w: want %d values, got %d", ErrMalformedCoordinate, len(dst), len(tokens))
	}
	for i := range dst {
		f, err := strconv.ParseFloat(tokens[i], 32)
		if err != nil {
			return fmt.Errorf("%w: %q", ErrMalformedCoordinate, tokens[i])
		}
		dst[i] = float32(f)
	}
	return nil
}
