// Package mesh turns parsed OBJ records into GPU-ready interleaved vertex data.
package mesh

import (
	"errors"
	"fmt"
)

// Mesh building errors.
var (
	ErrSlotOutOfRange     = errors.New("face layout slot exceeds tuple length")
	ErrIndexOutOfRange    = errors.New("face index references a missing coordinate record")
	ErrIndexCountMismatch = errors.New("index buffers of configured channels differ in length")
	ErrDuplicateAttribute = errors.New("duplicate vertex attribute index")
	ErrDuplicateSlot      = errors.New("two channels read the same face slot")
	ErrLayoutMismatch     = errors.New("face layout and vertex layout disagree")
	ErrNoPositionChannel  = errors.New("face layout has no position channel")
	ErrInvalidAttribute   = errors.New("invalid vertex attribute")
)

// Channel is one vertex attribute stream of an OBJ mesh.
type Channel int

// Channels in the order they are interleaved into the vertex buffer.
const (
	Position Channel = iota
	Normal
	TexCoord

	channelCount
)

// Channels lists every channel in interleaving order.
var Channels = [channelCount]Channel{Position, Normal, TexCoord}

// String returns the channel name.
func (c Channel) String() string {
	switch c {
	case Position:
		return "position"
	case Normal:
		return "normal"
	case TexCoord:
		return "texcoord"
	default:
		return fmt.Sprintf("Channel(%d)", int(c))
	}
}

// Components returns the number of floats per record of the channel.
func (c Channel) Components() int {
	if c == TexCoord {
		return 2
	}
	return 3
}

// Location is the shader attribute location bound to the channel.
func (c Channel) Location() uint32 {
	return uint32(c)
}

// Slot is a component position inside a face-index tuple.
type Slot int

// NoSlot marks a channel absent from a face layout.
const NoSlot Slot = -1

// Valid reports whether the slot refers to a tuple component.
func (s Slot) Valid() bool {
	return s >= 0
}

// ComponentType is the scalar type of a vertex attribute component.
type ComponentType int

// Supported component types.
const (
	Float32 ComponentType = iota
)

// Size returns the byte size of one component.
func (t ComponentType) Size() int {
	switch t {
	case Float32:
		return 4
	default:
		return 0
	}
}

// String returns the type name.
func (t ComponentType) String() string {
	switch t {
	case Float32:
		return "float32"
	default:
		return fmt.Sprintf("ComponentType(%d)", int(t))
	}
}

// IndexStatus classifies how a face-tuple component resolved to an index.
type IndexStatus int

// Index resolution outcomes.
const (
	IndexOK        IndexStatus = iota
	IndexEmpty                 // component present but blank ("1//3")
	IndexMalformed             // not a positive integer; resolved to 0
)

// String returns a short status name.
func (s IndexStatus) String() string {
	switch s {
	case IndexOK:
		return "ok"
	case IndexEmpty:
		return "empty"
	case IndexMalformed:
		return "malformed"
	default:
		return fmt.Sprintf("IndexStatus(%d)", int(s))
	}
}

// Diagnostic records a face component that was coerced to index 0.
type Diagnostic struct {
	Line      int
	Channel   Channel
	Component string
	Status    IndexStatus
}

// String formats the diagnostic for logs.
func (d Diagnostic) String() string {
	return fmt.Sprintf("line %d: %s component %q %s, using index 0", d.Line, d.Channel, d.Component, d.Status)
}
