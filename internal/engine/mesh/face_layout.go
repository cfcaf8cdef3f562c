package mesh

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Faultbox/objviewer/pkg/formats"
)

// FaceLayout declares which tuple component feeds each channel.
// Channels without a slot are never read from faces nor written to buffers.
type FaceLayout struct {
	slots [channelCount]Slot
}

// NewFaceLayout creates a face layout. Pass NoSlot for absent channels.
func NewFaceLayout(position, normal, texcoord Slot) (*FaceLayout, error) {
	fl := &FaceLayout{slots: [channelCount]Slot{position, normal, texcoord}}

	used := make(map[Slot]Channel, channelCount)
	for _, ch := range Channels {
		s := fl.slots[ch]
		if !s.Valid() {
			fl.slots[ch] = NoSlot
			continue
		}
		if other, ok := used[s]; ok {
			return nil, fmt.Errorf("%w: slot %d used by %s and %s", ErrDuplicateSlot, s, other, ch)
		}
		used[s] = ch
	}

	return fl, nil
}

// Slot returns the tuple slot configured for ch, or NoSlot.
func (fl *FaceLayout) Slot(ch Channel) Slot {
	return fl.slots[ch]
}

// Has reports whether ch is configured.
func (fl *FaceLayout) Has(ch Channel) bool {
	return fl.slots[ch].Valid()
}

// Enabled returns the configured channels in interleaving order.
func (fl *FaceLayout) Enabled() []Channel {
	var out []Channel
	for _, ch := range Channels {
		if fl.Has(ch) {
			out = append(out, ch)
		}
	}
	return out
}

// IndexBuffers holds one resolved index sequence per channel.
type IndexBuffers [channelCount][]uint32

// Len returns the length of the buffer for ch.
func (b *IndexBuffers) Len(ch Channel) int {
	return len(b[ch])
}

// ResolveIndex converts a 1-based tuple component to a 0-based index.
// Blank or unparsable components resolve to 0 and report why.
func ResolveIndex(component string) (uint32, IndexStatus) {
	if component == "" {
		return 0, IndexEmpty
	}
	n, err := strconv.ParseUint(component, 10, 32)
	if err != nil || n == 0 {
		return 0, IndexMalformed
	}
	return uint32(n - 1), IndexOK
}

// UpdateIndices appends the component at each configured slot of tuple to the
// matching buffer. Coerced components are returned as diagnostics with the
// Line field left for the caller to fill.
func (fl *FaceLayout) UpdateIndices(tuple formats.OBJFaceTuple, bufs *IndexBuffers) ([]Diagnostic, error) {
	// Check every slot first so a failing tuple leaves bufs untouched.
	for _, ch := range Channels {
		s := fl.slots[ch]
		if s.Valid() && int(s) >= len(tuple) {
			return nil, fmt.Errorf("%w: %s slot %d, tuple %q has %d components",
				ErrSlotOutOfRange, ch, s, strings.Join(tuple, formats.FaceDelimiter), len(tuple))
		}
	}

	var diags []Diagnostic
	for _, ch := range Channels {
		s := fl.slots[ch]
		if !s.Valid() {
			continue
		}
		idx, status := ResolveIndex(tuple[s])
		if status != IndexOK {
			diags = append(diags, Diagnostic{Channel: ch, Component: tuple[s], Status: status})
		}
		bufs[ch] = append(bufs[ch], idx)
	}
	return diags, nil
}

// Coordinates holds the per-channel coordinate records of a mesh.
type Coordinates struct {
	Positions [][3]float32
	Normals   [][3]float32
	TexCoords [][2]float32
}

// CoordinatesOf returns the coordinate records of a parsed OBJ.
func CoordinatesOf(obj *formats.OBJ) Coordinates {
	return Coordinates{
		Positions: obj.Positions,
		Normals:   obj.Normals,
		TexCoords: obj.TexCoords,
	}
}

// count returns the number of records of ch.
func (c *Coordinates) count(ch Channel) int {
	switch ch {
	case Position:
		return len(c.Positions)
	case Normal:
		return len(c.Normals)
	case TexCoord:
		return len(c.TexCoords)
	}
	return 0
}

// appendRecord appends record i of ch to dst.
func (c *Coordinates) appendRecord(dst []float32, ch Channel, i uint32) []float32 {
	switch ch {
	case Position:
		return append(dst, c.Positions[i][:]...)
	case Normal:
		return append(dst, c.Normals[i][:]...)
	default:
		return append(dst, c.TexCoords[i][:]...)
	}
}

// MakeVertices interleaves the coordinate records referenced by bufs.
// Vertex i holds, for each configured channel in interleaving order, the record
// at bufs[ch][i].
func (fl *FaceLayout) MakeVertices(coords Coordinates, bufs IndexBuffers) ([]float32, error) {
	enabled := fl.Enabled()
	if len(enabled) == 0 {
		return nil, nil
	}

	n := len(bufs[enabled[0]])
	floats := 0
	for _, ch := range enabled {
		if len(bufs[ch]) != n {
			return nil, fmt.Errorf("%w: %s has %d, %s has %d",
				ErrIndexCountMismatch, enabled[0], n, ch, len(bufs[ch]))
		}
		floats += ch.Components()
	}

	vertices := make([]float32, 0, n*floats)
	for i := 0; i < n; i++ {
		for _, ch := range enabled {
			idx := bufs[ch][i]
			if int(idx) >= coords.count(ch) {
				return nil, fmt.Errorf("%w: vertex %d %s index %d, have %d records",
					ErrIndexOutOfRange, i, ch, idx, coords.count(ch))
			}
			vertices = coords.appendRecord(vertices, ch, idx)
		}
	}
	return vertices, nil
}
