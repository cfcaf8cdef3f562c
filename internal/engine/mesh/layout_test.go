package mesh

import (
	"errors"
	"testing"

	"github.com/Faultbox/objviewer/pkg/formats"
)

func TestNewVertexLayout_StrideAndOffsets(t *testing.T) {
	l, err := NewVertexLayout(
		FloatAttribute(0, 3),
		FloatAttribute(1, 3),
		FloatAttribute(2, 2),
	)
	if err != nil {
		t.Fatalf("NewVertexLayout failed: %v", err)
	}

	if l.Stride() != 32 {
		t.Errorf("expected stride 32, got %d", l.Stride())
	}

	wantOffsets := []int{0, 12, 24}
	for i, want := range wantOffsets {
		if got := l.Offset(i); got != want {
			t.Errorf("attribute %d: expected offset %d, got %d", i, want, got)
		}
	}
	if l.FloatsPerVertex() != 8 {
		t.Errorf("expected 8 floats per vertex, got %d", l.FloatsPerVertex())
	}
}

func TestNewVertexLayout_Errors(t *testing.T) {
	if _, err := NewVertexLayout(FloatAttribute(0, 3), FloatAttribute(0, 2)); !errors.Is(err, ErrDuplicateAttribute) {
		t.Errorf("expected ErrDuplicateAttribute, got %v", err)
	}
	if _, err := NewVertexLayout(FloatAttribute(0, 0)); !errors.Is(err, ErrInvalidAttribute) {
		t.Errorf("expected ErrInvalidAttribute, got %v", err)
	}
}

func TestVertexLayout_AttributesIsCopy(t *testing.T) {
	l, err := NewVertexLayout(FloatAttribute(0, 3))
	if err != nil {
		t.Fatalf("NewVertexLayout failed: %v", err)
	}
	attrs := l.Attributes()
	attrs[0].Offset = 99
	if l.Offset(0) != 0 {
		t.Error("mutating Attributes() result changed the layout")
	}
}

func TestNewFaceLayout_DuplicateSlot(t *testing.T) {
	_, err := NewFaceLayout(0, 0, NoSlot)
	if !errors.Is(err, ErrDuplicateSlot) {
		t.Errorf("expected ErrDuplicateSlot, got %v", err)
	}
}

func TestNewFaceLayout_NegativeSlotsAreAbsent(t *testing.T) {
	fl, err := NewFaceLayout(0, -5, NoSlot)
	if err != nil {
		t.Fatalf("NewFaceLayout failed: %v", err)
	}
	if fl.Has(Normal) || fl.Slot(Normal) != NoSlot {
		t.Errorf("expected normal to be absent, got slot %d", fl.Slot(Normal))
	}
	if got := fl.Enabled(); len(got) != 1 || got[0] != Position {
		t.Errorf("enabled: got %v", got)
	}
}

func TestResolveIndex(t *testing.T) {
	tests := []struct {
		in     string
		want   uint32
		status IndexStatus
	}{
		{"1", 0, IndexOK},
		{"42", 41, IndexOK},
		{"", 0, IndexEmpty},
		{"abc", 0, IndexMalformed},
		{"0", 0, IndexMalformed},
		{"-1", 0, IndexMalformed},
		{"99999999999", 0, IndexMalformed},
	}

	for _, tc := range tests {
		got, status := ResolveIndex(tc.in)
		if got != tc.want || status != tc.status {
			t.Errorf("ResolveIndex(%q) = %d, %s; want %d, %s", tc.in, got, status, tc.want, tc.status)
		}
	}
}

func TestUpdateIndices(t *testing.T) {
	fl, err := NewFaceLayout(0, 2, NoSlot)
	if err != nil {
		t.Fatalf("NewFaceLayout failed: %v", err)
	}

	var bufs IndexBuffers
	diags, err := fl.UpdateIndices(formats.OBJFaceTuple{"3", "7", "5"}, &bufs)
	if err != nil {
		t.Fatalf("UpdateIndices failed: %v", err)
	}
	if len(diags) != 0 {
		t.Errorf("expected no diagnostics, got %v", diags)
	}
	if !equalIndices(bufs[Position], []uint32{2}) || !equalIndices(bufs[Normal], []uint32{4}) {
		t.Errorf("buffers: got %v", bufs)
	}
	if bufs.Len(TexCoord) != 0 {
		t.Errorf("texcoord buffer should stay empty, got %v", bufs[TexCoord])
	}
}

func TestUpdateIndices_ShortTupleLeavesBuffersUntouched(t *testing.T) {
	fl, err := NewFaceLayout(0, 2, NoSlot)
	if err != nil {
		t.Fatalf("NewFaceLayout failed: %v", err)
	}

	var bufs IndexBuffers
	_, err = fl.UpdateIndices(formats.OBJFaceTuple{"1", "1"}, &bufs)
	if !errors.Is(err, ErrSlotOutOfRange) {
		t.Fatalf("expected ErrSlotOutOfRange, got %v", err)
	}
	if bufs.Len(Position) != 0 {
		t.Errorf("position buffer should be untouched, got %v", bufs[Position])
	}
}

func TestMakeVertices_LengthMismatch(t *testing.T) {
	fl, err := NewFaceLayout(0, 1, NoSlot)
	if err != nil {
		t.Fatalf("NewFaceLayout failed: %v", err)
	}

	coords := Coordinates{
		Positions: [][3]float32{{0, 0, 0}},
		Normals:   [][3]float32{{0, 1, 0}},
	}
	var bufs IndexBuffers
	bufs[Position] = []uint32{0, 0}
	bufs[Normal] = []uint32{0}

	if _, err := fl.MakeVertices(coords, bufs); !errors.Is(err, ErrIndexCountMismatch) {
		t.Errorf("expected ErrIndexCountMismatch, got %v", err)
	}
}

func TestNewSchema(t *testing.T) {
	s, err := NewSchemaFromSlots(0, NoSlot, 1)
	if err != nil {
		t.Fatalf("NewSchemaFromSlots failed: %v", err)
	}

	attrs := s.VertexLayout().Attributes()
	if len(attrs) != 2 {
		t.Fatalf("expected 2 attributes, got %d", len(attrs))
	}
	if attrs[0].Index != Position.Location() || attrs[0].Components != 3 {
		t.Errorf("attribute 0: got %+v", attrs[0])
	}
	if attrs[1].Index != TexCoord.Location() || attrs[1].Components != 2 || attrs[1].Offset != 12 {
		t.Errorf("attribute 1: got %+v", attrs[1])
	}
	if err := Validate(s.FaceLayout(), s.VertexLayout()); err != nil {
		t.Errorf("derived layouts should validate, got %v", err)
	}
}

func TestNewSchema_RequiresPosition(t *testing.T) {
	if _, err := NewSchemaFromSlots(NoSlot, 0, 1); !errors.Is(err, ErrNoPositionChannel) {
		t.Errorf("expected ErrNoPositionChannel, got %v", err)
	}
}

func TestValidate_Mismatch(t *testing.T) {
	fl, err := NewFaceLayout(0, 2, 1)
	if err != nil {
		t.Fatalf("NewFaceLayout failed: %v", err)
	}

	tests := []struct {
		name  string
		attrs []Attribute
	}{
		{"missing channel", []Attribute{FloatAttribute(0, 3), FloatAttribute(1, 3)}},
		{"swapped order", []Attribute{FloatAttribute(0, 3), FloatAttribute(2, 2), FloatAttribute(1, 3)}},
		{"wrong components", []Attribute{FloatAttribute(0, 3), FloatAttribute(1, 4), FloatAttribute(2, 2)}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			vl, err := NewVertexLayout(tc.attrs...)
			if err != nil {
				t.Fatalf("NewVertexLayout failed: %v", err)
			}
			if err := Validate(fl, vl); !errors.Is(err, ErrLayoutMismatch) {
				t.Errorf("expected ErrLayoutMismatch, got %v", err)
			}
		})
	}
}

func TestChannel_String(t *testing.T) {
	if Position.String() != "position" || Normal.String() != "normal" || TexCoord.String() != "texcoord" {
		t.Error("unexpected channel names")
	}
}
