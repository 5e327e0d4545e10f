package pieces

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestShapeSequenceCounter(t *testing.T) {
	seq := ShapeSequence{ShapeT, ShapeT, ShapeZ}
	want := NewShapeCounter(ShapeT, ShapeT, ShapeZ)
	if got := seq.Counter(); got != want {
		t.Errorf("Counter() = %v, want %v", got, want)
	}
	if got := seq.String(); got != "TTZ" {
		t.Errorf("String() = %q, want %q", got, "TTZ")
	}
}

func TestBitShapesRoundTrip(t *testing.T) {
	shapes := []Shape{ShapeT, ShapeI, ShapeO, ShapeL, ShapeJ, ShapeS, ShapeZ}
	bs, err := NewBitShapes(shapes...)
	if err != nil {
		t.Fatalf("NewBitShapes() error = %v", err)
	}
	if got := bs.Size(); got != len(shapes) {
		t.Fatalf("Size() = %d, want %d", got, len(shapes))
	}
	if diff := cmp.Diff(shapes, bs.Shapes()); diff != "" {
		t.Errorf("Shapes() mismatch (-want +got):\n%s", diff)
	}
	if got := bs.String(); got != "TIOLJSZ" {
		t.Errorf("String() = %q, want %q", got, "TIOLJSZ")
	}
}

func TestBitShapesEquality(t *testing.T) {
	a := MustBitShapes(ShapeT, ShapeI)
	b := MustBitShapes(ShapeT, ShapeI)
	c := MustBitShapes(ShapeI, ShapeT)
	if a != b {
		t.Error("equal packed sequences compare unequal")
	}
	if a == c {
		t.Error("packed sequences with different order compare equal")
	}
}

func TestBitShapesOverflow(t *testing.T) {
	shapes := make([]Shape, MaxBitShapes+1)
	for i := range shapes {
		shapes[i] = ShapeT
	}
	if _, err := NewBitShapes(shapes...); !errors.Is(err, ErrTooManyShapes) {
		t.Errorf("NewBitShapes() error = %v, want ErrTooManyShapes", err)
	}

	full := make([]Shape, MaxBitShapes)
	for i := range full {
		full[i] = ShapeZ
	}
	bs := MustBitShapes(full...)
	if _, err := bs.Push(ShapeT); !errors.Is(err, ErrTooManyShapes) {
		t.Errorf("Push() error = %v, want ErrTooManyShapes", err)
	}
}

func TestBitShapesPush(t *testing.T) {
	bs := MustBitShapes(ShapeT)
	bs2, err := bs.Push(ShapeO)
	if err != nil {
		t.Fatalf("Push() error = %v", err)
	}
	if got := bs2.String(); got != "TO" {
		t.Errorf("pushed String() = %q, want %q", got, "TO")
	}
	// Push is a value operation; the receiver is unchanged.
	if got := bs.Size(); got != 1 {
		t.Errorf("original Size() = %d, want 1", got)
	}
}
