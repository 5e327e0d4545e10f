package pieces

import (
	"errors"
	"strings"
)

// ShapeSequence is an ordered list of shapes, typically the expansion of one
// pattern element or a whole pattern.
type ShapeSequence []Shape

// Counter returns the multiset of the sequence's shapes.
func (seq ShapeSequence) Counter() ShapeCounter {
	return NewShapeCounter(seq...)
}

// String returns the shapes as a compact letter run, e.g. "TIO".
func (seq ShapeSequence) String() string {
	var b strings.Builder
	for _, s := range seq {
		b.WriteString(s.String())
	}
	return b.String()
}

// ShapeOrder is the order shapes are supplied to a player. With hold in play,
// the supply order and the placement order can differ.
type ShapeOrder []Shape

// Counter returns the multiset of the order's shapes.
func (o ShapeOrder) Counter() ShapeCounter {
	return NewShapeCounter(o...)
}

// String returns the shapes as a compact letter run.
func (o ShapeOrder) String() string {
	return ShapeSequence(o).String()
}

// MaxBitShapes is the capacity of a BitShapes: 3 bits per shape in a uint64.
const MaxBitShapes = 21

// ErrTooManyShapes is returned when a packed shape sequence would exceed
// MaxBitShapes shapes.
var ErrTooManyShapes = errors.New("pieces: too many shapes for a packed sequence")

// BitShapes is an immutable packed shape sequence: up to MaxBitShapes shapes
// in a single machine word. Packed sequences compare with ==.
type BitShapes struct {
	bits uint64
	size uint8
}

// NewBitShapes packs the given shapes. Fails with ErrTooManyShapes when more
// than MaxBitShapes are given.
func NewBitShapes(shapes ...Shape) (BitShapes, error) {
	if len(shapes) > MaxBitShapes {
		return BitShapes{}, ErrTooManyShapes
	}
	var bs BitShapes
	for _, s := range shapes {
		bs.bits |= uint64(s) << (3 * uint(bs.size))
		bs.size++
	}
	return bs, nil
}

// MustBitShapes packs the given shapes and panics on overflow. For use with
// compile-time-known sequences.
func MustBitShapes(shapes ...Shape) BitShapes {
	bs, err := NewBitShapes(shapes...)
	if err != nil {
		panic(err)
	}
	return bs
}

// Size returns the number of packed shapes.
func (bs BitShapes) Size() int {
	return int(bs.size)
}

// At returns the i-th packed shape.
func (bs BitShapes) At(i int) Shape {
	if i < 0 || i >= int(bs.size) {
		panic("shape index out of range")
	}
	return Shape(bs.bits >> (3 * uint(i)) & 0b111)
}

// Push returns a new packed sequence with s appended.
func (bs BitShapes) Push(s Shape) (BitShapes, error) {
	if bs.size >= MaxBitShapes {
		return BitShapes{}, ErrTooManyShapes
	}
	bs.bits |= uint64(s) << (3 * uint(bs.size))
	bs.size++
	return bs, nil
}

// Shapes unpacks the sequence into a slice.
func (bs BitShapes) Shapes() []Shape {
	out := make([]Shape, bs.size)
	for i := range out {
		out[i] = bs.At(i)
	}
	return out
}

// String returns the packed shapes as a compact letter run.
func (bs BitShapes) String() string {
	return ShapeSequence(bs.Shapes()).String()
}
