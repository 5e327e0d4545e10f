package pieces

import "strings"

// ShapeCounter is a multiset of shapes: a count per shape, order-independent.
// It is a value type and is copied freely.
type ShapeCounter [ShapeCount]uint8

// NewShapeCounter builds a counter from the given shapes.
func NewShapeCounter(shapes ...Shape) ShapeCounter {
	var c ShapeCounter
	for _, s := range shapes {
		c[s-1]++
	}
	return c
}

// OneOfEach returns a counter holding exactly one of every shape.
func OneOfEach() ShapeCounter {
	var c ShapeCounter
	for i := range c {
		c[i] = 1
	}
	return c
}

// Count returns how many of shape s the counter holds.
func (c ShapeCounter) Count(s Shape) int {
	return int(c[s-1])
}

// Size returns the total number of shapes counted.
func (c ShapeCounter) Size() int {
	total := 0
	for _, n := range c {
		total += int(n)
	}
	return total
}

// IsEmpty reports whether no shape is counted.
func (c ShapeCounter) IsEmpty() bool {
	return c == ShapeCounter{}
}

// ContainsAll reports whether c holds at least every count in other.
func (c ShapeCounter) ContainsAll(other ShapeCounter) bool {
	for i := range c {
		if c[i] < other[i] {
			return false
		}
	}
	return true
}

// Add returns the counter with one more of shape s.
func (c ShapeCounter) Add(s Shape) ShapeCounter {
	c[s-1]++
	return c
}

// Remove returns the counter with one fewer of shape s. Removing a shape that
// is not counted is a caller bug.
func (c ShapeCounter) Remove(s Shape) ShapeCounter {
	if c[s-1] == 0 {
		panic("removing shape not in counter")
	}
	c[s-1]--
	return c
}

// Merge returns the elementwise sum of both counters.
func (c ShapeCounter) Merge(other ShapeCounter) ShapeCounter {
	for i := range c {
		c[i] += other[i]
	}
	return c
}

// Shapes expands the counter into a slice in enumeration order, each shape
// repeated by its count.
func (c ShapeCounter) Shapes() []Shape {
	out := make([]Shape, 0, c.Size())
	for i, n := range c {
		for j := uint8(0); j < n; j++ {
			out = append(out, Shape(i+1))
		}
	}
	return out
}

// String returns the counted shapes in enumeration order, e.g. "TIIO".
func (c ShapeCounter) String() string {
	var b strings.Builder
	for i, n := range c {
		for j := uint8(0); j < n; j++ {
			b.WriteString(Shape(i + 1).String())
		}
	}
	return b.String()
}
