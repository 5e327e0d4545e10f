// Package fuzzy models shape orders in which some positions are not pinned
// to a concrete shape. Hold lets a solver succeed without revealing the
// shapes it never consumed, so one success stands for every concrete order
// obtainable by filling the unknown positions.
package fuzzy

import (
	"strings"

	"github.com/minus3theta/bitris-commands/pkg/pieces"
)

// Shape is one position of a fuzzy order: a concrete shape or an unknown
// slot standing for any shape.
type Shape struct {
	shape pieces.Shape
	known bool
}

// Known pins a position to a concrete shape.
func Known(s pieces.Shape) Shape {
	return Shape{shape: s, known: true}
}

// Unknown is the any-shape slot.
var Unknown = Shape{}

// String returns the shape letter, or "?" for an unknown slot.
func (s Shape) String() string {
	if !s.known {
		return "?"
	}
	return s.shape.String()
}

// ShapeOrder is an ordered run of fuzzy shapes.
type ShapeOrder []Shape

func (o ShapeOrder) String() string {
	var b strings.Builder
	for _, s := range o {
		b.WriteString(s.String())
	}
	return b.String()
}

// ExpandAsWildcardWalk calls visit once per concrete order obtainable by
// substituting every unknown position with each of the seven shapes in
// enumeration order, positions walked left to right. The slice passed to
// visit is reused between calls; visitors that retain it must copy. It
// panics on an empty order.
func (o ShapeOrder) ExpandAsWildcardWalk(visit func(pieces.ShapeOrder)) {
	if len(o) == 0 {
		panic("fuzzy: empty shape order")
	}
	buffer := make([]pieces.Shape, len(o))
	var rec func(index int)
	rec = func(index int) {
		if index == len(o) {
			visit(pieces.ShapeOrder(buffer))
			return
		}
		if o[index].known {
			buffer[index] = o[index].shape
			rec(index + 1)
			return
		}
		for _, s := range pieces.NonemptyShapes {
			buffer[index] = s
			rec(index + 1)
		}
	}
	rec(0)
}

// ExpandAsWildcard materializes every concrete order the fuzzy order stands
// for.
func (o ShapeOrder) ExpandAsWildcard() []pieces.ShapeOrder {
	var out []pieces.ShapeOrder
	o.ExpandAsWildcardWalk(func(order pieces.ShapeOrder) {
		out = append(out, append(pieces.ShapeOrder(nil), order...))
	})
	return out
}
