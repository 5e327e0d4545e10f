// Package pattern expands compact shape-supply specifications into the
// concrete shape sequences and multisets they denote.
//
// A pattern is an ordered list of elements. Each element denotes a set of
// sub-sequences, and the pattern denotes their Cartesian product in element
// order:
//
//	One(shape)                the single shape, like `T`
//	Fixed(shapes)             a fixed run, like `TIO`
//	Wildcard()                any one shape, like `*`
//	Permutation(counter, 2)   ordered picks of 2 from the counter, like `[TIO]p2`
//	Factorial(counter)        every order of the whole counter, like `[TIO]!`
//
// Permutations draw from the counter with its multiplicities. Duplicates are
// not removed: a counter holding two I shapes denotes two picks of `II`, one
// per source occurrence.
package pattern

import (
	"slices"
	"strconv"
	"strings"

	"github.com/minus3theta/bitris-commands/pkg/errors"
	"github.com/minus3theta/bitris-commands/pkg/pieces"
)

// Element is one step of a pattern, denoting a set of shape sub-sequences.
type Element struct {
	kind    elementKind
	shape   pieces.Shape
	shapes  pieces.BitShapes
	counter pieces.ShapeCounter
	pop     int
}

type elementKind uint8

const (
	elementOne elementKind = iota
	elementFixed
	elementWildcard
	elementPermutation
	elementFactorial
)

// One denotes the single fixed shape.
func One(shape pieces.Shape) Element {
	return Element{kind: elementOne, shape: shape}
}

// Fixed denotes a fixed run of shapes.
func Fixed(shapes pieces.BitShapes) Element {
	return Element{kind: elementFixed, shapes: shapes}
}

// Wildcard denotes any one of the seven shapes.
func Wildcard() Element {
	return Element{kind: elementWildcard}
}

// Permutation denotes every ordered pick of pop shapes from the counter.
func Permutation(counter pieces.ShapeCounter, pop int) Element {
	return Element{kind: elementPermutation, counter: counter, pop: pop}
}

// Factorial denotes every ordered pick of the whole counter.
func Factorial(counter pieces.ShapeCounter) Element {
	return Element{kind: elementFactorial, counter: counter}
}

// LenShapesVec returns the number of sub-sequences the element denotes.
// It panics when a permutation cannot draw from its counter; NewPattern
// rejects such elements up front.
func (e Element) LenShapesVec() int {
	switch e.kind {
	case elementOne, elementFixed:
		return 1
	case elementWildcard:
		return pieces.ShapeCount
	case elementPermutation:
		return fallingFactorial(e.counter.Size(), e.pop)
	case elementFactorial:
		return fallingFactorial(e.counter.Size(), e.counter.Size())
	}
	panic("pattern: unknown element kind")
}

// DimShapes returns the number of shape positions the element contributes.
func (e Element) DimShapes() int {
	switch e.kind {
	case elementOne, elementWildcard:
		return 1
	case elementFixed:
		return e.shapes.Size()
	case elementPermutation:
		if e.pop <= 0 || e.counter.Size() < e.pop {
			panic("pattern: permutation pop out of range")
		}
		return e.pop
	case elementFactorial:
		return e.counter.Size()
	}
	panic("pattern: unknown element kind")
}

// String returns the element in pattern text syntax.
func (e Element) String() string {
	switch e.kind {
	case elementOne:
		return e.shape.String()
	case elementFixed:
		return e.shapes.String()
	case elementWildcard:
		return "*"
	case elementPermutation:
		return counterToken(e.counter) + "p" + strconv.Itoa(e.pop)
	case elementFactorial:
		return counterToken(e.counter) + "!"
	}
	panic("pattern: unknown element kind")
}

func counterToken(c pieces.ShapeCounter) string {
	if c == pieces.OneOfEach() {
		return "*"
	}
	return "[" + c.String() + "]"
}

// shapesVec materializes the element's sub-sequences in enumeration order.
func (e Element) shapesVec() [][]pieces.Shape {
	switch e.kind {
	case elementOne:
		return [][]pieces.Shape{{e.shape}}
	case elementFixed:
		return [][]pieces.Shape{e.shapes.Shapes()}
	case elementWildcard:
		out := make([][]pieces.Shape, 0, pieces.ShapeCount)
		for _, s := range pieces.NonemptyShapes {
			out = append(out, []pieces.Shape{s})
		}
		return out
	case elementPermutation:
		return permutations(e.counter.Shapes(), e.pop)
	case elementFactorial:
		return permutations(e.counter.Shapes(), e.counter.Size())
	}
	panic("pattern: unknown element kind")
}

// counters returns the distinct shape multisets the element's sub-sequences
// can use.
func (e Element) counters() []pieces.ShapeCounter {
	switch e.kind {
	case elementOne:
		return []pieces.ShapeCounter{pieces.NewShapeCounter(e.shape)}
	case elementFixed:
		return []pieces.ShapeCounter{pieces.NewShapeCounter(e.shapes.Shapes()...)}
	case elementWildcard:
		out := make([]pieces.ShapeCounter, 0, pieces.ShapeCount)
		for _, s := range pieces.NonemptyShapes {
			out = append(out, pieces.NewShapeCounter(s))
		}
		return out
	case elementPermutation:
		return subCounters(e.counter, e.pop)
	case elementFactorial:
		return []pieces.ShapeCounter{e.counter}
	}
	panic("pattern: unknown element kind")
}

func fallingFactorial(n, pop int) int {
	if pop <= 0 || n < pop {
		panic("pattern: permutation pop out of range")
	}
	out := 1
	for i := n - pop + 1; i <= n; i++ {
		out *= i
	}
	return out
}

// permutations returns every ordered pick of pop items. Source positions are
// distinct, so repeated items yield repeated picks.
func permutations(items []pieces.Shape, pop int) [][]pieces.Shape {
	out := make([][]pieces.Shape, 0, fallingFactorial(len(items), pop))
	used := make([]bool, len(items))
	current := make([]pieces.Shape, 0, pop)
	var rec func()
	rec = func() {
		if len(current) == pop {
			out = append(out, slices.Clone(current))
			return
		}
		for i, item := range items {
			if used[i] {
				continue
			}
			used[i] = true
			current = append(current, item)
			rec()
			current = current[:len(current)-1]
			used[i] = false
		}
	}
	rec()
	return out
}

// subCounters returns every distinct sub-multiset of size pop.
func subCounters(c pieces.ShapeCounter, pop int) []pieces.ShapeCounter {
	var out []pieces.ShapeCounter
	var rec func(idx, remaining int, acc pieces.ShapeCounter)
	rec = func(idx, remaining int, acc pieces.ShapeCounter) {
		if remaining == 0 {
			out = append(out, acc)
			return
		}
		if idx == len(pieces.NonemptyShapes) {
			return
		}
		s := pieces.NonemptyShapes[idx]
		limit := c.Count(s)
		if limit > remaining {
			limit = remaining
		}
		for take := 0; take <= limit; take++ {
			next := acc
			for j := 0; j < take; j++ {
				next = next.Add(s)
			}
			rec(idx+1, remaining-take, next)
		}
	}
	rec(0, pop, pieces.ShapeCounter{})
	return out
}

// Pattern is a validated, ordered list of elements.
type Pattern struct {
	elements []Element
}

// NewPattern builds a pattern from elements. It fails with
// [errors.ErrCodeNoShapeSequences] when no elements are given and with
// [errors.ErrCodeContainsInvalidPermutation] when a permutation or factorial
// element cannot draw from its counter.
func NewPattern(elements ...Element) (*Pattern, error) {
	if len(elements) == 0 {
		return nil, errors.New(errors.ErrCodeNoShapeSequences, "pattern has no elements")
	}
	for i, e := range elements {
		switch e.kind {
		case elementPermutation:
			if e.counter.IsEmpty() || e.pop <= 0 || e.counter.Size() < e.pop {
				return nil, errors.New(errors.ErrCodeContainsInvalidPermutation,
					"element %d cannot pick %d shapes from %d", i+1, e.pop, e.counter.Size())
			}
		case elementFactorial:
			if e.counter.IsEmpty() {
				return nil, errors.New(errors.ErrCodeContainsInvalidPermutation,
					"element %d takes the factorial of an empty counter", i+1)
			}
		}
	}
	return &Pattern{elements: slices.Clone(elements)}, nil
}

// MustPattern is NewPattern, panicking on error.
func MustPattern(elements ...Element) *Pattern {
	p, err := NewPattern(elements...)
	if err != nil {
		panic(err)
	}
	return p
}

// Elements returns the pattern's elements in order.
func (p *Pattern) Elements() []Element {
	return slices.Clone(p.elements)
}

// LenShapesVec returns the number of sequences the pattern denotes: the
// product of the per-element counts.
func (p *Pattern) LenShapesVec() int {
	out := 1
	for _, e := range p.elements {
		out *= e.LenShapesVec()
	}
	return out
}

// DimShapes returns the length of every denoted sequence: the sum of the
// per-element positions.
func (p *Pattern) DimShapes() int {
	out := 0
	for _, e := range p.elements {
		out += e.DimShapes()
	}
	return out
}

// WalkShapeSequences calls visit once per denoted sequence, elements in
// order and each element's sub-sequences in enumeration order. The slice
// passed to visit is reused between calls; visitors that retain it must
// copy.
func (p *Pattern) WalkShapeSequences(visit func(pieces.ShapeSequence)) {
	perElement := make([][][]pieces.Shape, len(p.elements))
	for i, e := range p.elements {
		perElement[i] = e.shapesVec()
	}
	buffer := make([]pieces.Shape, 0, p.DimShapes())
	var rec func(index int)
	rec = func(index int) {
		if index == len(perElement) {
			visit(pieces.ShapeSequence(buffer))
			return
		}
		for _, shapes := range perElement[index] {
			n := len(buffer)
			buffer = append(buffer, shapes...)
			rec(index + 1)
			buffer = buffer[:n]
		}
	}
	rec(0)
}

// ToSequences materializes every denoted sequence.
func (p *Pattern) ToSequences() []pieces.ShapeSequence {
	out := make([]pieces.ShapeSequence, 0, p.LenShapesVec())
	p.WalkShapeSequences(func(seq pieces.ShapeSequence) {
		out = append(out, slices.Clone(seq))
	})
	return out
}

// ToOrders materializes every denoted sequence as a consume order.
func (p *Pattern) ToOrders() []pieces.ShapeOrder {
	out := make([]pieces.ShapeOrder, 0, p.LenShapesVec())
	p.WalkShapeSequences(func(seq pieces.ShapeSequence) {
		out = append(out, pieces.ShapeOrder(slices.Clone(seq)))
	})
	return out
}

// ToShapeCounterVec returns the distinct shape multisets the pattern's
// sequences can use, in a deterministic order. The aggregation filter
// consumes these.
func (p *Pattern) ToShapeCounterVec() []pieces.ShapeCounter {
	acc := []pieces.ShapeCounter{{}}
	for _, e := range p.elements {
		options := e.counters()
		seen := make(map[pieces.ShapeCounter]struct{}, len(acc)*len(options))
		next := make([]pieces.ShapeCounter, 0, len(acc)*len(options))
		for _, base := range acc {
			for _, opt := range options {
				merged := base.Merge(opt)
				if _, ok := seen[merged]; ok {
					continue
				}
				seen[merged] = struct{}{}
				next = append(next, merged)
			}
		}
		acc = next
	}
	return acc
}

// String returns the pattern in text syntax, elements joined by commas.
func (p *Pattern) String() string {
	parts := make([]string, len(p.elements))
	for i, e := range p.elements {
		parts[i] = e.String()
	}
	return strings.Join(parts, ",")
}
