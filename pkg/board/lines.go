// Package board provides the bit-level play field primitives: row masks,
// a fixed-width column bitboard, line clearing, and the height-clipped view
// the solvers operate on.
package board

import (
	"math/bits"
	"strconv"
	"strings"
)

// MaxRows is the row capacity of a Lines mask and of a Board.
const MaxRows = 64

// Lines is a set of board rows as a bitmask, bit y for row y (row 0 at the
// bottom). It is an immutable value type and is copied freely.
type Lines uint64

// BlankLines returns the empty row set.
func BlankLines() Lines {
	return 0
}

// NewLines builds a row set from explicit row indices.
func NewLines(rows ...int) Lines {
	var l Lines
	for _, y := range rows {
		l |= 1 << uint(y)
	}
	return l
}

// FilledUpToLines returns the rows 0 through height-1.
func FilledUpToLines(height int) Lines {
	if height <= 0 {
		return 0
	}
	if height >= MaxRows {
		return ^Lines(0)
	}
	return (1 << uint(height)) - 1
}

// LinesBetween returns the rows from low through high inclusive.
func LinesBetween(low, high int) Lines {
	if high < low {
		return 0
	}
	return FilledUpToLines(high+1) &^ FilledUpToLines(low)
}

// Test reports whether row y is in the set.
func (l Lines) Test(y int) bool {
	return l&(1<<uint(y)) != 0
}

// Overlaps reports whether the two sets share a row.
func (l Lines) Overlaps(other Lines) bool {
	return l&other != 0
}

// ContainsAll reports whether every row of other is in l.
func (l Lines) ContainsAll(other Lines) bool {
	return l&other == other
}

// Count returns the number of rows in the set.
func (l Lines) Count() int {
	return bits.OnesCount64(uint64(l))
}

// CountBelow returns how many rows of the set lie strictly below row y.
func (l Lines) CountBelow(y int) int {
	return bits.OnesCount64(uint64(l) & (1<<uint(y) - 1))
}

// Lowest returns the smallest row in the set, or -1 when empty.
func (l Lines) Lowest() int {
	if l == 0 {
		return -1
	}
	return bits.TrailingZeros64(uint64(l))
}

// Highest returns the largest row in the set, or -1 when empty.
func (l Lines) Highest() int {
	if l == 0 {
		return -1
	}
	return 63 - bits.LeadingZeros64(uint64(l))
}

// Rows expands the set into ascending row indices.
func (l Lines) Rows() []int {
	out := make([]int, 0, l.Count())
	for rest := uint64(l); rest != 0; rest &= rest - 1 {
		out = append(out, bits.TrailingZeros64(rest))
	}
	return out
}

// String returns the ascending row indices, e.g. "{0,2,3}".
func (l Lines) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, y := range l.Rows() {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(y))
	}
	b.WriteByte('}')
	return b.String()
}
