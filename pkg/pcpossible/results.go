package pcpossible

import (
	"slices"

	"github.com/minus3theta/bitris-commands/pkg/pattern"
	"github.com/minus3theta/bitris-commands/pkg/pieces"
)

type status int8

const (
	statusPending status = iota
	statusSucceed
	statusFail
)

// Results holds the per-order outcomes of a bulk run. Orders keep the
// pattern's enumeration order; orders the pattern denotes more than once
// collapse into one entry.
type Results struct {
	orders   []pieces.ShapeOrder
	index    map[string]int
	statuses []status
}

func newResults(p *pattern.Pattern) *Results {
	r := &Results{index: make(map[string]int, p.LenShapesVec())}
	p.WalkShapeSequences(func(seq pieces.ShapeSequence) {
		key := seq.String()
		if _, ok := r.index[key]; ok {
			return
		}
		r.index[key] = len(r.orders)
		r.orders = append(r.orders, pieces.ShapeOrder(slices.Clone(seq)))
	})
	r.statuses = make([]status, len(r.orders))
	return r
}

// Len returns the number of distinct orders.
func (r *Results) Len() int {
	return len(r.orders)
}

// Orders returns the distinct orders in enumeration order.
func (r *Results) Orders() []pieces.ShapeOrder {
	return slices.Clone(r.orders)
}

// AcceptedCount returns how many orders can clear the board.
func (r *Results) AcceptedCount() int {
	n := 0
	for _, s := range r.statuses {
		if s == statusSucceed {
			n++
		}
	}
	return n
}

// Accepted reports the outcome for one order. The second return value is
// false when the pattern does not denote the order.
func (r *Results) Accepted(order pieces.ShapeOrder) (accepted, known bool) {
	i, ok := r.index[order.String()]
	if !ok {
		return false, false
	}
	return r.statuses[i] == statusSucceed, true
}
