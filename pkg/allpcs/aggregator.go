package allpcs

import (
	"github.com/minus3theta/bitris-commands/pkg/board"
	"github.com/minus3theta/bitris-commands/pkg/pieces"
	"github.com/minus3theta/bitris-commands/pkg/placement"
	"github.com/minus3theta/bitris-commands/pkg/srs"
)

// Aggregator counts admissible perfect clear combinations over a built
// graph. Construction caches the block form of every placed piece; after
// that the aggregator is read-only and its count methods may run
// concurrently.
type Aggregator struct {
	clipped board.ClippedBoard
	nodes   *Nodes
	blocks  []placement.Blocks
	rules   srs.MoveRules
	spawn   srs.Location
	goal    board.Board
}

// NewAggregator prepares an aggregator for the graph nodes built from
// clipped. The movement rules and spawn location feed the placement order
// search run on every complete tiling.
func NewAggregator(clipped board.ClippedBoard, nodes *Nodes, rules srs.MoveRules, spawn srs.Location) *Aggregator {
	blocks := make([]placement.Blocks, nodes.PieceCount())
	for i := range blocks {
		blocks[i] = nodes.Piece(i).Blocks()
	}
	return &Aggregator{
		clipped: clipped,
		nodes:   nodes,
		blocks:  blocks,
		rules:   rules,
		spawn:   spawn,
		goal:    clipped.GoalBoard(),
	}
}

// Aggregate counts every admissible combination regardless of the shapes
// used. Returns 0 for an empty graph.
func (a *Aggregator) Aggregate() uint64 {
	return a.aggregate(nil)
}

// AggregateWithShapeCounters counts the combinations whose shape multiset is
// covered by at least one of the given counters. An empty counter list
// admits nothing.
func (a *Aggregator) AggregateWithShapeCounters(counters []pieces.ShapeCounter) uint64 {
	filter := func(used pieces.ShapeCounter) bool {
		for _, allowed := range counters {
			if allowed.ContainsAll(used) {
				return true
			}
		}
		return false
	}
	return a.aggregate(filter)
}

func (a *Aggregator) aggregate(filter func(pieces.ShapeCounter) bool) uint64 {
	head, ok := a.nodes.HeadIndexID()
	if !ok {
		return 0
	}
	g := &aggregation{
		agg:    a,
		stack:  make([]*placement.Blocks, 0, a.clipped.FreeCells()/4),
		filter: filter,
	}
	return g.walk(head)
}

// aggregation is the state of one depth-first walk. The stack holds the
// pieces chosen on the current path in dependency order: a piece whose
// intercepted rows overlap another's using rows sits after it.
type aggregation struct {
	agg    *Aggregator
	stack  []*placement.Blocks
	filter func(pieces.ShapeCounter) bool
}

func (g *aggregation) walk(id IndexID) uint64 {
	node := g.agg.nodes.Index(id)
	switch node.Kind {
	case IndexKindToItem:
		var success uint64
		for itemID := node.First; itemID < node.First+ItemID(node.Count); itemID++ {
			item := g.agg.nodes.Item(itemID)
			current := &g.agg.blocks[item.PieceIndex]

			// Rows that stay filled until after current is placed: the using
			// rows of every stacked piece that depends on one of current's
			// rows clearing. Such pieces must also end up after current, so
			// the scan doubles as the insertion point search.
			filledRows := board.BlankLines()
			inserted := len(g.stack)
			for i := len(g.stack) - 1; i >= 0; i-- {
				if g.stack[i].InterceptedRows.Overlaps(current.UsingRows) {
					inserted = i
					filledRows |= g.stack[i].UsingRows
				}
			}
			if current.InterceptedRows.Overlaps(filledRows) {
				// current needs one of those rows to clear first. No order
				// can satisfy both directions.
				continue
			}

			g.stack = append(g.stack, nil)
			copy(g.stack[inserted+1:], g.stack[inserted:])
			g.stack[inserted] = current

			success += g.walk(item.Next)

			g.stack = append(g.stack[:inserted], g.stack[inserted+1:]...)
		}
		return success

	case IndexKindToNextIndex:
		return g.walk(node.Next)

	case IndexKindComplete:
		if g.filter != nil && !g.filter(usedShapes(g.stack)) {
			return 0
		}
		if !g.agg.structurallyValid(g.stack) {
			return 0
		}
		if !placement.FindOneStackable(g.agg.clipped.Board(), g.stack, g.agg.rules, g.agg.spawn) {
			return 0
		}
		return 1

	case IndexKindAbort:
		return 0
	}
	panic("unknown index kind")
}

func usedShapes(stack []*placement.Blocks) pieces.ShapeCounter {
	var counter pieces.ShapeCounter
	for _, blk := range stack {
		counter = counter.Add(blk.Piece.Shape)
	}
	return counter
}

// structurallyValid re-checks the landing of every piece that other pieces
// depend on. Pieces placed after current whose intercepted rows overlap
// current's using rows cannot be on the board when current lands, so their
// cells are removed from the goal board along with current's own before
// current's support is re-checked on the remainder.
func (a *Aggregator) structurallyValid(stack []*placement.Blocks) bool {
	for i, current := range stack {
		b := a.goal
		unset := false
		for _, later := range stack[i+1:] {
			if later.InterceptedRows.Overlaps(current.UsingRows) {
				b = b.Remove(later.Board)
				unset = true
			}
		}
		if !unset {
			continue
		}

		b = b.Remove(current.Board)
		b = b.ClearLinesPartially(current.InterceptedRows)

		ground := srs.Placement{Piece: current.Piece, X: current.Lx, Y: current.UsingRows.Lowest()}
		if !ground.IsLanding(b) {
			return false
		}
	}
	return true
}
