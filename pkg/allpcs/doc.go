// Package allpcs counts the perfect clear combinations of a height-clipped
// board: the distinct sets of placed pieces that tile every free cell and
// admit at least one physically executable placement order.
//
// # Overview
//
// Counting runs in two stages. [Build] enumerates every way to tile the free
// cells and encodes the choices as a placement dependency graph, a compact
// DAG whose paths correspond to tilings. [Aggregator.Aggregate] then walks
// the graph depth first, pruning branches whose row dependencies can never
// be ordered, and checks each complete tiling for structural support and for
// a reachable placement order.
//
// # Basic Usage
//
// Build the graph once, then aggregate as often as needed:
//
//	clipped := board.MustClippedBoard(board.MustParse("####....##\n####....##"), 2)
//	nodes, err := allpcs.Build(clipped)
//	if err != nil {
//		return err
//	}
//	agg := allpcs.NewAggregator(clipped, nodes, srs.DefaultRules(), srs.Spawn(clipped.Height()))
//	count := agg.Aggregate()
//
// [Aggregator.AggregateWithShapeCounters] restricts the count to tilings
// whose shape multiset is covered by at least one allowed multiset, which is
// how callers count the clears buildable from a concrete piece supply.
//
// # Graph Shape
//
// The graph visits the clipped cells in column-major order. At each free
// cell an [IndexKindToItem] node branches over the placements that cover it,
// an [IndexKindToNextIndex] node threads past cells that are pre-filled or
// already covered, and paths end in the shared [IndexKindComplete] or
// [IndexKindAbort] terminals. Identifiers are dense, 0-based and stable, and
// item runs never overlap.
//
// # Concurrency
//
// A built graph is read-only. Aggregators keep their traversal state on the
// call stack, so distinct aggregate calls may run concurrently against the
// same graph and the same Aggregator.
package allpcs
