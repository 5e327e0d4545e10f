package allpcs

import (
	"slices"

	"github.com/minus3theta/bitris-commands/pkg/placement"
)

// IndexID identifies an index node in a graph. Identifiers are dense and
// 0-based.
type IndexID int

// ItemID identifies an item in a graph. Identifiers are dense and 0-based.
type ItemID int

// IndexKind discriminates the index node variants.
type IndexKind uint8

const (
	// IndexKindToItem branches over a contiguous run of items, each naming a
	// placement choice and the node to continue from after choosing it.
	IndexKindToItem IndexKind = iota
	// IndexKindToNextIndex passes through to another index node without a
	// decision point.
	IndexKindToNextIndex
	// IndexKindComplete terminates a path on which every cell is covered.
	// The placements chosen along the path form a candidate perfect clear.
	IndexKindComplete
	// IndexKindAbort terminates a path whose next cell no placement covers.
	IndexKindAbort
)

// String returns the kind's name.
func (k IndexKind) String() string {
	switch k {
	case IndexKindToItem:
		return "to-item"
	case IndexKindToNextIndex:
		return "to-next-index"
	case IndexKindComplete:
		return "complete"
	case IndexKindAbort:
		return "abort"
	}
	panic("unknown index kind")
}

// IndexNode is one vertex of the placement dependency graph. Only the fields
// of the active kind are meaningful: First and Count for a ToItem node, Next
// for a ToNextIndex node, neither for the terminals.
type IndexNode struct {
	Kind  IndexKind
	First ItemID
	Count int
	Next  IndexID
}

// Item is one branch choice: a placed piece, by its index in the graph's
// piece list, and the index node the traversal continues from after
// committing to it.
type Item struct {
	PieceIndex int
	Next       IndexID
}

// Nodes is a placement dependency graph: an index node array, an item array
// and the placed pieces the items reference. A graph is built once by
// [Build] and is read-only afterwards; identifier lookups index directly and
// panic on out-of-range ids, which indicate a corrupted graph rather than
// bad input.
type Nodes struct {
	head    IndexID
	indexes []IndexNode
	items   []Item
	pieces  []placement.PlacedPiece
}

// HeadIndexID returns the traversal entry point. The second result is false
// when the graph is empty.
func (n *Nodes) HeadIndexID() (IndexID, bool) {
	if len(n.indexes) == 0 {
		return 0, false
	}
	return n.head, true
}

// Index returns the index node with the given id.
func (n *Nodes) Index(id IndexID) IndexNode {
	return n.indexes[id]
}

// Item returns the item with the given id.
func (n *Nodes) Item(id ItemID) Item {
	return n.items[id]
}

// Piece returns the placed piece an item references through its PieceIndex.
func (n *Nodes) Piece(i int) placement.PlacedPiece {
	return n.pieces[i]
}

// IndexCount returns the number of index nodes.
func (n *Nodes) IndexCount() int { return len(n.indexes) }

// ItemCount returns the number of items.
func (n *Nodes) ItemCount() int { return len(n.items) }

// PieceCount returns the number of distinct placed pieces.
func (n *Nodes) PieceCount() int { return len(n.pieces) }

// Pieces returns a copy of the placed piece list.
func (n *Nodes) Pieces() []placement.PlacedPiece {
	return slices.Clone(n.pieces)
}
