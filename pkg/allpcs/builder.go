package allpcs

import (
	"math/bits"

	"github.com/minus3theta/bitris-commands/pkg/board"
	"github.com/minus3theta/bitris-commands/pkg/errors"
	"github.com/minus3theta/bitris-commands/pkg/pieces"
	"github.com/minus3theta/bitris-commands/pkg/placement"
)

// MaxBuildHeight is the tallest clipped board a graph can be built for. The
// builder addresses each clipped cell with one bit of a 64-bit mask, which
// caps the area at 64 cells.
const MaxBuildHeight = 6

// cellMask is a set of clipped cells, bit x*height+y for cell (x, y).
type cellMask uint64

// tilePlacement is a placed piece prepared for the cell walk: its cells as a
// mask and the first cell it covers in column-major order.
type tilePlacement struct {
	pieceIndex int
	mask       cellMask
}

type memoKey struct {
	cursor int
	free   cellMask
}

// Build enumerates every tiling of the free cells of clipped and encodes the
// choices as a placement dependency graph. Placements use canonical
// orientations only, and pieces whose vertical span has gaps are included:
// they stand for placements committed after the gap rows have cleared.
//
// The graph is empty when the free cell count is not a multiple of four,
// since no tiling can exist. Heights above MaxBuildHeight are rejected with
// ErrCodeBoardHeightOutOfRange.
func Build(clipped board.ClippedBoard) (*Nodes, error) {
	if clipped.Height() > MaxBuildHeight {
		return nil, errors.New(errors.ErrCodeBoardHeightOutOfRange,
			"placement graphs support heights up to %d, got %d", MaxBuildHeight, clipped.Height())
	}
	if clipped.FreeCells()%4 != 0 {
		return &Nodes{}, nil
	}

	b := &builder{
		clipped: clipped,
		height:  clipped.Height(),
		total:   board.Width * clipped.Height(),
		memo:    make(map[memoKey]IndexID),
	}
	b.enumeratePlacements()
	head := b.rec(0, b.initialFree())
	return &Nodes{head: head, indexes: b.indexes, items: b.items, pieces: b.pieces}, nil
}

type builder struct {
	clipped board.ClippedBoard
	height  int
	total   int

	byAnchor [][]tilePlacement
	pieces   []placement.PlacedPiece

	indexes []IndexNode
	items   []Item
	memo    map[memoKey]IndexID

	complete    IndexID
	hasComplete bool
	abort       IndexID
	hasAbort    bool
}

func (b *builder) cellIndex(x, y int) int {
	return x*b.height + y
}

func (b *builder) initialFree() cellMask {
	var free cellMask
	initial := b.clipped.Board()
	for x := 0; x < board.Width; x++ {
		for y := 0; y < b.height; y++ {
			if initial.IsFree(x, y) {
				free |= 1 << uint(b.cellIndex(x, y))
			}
		}
	}
	return free
}

// enumeratePlacements lists every placed piece whose cells avoid the
// pre-filled cells, indexed by the first cell each covers.
func (b *builder) enumeratePlacements() {
	b.byAnchor = make([][]tilePlacement, b.total)
	initial := b.clipped.Board()

	for _, s := range pieces.NonemptyShapes {
		for _, o := range pieces.CanonicalOrientations(s) {
			piece := pieces.Piece{Shape: s, Orientation: o}
			if piece.Height() > b.height {
				continue
			}
			for lx := 0; lx+piece.Width() <= board.Width; lx++ {
				b.addPlacements(piece, lx, initial)
			}
		}
	}
}

// addPlacements walks every row subset of the right size, including split
// ones whose gap rows must clear before the piece can be committed.
func (b *builder) addPlacements(piece pieces.Piece, lx int, initial board.Board) {
	ph := piece.Height()
	for rows := 0; rows < 1<<uint(b.height); rows++ {
		if bits.OnesCount(uint(rows)) != ph {
			continue
		}
		placed := placement.NewPlacedPiece(piece, lx, board.Lines(rows))

		var mask cellMask
		anchor := b.total
		collides := false
		for _, c := range placed.Cells() {
			if initial.IsOccupied(c.X, c.Y) {
				collides = true
				break
			}
			i := b.cellIndex(c.X, c.Y)
			mask |= 1 << uint(i)
			if i < anchor {
				anchor = i
			}
		}
		if collides {
			continue
		}

		b.byAnchor[anchor] = append(b.byAnchor[anchor], tilePlacement{
			pieceIndex: len(b.pieces),
			mask:       mask,
		})
		b.pieces = append(b.pieces, placed)
	}
}

// rec builds the index node covering free cells from cursor on. Subproblems
// are memoized on (cursor, free), which is what gives the graph its shared
// substructure.
func (b *builder) rec(cursor int, free cellMask) IndexID {
	if cursor == b.total {
		return b.completeNode()
	}
	key := memoKey{cursor: cursor, free: free}
	if id, ok := b.memo[key]; ok {
		return id
	}

	var node IndexNode
	if free&(1<<uint(cursor)) == 0 {
		node = IndexNode{Kind: IndexKindToNextIndex, Next: b.rec(cursor+1, free)}
	} else {
		var run []Item
		for _, tp := range b.byAnchor[cursor] {
			if tp.mask&^free != 0 {
				continue
			}
			run = append(run, Item{
				PieceIndex: tp.pieceIndex,
				Next:       b.rec(cursor+1, free&^tp.mask),
			})
		}
		if len(run) == 0 {
			id := b.abortNode()
			b.memo[key] = id
			return id
		}
		first := ItemID(len(b.items))
		b.items = append(b.items, run...)
		node = IndexNode{Kind: IndexKindToItem, First: first, Count: len(run)}
	}

	id := IndexID(len(b.indexes))
	b.indexes = append(b.indexes, node)
	b.memo[key] = id
	return id
}

func (b *builder) completeNode() IndexID {
	if !b.hasComplete {
		b.complete = IndexID(len(b.indexes))
		b.indexes = append(b.indexes, IndexNode{Kind: IndexKindComplete})
		b.hasComplete = true
	}
	return b.complete
}

func (b *builder) abortNode() IndexID {
	if !b.hasAbort {
		b.abort = IndexID(len(b.indexes))
		b.indexes = append(b.indexes, IndexNode{Kind: IndexKindAbort})
		b.hasAbort = true
	}
	return b.abort
}
