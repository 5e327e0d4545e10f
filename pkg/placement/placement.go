// Package placement models pieces placed on a height-clipped board in
// absolute row coordinates. A placed piece records the rows its cells occupy
// in the goal configuration, which may include gaps where rows clear before
// the piece is committed. The package also provides the order-search oracle
// that decides whether a set of placed pieces can be stacked in some order
// under given movement rules.
package placement

import (
	"fmt"

	"github.com/minus3theta/bitris-commands/pkg/board"
	"github.com/minus3theta/bitris-commands/pkg/pieces"
	"github.com/minus3theta/bitris-commands/pkg/srs"
)

// PlacedPiece is a piece fixed at a horizontal offset whose i-th local row
// occupies the i-th lowest set row of UsingRows. UsingRows holds absolute
// board rows, so a piece committed after line clears below or inside its
// vertical span still records its cells in goal coordinates.
type PlacedPiece struct {
	Piece     pieces.Piece
	Lx        int
	UsingRows board.Lines
}

// NewPlacedPiece panics when the horizontal offset or the row set cannot
// carry the piece. Callers construct placed pieces from enumerated geometry,
// so a mismatch is a bug, not an input error.
func NewPlacedPiece(piece pieces.Piece, lx int, usingRows board.Lines) PlacedPiece {
	if lx < 0 || lx+piece.Width() > board.Width {
		panic(fmt.Sprintf("placement: piece %v does not fit at x=%d", piece, lx))
	}
	if usingRows.Count() != piece.Height() {
		panic(fmt.Sprintf("placement: piece %v spans %d rows, got %v", piece, piece.Height(), usingRows))
	}
	return PlacedPiece{Piece: piece, Lx: lx, UsingRows: usingRows}
}

// InterceptedRows returns the rows inside the piece's vertical span that the
// piece does not occupy. Those rows must already be cleared before the piece
// can physically rest in its recorded position.
func (p PlacedPiece) InterceptedRows() board.Lines {
	low, high := p.UsingRows.Lowest(), p.UsingRows.Highest()
	return board.LinesBetween(low, high) &^ p.UsingRows
}

// Cells returns the absolute cell positions, ordered bottom-up then
// left-to-right.
func (p PlacedPiece) Cells() [4]srs.Location {
	rows := p.UsingRows.Rows()
	var out [4]srs.Location
	for i, c := range p.Piece.Cells() {
		out[i] = srs.Location{X: p.Lx + int(c.X), Y: rows[c.Y]}
	}
	return out
}

func (p PlacedPiece) String() string {
	return fmt.Sprintf("%v x%d rows%v", p.Piece, p.Lx, p.UsingRows)
}

// Blocks caches the geometry derived from a PlacedPiece so that traversal and
// oracle code never recompute cell sets in inner loops.
type Blocks struct {
	Piece           pieces.Piece
	Lx              int
	UsingRows       board.Lines
	InterceptedRows board.Lines
	Cells           [4]srs.Location
	Board           board.Board
}

// Blocks expands the placed piece into its cached form.
func (p PlacedPiece) Blocks() Blocks {
	cells := p.Cells()
	var b board.Board
	for _, c := range cells {
		b = b.SetAt(c.X, c.Y)
	}
	return Blocks{
		Piece:           p.Piece,
		Lx:              p.Lx,
		UsingRows:       p.UsingRows,
		InterceptedRows: p.InterceptedRows(),
		Cells:           cells,
		Board:           b,
	}
}

// PlacedPiece returns the uncached form.
func (b *Blocks) PlacedPiece() PlacedPiece {
	return PlacedPiece{Piece: b.Piece, Lx: b.Lx, UsingRows: b.UsingRows}
}

// AdjustedPlacement converts the absolute position into the physical
// placement on a board from which the deleted rows have been removed. Every
// intercepted row must be contained in deleted for the result to be
// meaningful.
func (b *Blocks) AdjustedPlacement(deleted board.Lines) srs.Placement {
	low := b.UsingRows.Lowest()
	return srs.Placement{Piece: b.Piece, X: b.Lx, Y: low - deleted.CountBelow(low)}
}

func (b *Blocks) String() string {
	return b.PlacedPiece().String()
}
