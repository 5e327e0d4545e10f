package board

import (
	"errors"
	"fmt"
)

// Sentinel errors for clipped board construction.
var (
	ErrHeightOutOfRange = errors.New("board: clipped height out of range")
	ErrSpacesAboveClip  = errors.New("board: occupied cells above the clipped height")
)

// ClippedBoard is a bounded-height view of a board. The solvers only ever
// look at rows 0 through Height()-1; construction guarantees nothing is
// occupied above.
type ClippedBoard struct {
	board  Board
	height int
}

// NewClippedBoard clips board to the given height. It fails when the height
// is outside [1, MaxRows] or when the board has occupied cells at or above
// the clip.
func NewClippedBoard(b Board, height int) (ClippedBoard, error) {
	if height < 1 || height > MaxRows {
		return ClippedBoard{}, fmt.Errorf("%w: %d", ErrHeightOutOfRange, height)
	}
	if above := b.UsedRows() &^ FilledUpToLines(height); above != 0 {
		return ClippedBoard{}, fmt.Errorf("%w: rows %v", ErrSpacesAboveClip, above)
	}
	return ClippedBoard{board: b, height: height}, nil
}

// MustClippedBoard clips board to height and panics on error. For use with
// literal boards in tests and examples.
func MustClippedBoard(b Board, height int) ClippedBoard {
	cb, err := NewClippedBoard(b, height)
	if err != nil {
		panic(err)
	}
	return cb
}

// Board returns the underlying board.
func (cb ClippedBoard) Board() Board {
	return cb.board
}

// Height returns the clip height.
func (cb ClippedBoard) Height() int {
	return cb.height
}

// FreeCells returns the number of unoccupied cells inside the clip.
func (cb ClippedBoard) FreeCells() int {
	return Width*cb.height - cb.board.CountBlocks()
}

// GoalBoard returns the fully filled reference board of the clip: every cell
// of every clipped row occupied.
func (cb ClippedBoard) GoalBoard() Board {
	return FilledUpTo(cb.height)
}

// String renders the clipped rows top-down.
func (cb ClippedBoard) String() string {
	return cb.board.Format(cb.height)
}
