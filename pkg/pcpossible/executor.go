package pcpossible

import (
	"github.com/minus3theta/bitris-commands/pkg/board"
	"github.com/minus3theta/bitris-commands/pkg/errors"
	"github.com/minus3theta/bitris-commands/pkg/pieces"
	"github.com/minus3theta/bitris-commands/pkg/srs"
)

// Executor solves single shape orders against one clipped board.
type Executor struct {
	rules      srs.MoveRules
	clipped    board.ClippedBoard
	allowsHold bool
}

// NewExecutor builds an executor. It fails with
// [errors.ErrCodeUnexpectedBoardSpaces] when the board's free cells cannot
// be tiled by whole pieces.
func NewExecutor(rules srs.MoveRules, clipped board.ClippedBoard, allowsHold bool) (*Executor, error) {
	if free := clipped.FreeCells(); free%4 != 0 {
		return nil, errors.New(errors.ErrCodeUnexpectedBoardSpaces,
			"%d free cells cannot be tiled by whole pieces", free)
	}
	return &Executor{rules: rules, clipped: clipped, allowsHold: allowsHold}, nil
}

// Execute reports whether the order can clear the board completely.
func (e *Executor) Execute(order pieces.ShapeOrder) bool {
	ok, _ := e.run(order)
	return ok
}

// memoKey identifies a solver state. The clip height is implied: the board
// and the consumed count pin how many lines have been cleared.
type memoKey struct {
	board board.Board
	index int
	held  pieces.Shape
}

// run reports success and how many leading queue positions the winning line
// revealed. Lines that finish without looking past position k prove every
// order sharing that k-prefix, which the bulk executor exploits.
func (e *Executor) run(order pieces.ShapeOrder) (bool, int) {
	failed := make(map[memoKey]struct{})

	var rec func(b board.Board, height, index int, held pieces.Shape) (bool, int)

	// place drops the shape on every reachable placement, clears lines,
	// and recurses.
	place := func(b board.Board, height int, shape pieces.Shape, nextIndex int, nextHeld pieces.Shape) (bool, int) {
		spawn := srs.Spawn(height)
		for _, p := range e.rules.ReachablePlacements(b, shape, spawn, height) {
			merged := b.Merge(p.CellBoard())
			next, cleared := merged.ClearLines()
			if ok, used := rec(next, height-cleared.Count(), nextIndex, nextHeld); ok {
				return true, used
			}
		}
		return false, 0
	}

	rec = func(b board.Board, height, index int, held pieces.Shape) (bool, int) {
		if height == 0 {
			return true, index
		}
		key := memoKey{board: b, index: index, held: held}
		if _, seen := failed[key]; seen {
			return false, 0
		}

		if index < len(order) {
			current := order[index]
			if ok, used := place(b, height, current, index+1, held); ok {
				return true, used
			}
			if e.allowsHold {
				if held != pieces.EmptyShape {
					if ok, used := place(b, height, held, index+1, current); ok {
						return true, used
					}
				} else {
					// Park the current shape in the empty hold slot.
					if ok, used := rec(b, height, index+1, current); ok {
						return true, used
					}
				}
			}
		} else if e.allowsHold && held != pieces.EmptyShape {
			if ok, used := place(b, height, held, index, pieces.EmptyShape); ok {
				return true, used
			}
		}

		failed[key] = struct{}{}
		return false, 0
	}

	// Rows that arrive full clear before any piece is placed.
	b, cleared := e.clipped.Board().ClearLines()
	return rec(b, e.clipped.Height()-cleared.Count(), 0, pieces.EmptyShape)
}
