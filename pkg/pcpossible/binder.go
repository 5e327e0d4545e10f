package pcpossible

import (
	"github.com/minus3theta/bitris-commands/pkg/board"
	"github.com/minus3theta/bitris-commands/pkg/errors"
	"github.com/minus3theta/bitris-commands/pkg/pattern"
	"github.com/minus3theta/bitris-commands/pkg/pieces"
	"github.com/minus3theta/bitris-commands/pkg/srs"
)

// ExecutorBinder carries the settings for building bulk executors, so a
// scenario can be tweaked field by field and rebound repeatedly.
type ExecutorBinder struct {
	MoveRules    srs.MoveRules
	ClippedBoard board.ClippedBoard
	Pattern      *pattern.Pattern
	AllowsHold   bool
	Workers      int
}

// NewBinder returns a binder with the default scenario: SRS softdrop moves,
// a blank board clipped at four lines, every order of one of each shape,
// hold allowed, one worker.
func NewBinder() *ExecutorBinder {
	return &ExecutorBinder{
		MoveRules:    srs.DefaultRules(),
		ClippedBoard: board.MustClippedBoard(board.Board{}, 4),
		Pattern:      pattern.MustPattern(pattern.Factorial(pieces.OneOfEach())),
		AllowsHold:   true,
		Workers:      1,
	}
}

// TryBind validates the settings and builds the bulk executor.
func (b *ExecutorBinder) TryBind() (*BulkExecutor, error) {
	if b.Pattern == nil {
		return nil, errors.New(errors.ErrCodeInvalidPattern, "binder has no pattern")
	}
	free := b.ClippedBoard.FreeCells()
	if free%4 != 0 {
		return nil, errors.New(errors.ErrCodeUnexpectedBoardSpaces,
			"%d free cells cannot be tiled by whole pieces", free)
	}
	if needed := free / 4; b.Pattern.DimShapes() < needed {
		return nil, errors.New(errors.ErrCodeShortPatternDimension,
			"pattern supplies %d shapes but the board needs %d pieces", b.Pattern.DimShapes(), needed)
	}
	workers := b.Workers
	if workers < 1 {
		workers = 1
	}
	return &BulkExecutor{
		rules:      b.MoveRules,
		clipped:    b.ClippedBoard,
		pattern:    b.Pattern,
		allowsHold: b.AllowsHold,
		workers:    workers,
	}, nil
}
