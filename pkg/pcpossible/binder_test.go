package pcpossible

import (
	"testing"

	"github.com/minus3theta/bitris-commands/pkg/board"
	"github.com/minus3theta/bitris-commands/pkg/errors"
	"github.com/minus3theta/bitris-commands/pkg/pattern"
	"github.com/minus3theta/bitris-commands/pkg/srs"
)

func TestNewBinderDefaults(t *testing.T) {
	b := NewBinder()

	if got := b.ClippedBoard.FreeCells(); got != 40 {
		t.Errorf("FreeCells() = %d, want 40", got)
	}
	if got := b.Pattern.LenShapesVec(); got != 5040 {
		t.Errorf("Pattern.LenShapesVec() = %d, want 5040", got)
	}
	if got := b.Pattern.DimShapes(); got != 7 {
		t.Errorf("Pattern.DimShapes() = %d, want 7", got)
	}
	if !b.AllowsHold {
		t.Error("AllowsHold = false, want true")
	}
	if b.Workers != 1 {
		t.Errorf("Workers = %d, want 1", b.Workers)
	}
	if b.MoveRules.Drop != srs.Softdrop {
		t.Errorf("MoveRules.Drop = %v, want softdrop", b.MoveRules.Drop)
	}
}

func TestTryBindDefaultBoardNeedsMoreShapes(t *testing.T) {
	// A blank four-line board asks for ten pieces; one bag supplies seven.
	_, err := NewBinder().TryBind()
	if err == nil {
		t.Fatal("TryBind() succeeded, want error")
	}
	if !errors.Is(err, errors.ErrCodeShortPatternDimension) {
		t.Errorf("TryBind() error = %v, want code %s", err, errors.ErrCodeShortPatternDimension)
	}
}

func TestTryBindOpenWell(t *testing.T) {
	b := NewBinder()
	b.ClippedBoard = board.MustClippedBoard(board.MustParse("####......\n####......\n####......\n####......"), 4)
	b.Workers = 0

	exec, err := b.TryBind()
	if err != nil {
		t.Fatalf("TryBind() error = %v", err)
	}
	if exec.workers != 1 {
		t.Errorf("workers = %d, want 1: worker counts below one clamp", exec.workers)
	}
}

func TestTryBindValidation(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*ExecutorBinder)
		wantCode errors.Code
	}{
		{
			name:     "nil pattern",
			mutate:   func(b *ExecutorBinder) { b.Pattern = nil },
			wantCode: errors.ErrCodeInvalidPattern,
		},
		{
			name: "board not divisible into pieces",
			mutate: func(b *ExecutorBinder) {
				b.ClippedBoard = board.MustClippedBoard(board.MustParse("#........."), 1)
			},
			wantCode: errors.ErrCodeUnexpectedBoardSpaces,
		},
		{
			name: "pattern too short for the board",
			mutate: func(b *ExecutorBinder) {
				b.ClippedBoard = board.MustClippedBoard(board.MustParse("####......\n####......\n####......\n####......"), 4)
				b.Pattern = pattern.MustParse("*p2")
			},
			wantCode: errors.ErrCodeShortPatternDimension,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBinder()
			tt.mutate(b)
			_, err := b.TryBind()
			if err == nil {
				t.Fatal("TryBind() succeeded, want error")
			}
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("TryBind() error = %v, want code %s", err, tt.wantCode)
			}
		})
	}
}
