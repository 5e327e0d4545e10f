package pcpossible

import (
	"testing"

	"github.com/minus3theta/bitris-commands/pkg/board"
	"github.com/minus3theta/bitris-commands/pkg/errors"
	"github.com/minus3theta/bitris-commands/pkg/pieces"
	"github.com/minus3theta/bitris-commands/pkg/srs"
)

func executorFor(t *testing.T, text string, height int, allowsHold bool) *Executor {
	t.Helper()
	e, err := NewExecutor(srs.DefaultRules(), board.MustClippedBoard(board.MustParse(text), height), allowsHold)
	if err != nil {
		t.Fatalf("NewExecutor() error = %v", err)
	}
	return e
}

func TestNewExecutorRejectsIndivisibleBoards(t *testing.T) {
	clipped := board.MustClippedBoard(board.MustParse("#........."), 1)
	_, err := NewExecutor(srs.DefaultRules(), clipped, true)
	if err == nil {
		t.Fatal("NewExecutor() succeeded, want error")
	}
	if !errors.Is(err, errors.ErrCodeUnexpectedBoardSpaces) {
		t.Errorf("NewExecutor() error = %v, want code %s", err, errors.ErrCodeUnexpectedBoardSpaces)
	}
}

func TestExecuteTwoByFourWell(t *testing.T) {
	// The 2x4 well is tiled only by a duplicate pair: two squares, two
	// horizontal bars, or a matching L or J pair.
	e := executorFor(t, "####....##\n####....##", 2, false)

	tests := []struct {
		name  string
		order pieces.ShapeOrder
		want  bool
	}{
		{name: "two squares", order: pieces.ShapeOrder{pieces.ShapeO, pieces.ShapeO}, want: true},
		{name: "two bars", order: pieces.ShapeOrder{pieces.ShapeI, pieces.ShapeI}, want: true},
		{name: "two Ls", order: pieces.ShapeOrder{pieces.ShapeL, pieces.ShapeL}, want: true},
		{name: "two Js", order: pieces.ShapeOrder{pieces.ShapeJ, pieces.ShapeJ}, want: true},
		{name: "two Ts", order: pieces.ShapeOrder{pieces.ShapeT, pieces.ShapeT}, want: false},
		{name: "square then bar", order: pieces.ShapeOrder{pieces.ShapeO, pieces.ShapeI}, want: false},
		{name: "order too short", order: pieces.ShapeOrder{pieces.ShapeO}, want: false},
		{name: "extra supply is fine", order: pieces.ShapeOrder{pieces.ShapeO, pieces.ShapeO, pieces.ShapeT}, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.Execute(tt.order); got != tt.want {
				t.Errorf("Execute(%v) = %v, want %v", tt.order, got, tt.want)
			}
		})
	}
}

func TestExecuteHoldSkipsABlockingShape(t *testing.T) {
	order := pieces.ShapeOrder{pieces.ShapeO, pieces.ShapeT, pieces.ShapeO}

	withHold := executorFor(t, "####....##\n####....##", 2, true)
	if !withHold.Execute(order) {
		t.Error("Execute() with hold = false, want true: the T can sit in hold")
	}

	withoutHold := executorFor(t, "####....##\n####....##", 2, false)
	if withoutHold.Execute(order) {
		t.Error("Execute() without hold = true, want false: the T must be placed")
	}
}

func TestExecuteClearsLinesBetweenPlacements(t *testing.T) {
	// The bar fills the bottom row; clearing it drops the side walls so the
	// square can finish the remaining two rows.
	e := executorFor(t, "####..####\n####..####\n######....", 3, false)

	if !e.Execute(pieces.ShapeOrder{pieces.ShapeI, pieces.ShapeO}) {
		t.Error("Execute(I, O) = false, want true")
	}
	if !e.Execute(pieces.ShapeOrder{pieces.ShapeO, pieces.ShapeI}) {
		t.Error("Execute(O, I) = false, want true")
	}
	if e.Execute(pieces.ShapeOrder{pieces.ShapeO, pieces.ShapeO}) {
		t.Error("Execute(O, O) = true, want false")
	}
}

func TestExecuteRespectsCeiling(t *testing.T) {
	// One free row: only the flat bar fits under the clip.
	e := executorFor(t, "######....", 1, false)

	if !e.Execute(pieces.ShapeOrder{pieces.ShapeI}) {
		t.Error("Execute(I) = false, want true")
	}
	if e.Execute(pieces.ShapeOrder{pieces.ShapeO}) {
		t.Error("Execute(O) = true, want false: the square does not fit under the clip")
	}
}

func TestExecuteFullBoardIsTriviallyPossible(t *testing.T) {
	e := executorFor(t, "##########\n##########", 2, true)

	if !e.Execute(nil) {
		t.Error("Execute() on a full board = false, want true")
	}
	if !e.Execute(pieces.ShapeOrder{pieces.ShapeT}) {
		t.Error("Execute(T) on a full board = false, want true")
	}
}

func TestRunReportsRevealedPrefix(t *testing.T) {
	e := executorFor(t, "####....##\n####....##", 2, true)

	ok, used := e.run(pieces.ShapeOrder{pieces.ShapeO, pieces.ShapeO, pieces.ShapeT, pieces.ShapeZ})
	if !ok {
		t.Fatal("run() = false, want true")
	}
	if used != 2 {
		t.Errorf("run() revealed %d shapes, want 2: the trailing shapes are never looked at", used)
	}
}
