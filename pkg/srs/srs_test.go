package srs

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/minus3theta/bitris-commands/pkg/board"
	"github.com/minus3theta/bitris-commands/pkg/pieces"
)

// The frame tables must describe the same cell sets as the normalized piece
// forms, only shifted inside the rotation frame.
func TestFramesMatchPieceCells(t *testing.T) {
	for _, s := range pieces.NonemptyShapes {
		for o := pieces.Orientation(0); o < pieces.OrientationCount; o++ {
			m := frameMin[s-1][o]
			got := make([]pieces.Offset, 0, 4)
			for _, c := range frameCells[s-1][o] {
				got = append(got, pieces.Offset{X: c.x - m.x, Y: c.y - m.y})
			}
			sort.Slice(got, func(i, j int) bool {
				if got[i].Y != got[j].Y {
					return got[i].Y < got[j].Y
				}
				return got[i].X < got[j].X
			})
			cells := pieces.Piece{Shape: s, Orientation: o}.Cells()
			if diff := cmp.Diff(cells[:], got); diff != "" {
				t.Errorf("%v-%v frame cells mismatch (-piece +frame):\n%s", s, o, diff)
			}
		}
	}
}

func TestPlacementCells(t *testing.T) {
	p := Placement{Piece: pieces.Piece{Shape: pieces.ShapeO, Orientation: pieces.North}, X: 3, Y: 1}
	want := [4]Location{{3, 1}, {4, 1}, {3, 2}, {4, 2}}
	if diff := cmp.Diff(want, p.Cells()); diff != "" {
		t.Errorf("Cells() mismatch (-want +got):\n%s", diff)
	}
	if got := p.UsingRows(); got != board.NewLines(1, 2) {
		t.Errorf("UsingRows() = %v, want {1,2}", got)
	}
}

func TestPlacementFitsAndIsLanding(t *testing.T) {
	b := board.MustParse("..........\n..........\n#.........")
	o := pieces.Piece{Shape: pieces.ShapeO, Orientation: pieces.North}

	onFloor := Placement{Piece: o, X: 4, Y: 0}
	if !onFloor.Fits(b) {
		t.Error("Fits(square on empty floor) = false, want true")
	}
	if !onFloor.IsLanding(b) {
		t.Error("IsLanding(square on the floor) = false, want true")
	}

	onBlock := Placement{Piece: o, X: 0, Y: 1}
	if !onBlock.IsLanding(b) {
		t.Error("IsLanding(square on a filled cell) = false, want true")
	}

	floating := Placement{Piece: o, X: 4, Y: 1}
	if floating.IsLanding(b) {
		t.Error("IsLanding(floating square) = true, want false")
	}

	overlapping := Placement{Piece: o, X: 0, Y: 0}
	if overlapping.Fits(b) {
		t.Error("Fits(square over a filled cell) = true, want false")
	}
}

func TestCanReachOnBlankBoard(t *testing.T) {
	var b board.Board
	spawn := Spawn(4)
	target := Placement{Piece: pieces.Piece{Shape: pieces.ShapeT, Orientation: pieces.North}, X: 3, Y: 0}

	for _, rules := range []MoveRules{{Drop: Softdrop}, {Drop: Harddrop}} {
		if !rules.CanReach(b, target, spawn) {
			t.Errorf("%v: CanReach(T-north on blank floor) = false, want true", rules.Drop)
		}
	}

	// A floating placement can never be locked.
	floating := Placement{Piece: target.Piece, X: 3, Y: 1}
	if DefaultRules().CanReach(b, floating, spawn) {
		t.Error("CanReach(floating placement) = true, want false")
	}
}

func TestSoftdropTuckUnderOverhang(t *testing.T) {
	// Columns 0-3 are roofed at the top row; the only way under is to drop
	// on the open right side and slide left along the floor.
	b := board.MustParse("####......\n..........\n..........")
	spawn := Spawn(3)
	target := Placement{Piece: pieces.Piece{Shape: pieces.ShapeT, Orientation: pieces.North}, X: 0, Y: 0}

	if !(MoveRules{Drop: Softdrop}).CanReach(b, target, spawn) {
		t.Error("softdrop tuck = unreachable, want reachable")
	}
	if (MoveRules{Drop: Harddrop}).CanReach(b, target, spawn) {
		t.Error("harddrop through a roof = reachable, want unreachable")
	}
}

func TestCanReachCongruentOrientation(t *testing.T) {
	var b board.Board
	spawn := Spawn(4)
	// S-south is congruent to S-north; loose reachability accepts it, strict
	// reachability of the south form itself must as well since the piece can
	// rotate twice on the way down.
	south := Placement{Piece: pieces.Piece{Shape: pieces.ShapeS, Orientation: pieces.South}, X: 0, Y: 0}

	if !DefaultRules().CanReach(b, south, spawn) {
		t.Error("CanReach(S-south) = false, want true via congruent north form")
	}
	if !DefaultRules().CanReachStrictly(b, south, spawn) {
		t.Error("CanReachStrictly(S-south) = false, want true")
	}
}

func TestReachablePlacementsBlankBoard(t *testing.T) {
	var b board.Board
	spawn := Spawn(4)

	tests := []struct {
		shape pieces.Shape
		want  int
	}{
		// Distinct forms on a blank floor: horizontal and vertical I.
		{pieces.ShapeI, 17},
		// One square form in nine columns.
		{pieces.ShapeO, 9},
		// Two distinct forms: 8 + 9.
		{pieces.ShapeS, 17},
		{pieces.ShapeZ, 17},
		// Four distinct forms: 8 + 8 + 9 + 9.
		{pieces.ShapeT, 34},
		{pieces.ShapeL, 34},
		{pieces.ShapeJ, 34},
	}
	for _, tt := range tests {
		t.Run(tt.shape.String(), func(t *testing.T) {
			got := DefaultRules().ReachablePlacements(b, tt.shape, spawn, 4)
			if len(got) != tt.want {
				t.Errorf("len(ReachablePlacements) = %d, want %d", len(got), tt.want)
			}
			for _, p := range got {
				if p.Y != 0 {
					t.Errorf("placement %v floats above a blank floor", p)
				}
				if !p.IsLanding(b) {
					t.Errorf("placement %v does not land", p)
				}
			}
		})
	}
}

func TestReachablePlacementsRespectsCeiling(t *testing.T) {
	// A nearly full single free column of height 4 only admits a vertical I.
	b := board.MustParse("#########.\n#########.\n#########.\n#########.")
	spawn := Spawn(4)

	got := DefaultRules().ReachablePlacements(b, pieces.ShapeI, spawn, 4)
	want := []Placement{{Piece: pieces.Piece{Shape: pieces.ShapeI, Orientation: pieces.East}, X: 9, Y: 0}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ReachablePlacements mismatch (-want +got):\n%s", diff)
	}

	// With a lower ceiling the vertical I is excluded too.
	if got := DefaultRules().ReachablePlacements(b, pieces.ShapeI, spawn, 3); len(got) != 0 {
		t.Errorf("ReachablePlacements under low ceiling = %v, want none", got)
	}
}

func TestHarddropMatchesSoftdropOnBlankBoard(t *testing.T) {
	// With no overhangs every placement is a straight drop.
	var b board.Board
	spawn := Spawn(4)
	for _, s := range pieces.NonemptyShapes {
		soft := DefaultRules().ReachablePlacements(b, s, spawn, 4)
		hard := (MoveRules{Drop: Harddrop}).ReachablePlacements(b, s, spawn, 4)

		key := func(p Placement) string { return p.Piece.String() + ":" + string(rune('0'+p.X)) }
		sort.Slice(soft, func(i, j int) bool { return key(soft[i]) < key(soft[j]) })
		sort.Slice(hard, func(i, j int) bool { return key(hard[i]) < key(hard[j]) })
		if diff := cmp.Diff(soft, hard); diff != "" {
			t.Errorf("%v: harddrop placements differ from softdrop (-soft +hard):\n%s", s, diff)
		}
	}
}
