package pieces

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestShapeFromRune(t *testing.T) {
	for _, s := range NonemptyShapes {
		got, ok := ShapeFromRune(rune(s.String()[0]))
		if !ok || got != s {
			t.Errorf("ShapeFromRune(%q) = %v, %v, want %v, true", s.String(), got, ok, s)
		}
	}
	if _, ok := ShapeFromRune('X'); ok {
		t.Error("ShapeFromRune('X') ok = true, want false")
	}
}

func TestOrientationRotation(t *testing.T) {
	tests := []struct {
		desc string
		from Orientation
		cw   Orientation
		ccw  Orientation
	}{
		{desc: "north", from: North, cw: East, ccw: West},
		{desc: "east", from: East, cw: South, ccw: North},
		{desc: "south", from: South, cw: West, ccw: East},
		{desc: "west", from: West, cw: North, ccw: South},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			if got := tt.from.Cw(); got != tt.cw {
				t.Errorf("Cw() = %v, want %v", got, tt.cw)
			}
			if got := tt.from.Ccw(); got != tt.ccw {
				t.Errorf("Ccw() = %v, want %v", got, tt.ccw)
			}
		})
	}
}

func TestPieceCells(t *testing.T) {
	tests := []struct {
		desc  string
		piece Piece
		want  [4]Offset
	}{
		{
			desc:  "T east points right",
			piece: Piece{Shape: ShapeT, Orientation: East},
			want:  [4]Offset{{0, 0}, {0, 1}, {1, 1}, {0, 2}},
		},
		{
			desc:  "I east is vertical",
			piece: Piece{Shape: ShapeI, Orientation: East},
			want:  [4]Offset{{0, 0}, {0, 1}, {0, 2}, {0, 3}},
		},
		{
			desc:  "O is a square in every orientation",
			piece: Piece{Shape: ShapeO, Orientation: South},
			want:  [4]Offset{{0, 0}, {1, 0}, {0, 1}, {1, 1}},
		},
		{
			desc:  "S south equals S north",
			piece: Piece{Shape: ShapeS, Orientation: South},
			want:  [4]Offset{{0, 0}, {1, 0}, {1, 1}, {2, 1}},
		},
		{
			desc:  "J west hooks bottom left",
			piece: Piece{Shape: ShapeJ, Orientation: West},
			want:  [4]Offset{{0, 0}, {1, 0}, {1, 1}, {1, 2}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, tt.piece.Cells()); diff != "" {
				t.Errorf("Cells() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPieceDimensions(t *testing.T) {
	tests := []struct {
		desc   string
		piece  Piece
		width  int
		height int
	}{
		{desc: "I north", piece: Piece{Shape: ShapeI, Orientation: North}, width: 4, height: 1},
		{desc: "I east", piece: Piece{Shape: ShapeI, Orientation: East}, width: 1, height: 4},
		{desc: "T north", piece: Piece{Shape: ShapeT, Orientation: North}, width: 3, height: 2},
		{desc: "L east", piece: Piece{Shape: ShapeL, Orientation: East}, width: 2, height: 3},
		{desc: "O", piece: Piece{Shape: ShapeO, Orientation: North}, width: 2, height: 2},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			if got := tt.piece.Width(); got != tt.width {
				t.Errorf("Width() = %d, want %d", got, tt.width)
			}
			if got := tt.piece.Height(); got != tt.height {
				t.Errorf("Height() = %d, want %d", got, tt.height)
			}
		})
	}
}

func TestCanonicalOrientations(t *testing.T) {
	tests := []struct {
		shape Shape
		want  int
	}{
		{ShapeO, 1},
		{ShapeI, 2},
		{ShapeS, 2},
		{ShapeZ, 2},
		{ShapeT, 4},
		{ShapeL, 4},
		{ShapeJ, 4},
	}
	for _, tt := range tests {
		t.Run(tt.shape.String(), func(t *testing.T) {
			if got := len(CanonicalOrientations(tt.shape)); got != tt.want {
				t.Errorf("len(CanonicalOrientations(%v)) = %d, want %d", tt.shape, got, tt.want)
			}
		})
	}
}

func TestCanonical(t *testing.T) {
	// S south collapses onto S north; T keeps all four orientations.
	if got := (Piece{Shape: ShapeS, Orientation: South}).Canonical(); got != (Piece{Shape: ShapeS, Orientation: North}) {
		t.Errorf("S-south canonical = %v, want S-north", got)
	}
	if got := (Piece{Shape: ShapeT, Orientation: South}).Canonical(); got != (Piece{Shape: ShapeT, Orientation: South}) {
		t.Errorf("T-south canonical = %v, want T-south", got)
	}
}
