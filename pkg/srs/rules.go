package srs

import (
	"github.com/minus3theta/bitris-commands/pkg/board"
	"github.com/minus3theta/bitris-commands/pkg/pieces"
)

// Drop selects how a piece may travel from spawn to its resting place.
type Drop uint8

const (
	// Softdrop allows free movement: left, right, down and kicks anywhere
	// on the way.
	Softdrop Drop = iota
	// Harddrop only allows rotating and shifting at spawn height before the
	// piece falls straight down.
	Harddrop
)

// String returns the drop kind's name.
func (d Drop) String() string {
	switch d {
	case Softdrop:
		return "softdrop"
	case Harddrop:
		return "harddrop"
	}
	panic("unknown drop kind")
}

// MoveRules bundles the movement parameters of a solve.
type MoveRules struct {
	Drop Drop
}

// DefaultRules returns the default movement rules: softdrop.
func DefaultRules() MoveRules {
	return MoveRules{Drop: Softdrop}
}

// Location is an absolute board coordinate.
type Location struct {
	X int
	Y int
}

// Spawn returns the conventional spawn location for a clipped board of the
// given height: bottom-left cell at x=4, just above the clip.
func Spawn(height int) Location {
	return Location{X: 4, Y: height}
}

// Placement is a piece resting on the board, positioned by the bottom-left
// corner of its cell bounding box.
type Placement struct {
	Piece pieces.Piece
	X     int
	Y     int
}

// Cells returns the placement's absolute cell coordinates.
func (p Placement) Cells() [4]Location {
	var out [4]Location
	for i, c := range p.Piece.Cells() {
		out[i] = Location{X: p.X + int(c.X), Y: p.Y + int(c.Y)}
	}
	return out
}

// CellBoard returns a board occupying exactly the placement's cells.
func (p Placement) CellBoard() board.Board {
	var b board.Board
	for _, c := range p.Cells() {
		b = b.SetAt(c.X, c.Y)
	}
	return b
}

// UsingRows returns the rows the placement's cells occupy.
func (p Placement) UsingRows() board.Lines {
	var l board.Lines
	for _, c := range p.Piece.Cells() {
		l |= board.NewLines(p.Y + int(c.Y))
	}
	return l
}

// Fits reports whether every cell of the placement is free on b.
func (p Placement) Fits(b board.Board) bool {
	for _, c := range p.Cells() {
		if !b.IsFree(c.X, c.Y) {
			return false
		}
	}
	return true
}

// IsLanding reports whether the placement rests on the floor or on an
// occupied cell of b.
func (p Placement) IsLanding(b board.Board) bool {
	for _, c := range p.Cells() {
		if b.IsOccupied(c.X, c.Y-1) {
			return true
		}
	}
	return false
}

// stateFor converts a placement into the frame state of a given congruent
// orientation.
func stateFor(p Placement, o pieces.Orientation) state {
	m := frameMin[p.Piece.Shape-1][o]
	return state{
		orientation: o,
		fx:          int8(p.X) - m.x,
		fy:          int8(p.Y) - m.y,
	}
}

// spawnState positions shape s in north orientation with its bottom-left
// cell at the spawn location.
func spawnState(s pieces.Shape, spawn Location) state {
	m := frameMin[s-1][pieces.North]
	return state{
		orientation: pieces.North,
		fx:          int8(spawn.X) - m.x,
		fy:          int8(spawn.Y) - m.y,
	}
}

// congruentOrientations returns every orientation of p's shape whose cell set
// equals p's. A placement can be locked in any of them.
func congruentOrientations(p Placement) []pieces.Orientation {
	cells := p.Piece.Cells()
	out := make([]pieces.Orientation, 0, pieces.OrientationCount)
	for o := pieces.Orientation(0); o < pieces.OrientationCount; o++ {
		if (pieces.Piece{Shape: p.Piece.Shape, Orientation: o}).Cells() == cells {
			out = append(out, o)
		}
	}
	return out
}

// CanReach reports whether the piece, spawned in north orientation at the
// spawn location, can travel to the target placement on b and rest there.
// Any orientation congruent to the target counts as reaching it.
func (r MoveRules) CanReach(b board.Board, target Placement, spawn Location) bool {
	return r.canReach(b, target, spawn, false)
}

// CanReachStrictly is CanReach restricted to the target's exact orientation.
func (r MoveRules) CanReachStrictly(b board.Board, target Placement, spawn Location) bool {
	return r.canReach(b, target, spawn, true)
}

func (r MoveRules) canReach(b board.Board, target Placement, spawn Location, strict bool) bool {
	if !target.Fits(b) || !target.IsLanding(b) {
		return false
	}

	orientations := []pieces.Orientation{target.Piece.Orientation}
	if !strict {
		orientations = congruentOrientations(target)
	}

	if r.Drop == Harddrop {
		for _, o := range orientations {
			if harddropY(b, target.Piece.Shape, o, target.X, spawn.Y) == target.Y {
				return true
			}
		}
		return false
	}

	targets := make(map[state]bool, len(orientations))
	for _, o := range orientations {
		targets[stateFor(target, o)] = true
	}

	found := false
	r.walkReachable(b, target.Piece.Shape, spawn, func(st state) bool {
		if targets[st] {
			found = true
			return false
		}
		return true
	})
	return found
}

// walkReachable runs a breadth-first search over every state reachable from
// spawn by left, right, down and kicks. The visit callback returns false to
// stop the search early.
func (r MoveRules) walkReachable(b board.Board, s pieces.Shape, spawn Location, visit func(state) bool) {
	start := spawnState(s, spawn)
	if !fits(b, s, start) {
		return
	}

	// States range over x in [-2, Width+1] and y in [-2, spawn.Y+2]; kicks
	// move at most two cells.
	const xOff = 2
	yOff := 2
	width := board.Width + 4
	height := spawn.Y + 5

	visited := make([]bool, pieces.OrientationCount*width*height)
	index := func(st state) int {
		x := int(st.fx) + xOff
		y := int(st.fy) + yOff
		if x < 0 || x >= width || y < 0 || y >= height {
			return -1
		}
		return (int(st.orientation)*width+x)*height + y
	}

	queue := make([]state, 0, 64)
	queue = append(queue, start)
	visited[index(start)] = true
	if !visit(start) {
		return
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		push := func(next state, ok bool) bool {
			if !ok {
				return true
			}
			i := index(next)
			if i < 0 || visited[i] {
				return true
			}
			visited[i] = true
			queue = append(queue, next)
			return visit(next)
		}

		left := state{orientation: cur.orientation, fx: cur.fx - 1, fy: cur.fy}
		if !push(left, fits(b, s, left)) {
			return
		}
		right := state{orientation: cur.orientation, fx: cur.fx + 1, fy: cur.fy}
		if !push(right, fits(b, s, right)) {
			return
		}
		down := state{orientation: cur.orientation, fx: cur.fx, fy: cur.fy - 1}
		if !push(down, fits(b, s, down)) {
			return
		}
		if cw, ok := rotate(b, s, cur, true); !push(cw, ok) {
			return
		}
		if ccw, ok := rotate(b, s, cur, false); !push(ccw, ok) {
			return
		}
	}
}

// harddropY returns the resting bottom-left y of shape s in orientation o
// dropped straight down in column lx from the spawn row, or -1 when the
// piece does not fit at spawn height.
func harddropY(b board.Board, s pieces.Shape, o pieces.Orientation, lx, spawnY int) int {
	p := Placement{Piece: pieces.Piece{Shape: s, Orientation: o}, X: lx, Y: spawnY}
	if !p.Fits(b) {
		return -1
	}
	for p.Y > 0 {
		next := Placement{Piece: p.Piece, X: p.X, Y: p.Y - 1}
		if !next.Fits(b) {
			break
		}
		p = next
	}
	return p.Y
}

// ReachablePlacements returns every resting placement of shape s reachable
// from spawn on b whose cells stay below the ceiling row. Placements are
// reported with canonical orientations and are unique.
func (r MoveRules) ReachablePlacements(b board.Board, s pieces.Shape, spawn Location, ceiling int) []Placement {
	seen := make(map[Placement]bool)
	out := make([]Placement, 0, 32)

	add := func(p Placement) {
		if p.UsingRows()&^board.FilledUpToLines(ceiling) != 0 {
			return
		}
		canonical := Placement{Piece: p.Piece.Canonical(), X: p.X, Y: p.Y}
		if seen[canonical] {
			return
		}
		seen[canonical] = true
		out = append(out, canonical)
	}

	if r.Drop == Harddrop {
		for o := pieces.Orientation(0); o < pieces.OrientationCount; o++ {
			piece := pieces.Piece{Shape: s, Orientation: o}
			for lx := 0; lx <= board.Width-piece.Width(); lx++ {
				if y := harddropY(b, s, o, lx, spawn.Y); y >= 0 {
					add(Placement{Piece: piece, X: lx, Y: y})
				}
			}
		}
		return out
	}

	r.walkReachable(b, s, spawn, func(st state) bool {
		if !isLanding(b, s, st) {
			return true
		}
		m := frameMin[s-1][st.orientation]
		add(Placement{
			Piece: pieces.Piece{Shape: s, Orientation: st.orientation},
			X:     int(st.fx) + int(m.x),
			Y:     int(st.fy) + int(m.y),
		})
		return true
	})
	return out
}
