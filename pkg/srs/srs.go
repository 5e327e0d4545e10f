// Package srs implements the standard rotation system: per-orientation piece
// frames, wall-kick tables, and the movement queries the solvers use to
// decide whether a piece can physically travel from spawn to a target
// placement.
package srs

import (
	"github.com/minus3theta/bitris-commands/pkg/board"
	"github.com/minus3theta/bitris-commands/pkg/pieces"
)

// offset is a kick or frame coordinate, x growing right and y growing up.
type offset struct {
	x int8
	y int8
}

// frameCells holds each shape's cells inside its rotation frame, indexed
// [shape-1][orientation]. T, L, J, S and Z rotate in a 3x3 frame, I in a
// 4x4 frame, O in a 2x2 frame. The frame origin is its bottom-left corner.
var frameCells = [pieces.ShapeCount][pieces.OrientationCount][4]offset{
	{ // T
		{{0, 1}, {1, 1}, {2, 1}, {1, 2}},
		{{1, 0}, {1, 1}, {2, 1}, {1, 2}},
		{{1, 0}, {0, 1}, {1, 1}, {2, 1}},
		{{1, 0}, {0, 1}, {1, 1}, {1, 2}},
	},
	{ // I
		{{0, 2}, {1, 2}, {2, 2}, {3, 2}},
		{{2, 0}, {2, 1}, {2, 2}, {2, 3}},
		{{0, 1}, {1, 1}, {2, 1}, {3, 1}},
		{{1, 0}, {1, 1}, {1, 2}, {1, 3}},
	},
	{ // O
		{{0, 0}, {1, 0}, {0, 1}, {1, 1}},
		{{0, 0}, {1, 0}, {0, 1}, {1, 1}},
		{{0, 0}, {1, 0}, {0, 1}, {1, 1}},
		{{0, 0}, {1, 0}, {0, 1}, {1, 1}},
	},
	{ // L
		{{0, 1}, {1, 1}, {2, 1}, {2, 2}},
		{{1, 0}, {2, 0}, {1, 1}, {1, 2}},
		{{0, 0}, {0, 1}, {1, 1}, {2, 1}},
		{{1, 0}, {1, 1}, {0, 2}, {1, 2}},
	},
	{ // J
		{{0, 1}, {1, 1}, {2, 1}, {0, 2}},
		{{1, 0}, {1, 1}, {1, 2}, {2, 2}},
		{{2, 0}, {0, 1}, {1, 1}, {2, 1}},
		{{0, 0}, {1, 0}, {1, 1}, {1, 2}},
	},
	{ // S
		{{0, 1}, {1, 1}, {1, 2}, {2, 2}},
		{{2, 0}, {1, 1}, {2, 1}, {1, 2}},
		{{0, 0}, {1, 0}, {1, 1}, {2, 1}},
		{{1, 0}, {0, 1}, {1, 1}, {0, 2}},
	},
	{ // Z
		{{1, 1}, {2, 1}, {0, 2}, {1, 2}},
		{{1, 0}, {1, 1}, {2, 1}, {2, 2}},
		{{1, 0}, {2, 0}, {0, 1}, {1, 1}},
		{{0, 0}, {0, 1}, {1, 1}, {1, 2}},
	},
}

// frameMin is the minimum cell offset inside the frame per shape and
// orientation, used to convert between frame positions and the bottom-left
// cell position placements are expressed in.
var frameMin = buildFrameMin()

func buildFrameMin() [pieces.ShapeCount][pieces.OrientationCount]offset {
	var table [pieces.ShapeCount][pieces.OrientationCount]offset
	for s := range frameCells {
		for o := range frameCells[s] {
			cells := frameCells[s][o]
			m := cells[0]
			for _, c := range cells[1:] {
				if c.x < m.x {
					m.x = c.x
				}
				if c.y < m.y {
					m.y = c.y
				}
			}
			table[s][o] = m
		}
	}
	return table
}

// kicksJLSTZ holds the wall-kick offsets for T, L, J, S and Z, indexed by the
// source orientation and rotation direction (0 clockwise, 1 counterclockwise).
// Offsets are tried in order; the first collision-free one wins.
var kicksJLSTZ = [pieces.OrientationCount][2][5]offset{
	pieces.North: {
		{{0, 0}, {-1, 0}, {-1, 1}, {0, -2}, {-1, -2}}, // N -> E
		{{0, 0}, {1, 0}, {1, 1}, {0, -2}, {1, -2}},    // N -> W
	},
	pieces.East: {
		{{0, 0}, {1, 0}, {1, -1}, {0, 2}, {1, 2}}, // E -> S
		{{0, 0}, {1, 0}, {1, -1}, {0, 2}, {1, 2}}, // E -> N
	},
	pieces.South: {
		{{0, 0}, {1, 0}, {1, 1}, {0, -2}, {1, -2}},    // S -> W
		{{0, 0}, {-1, 0}, {-1, 1}, {0, -2}, {-1, -2}}, // S -> E
	},
	pieces.West: {
		{{0, 0}, {-1, 0}, {-1, -1}, {0, 2}, {-1, 2}}, // W -> N
		{{0, 0}, {-1, 0}, {-1, -1}, {0, 2}, {-1, 2}}, // W -> S
	},
}

// kicksI holds the wall-kick offsets for I.
var kicksI = [pieces.OrientationCount][2][5]offset{
	pieces.North: {
		{{0, 0}, {-2, 0}, {1, 0}, {-2, -1}, {1, 2}}, // N -> E
		{{0, 0}, {-1, 0}, {2, 0}, {-1, 2}, {2, -1}}, // N -> W
	},
	pieces.East: {
		{{0, 0}, {-1, 0}, {2, 0}, {-1, 2}, {2, -1}}, // E -> S
		{{0, 0}, {2, 0}, {-1, 0}, {2, 1}, {-1, -2}}, // E -> N
	},
	pieces.South: {
		{{0, 0}, {2, 0}, {-1, 0}, {2, 1}, {-1, -2}}, // S -> W
		{{0, 0}, {1, 0}, {-2, 0}, {1, -2}, {-2, 1}}, // S -> E
	},
	pieces.West: {
		{{0, 0}, {1, 0}, {-2, 0}, {1, -2}, {-2, 1}}, // W -> N
		{{0, 0}, {-2, 0}, {1, 0}, {-2, -1}, {1, 2}}, // W -> S
	},
}

// kicks returns the kick offsets for rotating shape from the given
// orientation, clockwise or counterclockwise. O never kicks.
func kicks(s pieces.Shape, from pieces.Orientation, cw bool) [5]offset {
	dir := 1
	if cw {
		dir = 0
	}
	if s == pieces.ShapeI {
		return kicksI[from][dir]
	}
	return kicksJLSTZ[from][dir]
}

// state is a falling piece during movement search: an orientation and the
// frame's bottom-left position on the board.
type state struct {
	orientation pieces.Orientation
	fx          int8
	fy          int8
}

// fits reports whether every cell of shape s in the given state is free.
func fits(b board.Board, s pieces.Shape, st state) bool {
	for _, c := range frameCells[s-1][st.orientation] {
		if !b.IsFree(int(st.fx)+int(c.x), int(st.fy)+int(c.y)) {
			return false
		}
	}
	return true
}

// isLanding reports whether shape s in the given state rests on the floor or
// on an occupied cell.
func isLanding(b board.Board, s pieces.Shape, st state) bool {
	for _, c := range frameCells[s-1][st.orientation] {
		if b.IsOccupied(int(st.fx)+int(c.x), int(st.fy)+int(c.y)-1) {
			return true
		}
	}
	return false
}

// rotate attempts an SRS rotation of shape s from st, trying the kick table
// in order. It returns the resulting state and whether any kick fit.
func rotate(b board.Board, s pieces.Shape, st state, cw bool) (state, bool) {
	var to pieces.Orientation
	if cw {
		to = st.orientation.Cw()
	} else {
		to = st.orientation.Ccw()
	}
	for _, k := range kicks(s, st.orientation, cw) {
		next := state{orientation: to, fx: st.fx + k.x, fy: st.fy + k.y}
		if fits(b, s, next) {
			return next, true
		}
	}
	return state{}, false
}
