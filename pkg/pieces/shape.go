// Package pieces defines the seven falling-block shapes and the ordered and
// unordered collections of them consumed by the solvers: sequences, orders,
// packed bit sequences, and count multisets.
package pieces

// Shape represents one of the seven piece shapes. The zero value EmptyShape
// is reserved for "no shape" slots such as an empty hold.
type Shape uint8

// All possible shapes. The enumeration order T, I, O, L, J, S, Z is load
// bearing: wildcard expansion and counter iteration follow it.
const (
	EmptyShape Shape = iota
	ShapeT
	ShapeI
	ShapeO
	ShapeL
	ShapeJ
	ShapeS
	ShapeZ
)

// ShapeCount is the number of nonempty shapes.
const ShapeCount = 7

// NonemptyShapes contains all seven shapes in enumeration order.
var NonemptyShapes = [ShapeCount]Shape{ShapeT, ShapeI, ShapeO, ShapeL, ShapeJ, ShapeS, ShapeZ}

// String returns the single-letter name of the shape.
func (s Shape) String() string {
	switch s {
	case EmptyShape:
		return "."
	case ShapeT:
		return "T"
	case ShapeI:
		return "I"
	case ShapeO:
		return "O"
	case ShapeL:
		return "L"
	case ShapeJ:
		return "J"
	case ShapeS:
		return "S"
	case ShapeZ:
		return "Z"
	}
	panic("unknown shape")
}

// ShapeFromRune maps a shape letter (either case) to its Shape.
// The second return value reports whether the rune named a shape.
func ShapeFromRune(r rune) (Shape, bool) {
	switch r {
	case 'T', 't':
		return ShapeT, true
	case 'I', 'i':
		return ShapeI, true
	case 'O', 'o':
		return ShapeO, true
	case 'L', 'l':
		return ShapeL, true
	case 'J', 'j':
		return ShapeJ, true
	case 'S', 's':
		return ShapeS, true
	case 'Z', 'z':
		return ShapeZ, true
	}
	return EmptyShape, false
}

// Orientation is the rotation state of a piece: the four compass directions,
// north being the spawn state.
type Orientation uint8

// All orientations, clockwise from spawn.
const (
	North Orientation = iota
	East
	South
	West
)

// OrientationCount is the number of rotation states.
const OrientationCount = 4

// String returns the compass name of the orientation.
func (o Orientation) String() string {
	switch o {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	}
	panic("unknown orientation")
}

// Cw returns the orientation rotated a quarter turn clockwise.
func (o Orientation) Cw() Orientation {
	return (o + 1) % OrientationCount
}

// Ccw returns the orientation rotated a quarter turn counterclockwise.
func (o Orientation) Ccw() Orientation {
	return (o + 3) % OrientationCount
}

// Piece is a shape in a concrete orientation.
type Piece struct {
	Shape       Shape
	Orientation Orientation
}

// String returns e.g. "T-north".
func (p Piece) String() string {
	return p.Shape.String() + "-" + p.Orientation.String()
}

// Offset is a relative cell coordinate, x growing right and y growing up.
type Offset struct {
	X int8
	Y int8
}

// northCells holds each shape's cells in the north orientation, normalized so
// the smallest x and y are zero.
var northCells = [ShapeCount][4]Offset{
	{{0, 0}, {1, 0}, {2, 0}, {1, 1}}, // T
	{{0, 0}, {1, 0}, {2, 0}, {3, 0}}, // I
	{{0, 0}, {1, 0}, {0, 1}, {1, 1}}, // O
	{{0, 0}, {1, 0}, {2, 0}, {2, 1}}, // L
	{{0, 0}, {1, 0}, {2, 0}, {0, 1}}, // J
	{{0, 0}, {1, 0}, {1, 1}, {2, 1}}, // S
	{{1, 0}, {2, 0}, {0, 1}, {1, 1}}, // Z
}

// pieceCells is indexed [shape-1][orientation] and holds normalized cell
// offsets, derived at init by rotating the north forms.
var pieceCells = buildPieceCells()

func buildPieceCells() [ShapeCount][OrientationCount][4]Offset {
	var table [ShapeCount][OrientationCount][4]Offset
	for i := range northCells {
		cells := northCells[i]
		for o := Orientation(0); o < OrientationCount; o++ {
			table[i][o] = normalize(cells)
			cells = rotateCw(cells)
		}
	}
	return table
}

// rotateCw maps (x, y) to (y, -x), a quarter turn clockwise.
func rotateCw(cells [4]Offset) [4]Offset {
	var out [4]Offset
	for i, c := range cells {
		out[i] = Offset{X: c.Y, Y: -c.X}
	}
	return out
}

func normalize(cells [4]Offset) [4]Offset {
	minX, minY := cells[0].X, cells[0].Y
	for _, c := range cells[1:] {
		if c.X < minX {
			minX = c.X
		}
		if c.Y < minY {
			minY = c.Y
		}
	}
	var out [4]Offset
	for i, c := range cells {
		out[i] = Offset{X: c.X - minX, Y: c.Y - minY}
	}
	sortCells(&out)
	return out
}

// sortCells orders cells bottom-up then left-right so that the i-th cell of a
// row can be addressed deterministically.
func sortCells(cells *[4]Offset) {
	for i := 1; i < len(cells); i++ {
		for j := i; j > 0; j-- {
			a, b := cells[j-1], cells[j]
			if b.Y < a.Y || (b.Y == a.Y && b.X < a.X) {
				cells[j-1], cells[j] = b, a
			} else {
				break
			}
		}
	}
}

// Cells returns the piece's cell offsets normalized to a bottom-left origin,
// ordered bottom-up then left-right.
func (p Piece) Cells() [4]Offset {
	if p.Shape == EmptyShape {
		panic("empty shape has no cells")
	}
	return pieceCells[p.Shape-1][p.Orientation]
}

// Width returns the number of columns the piece spans.
func (p Piece) Width() int {
	maxX := int8(0)
	for _, c := range p.Cells() {
		if c.X > maxX {
			maxX = c.X
		}
	}
	return int(maxX) + 1
}

// Height returns the number of rows the piece spans.
func (p Piece) Height() int {
	cells := p.Cells()
	return int(cells[3].Y) + 1
}

// canonicalOrientations is indexed [shape-1] and lists the orientations that
// produce distinct cell sets. O has one, I, S and Z have two, T, L and J four.
var canonicalOrientations = buildCanonicalOrientations()

func buildCanonicalOrientations() [ShapeCount][]Orientation {
	var table [ShapeCount][]Orientation
	for i, s := range NonemptyShapes {
		seen := make([][4]Offset, 0, OrientationCount)
	next:
		for o := Orientation(0); o < OrientationCount; o++ {
			cells := Piece{Shape: s, Orientation: o}.Cells()
			for _, prev := range seen {
				if prev == cells {
					continue next
				}
			}
			seen = append(seen, cells)
			table[i] = append(table[i], o)
		}
	}
	return table
}

// CanonicalOrientations returns the orientations of s that yield distinct
// cell sets. Placement enumeration iterates these to avoid counting congruent
// placements twice.
func CanonicalOrientations(s Shape) []Orientation {
	if s == EmptyShape {
		panic("empty shape has no orientations")
	}
	return canonicalOrientations[s-1]
}

// Canonical returns the representative piece whose cell set equals p's.
func (p Piece) Canonical() Piece {
	cells := p.Cells()
	for _, o := range CanonicalOrientations(p.Shape) {
		if (Piece{Shape: p.Shape, Orientation: o}).Cells() == cells {
			return Piece{Shape: p.Shape, Orientation: o}
		}
	}
	panic("no canonical orientation")
}
