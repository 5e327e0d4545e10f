package board

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"
)

// Width is the fixed number of board columns.
const Width = 10

// ErrInvalidBoardText is returned when the textual board form cannot be
// parsed.
var ErrInvalidBoardText = errors.New("board: invalid board text")

// Board is a Width-column bitboard. Each column is a 64-bit mask, bit y for
// the cell in row y (row 0 at the bottom). Board is a value type: operations
// return new boards and the receiver is never mutated.
type Board struct {
	cols [Width]uint64
}

// FilledUpTo returns a board whose rows 0 through height-1 are fully
// occupied.
func FilledUpTo(height int) Board {
	var b Board
	mask := uint64(FilledUpToLines(height))
	for x := range b.cols {
		b.cols[x] = mask
	}
	return b
}

// IsOccupied reports whether the cell at (x, y) is occupied. Cells outside
// the column range or below the floor count as occupied, cells above the row
// capacity as free.
func (b Board) IsOccupied(x, y int) bool {
	if x < 0 || x >= Width || y < 0 {
		return true
	}
	if y >= MaxRows {
		return false
	}
	return b.cols[x]&(1<<uint(y)) != 0
}

// IsFree reports whether the cell at (x, y) is inside the board and empty.
func (b Board) IsFree(x, y int) bool {
	if x < 0 || x >= Width || y < 0 || y >= MaxRows {
		return false
	}
	return b.cols[x]&(1<<uint(y)) == 0
}

// SetAt returns the board with the cell at (x, y) occupied.
func (b Board) SetAt(x, y int) Board {
	b.cols[x] |= 1 << uint(y)
	return b
}

// UnsetAt returns the board with the cell at (x, y) freed.
func (b Board) UnsetAt(x, y int) Board {
	b.cols[x] &^= 1 << uint(y)
	return b
}

// Merge returns the union of both boards.
func (b Board) Merge(other Board) Board {
	for x := range b.cols {
		b.cols[x] |= other.cols[x]
	}
	return b
}

// Remove returns the board with every cell of other freed.
func (b Board) Remove(other Board) Board {
	for x := range b.cols {
		b.cols[x] &^= other.cols[x]
	}
	return b
}

// Overlaps reports whether both boards occupy a common cell.
func (b Board) Overlaps(other Board) bool {
	for x := range b.cols {
		if b.cols[x]&other.cols[x] != 0 {
			return true
		}
	}
	return false
}

// IsEmpty reports whether no cell is occupied.
func (b Board) IsEmpty() bool {
	return b == Board{}
}

// CountBlocks returns the number of occupied cells.
func (b Board) CountBlocks() int {
	total := 0
	for _, col := range b.cols {
		total += bits.OnesCount64(col)
	}
	return total
}

// FilledRows returns the rows in which every column is occupied.
func (b Board) FilledRows() Lines {
	mask := ^uint64(0)
	for _, col := range b.cols {
		mask &= col
	}
	return Lines(mask)
}

// UsedRows returns the rows with at least one occupied cell.
func (b Board) UsedRows() Lines {
	mask := uint64(0)
	for _, col := range b.cols {
		mask |= col
	}
	return Lines(mask)
}

// ClearLines removes every fully occupied row, shifting the rows above down.
// It returns the cleared board and the mask of removed rows in pre-clear
// coordinates.
func (b Board) ClearLines() (Board, Lines) {
	cleared := b.FilledRows()
	if cleared == 0 {
		return b, 0
	}
	return b.clearRows(cleared), cleared
}

// ClearLinesPartially removes exactly the given rows whether or not they are
// full, shifting the rows above down.
func (b Board) ClearLinesPartially(lines Lines) Board {
	if lines == 0 {
		return b
	}
	return b.clearRows(lines)
}

func (b Board) clearRows(lines Lines) Board {
	for x := range b.cols {
		col := b.cols[x]
		rest := uint64(lines)
		for rest != 0 {
			y := bits.TrailingZeros64(rest)
			below := uint64(1)<<uint(y) - 1
			col = col&below | col>>1&^below
			rest = rest >> 1 &^ below
		}
		b.cols[x] = col
	}
	return b
}

/// Parse reads the '#'/'.' textual form: rows separated by newlines or
// slashes, given top-down, Width cells per row. '_' is accepted as an empty
// cell. It returns the board and the number of rows read.
func Parse(text string) (Board, int, error) {
	rows := strings.FieldsFunc(strings.TrimSpace(text), func(r rune) bool {
		return r == '\n' || r == '/'
	})
	if len(rows) == 0 {
		return Board{}, 0, fmt.Errorf("%w: empty", ErrInvalidBoardText)
	}
	if len(rows) > MaxRows {
		return Board{}, 0, fmt.Errorf("%w: %d rows exceeds %d", ErrInvalidBoardText, len(rows), MaxRows)
	}

	var b Board
	height := len(rows)
	for i, row := range rows {
		row = strings.TrimSpace(row)
		if len(row) != Width {
			return Board{}, 0, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidBoardText, i, len(row), Width)
		}
		y := height - 1 - i
		for x, r := range row {
			switch r {
			case '#':
				b = b.SetAt(x, y)
			case '.', '_':
			default:
				return Board{}, 0, fmt.Errorf("%w: row %d has invalid cell %q", ErrInvalidBoardText, i, r)
			}
		}
	}
	return b, height, nil
}

// MustParse parses the textual form and panics on error. For use with
// literal boards in tests and examples.
func MustParse(text string) Board {
	b, _, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return b
}

// Format renders rows height-1 down to 0 as '#'/'.' text.
func (b Board) Format(height int) string {
	var sb strings.Builder
	for y := height - 1; y >= 0; y-- {
		for x := 0; x < Width; x++ {
			if b.IsOccupied(x, y) {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		if y > 0 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
