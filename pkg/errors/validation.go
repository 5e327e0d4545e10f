package errors

import (
	"strings"
	"unicode"
)

// shapeLetters is the set of letters naming the seven piece shapes.
const shapeLetters = "TIOLJSZ"

// ValidateShapeName validates a single-letter shape name.
func ValidateShapeName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidShape, "shape name cannot be empty")
	}
	if len(name) != 1 || !strings.Contains(shapeLetters, strings.ToUpper(name)) {
		return New(ErrCodeInvalidShape, "unknown shape %q (expected one of %s)", name, shapeLetters)
	}
	return nil
}

// ValidateBoardText validates the textual board form before parsing.
// Rows are newline or slash separated, each exactly boardWidth cells of '#'
// (occupied) or '.'/'_' (empty).
//
// The validation rules are intentionally conservative:
//   - No empty boards
//   - Every row the same width
//   - No characters outside the cell alphabet
//   - Maximum of 64 rows (row masks are 64 bits wide)
func ValidateBoardText(text string, boardWidth int) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return New(ErrCodeInvalidBoard, "board text cannot be empty")
	}

	rows := strings.FieldsFunc(trimmed, func(r rune) bool {
		return r == '\n' || r == '/'
	})
	if len(rows) > 64 {
		return New(ErrCodeInvalidBoard, "board has %d rows (max 64)", len(rows))
	}

	for i, row := range rows {
		row = strings.TrimSpace(row)
		if len(row) != boardWidth {
			return New(ErrCodeInvalidBoard, "row %d has %d cells (expected %d)", i, len(row), boardWidth)
		}
		for _, r := range row {
			if r != '#' && r != '.' && r != '_' {
				if unicode.IsControl(r) {
					return New(ErrCodeInvalidBoard, "row %d contains control characters", i)
				}
				return New(ErrCodeInvalidBoard, "row %d contains invalid cell %q (expected '#', '.' or '_')", i, r)
			}
		}
	}

	return nil
}

// ValidateBoardHeight validates a clipped board height.
// Perfect clears need a multiple of complete rows worth of cells, and the row
// masks used throughout the engine are 64 bits wide.
func ValidateBoardHeight(height int) error {
	if height < 1 {
		return New(ErrCodeBoardHeightOutOfRange, "board height must be at least 1, got %d", height)
	}
	if height > 64 {
		return New(ErrCodeBoardHeightOutOfRange, "board height must be at most 64, got %d", height)
	}
	return nil
}

// ValidatePatternText performs a cheap syntactic check of a pattern expression
// before the real parser runs. It rejects empty input, control characters, and
// characters outside the pattern alphabet.
func ValidatePatternText(text string) error {
	if strings.TrimSpace(text) == "" {
		return New(ErrCodeInvalidPattern, "pattern cannot be empty")
	}

	for _, r := range text {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			return New(ErrCodeInvalidPattern, "pattern contains control characters")
		}
		switch {
		case strings.ContainsRune(shapeLetters, unicode.ToUpper(r)):
		case r == '*' || r == '!' || r == '[' || r == ']' || r == ',' || r == 'p':
		case unicode.IsDigit(r) || unicode.IsSpace(r):
		default:
			return New(ErrCodeInvalidPattern, "pattern contains invalid character %q", r)
		}
	}

	return nil
}
