package pattern

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/minus3theta/bitris-commands/pkg/errors"
	"github.com/minus3theta/bitris-commands/pkg/pieces"
)

// Parse builds a pattern from its text form: elements separated by commas
// or whitespace.
//
//	T         one shape
//	TIO       fixed run
//	*         wildcard
//	[TIO]p2   ordered picks of 2 from the bracketed shapes
//	*p4       ordered picks of 4 from one of each shape
//	[TIO]!    every order of the bracketed shapes
//	*!        every order of one of each shape
//
// Shape letters accept either case. Errors carry
// [errors.ErrCodeInvalidPattern] with the offending element, or the
// NewPattern validation codes.
func Parse(text string) (*Pattern, error) {
	tokens := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	elements := make([]Element, 0, len(tokens))
	for i, token := range tokens {
		e, err := parseElement(token)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPattern, err, "pattern element %d", i+1)
		}
		elements = append(elements, e)
	}
	return NewPattern(elements...)
}

// MustParse is Parse, panicking on error.
func MustParse(text string) *Pattern {
	p, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return p
}

func parseElement(token string) (Element, error) {
	switch {
	case token == "*":
		return Wildcard(), nil
	case strings.HasPrefix(token, "*"):
		return parseSelection(pieces.OneOfEach(), token[1:])
	case strings.HasPrefix(token, "["):
		end := strings.IndexByte(token, ']')
		if end < 0 {
			return Element{}, errors.New(errors.ErrCodeInvalidPattern, "%q is missing ']'", token)
		}
		shapes, err := parseShapes(token[1:end])
		if err != nil {
			return Element{}, err
		}
		if end == len(token)-1 {
			return Element{}, errors.New(errors.ErrCodeInvalidPattern, "%q needs 'p<count>' or '!' after ']'", token)
		}
		return parseSelection(pieces.NewShapeCounter(shapes...), token[end+1:])
	default:
		shapes, err := parseShapes(token)
		if err != nil {
			return Element{}, err
		}
		if len(shapes) == 1 {
			return One(shapes[0]), nil
		}
		bs, err := pieces.NewBitShapes(shapes...)
		if err != nil {
			return Element{}, errors.Wrap(errors.ErrCodeInvalidPattern, err, "fixed run %q", token)
		}
		return Fixed(bs), nil
	}
}

func parseSelection(counter pieces.ShapeCounter, suffix string) (Element, error) {
	switch {
	case suffix == "!":
		return Factorial(counter), nil
	case strings.HasPrefix(suffix, "p"):
		pop, err := strconv.Atoi(suffix[1:])
		if err != nil {
			return Element{}, errors.New(errors.ErrCodeInvalidPattern, "%q is not a pick count", suffix[1:])
		}
		return Permutation(counter, pop), nil
	}
	return Element{}, errors.New(errors.ErrCodeInvalidPattern, "unexpected %q after shape selection", suffix)
}

func parseShapes(letters string) ([]pieces.Shape, error) {
	if letters == "" {
		return nil, errors.New(errors.ErrCodeInvalidPattern, "empty shape run")
	}
	shapes := make([]pieces.Shape, 0, len(letters))
	for _, r := range letters {
		s, ok := pieces.ShapeFromRune(r)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidPattern, "unknown shape %q", r)
		}
		shapes = append(shapes, s)
	}
	return shapes, nil
}
