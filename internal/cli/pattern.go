package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/minus3theta/bitris-commands/pkg/errors"
	"github.com/minus3theta/bitris-commands/pkg/pattern"
	"github.com/minus3theta/bitris-commands/pkg/pieces"
)

// patternCommand creates the pattern command.
func (c *CLI) patternCommand() *cobra.Command {
	var (
		sequences int
		counters  bool
	)

	cmd := &cobra.Command{
		Use:   "pattern <expression>",
		Short: "Expand and inspect a pattern expression",
		Long: `Expand a pattern expression and report its size.

A pattern is a comma-separated list of elements:

  T         a single shape
  TIO       a fixed run of shapes
  *         any one shape
  *p4       permutations of 4 shapes drawn from one of each
  [SZT]p2   permutations of 2 shapes drawn from the bracket selection
  *!        every order of one full bag
  [TIO]!    every order of the bracket selection

The command prints the canonical form, the number of shape sequences the
pattern expands to, and the sequence length.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPattern(args[0], sequences, counters)
		},
	}

	cmd.Flags().IntVar(&sequences, "sequences", 0, "print the first N expanded sequences (-1 for all)")
	cmd.Flags().BoolVar(&counters, "counters", false, "print the distinct shape multisets")

	return cmd
}

// runPattern parses the expression and renders its expansion.
func runPattern(expression string, sequences int, counters bool) error {
	if err := errors.ValidatePatternText(expression); err != nil {
		return err
	}
	pat, err := pattern.Parse(expression)
	if err != nil {
		return err
	}

	printKeyValue("Pattern", pat.String())
	printKeyValue("Sequences", strconv.Itoa(pat.LenShapesVec()))
	printKeyValue("Length", strconv.Itoa(pat.DimShapes()))

	if counters {
		cs := pat.ToShapeCounterVec()
		printNewline()
		printInfo("%d distinct shape multisets:", len(cs))
		for _, counter := range cs {
			printDetail("%s", counter)
		}
	}

	if sequences != 0 {
		total := pat.LenShapesVec()
		printNewline()
		printInfo("Sequences:")
		shown := 0
		pat.WalkShapeSequences(func(seq pieces.ShapeSequence) {
			if sequences < 0 || shown < sequences {
				printDetail("%s", seq)
			}
			shown++
		})
		if sequences > 0 && total > sequences {
			printDetail("... and %d more", total-sequences)
		}
	}
	return nil
}
