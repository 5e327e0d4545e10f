package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/minus3theta/bitris-commands/pkg/allpcs"
	"github.com/minus3theta/bitris-commands/pkg/errors"
)

// graphCommand creates the hidden graph debug command.
func (c *CLI) graphCommand() *cobra.Command {
	flags := &scenarioFlags{}
	var (
		output string
		format string
	)

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Export the placement graph for a board",
		Long: `Export the perfect clear placement graph as DOT or SVG.

The graph shows the index nodes of the placement enumeration and is a
debugging aid for inspecting how the solver carves up a board.`,
		Hidden: true,
		Args:   cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			return runGraph(cmd.Context(), sc, output, format)
		},
	}

	flags.registerBoard(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout for dot, graph.svg for svg)")
	cmd.Flags().StringVar(&format, "format", "dot", "output format: dot or svg")

	return cmd
}

// runGraph builds the placement graph and writes it in the chosen format.
func runGraph(ctx context.Context, sc *Scenario, output, format string) error {
	if format != "dot" && format != "svg" {
		return errors.New(errors.ErrCodeInvalidInput, "unknown format %q (expected dot or svg)", format)
	}

	clipped, err := sc.ClippedBoard()
	if err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, "Building placement graph...")
	spinner.Start()
	nodes, err := allpcs.Build(clipped)
	if err != nil {
		spinner.StopWithError("Graph build failed")
		return err
	}
	spinner.Stop()

	var data []byte
	switch format {
	case "dot":
		data = []byte(nodes.ToDOT())
		if output == "" {
			fmt.Print(string(data))
			return nil
		}
	case "svg":
		data, err = nodes.RenderSVG()
		if err != nil {
			return fmt.Errorf("render graph: %w", err)
		}
		if output == "" {
			output = "graph.svg"
		}
	}

	if err := os.WriteFile(output, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}

	printSuccess("Exported placement graph with %d index nodes", nodes.IndexCount())
	printFile(output)
	printDetail("%d items across %d distinct placements", nodes.ItemCount(), nodes.PieceCount())
	return nil
}
