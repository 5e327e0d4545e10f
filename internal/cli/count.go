package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/minus3theta/bitris-commands/pkg/allpcs"
	"github.com/minus3theta/bitris-commands/pkg/cache"
	"github.com/minus3theta/bitris-commands/pkg/errors"
	"github.com/minus3theta/bitris-commands/pkg/observability"
	"github.com/minus3theta/bitris-commands/pkg/pieces"
	"github.com/minus3theta/bitris-commands/pkg/srs"
)

// countResult is the cacheable outcome of a count solve.
type countResult struct {
	Count  uint64 `json:"count"`
	Nodes  int    `json:"nodes"`
	Pieces int    `json:"pieces"`
}

// countCommand creates the count command.
func (c *CLI) countCommand() *cobra.Command {
	flags := &scenarioFlags{}

	cmd := &cobra.Command{
		Use:   "count",
		Short: "Count perfect clear piece combinations for a board",
		Long: `Count the distinct piece combinations that perfectly clear a board.

The count enumerates every way to tile the free cells of the board with
whole pieces, keeps the combinations where every piece has a reachable
placement under the movement rules, and optionally restricts the result to
combinations a pattern expression can supply.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			return c.runCount(cmd.Context(), sc)
		},
	}

	flags.registerBoard(cmd)
	flags.registerSolve(cmd)

	return cmd
}

// runCount solves the scenario and renders the result.
func (c *CLI) runCount(ctx context.Context, sc *Scenario) error {
	backend, err := c.newCache()
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}
	defer backend.Close()

	clipped, err := sc.ClippedBoard()
	if err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, "Counting perfect clears...")
	spinner.Start()

	res, cached, err := countScenario(ctx, sc, backend, cache.NewDefaultKeyer(), 0)
	if err != nil {
		spinner.StopWithError("Count failed")
		return err
	}
	spinner.Stop()

	printSuccess("Found %d perfect clear piece combinations", res.Count)
	printBoard(clipped.String())
	printSolveStats(res.Pieces, 0, cached)
	if sc.Pattern.Expression != "" {
		printDetail("Restricted to pattern %s", sc.Pattern.Expression)
	} else {
		printNewline()
		printNextStep("Check a shape supply", fmt.Sprintf("%s possible -b %q -p \"*p7\"", appName, sc.Board.Text))
	}
	return nil
}

// countScenario runs the count solve for sc, consulting backend under the
// keyer's count key first. The bool result reports whether the value came
// from the cache.
func countScenario(ctx context.Context, sc *Scenario, backend cache.Cache, keyer cache.Keyer, ttl time.Duration) (countResult, bool, error) {
	clipped, err := sc.ClippedBoard()
	if err != nil {
		return countResult{}, false, err
	}
	rules, err := sc.MoveRules()
	if err != nil {
		return countResult{}, false, err
	}

	var counters []pieces.ShapeCounter
	if sc.Pattern.Expression != "" {
		pat, err := sc.ParsedPattern()
		if err != nil {
			return countResult{}, false, err
		}
		if needed := clipped.FreeCells() / 4; pat.DimShapes() < needed {
			return countResult{}, false, errors.New(errors.ErrCodeShortPatternDimension,
				"pattern supplies %d shapes but the board needs %d pieces", pat.DimShapes(), needed)
		}
		counters = pat.ToShapeCounterVec()
	}

	key := keyer.CountKey(clipped.String(), sc.KeyOpts())
	var res countResult
	if cacheLookup(ctx, backend, key, keyTypeCount, &res) {
		return res, true, nil
	}

	hooks := observability.Solve()
	hooks.OnBuildStart(ctx, clipped.FreeCells())
	buildStart := time.Now()
	nodes, err := allpcs.Build(clipped)
	if err != nil {
		hooks.OnBuildComplete(ctx, 0, time.Since(buildStart), err)
		return countResult{}, false, err
	}
	hooks.OnBuildComplete(ctx, nodes.IndexCount(), time.Since(buildStart), nil)

	agg := allpcs.NewAggregator(clipped, nodes, rules, srs.Spawn(clipped.Height()))
	hooks.OnSolveStart(ctx, keyTypeCount, len(counters))
	solveStart := time.Now()
	var count uint64
	if counters == nil {
		count = agg.Aggregate()
	} else {
		count = agg.AggregateWithShapeCounters(counters)
	}
	hooks.OnSolveComplete(ctx, keyTypeCount, count, time.Since(solveStart), nil)

	res = countResult{
		Count:  count,
		Nodes:  nodes.IndexCount(),
		Pieces: clipped.FreeCells() / 4,
	}
	cacheStore(ctx, backend, key, keyTypeCount, res, ttl)
	return res, false, nil
}
