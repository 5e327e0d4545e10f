package cli

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/minus3theta/bitris-commands/pkg/cache"
	"github.com/minus3theta/bitris-commands/pkg/observability"
	"github.com/minus3theta/bitris-commands/pkg/pattern"
	"github.com/minus3theta/bitris-commands/pkg/pcpossible"
)

// possibleResult is the cacheable outcome of a possible solve. Orders holds
// the accepted orders in pattern expansion order.
type possibleResult struct {
	Total    int      `json:"total"`
	Accepted int      `json:"accepted"`
	Orders   []string `json:"orders,omitempty"`
}

// possibleCommand creates the possible command.
func (c *CLI) possibleCommand() *cobra.Command {
	flags := &scenarioFlags{}
	var (
		show   int
		failed bool
	)

	cmd := &cobra.Command{
		Use:   "possible",
		Short: "Check which orders from a pattern can reach a perfect clear",
		Long: `Check every shape order a pattern supplies against a board.

An order is accepted when some placement sequence, following the movement
rules and optionally using hold, perfectly clears the board. The result
reports how many of the pattern's orders are accepted.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			return c.runPossible(cmd.Context(), sc, show, failed)
		},
	}

	flags.registerBoard(cmd)
	flags.registerSolve(cmd)
	flags.registerBulk(cmd)
	cmd.Flags().IntVar(&show, "show", 0, "print the first N checked orders (-1 for all)")
	cmd.Flags().BoolVar(&failed, "failed", false, "with --show, print rejected orders instead of accepted ones")

	return cmd
}

// runPossible solves the scenario and renders the result.
func (c *CLI) runPossible(ctx context.Context, sc *Scenario, show int, failed bool) error {
	backend, err := c.newCache()
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}
	defer backend.Close()

	clipped, err := sc.ClippedBoard()
	if err != nil {
		return err
	}
	pat, err := sc.ParsedPattern()
	if err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Checking %d orders...", pat.LenShapesVec()))
	spinner.Start()

	res, cached, err := possibleScenario(ctx, sc, backend, cache.NewDefaultKeyer(), 0)
	if err != nil {
		spinner.StopWithError("Possible check failed")
		return err
	}
	spinner.Stop()

	printSuccess("%d of %d orders can reach a perfect clear", res.Accepted, res.Total)
	printBoard(clipped.String())
	printSolveStats(clipped.FreeCells()/4, res.Total, cached)
	drop, _ := parseDrop(sc.Rules.Drop)
	hold := "without hold"
	if sc.Rules.Hold {
		hold = "with hold"
	}
	printDetail("Pattern %s, %s, %s", sc.Pattern.Expression, drop, hold)

	if show != 0 {
		orders := res.Orders
		label := "Accepted orders"
		if failed {
			orders = rejectedOrders(pat, res.Orders)
			label = "Rejected orders"
		}
		printNewline()
		printInfo("%s:", label)
		for i, o := range orders {
			if show > 0 && i >= show {
				printDetail("... and %d more", len(orders)-show)
				break
			}
			printDetail("%s", o)
		}
	}
	return nil
}

// possibleScenario runs the bulk possible solve for sc, consulting backend
// under the keyer's possible key first. The bool result reports whether the
// value came from the cache.
func possibleScenario(ctx context.Context, sc *Scenario, backend cache.Cache, keyer cache.Keyer, ttl time.Duration) (possibleResult, bool, error) {
	binder, err := sc.Binder()
	if err != nil {
		return possibleResult{}, false, err
	}
	exec, err := binder.TryBind()
	if err != nil {
		return possibleResult{}, false, err
	}

	key := keyer.PossibleKey(binder.ClippedBoard.String(), sc.KeyOpts())
	var res possibleResult
	if cacheLookup(ctx, backend, key, keyTypePossible, &res) {
		return res, true, nil
	}

	solver := newBulkSolver(ctx, exec)
	hooks := observability.Solve()
	hooks.OnSolveStart(ctx, keyTypePossible, binder.Pattern.LenShapesVec())
	start := time.Now()
	results, err := solver.Execute(ctx)
	if err != nil {
		hooks.OnSolveComplete(ctx, keyTypePossible, 0, time.Since(start), err)
		return possibleResult{}, false, err
	}
	hooks.OnSolveComplete(ctx, keyTypePossible, uint64(results.AcceptedCount()), time.Since(start), nil)

	res = possibleResult{
		Total:    results.Len(),
		Accepted: results.AcceptedCount(),
		Orders:   acceptedOrders(results),
	}
	cacheStore(ctx, backend, key, keyTypePossible, res, ttl)
	return res, false, nil
}

// acceptedOrders lists the accepted orders in expansion order.
func acceptedOrders(r *pcpossible.Results) []string {
	var out []string
	for _, o := range r.Orders() {
		if ok, _ := r.Accepted(o); ok {
			out = append(out, o.String())
		}
	}
	return out
}

// rejectedOrders reconstructs the rejected orders by expanding the pattern
// and removing the accepted ones. The expansion dedupes first-seen, matching
// the order list of the solve results.
func rejectedOrders(pat *pattern.Pattern, accepted []string) []string {
	acceptedSet := make(map[string]bool, len(accepted))
	for _, o := range accepted {
		acceptedSet[o] = true
	}
	seen := make(map[string]bool)
	var out []string
	for _, o := range pat.ToOrders() {
		s := o.String()
		if seen[s] {
			continue
		}
		seen[s] = true
		if !acceptedSet[s] {
			out = append(out, s)
		}
	}
	return out
}

// =============================================================================
// Progress Logging
// =============================================================================

// bulkSolver wraps a pcpossible.BulkExecutor with progress logging. Workers
// report progress concurrently, so the logging state is mutex guarded.
type bulkSolver struct {
	exec   *pcpossible.BulkExecutor
	prog   *progress
	logger *log.Logger

	mu      sync.Mutex
	start   time.Time
	lastLog time.Time
}

// newBulkSolver wires the executor's progress hook to the logger from ctx.
// Heartbeats log every 10 seconds so long runs show life without flooding
// the output.
func newBulkSolver(ctx context.Context, exec *pcpossible.BulkExecutor) *bulkSolver {
	logger := loggerFromContext(ctx)
	now := time.Now()
	s := &bulkSolver{
		exec:    exec,
		prog:    newProgress(logger),
		logger:  logger,
		start:   now,
		lastLog: now,
	}
	exec.Progress = s.onProgress
	return s
}

// onProgress is called by the executor after each solved order.
func (s *bulkSolver) onProgress(done, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if time.Since(s.lastLog) < 10*time.Second {
		return
	}
	s.lastLog = time.Now()
	elapsed := time.Since(s.start).Truncate(time.Second)
	s.logger.Infof("Solving... %d/%d orders (%v elapsed)", done, total, elapsed)
}

// Execute runs the bulk solve and logs the final tally.
func (s *bulkSolver) Execute(ctx context.Context) (*pcpossible.Results, error) {
	res, err := s.exec.Execute(ctx)
	if err != nil {
		return nil, err
	}
	s.prog.done(fmt.Sprintf("Solved %d orders, %d can reach a perfect clear", res.Len(), res.AcceptedCount()))
	return res, nil
}
