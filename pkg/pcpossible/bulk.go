package pcpossible

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/minus3theta/bitris-commands/internal/fuzzy"
	"github.com/minus3theta/bitris-commands/pkg/board"
	"github.com/minus3theta/bitris-commands/pkg/pattern"
	"github.com/minus3theta/bitris-commands/pkg/pieces"
	"github.com/minus3theta/bitris-commands/pkg/srs"
)

// BulkExecutor solves every order a pattern denotes against one clipped
// board. A success that never looked past its first k shapes proves every
// order sharing that k-prefix, so those orders are marked without solving.
type BulkExecutor struct {
	rules      srs.MoveRules
	clipped    board.ClippedBoard
	pattern    *pattern.Pattern
	allowsHold bool
	workers    int

	// Progress, when set, receives the processed and total order counts as
	// the run advances. It is called from the solving goroutines, so it may
	// run concurrently when the executor uses more than one worker.
	Progress func(done, total int)
}

// Execute solves all orders. It stops early and returns the context's error
// when ctx is canceled; orders are never half-solved, so a completed run is
// deterministic regardless of worker count.
func (e *BulkExecutor) Execute(ctx context.Context) (*Results, error) {
	res := newResults(e.pattern)

	var mu sync.Mutex
	done := 0

	g, ctx := errgroup.WithContext(ctx)
	jobs := make(chan int)
	g.Go(func() error {
		defer close(jobs)
		for i := range res.orders {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})
	for w := 0; w < e.workers; w++ {
		g.Go(func() error {
			solver := &Executor{rules: e.rules, clipped: e.clipped, allowsHold: e.allowsHold}
			for i := range jobs {
				mu.Lock()
				pending := res.statuses[i] == statusPending
				mu.Unlock()

				var ok bool
				var used int
				if pending {
					ok, used = solver.run(res.orders[i])
				}

				mu.Lock()
				if ok {
					if res.statuses[i] == statusPending {
						res.statuses[i] = statusSucceed
					}
					e.markFuzzy(res, i, used)
				} else if pending && res.statuses[i] == statusPending {
					res.statuses[i] = statusFail
				}
				done++
				d := done
				mu.Unlock()

				if e.Progress != nil {
					e.Progress(d, len(res.orders))
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}

// markFuzzy marks every order that shares the winning prefix. The trailing
// shapes were never revealed, so any shapes there succeed the same way.
// Callers must hold the results lock.
func (e *BulkExecutor) markFuzzy(res *Results, i, used int) {
	order := res.orders[i]
	if used >= len(order) {
		return
	}
	fz := make(fuzzy.ShapeOrder, len(order))
	for j, s := range order {
		if j < used {
			fz[j] = fuzzy.Known(s)
		} else {
			fz[j] = fuzzy.Unknown
		}
	}
	fz.ExpandAsWildcardWalk(func(o pieces.ShapeOrder) {
		if j, exists := res.index[o.String()]; exists && res.statuses[j] == statusPending {
			res.statuses[j] = statusSucceed
		}
	})
}
