package placement

import (
	"math/bits"

	"github.com/minus3theta/bitris-commands/pkg/board"
	"github.com/minus3theta/bitris-commands/pkg/srs"
)

// FindOneStackable reports whether some total order commits every placed
// piece onto initial, with lines cleared after each commit, such that each
// piece in its turn can travel from spawn to its resting position under the
// given movement rules.
//
// The search walks the power set of remaining pieces. The merged board is
// kept in absolute row coordinates, so the rows cleared so far are exactly
// its filled rows and removing them yields the physical board for the
// reachability query. A piece becomes a candidate only once all of its
// intercepted rows have cleared. Visited remaining-masks are recorded on
// first entry and skipped afterwards; the board is a function of the placed
// set alone, so a revisited mask cannot produce a new outcome. The memo
// lives for one invocation.
func FindOneStackable(initial board.Board, blocks []*Blocks, rules srs.MoveRules, spawn srs.Location) bool {
	if len(blocks) == 0 {
		return true
	}
	if len(blocks) > 64 {
		panic("placement: more than 64 placed pieces")
	}

	visited := make(map[uint64]struct{})
	var rec func(abs board.Board, remaining uint64) bool
	rec = func(abs board.Board, remaining uint64) bool {
		deleted := abs.FilledRows()
		phys := abs.ClearLinesPartially(deleted)

		for rest := remaining; rest != 0; rest &= rest - 1 {
			i := bits.TrailingZeros64(rest)
			blk := blocks[i]
			if !deleted.ContainsAll(blk.InterceptedRows) {
				continue
			}
			if !rules.CanReach(phys, blk.AdjustedPlacement(deleted), spawn) {
				continue
			}
			next := remaining &^ (1 << uint(i))
			if next == 0 {
				return true
			}
			if _, ok := visited[next]; ok {
				continue
			}
			visited[next] = struct{}{}
			if rec(abs.Merge(blk.Board), next) {
				return true
			}
		}
		return false
	}
	return rec(initial, 1<<uint(len(blocks))-1)
}
