// Package pkg provides the core libraries for bitris perfect clear analysis.
//
// # Overview
//
// bitris answers feasibility questions about perfect clears in falling-block
// puzzles: which piece combinations can tile the remaining space of a board,
// and which draw orders can actually reach a perfect clear under real
// movement rules. The pkg directory is organized into three main areas:
//
//  1. Domain types ([pieces], [board], [srs], [placement], [pattern])
//  2. Solvers ([allpcs], [pcpossible])
//  3. Infrastructure ([cache], [errors], [observability], [buildinfo])
//
// # Architecture
//
// The typical data flow through a solve:
//
//	Board text + pattern expression
//	         ↓
//	    [board] / [pattern] packages (parse and validate)
//	         ↓
//	    [allpcs] package (placement graph over the free cells)
//	         ↓
//	    [allpcs.Aggregator] or [pcpossible.BulkExecutor] (reachability)
//	         ↓
//	    combination counts / accepted orders
//
// # Quick Start
//
// Count the piece combinations that perfectly clear a board:
//
//	import (
//	    "github.com/minus3theta/bitris-commands/pkg/allpcs"
//	    "github.com/minus3theta/bitris-commands/pkg/board"
//	    "github.com/minus3theta/bitris-commands/pkg/srs"
//	)
//
//	// 1. Describe the field
//	b := board.MustParse("####....##\n###.....##\n##......##\n###.....##")
//	clipped := board.MustClippedBoard(b, 4)
//
//	// 2. Build the placement graph
//	nodes, _ := allpcs.Build(clipped)
//
//	// 3. Count combinations with a reachable placement sequence
//	agg := allpcs.NewAggregator(clipped, nodes, srs.DefaultRules(), srs.Spawn(clipped.Height()))
//	count := agg.Aggregate()
//
// Check which draw orders of a pattern can reach a perfect clear:
//
//	binder := pcpossible.NewBinder()
//	binder.ClippedBoard = clipped
//	binder.Pattern = pattern.MustParse("*p7")
//	exec, _ := binder.TryBind()
//	results, _ := exec.Execute(ctx)
//
// # Main Packages
//
// ## Domain Types
//
// [pieces] - The seven shapes, shape counters, sequences, and orders. Counters
// pack multiset counts into a single integer so solvers can use them as map
// keys and array indices.
//
// [board] - Bitboard representation of the field with one 64-bit column per
// x coordinate, plus the clipped view solvers operate on.
//
// [srs] - Rotation system data and movement rules: spawn positions, kick
// tables, and softdrop/harddrop reachability.
//
// [placement] - Piece forms and their placements on a board, including the
// canonical orientation folding shared by both solvers.
//
// [pattern] - The pattern expression language ("*p7", "T,*!", "[SZ]p2")
// describing which shape sequences a scenario supplies.
//
// ## Solvers
//
// [allpcs] - Builds the placement graph over the free cells and aggregates
// every perfect clear tiling, with reachability filtering and DOT/SVG export.
//
// [pcpossible] - Bulk order feasibility: binds a board, pattern, and movement
// rules, then checks every supplied draw order for a reachable perfect clear
// across a worker pool.
//
// ## Infrastructure
//
// [cache] - Solve result caching with file, Redis, and null backends, shared
// key derivation, and retry with backoff for transient backend failures.
//
// [errors] - Coded errors carried across package boundaries, with user-facing
// messages and input validators.
//
// [observability] - Process-wide solve, cache, and HTTP hooks with no-op
// defaults. The CLI installs logging hooks; servers feed request hooks.
//
// [buildinfo] - Version metadata stamped at build time.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...              # All tests
//	go test ./pkg/allpcs/...       # Specific package
//	go test -short ./pkg/...       # Skip the full-bag solves
//
// [pieces]: https://pkg.go.dev/github.com/minus3theta/bitris-commands/pkg/pieces
// [board]: https://pkg.go.dev/github.com/minus3theta/bitris-commands/pkg/board
// [srs]: https://pkg.go.dev/github.com/minus3theta/bitris-commands/pkg/srs
// [placement]: https://pkg.go.dev/github.com/minus3theta/bitris-commands/pkg/placement
// [pattern]: https://pkg.go.dev/github.com/minus3theta/bitris-commands/pkg/pattern
// [allpcs]: https://pkg.go.dev/github.com/minus3theta/bitris-commands/pkg/allpcs
// [allpcs.Aggregator]: https://pkg.go.dev/github.com/minus3theta/bitris-commands/pkg/allpcs#Aggregator
// [pcpossible]: https://pkg.go.dev/github.com/minus3theta/bitris-commands/pkg/pcpossible
// [pcpossible.BulkExecutor]: https://pkg.go.dev/github.com/minus3theta/bitris-commands/pkg/pcpossible#BulkExecutor
// [cache]: https://pkg.go.dev/github.com/minus3theta/bitris-commands/pkg/cache
// [errors]: https://pkg.go.dev/github.com/minus3theta/bitris-commands/pkg/errors
// [observability]: https://pkg.go.dev/github.com/minus3theta/bitris-commands/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/minus3theta/bitris-commands/pkg/buildinfo
package pkg
