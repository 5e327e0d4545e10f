package cli

import (
	"context"
	"time"
)

// solveLogHooks forwards solve events to the context logger at debug level.
// The root command registers it once per run.
type solveLogHooks struct{}

func (solveLogHooks) OnBuildStart(ctx context.Context, freeCells int) {
	loggerFromContext(ctx).Debugf("Building placement graph for %d free cells", freeCells)
}

func (solveLogHooks) OnBuildComplete(ctx context.Context, nodes int, d time.Duration, err error) {
	l := loggerFromContext(ctx)
	if err != nil {
		l.Debugf("Placement graph build failed after %s: %v", d.Round(time.Millisecond), err)
		return
	}
	l.Debugf("Built placement graph with %d nodes (%s)", nodes, d.Round(time.Millisecond))
}

func (solveLogHooks) OnSolveStart(ctx context.Context, kind string, orders int) {
	loggerFromContext(ctx).Debugf("Starting %s solve over %d orders", kind, orders)
}

func (solveLogHooks) OnSolveComplete(ctx context.Context, kind string, accepted uint64, d time.Duration, err error) {
	l := loggerFromContext(ctx)
	if err != nil {
		l.Debugf("%s solve failed after %s: %v", kind, d.Round(time.Millisecond), err)
		return
	}
	l.Debugf("Completed %s solve, accepted %d (%s)", kind, accepted, d.Round(time.Millisecond))
}

// cacheLogHooks forwards cache events to the context logger at debug level.
type cacheLogHooks struct{}

func (cacheLogHooks) OnCacheHit(ctx context.Context, keyType string) {
	loggerFromContext(ctx).Debugf("Cache hit for %s", keyType)
}

func (cacheLogHooks) OnCacheMiss(ctx context.Context, keyType string) {
	loggerFromContext(ctx).Debugf("Cache miss for %s", keyType)
}

func (cacheLogHooks) OnCacheSet(ctx context.Context, keyType string, size int) {
	loggerFromContext(ctx).Debugf("Cached %s result (%d bytes)", keyType, size)
}
