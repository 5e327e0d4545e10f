// Package cli implements the bitris command-line interface.
//
// This package provides commands for counting perfect clear piece
// combinations, checking which shape orders from a pattern can reach a
// perfect clear, expanding pattern expressions, and serving the same
// operations over a JSON HTTP API. The CLI is built using cobra and supports
// leveled logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - count: Count distinct perfect clear piece combinations for a board
//   - possible: Check which orders from a pattern can reach a perfect clear
//   - pattern: Expand and inspect a pattern expression
//   - serve: Expose count and possible as a JSON HTTP API
//   - cache: Manage the solve result cache
//
// # Logging
//
// All commands support --log-level and --quiet. Loggers are passed through
// context.Context to allow structured progress tracking.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/minus3theta/bitris-commands/pkg/buildinfo"
	"github.com/minus3theta/bitris-commands/pkg/cache"
	"github.com/minus3theta/bitris-commands/pkg/observability"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "bitris"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	logLevel     string
	quiet        bool
	noCache      bool
	cacheDirFlag string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
// The persistent pre-run applies the logging flags, attaches the logger to the
// command context, and registers the debug-level observability hooks.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Bitris answers perfect clear questions about falling-block boards",
		Long:         `Bitris counts perfect clear piece combinations and checks which shape orders can reach a perfect clear, following SRS movement with softdrop or harddrop rules.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := parseLevel(c.logLevel)
			if err != nil {
				return err
			}
			if c.quiet {
				level = log.ErrorLevel
			}
			c.SetLogLevel(level)
			observability.SetSolveHooks(solveLogHooks{})
			observability.SetCacheHooks(cacheLogHooks{})
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	pf := root.PersistentFlags()
	pf.StringVar(&c.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	pf.BoolVarP(&c.quiet, "quiet", "q", false, "only log errors")
	pf.BoolVar(&c.noCache, "no-cache", false, "disable result caching")
	pf.StringVar(&c.cacheDirFlag, "cache-dir", "", "cache directory (default ~/.cache/"+appName+")")

	// Register all subcommands
	root.AddCommand(c.countCommand())
	root.AddCommand(c.possibleCommand())
	root.AddCommand(c.patternCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Cache Factory
// =============================================================================

// newCache builds the cache backend selected by the persistent flags: a null
// cache under --no-cache, otherwise a file cache rooted at --cache-dir or the
// XDG default.
func (c *CLI) newCache() (cache.Cache, error) {
	if c.noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := c.resolveCacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// resolveCacheDir returns the effective cache directory, honoring --cache-dir.
func (c *CLI) resolveCacheDir() (string, error) {
	if c.cacheDirFlag != "" {
		return c.cacheDirFlag, nil
	}
	return cacheDir()
}

// cacheDir returns the cache directory using XDG standard (~/.cache/bitris/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
