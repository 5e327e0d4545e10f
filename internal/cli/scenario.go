package cli

import (
	stderrors "errors"
	"os"
	"runtime"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/minus3theta/bitris-commands/pkg/board"
	"github.com/minus3theta/bitris-commands/pkg/cache"
	"github.com/minus3theta/bitris-commands/pkg/errors"
	"github.com/minus3theta/bitris-commands/pkg/pattern"
	"github.com/minus3theta/bitris-commands/pkg/pcpossible"
	"github.com/minus3theta/bitris-commands/pkg/srs"
)

// =============================================================================
// Scenario
// =============================================================================

// Scenario describes one solve: the board, the shape pattern, the movement
// rules, and runtime settings. Scenarios load from TOML files; command flags
// overlay individual fields afterwards.
//
// Example scenario file:
//
//	[board]
//	text = "####....##/###.....##/##......##/###.....##"
//
//	[pattern]
//	expression = "*p7"
//
//	[rules]
//	drop = "softdrop"
//	hold = true
//
//	[run]
//	workers = 4
type Scenario struct {
	Board   BoardSection   `toml:"board"`
	Pattern PatternSection `toml:"pattern"`
	Rules   RulesSection   `toml:"rules"`
	Run     RunSection     `toml:"run"`
}

// BoardSection describes the starting field.
type BoardSection struct {
	// Text draws the board row by row, top row first. Rows separate with
	// '/' or newlines; '#' marks a filled cell, '.' or '_' an empty one.
	Text string `toml:"text"`

	// Height is the perfect clear height. Zero derives it from Text.
	Height int `toml:"height"`
}

// PatternSection describes the shape supply.
type PatternSection struct {
	// Expression is a pattern such as "*p7", "T,*!" or "[SZ]p2,*p5".
	Expression string `toml:"expression"`
}

// RulesSection describes the movement rules.
type RulesSection struct {
	// Drop is "softdrop" or "harddrop". Empty means softdrop.
	Drop string `toml:"drop"`

	// Hold allows keeping one shape aside during the possible solve.
	Hold bool `toml:"hold"`
}

// RunSection describes runtime settings.
type RunSection struct {
	// Workers is the number of solver goroutines for bulk runs.
	Workers int `toml:"workers"`
}

// DefaultScenario returns a scenario with softdrop rules, hold enabled, and
// one worker per CPU.
func DefaultScenario() Scenario {
	return Scenario{
		Rules: RulesSection{Drop: srs.Softdrop.String(), Hold: true},
		Run:   RunSection{Workers: runtime.NumCPU()},
	}
}

// LoadScenario reads the TOML scenario at path, decoded on top of the
// defaults so omitted keys keep their default values.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "scenario file %s not found", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidScenario, err, "read scenario %s", path)
	}
	sc := DefaultScenario()
	if err := toml.Unmarshal(data, &sc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScenario, err, "parse scenario %s", path)
	}
	return &sc, nil
}

// Validate checks the scenario fields without running the solvers.
func (s *Scenario) Validate() error {
	if err := errors.ValidateBoardText(s.Board.Text, board.Width); err != nil {
		return err
	}
	if s.Board.Height != 0 {
		if err := errors.ValidateBoardHeight(s.Board.Height); err != nil {
			return err
		}
	}
	if s.Pattern.Expression != "" {
		if err := errors.ValidatePatternText(s.Pattern.Expression); err != nil {
			return err
		}
	}
	if _, err := parseDrop(s.Rules.Drop); err != nil {
		return err
	}
	if s.Run.Workers < 0 {
		return errors.New(errors.ErrCodeInvalidScenario, "workers cannot be negative, got %d", s.Run.Workers)
	}
	return nil
}

// ClippedBoard parses the board text and clips it at the scenario height.
func (s *Scenario) ClippedBoard() (board.ClippedBoard, error) {
	b, rows, err := board.Parse(s.Board.Text)
	if err != nil {
		return board.ClippedBoard{}, errors.Wrap(errors.ErrCodeInvalidBoard, err, "parse board text")
	}
	height := s.Board.Height
	if height == 0 {
		height = rows
	}
	cb, err := board.NewClippedBoard(b, height)
	switch {
	case stderrors.Is(err, board.ErrHeightOutOfRange):
		return board.ClippedBoard{}, errors.Wrap(errors.ErrCodeBoardHeightOutOfRange, err, "clip board at height %d", height)
	case stderrors.Is(err, board.ErrSpacesAboveClip):
		return board.ClippedBoard{}, errors.Wrap(errors.ErrCodeUnexpectedBoardSpaces, err, "clip board at height %d", height)
	case err != nil:
		return board.ClippedBoard{}, errors.Wrap(errors.ErrCodeInvalidBoard, err, "clip board at height %d", height)
	}
	return cb, nil
}

// MoveRules resolves the drop name into movement rules.
func (s *Scenario) MoveRules() (srs.MoveRules, error) {
	drop, err := parseDrop(s.Rules.Drop)
	if err != nil {
		return srs.MoveRules{}, err
	}
	return srs.MoveRules{Drop: drop}, nil
}

// ParsedPattern parses the pattern expression. The expression is required.
func (s *Scenario) ParsedPattern() (*pattern.Pattern, error) {
	if s.Pattern.Expression == "" {
		return nil, errors.New(errors.ErrCodeInvalidScenario, "pattern expression is required")
	}
	return pattern.Parse(s.Pattern.Expression)
}

// Binder assembles a bulk executor binder for the possible solve.
func (s *Scenario) Binder() (*pcpossible.ExecutorBinder, error) {
	clipped, err := s.ClippedBoard()
	if err != nil {
		return nil, err
	}
	rules, err := s.MoveRules()
	if err != nil {
		return nil, err
	}
	pat, err := s.ParsedPattern()
	if err != nil {
		return nil, err
	}
	return &pcpossible.ExecutorBinder{
		MoveRules:    rules,
		ClippedBoard: clipped,
		Pattern:      pat,
		AllowsHold:   s.Rules.Hold,
		Workers:      s.Run.Workers,
	}, nil
}

// KeyOpts returns the cache key options for the scenario. The drop name is
// normalized so equivalent spellings share keys. Call after Validate.
func (s *Scenario) KeyOpts() cache.SolveKeyOpts {
	drop, _ := parseDrop(s.Rules.Drop)
	return cache.SolveKeyOpts{
		Pattern: s.Pattern.Expression,
		Drop:    drop.String(),
		Hold:    s.Rules.Hold,
	}
}

// parseDrop maps a drop name to the drop kind. Empty means softdrop.
func parseDrop(name string) (srs.Drop, error) {
	switch name {
	case "", srs.Softdrop.String():
		return srs.Softdrop, nil
	case srs.Harddrop.String():
		return srs.Harddrop, nil
	}
	return srs.Softdrop, errors.New(errors.ErrCodeInvalidRules, "unknown drop kind %q (expected softdrop or harddrop)", name)
}

// =============================================================================
// Scenario Flags
// =============================================================================

// scenarioFlags holds the flag values commands overlay onto a scenario.
// Only flags the command registered take part in the overlay.
type scenarioFlags struct {
	file    string
	board   string
	height  int
	pattern string
	drop    string
	hold    bool
	workers int
}

// registerBoard adds the board selection flags to cmd.
func (f *scenarioFlags) registerBoard(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "TOML scenario file")
	cmd.Flags().StringVarP(&f.board, "board", "b", "", `board rows, top first, '/' separated (e.g. "####....##/####....##")`)
	cmd.Flags().IntVar(&f.height, "height", 0, "perfect clear height (default: rows in the board text)")
}

// registerSolve adds the pattern and movement rule flags to cmd.
func (f *scenarioFlags) registerSolve(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.pattern, "pattern", "p", "", `pattern expression (e.g. "*p7", "T,*!")`)
	cmd.Flags().StringVar(&f.drop, "drop", srs.Softdrop.String(), "drop kind: softdrop or harddrop")
}

// registerBulk adds the bulk run flags to cmd.
func (f *scenarioFlags) registerBulk(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.hold, "hold", true, "allow holding a shape")
	cmd.Flags().IntVar(&f.workers, "workers", 0, "solver goroutines (default: number of CPUs)")
}

// resolve produces the effective scenario: defaults, then the scenario file,
// then every changed flag, validated at the end.
func (f *scenarioFlags) resolve(cmd *cobra.Command) (*Scenario, error) {
	sc := DefaultScenario()
	if f.file != "" {
		loaded, err := LoadScenario(f.file)
		if err != nil {
			return nil, err
		}
		sc = *loaded
	}

	flags := cmd.Flags()
	if flags.Changed("board") {
		sc.Board.Text = f.board
	}
	if flags.Changed("height") {
		sc.Board.Height = f.height
	}
	if flags.Changed("pattern") {
		sc.Pattern.Expression = f.pattern
	}
	if flags.Changed("drop") {
		sc.Rules.Drop = f.drop
	}
	if flags.Changed("hold") {
		sc.Rules.Hold = f.hold
	}
	if flags.Changed("workers") {
		sc.Run.Workers = f.workers
	}

	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}
