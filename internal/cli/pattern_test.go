package cli

import (
	"testing"

	"github.com/minus3theta/bitris-commands/pkg/errors"
)

func TestRunPattern(t *testing.T) {
	tests := []struct {
		name      string
		expr      string
		sequences int
		counters  bool
	}{
		{name: "permutation", expr: "*p2", sequences: 0, counters: false},
		{name: "selection with counters", expr: "[SZT]p2", sequences: -1, counters: true},
		{name: "truncated sequence listing", expr: "T,[IO]!", sequences: 1, counters: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := runPattern(tt.expr, tt.sequences, tt.counters); err != nil {
				t.Errorf("runPattern(%q) = %v, want nil", tt.expr, err)
			}
		})
	}
}

func TestRunPatternErrors(t *testing.T) {
	tests := []struct {
		name string
		expr string
		code errors.Code
	}{
		{name: "empty expression", expr: "", code: errors.ErrCodeInvalidPattern},
		{name: "illegal character", expr: "%%", code: errors.ErrCodeInvalidPattern},
		{name: "unterminated selection", expr: "[SZ", code: errors.ErrCodeInvalidPattern},
		{name: "overlong permutation", expr: "*p9", code: errors.ErrCodeContainsInvalidPermutation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := runPattern(tt.expr, 0, false)
			if err == nil {
				t.Fatalf("runPattern(%q) = nil, want error", tt.expr)
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("runPattern(%q) error code = %v, want %v", tt.expr, err, tt.code)
			}
		})
	}
}

func TestPatternCommandArgs(t *testing.T) {
	cmd := (&CLI{}).patternCommand()

	if err := cmd.Args(cmd, []string{"*p4"}); err != nil {
		t.Errorf("Args(one expression) = %v, want nil", err)
	}
	if err := cmd.Args(cmd, nil); err == nil {
		t.Error("Args(no expression) = nil, want error")
	}
	if err := cmd.Args(cmd, []string{"*p4", "*p2"}); err == nil {
		t.Error("Args(two expressions) = nil, want error")
	}
}
