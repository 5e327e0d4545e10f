package board

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLinesBasics(t *testing.T) {
	l := NewLines(0, 2, 3)

	if !l.Test(2) || l.Test(1) {
		t.Errorf("Test: got rows %v", l.Rows())
	}
	if got := l.Count(); got != 3 {
		t.Errorf("Count() = %d, want 3", got)
	}
	if got := l.Lowest(); got != 0 {
		t.Errorf("Lowest() = %d, want 0", got)
	}
	if got := l.Highest(); got != 3 {
		t.Errorf("Highest() = %d, want 3", got)
	}
	if diff := cmp.Diff([]int{0, 2, 3}, l.Rows()); diff != "" {
		t.Errorf("Rows() mismatch (-want +got):\n%s", diff)
	}
	if got := l.String(); got != "{0,2,3}" {
		t.Errorf("String() = %q, want %q", got, "{0,2,3}")
	}
}

func TestLinesOverlapsAndContains(t *testing.T) {
	tests := []struct {
		desc     string
		a, b     Lines
		overlaps bool
		contains bool
	}{
		{desc: "disjoint", a: NewLines(0, 1), b: NewLines(2, 3), overlaps: false, contains: false},
		{desc: "subset", a: NewLines(0, 1, 2), b: NewLines(1), overlaps: true, contains: true},
		{desc: "partial overlap", a: NewLines(0, 1), b: NewLines(1, 2), overlaps: true, contains: false},
		{desc: "empty other", a: NewLines(5), b: BlankLines(), overlaps: false, contains: true},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.overlaps {
				t.Errorf("Overlaps() = %v, want %v", got, tt.overlaps)
			}
			if got := tt.a.ContainsAll(tt.b); got != tt.contains {
				t.Errorf("ContainsAll() = %v, want %v", got, tt.contains)
			}
		})
	}
}

func TestFilledUpToLines(t *testing.T) {
	if got := FilledUpToLines(4); got != NewLines(0, 1, 2, 3) {
		t.Errorf("FilledUpToLines(4) = %v", got)
	}
	if got := FilledUpToLines(0); got != 0 {
		t.Errorf("FilledUpToLines(0) = %v, want empty", got)
	}
	if got := FilledUpToLines(64); got != ^Lines(0) {
		t.Errorf("FilledUpToLines(64) = %v, want all rows", got)
	}
}

func TestLinesBetween(t *testing.T) {
	if got := LinesBetween(2, 4); got != NewLines(2, 3, 4) {
		t.Errorf("LinesBetween(2, 4) = %v", got)
	}
	if got := LinesBetween(3, 2); got != 0 {
		t.Errorf("LinesBetween(3, 2) = %v, want empty", got)
	}
}

func TestCountBelow(t *testing.T) {
	l := NewLines(0, 2, 5)
	tests := []struct {
		y    int
		want int
	}{
		{0, 0},
		{1, 1},
		{2, 1},
		{3, 2},
		{6, 3},
	}
	for _, tt := range tests {
		if got := l.CountBelow(tt.y); got != tt.want {
			t.Errorf("CountBelow(%d) = %d, want %d", tt.y, got, tt.want)
		}
	}
}

func TestEmptyLines(t *testing.T) {
	l := BlankLines()
	if got := l.Lowest(); got != -1 {
		t.Errorf("Lowest() = %d, want -1", got)
	}
	if got := l.Highest(); got != -1 {
		t.Errorf("Highest() = %d, want -1", got)
	}
}
