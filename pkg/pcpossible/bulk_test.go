package pcpossible

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/minus3theta/bitris-commands/pkg/board"
	"github.com/minus3theta/bitris-commands/pkg/pattern"
	"github.com/minus3theta/bitris-commands/pkg/pieces"
)

func bulkFor(t *testing.T, text string, height int, expr string, allowsHold bool, workers int) *BulkExecutor {
	t.Helper()
	b := NewBinder()
	b.ClippedBoard = board.MustClippedBoard(board.MustParse(text), height)
	b.Pattern = pattern.MustParse(expr)
	b.AllowsHold = allowsHold
	b.Workers = workers
	exec, err := b.TryBind()
	if err != nil {
		t.Fatalf("TryBind() error = %v", err)
	}
	return exec
}

func TestBulkExecuteOpenWellAcceptsEveryBag(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping full-bag solve in short mode")
	}

	// Six columns of a four-row well stay open; any draw order of the seven
	// shapes can finish it when holding is allowed.
	exec := bulkFor(t, "####......\n####......\n####......\n####......", 4, "*!", true, 8)

	res, err := exec.Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if got := res.Len(); got != 5040 {
		t.Fatalf("Len() = %d, want 5040", got)
	}
	if got := res.AcceptedCount(); got != 5040 {
		t.Errorf("AcceptedCount() = %d, want 5040", got)
	}
}

func TestBulkExecuteUnevenWellCounts(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping full permutation solve in short mode")
	}

	exec := bulkFor(t, "####....##\n###.....##\n##......##\n###.....##", 4, "*p6", true, 8)

	res, err := exec.Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if got := res.Len(); got != 5040 {
		t.Fatalf("Len() = %d, want 5040", got)
	}
	if got := res.AcceptedCount(); got != 4088 {
		t.Errorf("AcceptedCount() = %d, want 4088", got)
	}
}

func TestBulkExecuteDeduplicatesDenotedOrders(t *testing.T) {
	// The counter holds two bars and two squares, so the twelve denoted
	// two-shape draws collapse to four distinct orders.
	exec := bulkFor(t, "####....##\n####....##", 2, "[OOII]p2", false, 1)

	res, err := exec.Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	wantOrders := []pieces.ShapeOrder{
		{pieces.ShapeI, pieces.ShapeI},
		{pieces.ShapeI, pieces.ShapeO},
		{pieces.ShapeO, pieces.ShapeI},
		{pieces.ShapeO, pieces.ShapeO},
	}
	if diff := cmp.Diff(wantOrders, res.Orders()); diff != "" {
		t.Fatalf("Orders() mismatch (-want +got):\n%s", diff)
	}
	if got := res.AcceptedCount(); got != 2 {
		t.Errorf("AcceptedCount() = %d, want 2", got)
	}

	tests := []struct {
		name         string
		order        pieces.ShapeOrder
		wantAccepted bool
		wantKnown    bool
	}{
		{name: "two bars", order: pieces.ShapeOrder{pieces.ShapeI, pieces.ShapeI}, wantAccepted: true, wantKnown: true},
		{name: "two squares", order: pieces.ShapeOrder{pieces.ShapeO, pieces.ShapeO}, wantAccepted: true, wantKnown: true},
		{name: "bar then square", order: pieces.ShapeOrder{pieces.ShapeI, pieces.ShapeO}, wantAccepted: false, wantKnown: true},
		{name: "not denoted", order: pieces.ShapeOrder{pieces.ShapeT, pieces.ShapeT}, wantAccepted: false, wantKnown: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accepted, known := res.Accepted(tt.order)
			if accepted != tt.wantAccepted || known != tt.wantKnown {
				t.Errorf("Accepted(%v) = (%v, %v), want (%v, %v)",
					tt.order, accepted, known, tt.wantAccepted, tt.wantKnown)
			}
		})
	}
}

func TestBulkExecuteWorkerCountDoesNotChangeResults(t *testing.T) {
	run := func(workers int) *Results {
		exec := bulkFor(t, "####....##\n####....##", 2, "*p2", true, workers)
		res, err := exec.Execute(context.Background())
		if err != nil {
			t.Fatalf("Execute() with %d workers error = %v", workers, err)
		}
		return res
	}

	sequential := run(1)
	parallel := run(4)

	if sequential.Len() != parallel.Len() {
		t.Fatalf("Len() = %d with 1 worker, %d with 4", sequential.Len(), parallel.Len())
	}
	if sequential.AcceptedCount() != parallel.AcceptedCount() {
		t.Errorf("AcceptedCount() = %d with 1 worker, %d with 4",
			sequential.AcceptedCount(), parallel.AcceptedCount())
	}
	for _, order := range sequential.Orders() {
		seq, _ := sequential.Accepted(order)
		par, _ := parallel.Accepted(order)
		if seq != par {
			t.Errorf("Accepted(%v) = %v with 1 worker, %v with 4", order, seq, par)
		}
	}
}

func TestBulkExecuteReportsProgress(t *testing.T) {
	exec := bulkFor(t, "####....##\n####....##", 2, "*p2", true, 1)

	var calls [][2]int
	exec.Progress = func(done, total int) {
		calls = append(calls, [2]int{done, total})
	}

	res, err := exec.Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if len(calls) != res.Len() {
		t.Fatalf("Progress called %d times, want %d", len(calls), res.Len())
	}
	for i, call := range calls {
		if call[0] != i+1 {
			t.Errorf("call %d reported done = %d, want %d", i, call[0], i+1)
		}
		if call[1] != res.Len() {
			t.Errorf("call %d reported total = %d, want %d", i, call[1], res.Len())
		}
	}
}

func TestBulkExecuteStopsOnCanceledContext(t *testing.T) {
	exec := bulkFor(t, "####....##\n####....##", 2, "*p2", true, 2)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := exec.Execute(ctx)
	if err == nil {
		t.Fatal("Execute() succeeded on a canceled context, want error")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Execute() error = %v, want context.Canceled", err)
	}
	if res != nil {
		t.Errorf("Execute() results = %v, want nil", res)
	}
}
