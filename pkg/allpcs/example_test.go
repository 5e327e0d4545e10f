package allpcs_test

import (
	"fmt"

	"github.com/minus3theta/bitris-commands/pkg/allpcs"
	"github.com/minus3theta/bitris-commands/pkg/board"
	"github.com/minus3theta/bitris-commands/pkg/pieces"
	"github.com/minus3theta/bitris-commands/pkg/srs"
)

func Example() {
	// A two-row board with a 2x4 well: exactly two whole pieces fit
	b, rows, _ := board.Parse("####....##/####....##")
	clipped, _ := board.NewClippedBoard(b, rows)

	nodes, err := allpcs.Build(clipped)
	if err != nil {
		fmt.Println(err)
		return
	}

	agg := allpcs.NewAggregator(clipped, nodes, srs.DefaultRules(), srs.Spawn(clipped.Height()))
	fmt.Println("Combinations:", agg.Aggregate())
	// Output:
	// Combinations: 4
}

func ExampleAggregator_AggregateWithShapeCounters() {
	b, rows, _ := board.Parse("####....##/####....##")
	clipped, _ := board.NewClippedBoard(b, rows)
	nodes, _ := allpcs.Build(clipped)
	agg := allpcs.NewAggregator(clipped, nodes, srs.DefaultRules(), srs.Spawn(clipped.Height()))

	// Restrict the count to supplies of two squares or two bars
	counters := []pieces.ShapeCounter{
		pieces.NewShapeCounter(pieces.ShapeO, pieces.ShapeO),
		pieces.NewShapeCounter(pieces.ShapeI, pieces.ShapeI),
	}
	fmt.Println("Combinations:", agg.AggregateWithShapeCounters(counters))
	// Output:
	// Combinations: 2
}
