package board_test

import (
	"fmt"

	"github.com/minus3theta/bitris-commands/pkg/board"
)

func ExampleParse() {
	// Rows are given top-down; '/' and newlines both separate rows
	b, rows, err := board.Parse("####....##/####....##")
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println("Rows:", rows)
	fmt.Println(b.Format(rows))
	// Output:
	// Rows: 2
	// ####....##
	// ####....##
}

func ExampleBoard_ClearLines() {
	// The bottom row is full and clears; the row above drops into its place
	b, _, _ := board.Parse("#########./##########")

	after, cleared := b.ClearLines()
	fmt.Println("Cleared rows:", cleared.Count())
	fmt.Println(after.Format(1))
	// Output:
	// Cleared rows: 1
	// #########.
}

func ExampleNewClippedBoard() {
	b, rows, _ := board.Parse("####....##/####....##")

	clipped, err := board.NewClippedBoard(b, rows)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println("Height:", clipped.Height())
	fmt.Println("Free cells:", clipped.FreeCells())
	// Output:
	// Height: 2
	// Free cells: 8
}
