package pieces_test

import (
	"fmt"

	"github.com/minus3theta/bitris-commands/pkg/pieces"
)

func ExampleShapeCounter() {
	bag := pieces.OneOfEach()
	used := pieces.NewShapeCounter(pieces.ShapeT, pieces.ShapeI)

	fmt.Println("Bag:", bag)
	fmt.Println("Used:", used)
	fmt.Println("Bag covers used:", bag.ContainsAll(used))
	fmt.Println("Used covers bag:", used.ContainsAll(bag))
	// Output:
	// Bag: TIOLJSZ
	// Used: TI
	// Bag covers used: true
	// Used covers bag: false
}

func ExampleShapeOrder() {
	order := pieces.ShapeOrder{pieces.ShapeS, pieces.ShapeZ, pieces.ShapeT}

	fmt.Println("Order:", order)
	fmt.Println("Multiset:", order.Counter())
	// Output:
	// Order: SZT
	// Multiset: TSZ
}
