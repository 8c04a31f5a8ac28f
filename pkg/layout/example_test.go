package layout_test

import (
	"fmt"

	"github.com/matzehuels/foodstack/pkg/catalog"
	"github.com/matzehuels/foodstack/pkg/layout"
)

func Example() {
	eng := layout.New(catalog.MustDefault("pizza"))
	l := eng.Layout([]catalog.ID{"pepperoni", "dough", "sauce", "cheese"})

	for _, p := range l.Pieces[:3] {
		fmt.Printf("%s y=%.2f\n", p.Key(), p.Position.Y)
	}
	fmt.Println("pieces:", l.Len())
	// Output:
	// dough-0 y=0.00
	// sauce-0 y=0.12
	// cheese-0 y=0.14
	// pieces: 9
}

func ExampleUnit() {
	u := layout.Unit("olives", 0, layout.ChannelAngle)
	fmt.Println(u >= 0 && u < 1)
	fmt.Println(u == layout.Unit("olives", 0, layout.ChannelAngle))
	// Output:
	// true
	// true
}
