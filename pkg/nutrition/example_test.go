package nutrition_test

import (
	"fmt"

	"github.com/matzehuels/foodstack/pkg/catalog"
	"github.com/matzehuels/foodstack/pkg/nutrition"
)

func ExampleAggregator_Aggregate() {
	agg := nutrition.New(catalog.MustDefault("pizza"))
	s := agg.Aggregate([]catalog.ID{"dough", "sauce", "cheese", "pepperoni"})

	fmt.Printf("%.0f kcal, %.0f g protein\n", s.Totals.Calories, s.Totals.Protein)
	fmt.Println(s.Price)
	fmt.Println(nutrition.Badges(s.Totals))
	// Output:
	// 520 kcal, 23 g protein
	// $12.99
	// [High Protein]
}
