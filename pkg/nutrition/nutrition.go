// Package nutrition reduces an ingredient selection to nutrition totals and
// a price.
//
// Aggregation depends only on per-id counts and walks the catalog in
// declaration order, so any permutation of a selection yields bit-identical
// totals. Prices are integer cents.
package nutrition

import (
	"fmt"
	"slices"

	"github.com/matzehuels/foodstack/pkg/catalog"
	"github.com/matzehuels/foodstack/pkg/selection"
)

// Totals are summed nutrition values.
type Totals = catalog.Nutrition

// Price is a dish price split into the fixed base and the ingredient subtotal.
type Price struct {
	BaseCents       int64 `json:"base_cents"`
	IngredientCents int64 `json:"ingredient_cents"`
}

// Total returns the price in cents.
func (p Price) Total() int64 { return p.BaseCents + p.IngredientCents }

// String formats the total as dollars, e.g. "$9.99".
func (p Price) String() string { return FormatCents(p.Total()) }

// FormatCents formats cents as dollars.
func FormatCents(c int64) string {
	sign := ""
	if c < 0 {
		sign, c = "-", -c
	}
	return fmt.Sprintf("%s$%d.%02d", sign, c/100, c%100)
}

// Summary is the result of [Aggregator.Aggregate].
type Summary struct {
	Totals  Totals             `json:"totals"`
	Price   Price              `json:"price"`
	Counts  map[catalog.ID]int `json:"counts"`
	Unknown []catalog.ID       `json:"unknown,omitempty"`
}

// Add combines two summaries of the same dish. Totals, ingredient subtotals,
// and counts add up; the base price is kept from s.
func (s Summary) Add(o Summary) Summary {
	out := Summary{
		Totals: addTotals(s.Totals, o.Totals),
		Price: Price{
			BaseCents:       s.Price.BaseCents,
			IngredientCents: s.Price.IngredientCents + o.Price.IngredientCents,
		},
		Counts: make(map[catalog.ID]int, len(s.Counts)+len(o.Counts)),
	}
	for id, n := range s.Counts {
		out.Counts[id] += n
	}
	for id, n := range o.Counts {
		out.Counts[id] += n
	}
	for _, id := range append(slices.Clone(s.Unknown), o.Unknown...) {
		if !slices.Contains(out.Unknown, id) {
			out.Unknown = append(out.Unknown, id)
		}
	}
	slices.Sort(out.Unknown)
	return out
}

func addTotals(a, b Totals) Totals {
	return Totals{
		Calories: a.Calories + b.Calories,
		Protein:  a.Protein + b.Protein,
		Carbs:    a.Carbs + b.Carbs,
		Fat:      a.Fat + b.Fat,
		Fiber:    a.Fiber + b.Fiber,
		Sodium:   a.Sodium + b.Sodium,
	}
}

func scale(n catalog.Nutrition, k float64) Totals {
	return Totals{
		Calories: n.Calories * k,
		Protein:  n.Protein * k,
		Carbs:    n.Carbs * k,
		Fat:      n.Fat * k,
		Fiber:    n.Fiber * k,
		Sodium:   n.Sodium * k,
	}
}

// Aggregator computes summaries against one catalog.
type Aggregator struct {
	cat *catalog.Catalog
}

// New creates an aggregator for cat.
func New(cat *catalog.Catalog) *Aggregator {
	return &Aggregator{cat: cat}
}

// Aggregate sums count × per-unit nutrition and price over sel. Unknown ids
// contribute nothing and are listed in [Summary.Unknown].
func (a *Aggregator) Aggregate(sel []catalog.ID) Summary {
	counts := selection.Count(sel)
	s := Summary{
		Price:  Price{BaseCents: a.cat.BasePriceCents()},
		Counts: counts,
	}
	for _, ing := range a.cat.Ingredients() {
		n := counts[ing.ID]
		if n == 0 {
			continue
		}
		s.Totals = addTotals(s.Totals, scale(ing.Nutrition, float64(n)))
		s.Price.IngredientCents += int64(n) * ing.PriceCents
	}
	for id := range counts {
		if !a.cat.Contains(id) {
			s.Unknown = append(s.Unknown, id)
		}
	}
	slices.Sort(s.Unknown)
	return s
}
