package nutrition

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/foodstack/pkg/catalog"
	"github.com/matzehuels/foodstack/pkg/selection"
)

func aggregator(t *testing.T, dish string) *Aggregator {
	t.Helper()
	cat, err := catalog.Default(dish)
	require.NoError(t, err)
	return New(cat)
}

func TestAggregatePizzaScenario(t *testing.T) {
	s := aggregator(t, "pizza").Aggregate(selection.Of("dough", "sauce", "cheese", "pepperoni"))

	assert.Equal(t, Totals{
		Calories: 520,
		Protein:  23,
		Carbs:    59,
		Fat:      22,
		Fiber:    4,
		Sodium:   1400,
	}, s.Totals)
	assert.Equal(t, int64(999), s.Price.BaseCents)
	assert.Equal(t, int64(300), s.Price.IngredientCents)
	assert.Equal(t, "$12.99", s.Price.String())
	assert.Empty(t, s.Unknown)
	assert.Equal(t, []Badge{HighProtein}, Badges(s.Totals))
}

func TestAggregateEmpty(t *testing.T) {
	for _, dish := range catalog.Dishes() {
		t.Run(dish, func(t *testing.T) {
			a := aggregator(t, dish)
			s := a.Aggregate(nil)
			assert.Equal(t, Totals{}, s.Totals)
			assert.Zero(t, s.Price.IngredientCents)
			assert.Equal(t, a.cat.BasePriceCents(), s.Price.Total())
			assert.Empty(t, s.Counts)
			assert.Equal(t, []Badge{LowSodium}, Badges(s.Totals))
		})
	}
}

func TestAggregatePermutationInvariant(t *testing.T) {
	a := aggregator(t, "burger")
	sel := selection.Of("bun", "meat", "cheese", "lettuce", "tomato", "onion", "pickle", "sauce", "meat", "bun", "sauce")
	want := a.Aggregate(sel)

	rng := rand.New(rand.NewPCG(42, 42^0xdeadbeef))
	for range 20 {
		perm := append(selection.Selection(nil), sel...)
		rng.Shuffle(len(perm), func(i, j int) { perm[i], perm[j] = perm[j], perm[i] })
		assert.Equal(t, want, a.Aggregate(perm), "selection %v", perm)
	}
}

func TestAggregateAdditive(t *testing.T) {
	a := aggregator(t, "pizza")
	tests := []struct {
		name string
		x, y selection.Selection
	}{
		{"disjoint", selection.Of("dough", "sauce"), selection.Of("cheese", "olives")},
		{"overlapping", selection.Of("pepperoni", "basil"), selection.Of("pepperoni", "pepperoni")},
		{"empty left", nil, selection.Of("mushrooms")},
		{"empty both", nil, nil},
		{"unknown", selection.Of("pineapple"), selection.Of("dough", "anchovy")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			joined := append(append(selection.Selection(nil), tt.x...), tt.y...)
			assert.Equal(t, a.Aggregate(joined), a.Aggregate(tt.x).Add(a.Aggregate(tt.y)))
		})
	}
}

func TestAggregateUnknown(t *testing.T) {
	a := aggregator(t, "pizza")
	s := a.Aggregate(selection.Of("pineapple", "dough", "pineapple", "anchovy"))

	assert.Equal(t, []catalog.ID{"anchovy", "pineapple"}, s.Unknown)
	assert.Equal(t, 2, s.Counts["pineapple"])
	assert.Equal(t, a.Aggregate(selection.Of("dough")).Totals, s.Totals)
	assert.Equal(t, int64(999), s.Price.Total())
}

func TestAggregateCountsScale(t *testing.T) {
	a := aggregator(t, "burger")
	one := a.Aggregate(selection.Of("meat"))
	three := a.Aggregate(selection.Of("meat", "meat", "meat"))

	assert.Equal(t, 3*one.Totals.Calories, three.Totals.Calories)
	assert.Equal(t, 3*one.Totals.Protein, three.Totals.Protein)
	assert.Equal(t, 3*one.Price.IngredientCents, three.Price.IngredientCents)
}

func TestFormatCents(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{0, "$0.00"},
		{5, "$0.05"},
		{999, "$9.99"},
		{1000, "$10.00"},
		{123456, "$1234.56"},
		{-250, "-$2.50"},
	}
	for _, tt := range tests {
		if got := FormatCents(tt.cents); got != tt.want {
			t.Errorf("FormatCents(%d) = %q, want %q", tt.cents, got, tt.want)
		}
	}
}

func TestBadges(t *testing.T) {
	tests := []struct {
		name   string
		totals Totals
		want   []Badge
	}{
		{"empty", Totals{}, []Badge{LowSodium}},
		{"all", Totals{Calories: 100, Protein: 15, Fiber: 5, Sodium: 599}, []Badge{HighProtein, HighFiber, LowSodium}},
		{"none", Totals{Calories: 900, Protein: 14.9, Fiber: 4.9, Sodium: 600}, nil},
		{"protein only", Totals{Protein: 30, Sodium: 2000}, []Badge{HighProtein}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Badges(tt.totals))
		})
	}
}
