package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/foodstack/pkg/catalog"
	"github.com/matzehuels/foodstack/pkg/errors"
	"github.com/matzehuels/foodstack/pkg/nutrition"
)

// nutritionCommand creates the nutrition command for totals and price.
func (c *CLI) nutritionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "nutrition [ingredients...]",
		Aliases: []string{"price"},
		Short:   "Sum nutrition and price for a selection",
		Long: `Sum nutrition and price for a selection of ingredients.

Each occurrence of an ingredient counts as one unit. The price is the dish's
base price plus every unit's price. Unknown ingredients contribute nothing and
are listed separately.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runNutrition(cmd.Context(), args)
		},
	}

	return cmd
}

// runNutrition aggregates the selection and prints the summary.
func (c *CLI) runNutrition(ctx context.Context, args []string) error {
	opts, err := c.options(args)
	if err != nil {
		return err
	}
	if err := opts.ValidateForLayout(); err != nil {
		return err
	}

	runner := c.newRunner()
	cat, err := runner.LoadCatalog(ctx, opts)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	sum := runner.Aggregate(ctx, cat, opts)
	printSummary(c.out, cat, sum)
	return nil
}

// printSummary prints the per-ingredient breakdown, totals, badges, and price.
func printSummary(w io.Writer, cat *catalog.Catalog, sum nutrition.Summary) {
	t := newTable("Ingredient", "Units", "kcal", "Protein", "Carbs", "Fat", "Fiber", "Sodium", "Price")
	for _, ing := range cat.Ingredients() {
		n := sum.Counts[ing.ID]
		if n == 0 {
			continue
		}
		k := float64(n)
		t.Row(
			ing.DisplayName(),
			fmt.Sprint(n),
			fmt.Sprintf("%.0f", k*ing.Nutrition.Calories),
			fmt.Sprintf("%.1f g", k*ing.Nutrition.Protein),
			fmt.Sprintf("%.1f g", k*ing.Nutrition.Carbs),
			fmt.Sprintf("%.1f g", k*ing.Nutrition.Fat),
			fmt.Sprintf("%.1f g", k*ing.Nutrition.Fiber),
			fmt.Sprintf("%.0f mg", k*ing.Nutrition.Sodium),
			nutrition.FormatCents(int64(n)*ing.PriceCents),
		)
	}
	tot := sum.Totals
	t.Row(
		StyleTitle.Render("Total"),
		"",
		StyleNumber.Render(fmt.Sprintf("%.0f", tot.Calories)),
		StyleNumber.Render(fmt.Sprintf("%.1f g", tot.Protein)),
		StyleNumber.Render(fmt.Sprintf("%.1f g", tot.Carbs)),
		StyleNumber.Render(fmt.Sprintf("%.1f g", tot.Fat)),
		StyleNumber.Render(fmt.Sprintf("%.1f g", tot.Fiber)),
		StyleNumber.Render(fmt.Sprintf("%.0f mg", tot.Sodium)),
		StyleNumber.Render(nutrition.FormatCents(sum.Price.IngredientCents)),
	)
	fmt.Fprintln(w, t.Render())

	printKeyValue(w, "Base", nutrition.FormatCents(sum.Price.BaseCents))
	printKeyValue(w, "Price", StylePrice.Render(sum.Price.String()))
	if badges := renderBadges(nutrition.Badges(tot)); badges != "" {
		printKeyValue(w, "Badges", badges)
	}
	for _, id := range sum.Unknown {
		if _, err := cat.Require(id); err != nil {
			printWarning(w, "%s, counted as zero", errors.UserMessage(err))
		}
	}
}
