package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/foodstack/pkg/catalog"
	"github.com/matzehuels/foodstack/pkg/nutrition"
)

// catalogCommand creates the catalog command for listing ingredients.
func (c *CLI) catalogCommand() *cobra.Command {
	var listDishes bool

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the ingredients of a dish",
		Long: `List the ingredients of a dish as a table.

The built-in dishes are pizza and burger. Use --catalog to inspect a custom
TOML catalog instead; it is validated exactly as it would be for layout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if listDishes {
				for _, d := range catalog.Dishes() {
					fmt.Fprintln(c.out, d)
				}
				return nil
			}
			return c.runCatalog(cmd.Context())
		},
	}

	cmd.Flags().BoolVar(&listDishes, "dishes", false, "list the built-in dishes and exit")

	return cmd
}

// runCatalog loads the catalog and prints it.
func (c *CLI) runCatalog(ctx context.Context) error {
	opts, err := c.options(nil)
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
	engine := runner.NewEngine(cat, opts)

	t := newTable("", "ID", "Name", "Category", "Class", "Pieces", "kcal", "Price")
	for _, ing := range cat.Ingredients() {
		t.Row(
			swatch(ing.Color),
			string(ing.ID),
			ing.DisplayName(),
			ing.Category,
			ing.Class.String(),
			fmt.Sprint(engine.PiecesPerUnit(ing)),
			fmt.Sprintf("%.0f", ing.Nutrition.Calories),
			nutrition.FormatCents(ing.PriceCents),
		)
	}

	fmt.Fprintln(c.out, StyleTitle.Render(fmt.Sprintf("%s (v%d)", cat.Dish(), cat.Version())))
	printKeyValue(c.out, "Base price", nutrition.FormatCents(cat.BasePriceCents()))
	printKeyValue(c.out, "Footprint", fmt.Sprintf("r = %.2f", cat.FootprintRadius()))
	fmt.Fprintln(c.out, t.Render())
	return nil
}
