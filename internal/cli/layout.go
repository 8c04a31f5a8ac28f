package cli

import (
	"context"
	"fmt"

	"github.com/chewxy/math32"
	"github.com/spf13/cobra"

	"github.com/matzehuels/foodstack/pkg/buildinfo"
	"github.com/matzehuels/foodstack/pkg/pipeline"
	"github.com/matzehuels/foodstack/pkg/viewport/sink"
)

// layoutCommand creates the layout command for printing piece placements.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		asJSON   bool
		hovered  string
		lo, hi   int
		pieceCap int
	)

	cmd := &cobra.Command{
		Use:   "layout [ingredients...]",
		Short: "Compute piece placements for a selection",
		Long: `Compute piece placements for a selection of ingredients.

Ingredients may repeat ("cheese cheese" is a double portion) and may be given
as separate arguments or comma-separated. Placements are deterministic: the
same selection always yields the same pieces, and adding an ingredient never
moves the pieces of another.

Unknown ingredients are drawn as a grey fallback disc and reported as a
warning.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.options(args)
			if err != nil {
				return err
			}
			opts.Hovered = hovered
			if lo != 0 {
				opts.MinPieces = lo
			}
			if hi != 0 {
				opts.MaxPieces = hi
			}
			if pieceCap != 0 {
				opts.PieceCap = pieceCap
			}
			return c.runLayout(cmd.Context(), opts, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the frame as JSON")
	cmd.Flags().StringVar(&hovered, "hover", "", "ingredient to highlight")
	cmd.Flags().IntVar(&lo, "min-pieces", 0, "lower bound on pieces per topping unit")
	cmd.Flags().IntVar(&hi, "max-pieces", 0, "upper bound on pieces per topping unit")
	cmd.Flags().IntVar(&pieceCap, "piece-cap", 0, "maximum topping pieces per layout (0 = unbounded)")

	return cmd
}

// runLayout lays out the selection and prints the pieces.
func (c *CLI) runLayout(ctx context.Context, opts pipeline.Options, asJSON bool) error {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner := c.newRunner()
	cat, err := runner.LoadCatalog(ctx, opts)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	l := runner.Layout(ctx, cat, opts)
	frame := runner.Frame(cat, opts)

	if asJSON {
		data, err := sink.RenderJSON(frame, sink.WithJSONVersion(buildinfo.Version))
		if err != nil {
			return fmt.Errorf("encode layout: %w", err)
		}
		fmt.Fprintln(c.out, string(data))
		return nil
	}

	t := newTable("Key", "Class", "X", "Y", "Z", "Yaw", "Scale", "Opacity", "")
	for _, p := range frame.Pieces {
		key := p.Key()
		switch {
		case p.Fallback:
			key = StyleWarning.Render(key)
		case p.Ingredient == frame.Hovered:
			key = StyleHighlight.Render(key)
		}
		t.Row(
			key,
			p.Class.String(),
			fmt.Sprintf("%.3f", p.Position.X),
			fmt.Sprintf("%.3f", p.Position.Y),
			fmt.Sprintf("%.3f", p.Position.Z),
			fmt.Sprintf("%.0f°", p.Yaw*180/math32.Pi),
			fmt.Sprintf("%.2f", p.Scale),
			fmt.Sprintf("%.2f", p.Opacity),
			swatch(p.Color),
		)
	}
	fmt.Fprintln(c.out, t.Render())

	printStats(c.out, len(opts.Selection), l.Len(), len(l.Unknown))
	if frame.Truncated {
		printWarning(c.out, "piece cap of %d reached; some topping pieces were dropped", opts.PieceCap)
	}
	return nil
}
