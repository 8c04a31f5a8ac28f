package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/foodstack/pkg/observability"
	"github.com/matzehuels/foodstack/pkg/pipeline"
	"github.com/matzehuels/foodstack/pkg/selection"
)

// buildCommand creates the build command for the interactive builder.
func (c *CLI) buildCommand() *cobra.Command {
	var (
		output  string
		formats string
	)

	cmd := &cobra.Command{
		Use:   "build [ingredients...]",
		Short: "Build a dish interactively",
		Long: `Build a dish interactively in the terminal.

Move through the ingredient list with the arrow keys and add units with enter
or +. Removing a unit (- or x) works like clicking one of its pieces. The
ingredient under the cursor is highlighted on the plate while it has pieces.
Nutrition and price update as you go.

Ingredients given as arguments are the starting selection. With -o, the
finished dish is rendered like 'foodstack render' would.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.options(args)
			if err != nil {
				return err
			}
			if f := parseFormats(formats); f != nil {
				opts.Formats = f
			}
			return c.runBuild(cmd.Context(), opts, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "render the finished dish to this base path")
	cmd.Flags().StringVarP(&formats, "format", "f", "", "output format(s) with -o: svg (default), png, json")

	return cmd
}

// runBuild runs the builder and prints the finished dish.
func (c *CLI) runBuild(ctx context.Context, opts pipeline.Options, output string) error {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner := c.newRunner()
	cat, err := runner.LoadCatalog(ctx, opts)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	// Report unknown starting ids once; frames in the loop stay quiet.
	runner.Layout(ctx, cat, opts)
	quiet := opts
	quiet.Logger = log.New(io.Discard)
	engine := runner.NewEngine(cat, quiet)

	hooks := &sessionHooks{}
	observability.SetInteractionHooks(hooks)
	defer observability.SetInteractionHooks(observability.NoopInteractionHooks{})

	model := NewBuildModel(ctx, cat, engine, opts.Highlight, selection.Of(opts.Selection...))
	final, err := tea.NewProgram(model, tea.WithContext(ctx), tea.WithAltScreen()).Run()
	if err != nil {
		return fmt.Errorf("builder: %w", err)
	}
	m := final.(BuildModel)

	sel := m.Selection()
	ids := make([]string, len(sel))
	for i, id := range sel {
		ids[i] = string(id)
	}
	fmt.Fprintln(c.out, StyleTitle.Render("Your "+cat.Dish()))
	printSummary(c.out, cat, m.Summary())
	printInfo(c.out, "%d hovers, %d removals", hooks.hovers.Load(), hooks.removals.Load())

	if output == "" {
		printNewline(c.out)
		printNextStep(c.out, "Render it", fmt.Sprintf("%s render %s", appName, strings.Join(ids, " ")))
		return nil
	}
	opts.Selection = ids
	return c.runRender(ctx, opts, output)
}

// sessionHooks counts interaction events of one builder session.
type sessionHooks struct {
	hovers   atomic.Int64
	removals atomic.Int64
}

func (h *sessionHooks) OnHover(context.Context, string)        { h.hovers.Add(1) }
func (h *sessionHooks) OnRemoveIntent(context.Context, string) { h.removals.Add(1) }
