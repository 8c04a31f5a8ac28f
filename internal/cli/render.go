package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/foodstack/pkg/errors"
	"github.com/matzehuels/foodstack/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output     string        // base path; each format appends its extension
	formats    string        // comma-separated formats: svg, png, json
	hovered    string        // ingredient to highlight
	background string        // scene background color
	size       int           // PNG edge length in pixels
	unit       float32       // SVG pixels per scene unit
	elapsed    time.Duration // idle rotation time recorded in the frame
}

// renderCommand creates the render command for writing artifacts.
func (c *CLI) renderCommand() *cobra.Command {
	var ro renderOpts

	cmd := &cobra.Command{
		Use:   "render [ingredients...]",
		Short: "Render a selection to SVG, PNG, or JSON",
		Long: `Render a selection of ingredients to one or more files.

SVG output is interactive: hovering a piece highlights every piece of the same
ingredient, and clicking one posts a "foodstack:remove" message to the
embedding page. PNG output is a top view. JSON output is the complete frame
(camera, lights, plate, and pieces) for a 3D client.

-o is a base path; each format gets its extension. A trailing .svg, .png, or
.json on -o is stripped first.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.options(args)
			if err != nil {
				return err
			}
			if f := parseFormats(ro.formats); f != nil {
				opts.Formats = f
			}
			opts.Hovered = ro.hovered
			if ro.background != "" {
				opts.Background = ro.background
			}
			if ro.size != 0 {
				opts.ImageSize = ro.size
			}
			if ro.unit != 0 {
				opts.Unit = ro.unit
			}
			opts.Elapsed = ro.elapsed
			return c.runRender(cmd.Context(), opts, ro.output)
		},
	}

	cmd.Flags().StringVarP(&ro.output, "output", "o", "", "output base path (default: <dish>)")
	cmd.Flags().StringVarP(&ro.formats, "format", "f", "", "output format(s): svg (default), png, json (comma-separated)")
	cmd.Flags().StringVar(&ro.hovered, "hover", "", "ingredient to highlight")
	cmd.Flags().StringVar(&ro.background, "background", "", "background color (#rrggbb)")
	cmd.Flags().IntVar(&ro.size, "size", 0, fmt.Sprintf("PNG size in pixels (default %d)", pipeline.DefaultImageSize))
	cmd.Flags().Float32Var(&ro.unit, "unit", 0, fmt.Sprintf("SVG pixels per scene unit (default %.0f)", pipeline.DefaultUnit))
	cmd.Flags().DurationVar(&ro.elapsed, "elapsed", 0, "idle rotation time to record in the frame")

	return cmd
}

// runRender executes the pipeline and writes one file per format.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, output string) error {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	prog := newProgress(c.Logger)
	spinner := newSpinner(ctx, os.Stderr, fmt.Sprintf("Rendering %s...", strings.Join(opts.Formats, ", ")))
	spinner.Start()

	result, err := c.newRunner().Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		if errors.Fatal(err) {
			return fmt.Errorf("catalog rejected: %w", err)
		}
		return err
	}
	spinner.Stop()

	base := basePath(output, result.Catalog.Dish())
	var paths []string
	for _, format := range opts.Formats {
		path := base + "." + format
		if err := errors.ValidateOutputPath(path); err != nil {
			return err
		}
		if err := os.WriteFile(path, result.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	prog.done("rendered", "artifacts", len(paths))

	printSuccess(c.out, "Rendered %s", result.Catalog.Dish())
	for _, p := range paths {
		printFile(c.out, p)
	}
	printStats(c.out, result.Stats.Units, result.Stats.Pieces, result.Stats.Unknown)
	printKeyValue(c.out, "Price", StylePrice.Render(result.Summary.Price.String()))
	if badges := renderBadges(result.Badges); badges != "" {
		printKeyValue(c.out, "Badges", badges)
	}
	printNewline(c.out)
	printNextStep(c.out, "Build interactively", appName+" build")
	return nil
}

// basePath derives the base output path. An empty output falls back to
// dish. A known format extension on output is stripped.
func basePath(output, dish string) string {
	if output == "" {
		return dish
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
