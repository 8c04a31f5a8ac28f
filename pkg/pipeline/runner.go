package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/foodstack/pkg/catalog"
	"github.com/matzehuels/foodstack/pkg/interact"
	"github.com/matzehuels/foodstack/pkg/layout"
	"github.com/matzehuels/foodstack/pkg/nutrition"
	"github.com/matzehuels/foodstack/pkg/observability"
	"github.com/matzehuels/foodstack/pkg/viewport"
)

// Runner encapsulates pipeline execution.
//
// The Runner is stateless except for the logger - it doesn't store pipeline
// results. Multiple goroutines can safely use the same Runner with different
// options.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. If logger is nil, log.Default() is used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Execute runs the complete catalog → layout → aggregate → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	// Stage 1: Catalog
	cat, err := r.LoadCatalog(ctx, opts)
	if err != nil {
		return nil, err
	}
	result := &Result{Catalog: cat}

	// Stage 2: Layout
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	layoutStart := time.Now()
	result.Layout = r.Layout(ctx, cat, opts)
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.Units = len(opts.Selection)
	result.Stats.Pieces = result.Layout.Len()
	result.Stats.Unknown = len(result.Layout.Unknown)

	r.Logger.Info("computed layout",
		"dish", cat.Dish(),
		"units", result.Stats.Units,
		"pieces", result.Stats.Pieces,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Aggregate
	aggStart := time.Now()
	result.Summary = r.Aggregate(ctx, cat, opts)
	result.Badges = nutrition.Badges(result.Summary.Totals)
	result.Stats.AggregateTime = time.Since(aggStart)

	r.Logger.Debug("aggregated nutrition",
		"calories", result.Summary.Totals.Calories,
		"price", result.Summary.Price.String())

	// Stage 4: Render
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	renderStart := time.Now()
	result.Frame = r.Frame(cat, opts)
	artifacts, err := r.Render(ctx, result.Frame, cat, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LoadCatalog loads the catalog named by opts. A malformed catalog is fatal
// and returned as-is so callers can test it with errors.Fatal.
func (r *Runner) LoadCatalog(ctx context.Context, opts Options) (*catalog.Catalog, error) {
	r.applyLogger(&opts)
	opts.SetLayoutDefaults()
	var (
		cat *catalog.Catalog
		err error
	)
	if opts.CatalogPath != "" {
		cat, err = catalog.LoadFile(opts.CatalogPath)
	} else {
		cat, err = catalog.Default(opts.Dish)
	}

	n := 0
	if cat != nil {
		n = cat.Len()
	}
	observability.Pipeline().OnCatalogLoad(ctx, opts.Dish, opts.Source(), n, err)
	if err != nil {
		return nil, err
	}
	if opts.CatalogPath != "" && opts.Dish != "" && opts.Dish != cat.Dish() {
		r.Logger.Warn("catalog dish differs from requested dish", "requested", opts.Dish, "catalog", cat.Dish())
	}
	r.Logger.Debug("loaded catalog", "source", opts.Source(), "dish", cat.Dish(), "version", cat.Version(), "ingredients", n)
	return cat, nil
}

// NewEngine builds a layout engine for cat configured by opts.
func (r *Runner) NewEngine(cat *catalog.Catalog, opts Options) *layout.Engine {
	r.applyLogger(&opts)
	opts.SetLayoutDefaults()
	return layout.New(cat, opts.EngineOptions()...)
}

// Layout places the selection of opts.
func (r *Runner) Layout(ctx context.Context, cat *catalog.Catalog, opts Options) layout.Layout {
	start := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, cat.Dish(), len(opts.Selection))
	l := r.NewEngine(cat, opts).Layout(opts.IDs())
	observability.Pipeline().OnLayoutComplete(ctx, cat.Dish(), l.Len(), len(l.Unknown), time.Since(start))
	return l
}

// Aggregate sums nutrition and price of the selection of opts.
func (r *Runner) Aggregate(ctx context.Context, cat *catalog.Catalog, opts Options) nutrition.Summary {
	start := time.Now()
	s := nutrition.New(cat).Aggregate(opts.IDs())
	observability.Pipeline().OnAggregate(ctx, cat.Dish(), s.Price.Total(), time.Since(start))
	return s
}

// Frame assembles the viewport frame for opts. Unknown ids are not logged
// again here; [Runner.Layout] reports them.
func (r *Runner) Frame(cat *catalog.Catalog, opts Options) viewport.Frame {
	opts.Logger = log.New(io.Discard)
	opts.SetRenderDefaults()
	tracker := interact.New(nil, interact.WithHighlight(opts.Highlight))
	adapter := viewport.New(r.NewEngine(cat, opts), tracker, viewport.WithScene(opts.Scene()))
	return adapter.RenderAt(opts.IDs(), catalog.ID(opts.Hovered), opts.Elapsed)
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
