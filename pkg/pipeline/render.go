package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/foodstack/pkg/buildinfo"
	"github.com/matzehuels/foodstack/pkg/catalog"
	"github.com/matzehuels/foodstack/pkg/observability"
	"github.com/matzehuels/foodstack/pkg/viewport"
	"github.com/matzehuels/foodstack/pkg/viewport/sink"
)

// Render generates output artifacts for f in the requested formats. cat
// supplies display names and may be nil.
func (r *Runner) Render(ctx context.Context, f viewport.Frame, cat *catalog.Catalog, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	artifacts, err := RenderFrame(f, cat, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	return artifacts, err
}

// RenderFrame renders f into every format of opts.
func RenderFrame(f viewport.Frame, cat *catalog.Catalog, opts Options) (map[string][]byte, error) {
	opts.SetRenderDefaults()
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var (
			data []byte
			err  error
		)
		switch format {
		case FormatSVG:
			svgOpts := []sink.SVGOption{sink.WithHighlight(opts.Highlight), sink.WithUnit(opts.Unit)}
			if cat != nil {
				svgOpts = append(svgOpts, sink.WithNames(sink.NamesFrom(cat)))
			}
			data = sink.RenderSVG(f, svgOpts...)
		case FormatPNG:
			data, err = sink.RenderPNG(f, sink.WithSize(opts.ImageSize))
		case FormatJSON:
			data, err = sink.RenderJSON(f, sink.WithJSONVersion(buildinfo.Version))
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}
