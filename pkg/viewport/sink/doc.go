// Package sink provides output format renderers for viewport frames.
//
// # Overview
//
// A "sink" transforms a [viewport.Frame] into a final output format:
//
//   - JSON: the full frame for a WebGL client or external tools
//   - SVG: front elevation and top view with hover highlighting
//   - PNG: a top-down raster preview
//
// # SVG Output
//
// [RenderSVG] draws every piece as an element tagged with its ingredient id.
// Pointing at any piece highlights all pieces of the same ingredient.
// Clicking a piece dispatches a "foodstack:remove" event carrying the
// ingredient id and posts the same message to the parent window, so an
// embedding page can remove one unit of it.
//
//	svg := sink.RenderSVG(frame, sink.WithNames(names))
//
// # PNG Output
//
// [RenderPNG] rasterizes the top view with [github.com/fogleman/gg]. Unlike
// SVG it needs no external tools:
//
//	png, err := sink.RenderPNG(frame, sink.WithSize(512))
package sink
