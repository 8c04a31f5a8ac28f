// Package pkg provides the core libraries for Foodstack dish building.
//
// # Overview
//
// Foodstack turns an ordered list of ingredient ids, such as
// [dough sauce cheese pepperoni], into a deterministic arrangement of 3D
// pieces on a plate, with nutrition totals and a price. Flat ingredients
// (dough, patties, buns) stack as layers; small ingredients (pepperoni,
// olives, pickles) scatter across the surface. The same selection always
// produces the same pieces, and adding an ingredient never moves the pieces
// of another.
//
// # Architecture
//
// The typical data flow through Foodstack:
//
//	Selection (ordered ids, repeats allowed)
//	         ↓
//	    [catalog] package (validated ingredient table per dish)
//	         ↓
//	    [layout] package (hash-based placement → pieces)
//	         ↓
//	    [interact] package (hover highlight, click → removal intent)
//	         ↓
//	    [viewport] package (camera, lights, plate + pieces → frame)
//	         ↓
//	    [viewport/sink] package → SVG/PNG/JSON output
//
// The [nutrition] package aggregates the same selection into totals, price,
// and badges.
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/foodstack/pkg/catalog"
//	    "github.com/matzehuels/foodstack/pkg/layout"
//	    "github.com/matzehuels/foodstack/pkg/nutrition"
//	    "github.com/matzehuels/foodstack/pkg/selection"
//	    "github.com/matzehuels/foodstack/pkg/viewport"
//	    "github.com/matzehuels/foodstack/pkg/viewport/sink"
//	)
//
//	cat := catalog.MustDefault("pizza")
//	sel := selection.Of("dough", "sauce", "cheese", "pepperoni")
//
//	// 1. Lay out pieces and wrap them in a frame
//	adapter := viewport.New(layout.New(cat), nil)
//	frame := adapter.Render(sel, "pepperoni")
//
//	// 2. Sum nutrition and price
//	sum := nutrition.New(cat).Aggregate(sel)
//	fmt.Println(sum.Price) // $12.99
//
//	// 3. Render to SVG
//	svg := sink.RenderSVG(frame, sink.WithNames(sink.NamesFrom(cat)))
//
// # Main Packages
//
// [catalog] - Ingredient tables loaded from TOML. Pizza and burger are
// embedded; custom tables go through the same validation.
//
// [selection] - Multiset helpers over ordered id lists (add, remove one,
// counts).
//
// [layout] - The placement engine. Base layers get one stacked slot per
// unit; toppings get pieces scattered inside their annulus by
// [layout.Unit], a hash of (id, index, channel).
//
// [interact] - Hover state and highlight styling for a single UI loop.
//
// [nutrition] - Totals, price in integer cents, and badges.
//
// [viewport] - Frame assembly and the idle sway angle.
//
// [viewport/sink] - Output formats (SVG with hover/click script, PNG top
// view, JSON).
//
// [pipeline] - Complete catalog → layout → aggregate → render pipeline used by
// the CLI. Options, TOML config file, and the runner live here.
//
// [observability] - Hook registry for pipeline and interaction events.
//
// [errors] - Coded errors shared by every package.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/layout/...   # Specific package
//	go test -run Example       # Examples only
//
// [catalog]: https://pkg.go.dev/github.com/matzehuels/foodstack/pkg/catalog
// [selection]: https://pkg.go.dev/github.com/matzehuels/foodstack/pkg/selection
// [layout]: https://pkg.go.dev/github.com/matzehuels/foodstack/pkg/layout
// [layout.Unit]: https://pkg.go.dev/github.com/matzehuels/foodstack/pkg/layout#Unit
// [interact]: https://pkg.go.dev/github.com/matzehuels/foodstack/pkg/interact
// [nutrition]: https://pkg.go.dev/github.com/matzehuels/foodstack/pkg/nutrition
// [viewport]: https://pkg.go.dev/github.com/matzehuels/foodstack/pkg/viewport
// [viewport/sink]: https://pkg.go.dev/github.com/matzehuels/foodstack/pkg/viewport/sink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/foodstack/pkg/pipeline
// [observability]: https://pkg.go.dev/github.com/matzehuels/foodstack/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/foodstack/pkg/errors
package pkg
