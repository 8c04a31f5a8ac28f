// Package catalog holds the static ingredient tables that every other
// foodstack component reads.
//
// # Overview
//
// A [Catalog] maps an ingredient [ID] to an immutable [Ingredient] record:
// its class ([BaseLayer] or [Topping]), nominal nutrition per unit, price per
// unit in cents, display color, and geometry. Base layers additionally carry a
// fixed vertical slot; toppings carry the annulus they are scattered in.
//
// Catalogs are plain values. They are built once (from TOML or from a
// [Definition] literal), validated, and then only read. Several catalogs can
// live side by side, which is how tests run the layout engine against
// synthetic tables.
//
// # Loading
//
// The built-in dishes are embedded:
//
//	cat, err := catalog.Default("pizza")
//
// A custom table can be loaded from disk:
//
//	cat, err := catalog.LoadFile("my-burger.toml")
//
// Any malformed entry makes loading fail with
// [errors.ErrCodeMalformedCatalog]. Callers are expected to refuse to start
// rather than render with a partial table.
//
// # File Format
//
//	dish = "pizza"
//	version = 1
//	base_price = 9.99
//	footprint_radius = 1.8
//
//	[[ingredient]]
//	id = "pepperoni"
//	name = "Pepperoni"
//	category = "Protein"
//	class = "topping"
//	price = 1.50
//	color = "#B03A2E"
//	geometry = { shape = "cylinder", radius = 0.18, height = 0.03, segments = 16 }
//	nutrition = { calories = 140, protein = 6, fat = 13, sodium = 480 }
//	placement = { inner_radius = 0.25, outer_radius = 1.45, elevation = 0.2, jitter = 0.01, pieces_per_unit = 6 }
//
// Unknown keys are rejected so typos surface at load time.
//
// [errors.ErrCodeMalformedCatalog]: github.com/matzehuels/foodstack/pkg/errors
package catalog
