// Package layout turns an ingredient selection into placed, renderable pieces.
//
// # Overview
//
// The [Engine] is a pure function from a multiset of ingredient ids to a
// [Layout]. Only the count of each id matters; selection order is ignored.
//
//	eng := layout.New(catalog.MustDefault("pizza"))
//	l := eng.Layout([]catalog.ID{"dough", "sauce", "cheese", "pepperoni"})
//	for _, p := range l.Pieces {
//	    fmt.Println(p.Key(), p.Position)
//	}
//
// # Base Layers
//
// Each unit of a base-layer ingredient becomes one piece centered on the y
// axis. Unit k sits at offset + k*stack_step, so base layers always stack in
// the catalog's canonical order regardless of when they were selected. A
// base-layer position marks the bottom face of its slot.
//
// # Toppings
//
// Each unit of a topping becomes pieces_per_unit pieces scattered across the
// topping's annulus. Every coordinate of piece i of ingredient id is derived
// from [Unit], a hash of (id, i, channel), so:
//
//   - the same (id, i) always lands in the same place, across calls and engines
//   - adding or removing an unrelated ingredient never moves existing pieces
//   - removing one unit of a topping removes only its highest-index pieces
//
// The radius is sampled area-uniformly, r = sqrt(inner² + u·(outer² − inner²)),
// so pieces do not crowd the center. A topping position marks the piece center.
//
// # Unknown Ids
//
// Ids missing from the catalog never fail a layout. They are drawn with
// [catalog.Fallback] geometry as thin slots starting at [Engine.FallbackFloor],
// a height fixed by the catalog, are marked [Piece.Fallback], and are reported
// once per call at warn level.
package layout
