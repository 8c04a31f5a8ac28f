package layout

import (
	"fmt"

	"github.com/matzehuels/foodstack/pkg/catalog"
)

// Vec3 is a position in scene units. Y is up.
type Vec3 struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
}

// Piece is one renderable mesh instance.
type Piece struct {
	Ingredient catalog.ID       `json:"ingredient"`
	Index      int              `json:"index"`
	Class      catalog.Class    `json:"class"`
	Position   Vec3             `json:"position"`
	Yaw        float32          `json:"yaw"`
	Geometry   catalog.Geometry `json:"geometry"`
	Color      string           `json:"color"`
	Opacity    float32          `json:"opacity"`
	Scale      float32          `json:"scale"`
	Fallback   bool             `json:"fallback,omitempty"`
}

// Key returns "id-index", stable for a given (ingredient, count) pair.
func (p Piece) Key() string {
	return fmt.Sprintf("%s-%d", p.Ingredient, p.Index)
}

// Center returns the geometric center of the piece. Base-layer positions
// mark the bottom face, so the center is lifted by half the height.
func (p Piece) Center() Vec3 {
	c := p.Position
	if p.Class == catalog.BaseLayer {
		c.Y += p.Geometry.Height / 2
	}
	return c
}

// Layout is the result of one [Engine.Layout] call.
type Layout struct {
	// Pieces in output order: base layers, toppings, unknown ids.
	Pieces []Piece `json:"pieces"`
	// Counts holds the occurrence count of every selected id, known or not.
	Counts map[catalog.ID]int `json:"counts"`
	// Unknown lists selected ids missing from the catalog, sorted.
	Unknown []catalog.ID `json:"unknown,omitempty"`
	// Truncated is set when a piece cap dropped topping pieces.
	Truncated bool `json:"truncated,omitempty"`
}

// Len returns the number of pieces.
func (l Layout) Len() int { return len(l.Pieces) }

// ByIngredient groups pieces by ingredient, each group in index order.
func (l Layout) ByIngredient() map[catalog.ID][]Piece {
	out := make(map[catalog.ID][]Piece)
	for _, p := range l.Pieces {
		out[p.Ingredient] = append(out[p.Ingredient], p)
	}
	return out
}

// Ingredients returns the distinct ingredient ids in output order.
func (l Layout) Ingredients() []catalog.ID {
	var out []catalog.ID
	for _, p := range l.Pieces {
		if n := len(out); n == 0 || out[n-1] != p.Ingredient {
			out = append(out, p.Ingredient)
		}
	}
	return out
}

// Bounds returns the axis-aligned box enclosing every piece center,
// widened by each piece's horizontal extent. An empty layout yields zeros.
func (l Layout) Bounds() (lo, hi Vec3) {
	for i, p := range l.Pieces {
		ext := p.Geometry.Extent() * max(p.Scale, 1)
		minP := Vec3{p.Position.X - ext, p.Position.Y, p.Position.Z - ext}
		maxP := Vec3{p.Position.X + ext, p.Position.Y + p.Geometry.Height, p.Position.Z + ext}
		if p.Class == catalog.Topping {
			minP.Y -= p.Geometry.Height / 2
			maxP.Y -= p.Geometry.Height / 2
		}
		if i == 0 {
			lo, hi = minP, maxP
			continue
		}
		lo = Vec3{min(lo.X, minP.X), min(lo.Y, minP.Y), min(lo.Z, minP.Z)}
		hi = Vec3{max(hi.X, maxP.X), max(hi.Y, maxP.Y), max(hi.Z, maxP.Z)}
	}
	return lo, hi
}
