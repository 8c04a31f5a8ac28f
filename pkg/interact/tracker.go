// Package interact tracks pointer hover over placed pieces and forwards
// clicks as removal intents.
//
// Hover is per ingredient, never per piece: pointing at any piece of an
// ingredient highlights every piece of it. The tracker never edits the
// selection itself; a click only calls the callback given to [New].
package interact

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/foodstack/pkg/catalog"
	"github.com/matzehuels/foodstack/pkg/layout"
)

// Highlight sets how hovered and non-hovered pieces are drawn.
type Highlight struct {
	BaseScale    float32 `toml:"base_scale" json:"base_scale"`
	BaseOpacity  float32 `toml:"base_opacity" json:"base_opacity"`
	HoverScale   float32 `toml:"hover_scale" json:"hover_scale"`
	HoverOpacity float32 `toml:"hover_opacity" json:"hover_opacity"`
	// HoverTint blends hovered colors toward white, 0 (off) to 1.
	HoverTint float64 `toml:"hover_tint" json:"hover_tint,omitempty"`
}

// DefaultHighlight enlarges and brightens the hovered ingredient slightly.
var DefaultHighlight = Highlight{
	BaseScale:    1.0,
	BaseOpacity:  0.8,
	HoverScale:   1.1,
	HoverOpacity: 0.9,
}

// Option configures a [Tracker].
type Option func(*Tracker)

// WithHighlight overrides [DefaultHighlight].
func WithHighlight(h Highlight) Option {
	return func(t *Tracker) { t.highlight = h }
}

// Tracker holds the hover state of one view. It is owned by a single UI loop
// and is not safe for concurrent use.
type Tracker struct {
	hovered   catalog.ID
	active    bool
	highlight Highlight
	onClick   func(catalog.ID)
}

// New creates a tracker that forwards clicks to onClick. A nil onClick
// drops clicks.
func New(onClick func(catalog.ID), opts ...Option) *Tracker {
	t := &Tracker{highlight: DefaultHighlight, onClick: onClick}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Highlight returns the active highlight settings.
func (t *Tracker) Highlight() Highlight { return t.highlight }

// SetHover marks id as hovered, replacing any previous hover.
func (t *Tracker) SetHover(id catalog.ID) {
	t.hovered, t.active = id, true
}

// ClearHover removes the hover.
func (t *Tracker) ClearHover() {
	t.hovered, t.active = "", false
}

// Hovered returns the hovered id, if any.
func (t *Tracker) Hovered() (catalog.ID, bool) {
	return t.hovered, t.active
}

// IsHovered reports whether id is the hovered ingredient.
func (t *Tracker) IsHovered(id catalog.ID) bool {
	return t.active && t.hovered == id
}

// Click forwards a removal intent for id.
func (t *Tracker) Click(id catalog.ID) {
	if t.onClick != nil {
		t.onClick(id)
	}
}

// Release clears the hover if it is on id. Call it when id leaves the
// selection so a stale hover does not outlive its pieces.
func (t *Tracker) Release(id catalog.ID) {
	if t.IsHovered(id) {
		t.ClearHover()
	}
}

// Sync releases the hover when the hovered id has no count left.
func (t *Tracker) Sync(counts map[catalog.ID]int) {
	if t.active && counts[t.hovered] == 0 {
		t.ClearHover()
	}
}

// Apply returns a copy of pieces with scale and opacity set from the hover
// state. The input slice is not modified.
func (t *Tracker) Apply(pieces []layout.Piece) []layout.Piece {
	return t.highlight.Apply(pieces, t.hovered, t.active)
}

// Apply returns a copy of pieces highlighted as if hovered were under the
// pointer. With active false, every piece gets the base look.
func (h Highlight) Apply(pieces []layout.Piece, hovered catalog.ID, active bool) []layout.Piece {
	if pieces == nil {
		return nil
	}
	out := make([]layout.Piece, len(pieces))
	for i, p := range pieces {
		if active && p.Ingredient == hovered {
			p.Scale, p.Opacity = h.HoverScale, h.HoverOpacity
			p.Color = tint(p.Color, h.HoverTint)
		} else {
			p.Scale, p.Opacity = h.BaseScale, h.BaseOpacity
		}
		out[i] = p
	}
	return out
}

func tint(hex string, amount float64) string {
	if amount <= 0 {
		return hex
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	return c.BlendLab(colorful.Color{R: 1, G: 1, B: 1}, min(amount, 1)).Clamped().Hex()
}
