package catalog

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/matzehuels/foodstack/pkg/errors"
)

// ID identifies an ingredient within a catalog.
type ID string

// Class is the semantic class of an ingredient.
type Class int

const (
	// BaseLayer ingredients occupy one flat stacked slot per unit.
	BaseLayer Class = iota
	// Topping ingredients are scattered as several small pieces per unit.
	Topping
)

// String returns the TOML spelling of the class.
func (c Class) String() string {
	switch c {
	case BaseLayer:
		return "base"
	case Topping:
		return "topping"
	default:
		return fmt.Sprintf("class(%d)", int(c))
	}
}

// MarshalText encodes the class as its TOML spelling.
func (c Class) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// UnmarshalText decodes "base" or "topping".
func (c *Class) UnmarshalText(b []byte) error {
	v, err := ParseClass(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// ParseClass converts "base" or "topping" into a Class.
func ParseClass(s string) (Class, error) {
	switch s {
	case "base":
		return BaseLayer, nil
	case "topping":
		return Topping, nil
	default:
		return 0, fmt.Errorf("unknown class %q (must be 'base' or 'topping')", s)
	}
}

// Shape is the geometry class of a renderable piece.
type Shape string

// Supported shapes.
const (
	ShapeCylinder Shape = "cylinder"
	ShapeSphere   Shape = "sphere"
	ShapeBox      Shape = "box"
	ShapeTorus    Shape = "torus"
)

// Geometry describes the mesh a piece is drawn with. Which fields apply
// depends on Shape:
//
//   - cylinder: Radius (top), RadiusBottom (defaults to Radius), Height, Segments
//   - sphere:   Radius, Segments
//   - box:      Width, Depth, Height
//   - torus:    Radius (ring), Height (tube thickness), Segments
type Geometry struct {
	Shape        Shape   `toml:"shape" json:"shape"`
	Radius       float32 `toml:"radius" json:"radius,omitempty"`
	RadiusBottom float32 `toml:"radius_bottom" json:"radius_bottom,omitempty"`
	Width        float32 `toml:"width" json:"width,omitempty"`
	Depth        float32 `toml:"depth" json:"depth,omitempty"`
	Height       float32 `toml:"height" json:"height"`
	Segments     int     `toml:"segments" json:"segments,omitempty"`
}

// Extent returns the horizontal half-size of the geometry, used for footprint checks.
func (g Geometry) Extent() float32 {
	switch g.Shape {
	case ShapeBox:
		return max(g.Width, g.Depth) / 2
	case ShapeTorus:
		return g.Radius + g.Height/2
	default:
		return max(g.Radius, g.RadiusBottom)
	}
}

// Nutrition is the nominal nutrition of one unit of an ingredient.
type Nutrition struct {
	Calories float64 `toml:"calories" json:"calories"`
	Protein  float64 `toml:"protein" json:"protein_g"`
	Carbs    float64 `toml:"carbs" json:"carbs_g"`
	Fat      float64 `toml:"fat" json:"fat_g"`
	Fiber    float64 `toml:"fiber" json:"fiber_g"`
	Sodium   float64 `toml:"sodium" json:"sodium_mg"`
}

// Placement bounds the scatter of a topping's pieces.
// Pieces land in the annulus [InnerRadius, OuterRadius] around the dish
// center at Elevation, displaced vertically by at most Jitter.
type Placement struct {
	InnerRadius   float32 `toml:"inner_radius" json:"inner_radius"`
	OuterRadius   float32 `toml:"outer_radius" json:"outer_radius"`
	Elevation     float32 `toml:"elevation" json:"elevation"`
	Jitter        float32 `toml:"jitter" json:"jitter"`
	PiecesPerUnit int     `toml:"pieces_per_unit" json:"pieces_per_unit"`
}

// Ingredient is an immutable catalog record.
type Ingredient struct {
	ID         ID
	Name       string
	Category   string
	Class      Class
	Nutrition  Nutrition
	PriceCents int64
	Color      string // "#rrggbb"
	Geometry   Geometry

	// Base layers only.
	Offset    float32 // vertical slot of the first unit
	StackStep float32 // height added for every further unit

	// Toppings only.
	Placement Placement
}

// IsTopping reports whether the ingredient is scattered rather than stacked.
func (i Ingredient) IsTopping() bool { return i.Class == Topping }

// DisplayName returns the name if set, otherwise the ID.
func (i Ingredient) DisplayName() string {
	if i.Name != "" {
		return i.Name
	}
	return string(i.ID)
}

// fallback is used for ids that are not in the catalog.
var fallback = Ingredient{
	Name:     "Unknown",
	Category: "Unknown",
	Class:    BaseLayer,
	Color:    "#888888",
	Geometry: Geometry{Shape: ShapeCylinder, Radius: 1.1, RadiusBottom: 1.1, Height: 0.08, Segments: 16},
}

// Catalog is a validated, read-only ingredient table for one dish.
type Catalog struct {
	dish           string
	version        int
	basePriceCents int64
	footprint      float32
	order          []ID
	byID           map[ID]Ingredient
	rank           map[ID]int
}

// Dish returns the dish name, e.g. "pizza".
func (c *Catalog) Dish() string { return c.dish }

// Version returns the table version declared in the source.
func (c *Catalog) Version() int { return c.version }

// BasePriceCents returns the price of the dish with no ingredients.
func (c *Catalog) BasePriceCents() int64 { return c.basePriceCents }

// FootprintRadius returns the radius of the base-layer disc.
func (c *Catalog) FootprintRadius() float32 { return c.footprint }

// Len returns the number of ingredients.
func (c *Catalog) Len() int { return len(c.order) }

// Lookup returns the record for id.
func (c *Catalog) Lookup(id ID) (Ingredient, bool) {
	ing, ok := c.byID[id]
	return ing, ok
}

// Require is Lookup for callers that report unknown ids. The error carries
// ErrCodeUnknownIngredient, which is recoverable.
func (c *Catalog) Require(id ID) (Ingredient, error) {
	ing, ok := c.byID[id]
	if !ok {
		return Fallback(id), errors.New(errors.ErrCodeUnknownIngredient, "unknown ingredient %q for %s", id, c.dish)
	}
	return ing, nil
}

// Contains reports whether id is in the catalog.
func (c *Catalog) Contains(id ID) bool {
	_, ok := c.byID[id]
	return ok
}

// Rank returns the declaration position of id, or -1 if unknown.
func (c *Catalog) Rank(id ID) int {
	if r, ok := c.rank[id]; ok {
		return r
	}
	return -1
}

// IDs returns all ids in declaration order.
func (c *Catalog) IDs() []ID {
	return slices.Clone(c.order)
}

// Ingredients returns all records in declaration order.
func (c *Catalog) Ingredients() []Ingredient {
	out := make([]Ingredient, len(c.order))
	for i, id := range c.order {
		out[i] = c.byID[id]
	}
	return out
}

// BaseLayers returns the base-layer records in canonical stacking order:
// ascending offset, ties broken by id.
func (c *Catalog) BaseLayers() []Ingredient {
	var out []Ingredient
	for _, id := range c.order {
		if ing := c.byID[id]; ing.Class == BaseLayer {
			out = append(out, ing)
		}
	}
	slices.SortStableFunc(out, func(a, b Ingredient) int {
		if d := cmp.Compare(a.Offset, b.Offset); d != 0 {
			return d
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}

// Toppings returns the topping records in declaration order.
func (c *Catalog) Toppings() []Ingredient {
	var out []Ingredient
	for _, id := range c.order {
		if ing := c.byID[id]; ing.Class == Topping {
			out = append(out, ing)
		}
	}
	return out
}

// Categories returns the distinct categories in first-seen order.
func (c *Catalog) Categories() []string {
	var out []string
	for _, id := range c.order {
		if cat := c.byID[id].Category; !slices.Contains(out, cat) {
			out = append(out, cat)
		}
	}
	return out
}

// Fallback returns the record used for an id missing from the catalog.
// The returned record carries id so callers can key pieces by it.
func Fallback(id ID) Ingredient {
	ing := fallback
	ing.ID = id
	return ing
}
