package catalog

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/foodstack/pkg/errors"
)

// validateDefinition checks every rule a catalog must satisfy before any
// layout or aggregation runs against it. All failures carry
// errors.ErrCodeMalformedCatalog.
func validateDefinition(def Definition) error {
	if def.Dish == "" {
		return malformed("", "dish name is required")
	}
	if def.Version < 1 {
		return malformed("", "version must be >= 1, got %d", def.Version)
	}
	if def.BasePrice < 0 {
		return malformed("", "base_price cannot be negative")
	}
	if def.FootprintRadius <= 0 {
		return malformed("", "footprint_radius must be positive")
	}
	if len(def.Ingredients) == 0 {
		return malformed("", "catalog has no ingredients")
	}

	seen := make(map[string]bool, len(def.Ingredients))
	for _, d := range def.Ingredients {
		if err := errors.ValidateIngredientID(d.ID); err != nil {
			return errors.Wrap(errors.ErrCodeMalformedCatalog, err, "ingredient id")
		}
		if seen[d.ID] {
			return malformed(d.ID, "duplicate id")
		}
		seen[d.ID] = true

		if err := validateIngredient(d, def.FootprintRadius); err != nil {
			return err
		}
	}
	return nil
}

func validateIngredient(d IngredientDefinition, footprint float32) error {
	class, err := ParseClass(d.Class)
	if err != nil {
		return malformed(d.ID, "%v", err)
	}
	if d.Price < 0 {
		return malformed(d.ID, "price cannot be negative")
	}
	if d.Color == "" {
		return malformed(d.ID, "color is required")
	}
	if _, err := colorful.Hex(d.Color); err != nil {
		return malformed(d.ID, "invalid color %q", d.Color)
	}
	if err := validateNutrition(d.Nutrition); err != nil {
		return malformed(d.ID, "%v", err)
	}
	if err := validateGeometry(d.Geometry); err != nil {
		return malformed(d.ID, "%v", err)
	}

	switch class {
	case BaseLayer:
		if d.StackStep < 0 {
			return malformed(d.ID, "stack_step cannot be negative")
		}
		if d.Placement != (Placement{}) {
			return malformed(d.ID, "placement is only valid for toppings")
		}
	case Topping:
		p := d.Placement
		if p.PiecesPerUnit < 1 {
			return malformed(d.ID, "pieces_per_unit must be >= 1")
		}
		if p.InnerRadius < 0 || p.OuterRadius <= p.InnerRadius {
			return malformed(d.ID, "placement annulus [%g, %g] is empty or inverted", p.InnerRadius, p.OuterRadius)
		}
		if p.OuterRadius > footprint {
			return malformed(d.ID, "outer_radius %g exceeds footprint_radius %g", p.OuterRadius, footprint)
		}
		if p.Jitter < 0 {
			return malformed(d.ID, "jitter cannot be negative")
		}
	}
	return nil
}

func validateNutrition(n Nutrition) error {
	fields := []struct {
		name string
		v    float64
	}{
		{"calories", n.Calories},
		{"protein", n.Protein},
		{"carbs", n.Carbs},
		{"fat", n.Fat},
		{"fiber", n.Fiber},
		{"sodium", n.Sodium},
	}
	for _, f := range fields {
		if f.v < 0 {
			return fmt.Errorf("nutrition.%s cannot be negative", f.name)
		}
	}
	return nil
}

func validateGeometry(g Geometry) error {
	switch g.Shape {
	case ShapeCylinder:
		if g.Radius <= 0 || g.Height <= 0 || g.RadiusBottom < 0 {
			return fmt.Errorf("cylinder needs positive radius and height")
		}
	case ShapeSphere:
		if g.Radius <= 0 {
			return fmt.Errorf("sphere needs a positive radius")
		}
	case ShapeBox:
		if g.Width <= 0 || g.Depth <= 0 || g.Height <= 0 {
			return fmt.Errorf("box needs positive width, depth and height")
		}
	case ShapeTorus:
		if g.Radius <= 0 || g.Height <= 0 {
			return fmt.Errorf("torus needs positive radius and tube height")
		}
	case "":
		return fmt.Errorf("geometry.shape is required")
	default:
		return fmt.Errorf("unknown shape %q", g.Shape)
	}
	if g.Segments < 0 {
		return fmt.Errorf("segments cannot be negative")
	}
	return nil
}

func malformed(id, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if id == "" {
		return errors.New(errors.ErrCodeMalformedCatalog, "%s", msg)
	}
	return errors.New(errors.ErrCodeMalformedCatalog, "ingredient %q: %s", id, msg)
}
