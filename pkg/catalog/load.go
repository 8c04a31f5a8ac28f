package catalog

import (
	"embed"
	"fmt"
	"io"
	"math"
	"os"
	"path"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/foodstack/pkg/errors"
)

//go:embed dishes/*.toml
var dishFS embed.FS

// Definition is the decoded, not yet validated form of a catalog file.
// It can also be written as a Go literal to build synthetic catalogs.
type Definition struct {
	Dish            string                 `toml:"dish"`
	Version         int                    `toml:"version"`
	BasePrice       float64                `toml:"base_price"`
	FootprintRadius float32                `toml:"footprint_radius"`
	Ingredients     []IngredientDefinition `toml:"ingredient"`
}

// IngredientDefinition is one [[ingredient]] table.
type IngredientDefinition struct {
	ID        string    `toml:"id"`
	Name      string    `toml:"name"`
	Category  string    `toml:"category"`
	Class     string    `toml:"class"`
	Price     float64   `toml:"price"`
	Color     string    `toml:"color"`
	Geometry  Geometry  `toml:"geometry"`
	Nutrition Nutrition `toml:"nutrition"`
	Offset    float32   `toml:"offset"`
	StackStep float32   `toml:"stack_step"`
	Placement Placement `toml:"placement"`
}

// Dishes returns the names of the embedded catalogs, sorted.
func Dishes() []string {
	entries, err := dishFS.ReadDir("dishes")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if name, ok := strings.CutSuffix(e.Name(), ".toml"); ok {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

// Default loads the embedded catalog for dish.
func Default(dish string) (*Catalog, error) {
	data, err := dishFS.ReadFile(path.Join("dishes", dish+".toml"))
	if err != nil {
		return nil, errors.New(errors.ErrCodeInvalidDish, "unknown dish %q (available: %s)", dish, strings.Join(Dishes(), ", "))
	}
	return Parse(data)
}

// MustDefault is like [Default] but panics on error. The embedded tables are
// validated by tests, so this is safe for examples and test fixtures.
func MustDefault(dish string) *Catalog {
	c, err := Default(dish)
	if err != nil {
		panic(err)
	}
	return c
}

// LoadFile reads and validates a catalog file.
func LoadFile(p string) (*Catalog, error) {
	data, err := os.ReadFile(p)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "catalog %s", p)
	}
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", p, err)
	}
	return Parse(data)
}

// Load reads and validates a catalog from r.
func Load(r io.Reader) (*Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes TOML catalog data and validates it.
func Parse(data []byte) (*Catalog, error) {
	var def Definition
	md, err := toml.Decode(string(data), &def)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformedCatalog, err, "decode catalog")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeMalformedCatalog, "unknown keys: %s", strings.Join(keys, ", "))
	}
	return New(def)
}

// New validates def and builds a Catalog from it.
func New(def Definition) (*Catalog, error) {
	if err := validateDefinition(def); err != nil {
		return nil, err
	}

	c := &Catalog{
		dish:           def.Dish,
		version:        def.Version,
		basePriceCents: toCents(def.BasePrice),
		footprint:      def.FootprintRadius,
		order:          make([]ID, 0, len(def.Ingredients)),
		byID:           make(map[ID]Ingredient, len(def.Ingredients)),
		rank:           make(map[ID]int, len(def.Ingredients)),
	}

	for i, d := range def.Ingredients {
		class, _ := ParseClass(d.Class)
		geom := d.Geometry
		if geom.Shape == ShapeCylinder && geom.RadiusBottom == 0 {
			geom.RadiusBottom = geom.Radius
		}
		ing := Ingredient{
			ID:         ID(d.ID),
			Name:       d.Name,
			Category:   d.Category,
			Class:      class,
			Nutrition:  d.Nutrition,
			PriceCents: toCents(d.Price),
			Color:      strings.ToLower(d.Color),
			Geometry:   geom,
		}
		switch class {
		case BaseLayer:
			ing.Offset = d.Offset
			ing.StackStep = d.StackStep
			if ing.StackStep == 0 {
				ing.StackStep = geom.Height
			}
		case Topping:
			ing.Placement = d.Placement
		}
		c.order = append(c.order, ing.ID)
		c.byID[ing.ID] = ing
		c.rank[ing.ID] = i
	}
	return c, nil
}

// toCents converts a decimal currency amount to integer cents.
func toCents(v float64) int64 {
	return int64(math.Round(v * 100))
}
