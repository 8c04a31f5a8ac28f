package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/foodstack/pkg/catalog"
	"github.com/matzehuels/foodstack/pkg/errors"
	"github.com/matzehuels/foodstack/pkg/nutrition"
	"github.com/matzehuels/foodstack/pkg/observability"
)

func quietRunner() *Runner {
	return NewRunner(log.New(io.Discard))
}

func TestExecutePizzaScenario(t *testing.T) {
	res, err := quietRunner().Execute(context.Background(), Options{
		Dish:      "pizza",
		Selection: []string{"dough", "sauce", "cheese", "pepperoni"},
		Hovered:   "pepperoni",
		Formats:   []string{FormatSVG, FormatPNG, FormatJSON},
		ImageSize: 64,
	})
	require.NoError(t, err)

	assert.Equal(t, "pizza", res.Catalog.Dish())
	assert.Equal(t, 9, res.Layout.Len())
	assert.Equal(t, 9, res.Stats.Pieces)
	assert.Equal(t, 4, res.Stats.Units)
	assert.Zero(t, res.Stats.Unknown)
	assert.Equal(t, float64(520), res.Summary.Totals.Calories)
	assert.Equal(t, "$12.99", res.Summary.Price.String())
	assert.Equal(t, []nutrition.Badge{nutrition.HighProtein}, res.Badges)

	assert.Equal(t, catalog.ID("pepperoni"), res.Frame.Hovered)
	assert.Len(t, res.Frame.Pieces, 9)
	assert.Equal(t, res.Layout.Pieces[0].Position, res.Frame.Pieces[0].Position)

	require.Len(t, res.Artifacts, 3)
	assert.True(t, bytes.HasPrefix(res.Artifacts[FormatSVG], []byte("<svg")))
	assert.True(t, bytes.HasPrefix(res.Artifacts[FormatPNG], []byte("\x89PNG")))
	assert.True(t, json.Valid(res.Artifacts[FormatJSON]))
	assert.Contains(t, string(res.Artifacts[FormatSVG]), "Pepperoni", "display names come from the catalog")
}

func TestExecuteUnknownIngredient(t *testing.T) {
	var buf bytes.Buffer
	res, err := NewRunner(log.New(&buf)).Execute(context.Background(), Options{
		Dish:      "burger",
		Selection: []string{"bun", "pineapple"},
		Formats:   []string{FormatJSON},
	})
	require.NoError(t, err, "unknown ids are recoverable")

	assert.Equal(t, []catalog.ID{"pineapple"}, res.Layout.Unknown)
	assert.Equal(t, []catalog.ID{"pineapple"}, res.Summary.Unknown)
	assert.Equal(t, 1, res.Stats.Unknown)
	assert.Equal(t, int64(799), res.Summary.Price.Total())
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("unknown ingredients")), "reported once")
}

func TestExecuteNonSlugUnknownIngredients(t *testing.T) {
	for _, id := range []string{"Pepperoni", "extra cheese", "jalapeño"} {
		t.Run(id, func(t *testing.T) {
			var buf bytes.Buffer
			res, err := NewRunner(log.New(&buf)).Execute(context.Background(), Options{
				Dish:      "pizza",
				Selection: []string{"dough", id},
				Hovered:   id,
				Formats:   []string{FormatSVG, FormatJSON},
			})
			require.NoError(t, err)

			assert.Equal(t, []catalog.ID{catalog.ID(id)}, res.Layout.Unknown)
			assert.Equal(t, []catalog.ID{catalog.ID(id)}, res.Summary.Unknown)
			assert.Equal(t, int64(999), res.Summary.Price.Total(), "unknown ids add nothing")
			require.Equal(t, 2, res.Layout.Len())
			assert.True(t, res.Layout.Pieces[1].Fallback)
			assert.Equal(t, catalog.ID(id), res.Layout.Pieces[1].Ingredient)
			assert.NotEmpty(t, res.Artifacts[FormatSVG])
			assert.Contains(t, buf.String(), "unknown ingredients")
		})
	}
}

func TestExecuteEmptySelection(t *testing.T) {
	res, err := quietRunner().Execute(context.Background(), Options{Dish: "burger", Formats: []string{FormatSVG}})
	require.NoError(t, err)
	assert.Zero(t, res.Layout.Len())
	assert.Equal(t, nutrition.Totals{}, res.Summary.Totals)
	assert.Equal(t, int64(799), res.Summary.Price.Total())
	assert.Equal(t, []nutrition.Badge{nutrition.LowSodium}, res.Badges)
	assert.NotEmpty(t, res.Artifacts[FormatSVG])
}

func TestExecuteMalformedCatalogIsFatal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
dish = "soup"
version = 1
base_price = 1.0
footprint_radius = 1.0

[[ingredient]]
id = "broth"
class = "liquid"
color = "#aa8800"
geometry = { shape = "cylinder", radius = 1.0, height = 0.5 }
`), 0o644))

	_, err := quietRunner().Execute(context.Background(), Options{CatalogPath: path})
	require.Error(t, err)
	assert.True(t, errors.Fatal(err))
}

func TestExecuteCustomCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tart.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
dish = "tart"
version = 2
base_price = 4.5
footprint_radius = 1.0

[[ingredient]]
id = "shell"
name = "Shell"
category = "Base"
class = "base"
price = 0.0
color = "#d2a679"
geometry = { shape = "cylinder", radius = 1.0, height = 0.2 }
nutrition = { calories = 200.0 }

[[ingredient]]
id = "berry"
name = "Berry"
category = "Toppings"
class = "topping"
price = 0.25
color = "#8e24aa"
geometry = { shape = "sphere", radius = 0.06 }
nutrition = { calories = 4.0, fiber = 0.5 }
placement = { inner_radius = 0.0, outer_radius = 0.8, elevation = 0.26, jitter = 0.0, pieces_per_unit = 7 }
`), 0o644))

	res, err := quietRunner().Execute(context.Background(), Options{
		CatalogPath: path,
		Selection:   []string{"shell", "berry", "berry"},
		Formats:     []string{FormatJSON},
	})
	require.NoError(t, err)
	assert.Equal(t, "tart", res.Catalog.Dish())
	assert.Equal(t, 1+14, res.Layout.Len())
	assert.Equal(t, int64(500), res.Summary.Price.Total())
	assert.Equal(t, float64(208), res.Summary.Totals.Calories)
}

func TestExecuteInvalidOptions(t *testing.T) {
	_, err := quietRunner().Execute(context.Background(), Options{Dish: "taco"})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidDish))
}

func TestExecuteCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := quietRunner().Execute(ctx, Options{Selection: []string{"dough"}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExecuteHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetPipelineHooks(hooks)
	t.Cleanup(observability.Reset)

	_, err := quietRunner().Execute(context.Background(), Options{
		Selection: []string{"dough", "olives"},
		Formats:   []string{FormatJSON},
	})
	require.NoError(t, err)

	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	assert.Equal(t, []string{"catalog", "layout-start", "layout", "aggregate", "render-start", "render"}, hooks.events)
	assert.Equal(t, 7, hooks.pieces)
	assert.Equal(t, int64(999+75), hooks.cents)
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	mu     sync.Mutex
	events []string
	pieces int
	cents  int64
}

func (h *recordingHooks) record(e string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, e)
}

func (h *recordingHooks) OnCatalogLoad(context.Context, string, string, int, error) {
	h.record("catalog")
}

func (h *recordingHooks) OnLayoutStart(context.Context, string, int) { h.record("layout-start") }

func (h *recordingHooks) OnLayoutComplete(_ context.Context, _ string, pieces, _ int, _ time.Duration) {
	h.record("layout")
	h.mu.Lock()
	h.pieces = pieces
	h.mu.Unlock()
}

func (h *recordingHooks) OnAggregate(_ context.Context, _ string, cents int64, _ time.Duration) {
	h.record("aggregate")
	h.mu.Lock()
	h.cents = cents
	h.mu.Unlock()
}

func (h *recordingHooks) OnRenderStart(context.Context, []string) { h.record("render-start") }

func (h *recordingHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {
	h.record("render")
}

func TestExecuteExampleFiles(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join("..", "..", "examples", "config.toml"))
	require.NoError(t, err)

	opts := Options{
		CatalogPath: filepath.Join("..", "..", "examples", "tart.toml"),
		Selection:   []string{"shell", "cream", "berry", "berry", "mint"},
		Hovered:     "berry",
		ImageSize:   64,
	}
	cfg.Apply(&opts)
	assert.Equal(t, "burger", opts.Dish, "config fills the dish")
	assert.Equal(t, []string{FormatSVG, FormatPNG}, opts.Formats)

	res, err := quietRunner().Execute(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, "tart", res.Catalog.Dish(), "catalog path wins over the dish")
	assert.Equal(t, 2+14+2, res.Layout.Len())
	assert.Equal(t, int64(450+80+50+10), res.Summary.Price.Total())
	assert.Equal(t, "#ffffff", res.Frame.Background)
	assert.Contains(t, res.Artifacts, FormatSVG)
	assert.Contains(t, res.Artifacts, FormatPNG)
	for _, p := range res.Frame.Pieces {
		if p.Ingredient == "berry" {
			assert.Equal(t, float32(1.15), p.Scale, p.Key())
		}
	}
}
