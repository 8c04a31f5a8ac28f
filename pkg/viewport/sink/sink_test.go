package sink

import (
	"bytes"
	"encoding/json"
	"image/png"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/foodstack/pkg/catalog"
	"github.com/matzehuels/foodstack/pkg/layout"
	"github.com/matzehuels/foodstack/pkg/selection"
	"github.com/matzehuels/foodstack/pkg/viewport"
)

func frame(t *testing.T, dish string, hovered catalog.ID, ids ...string) viewport.Frame {
	t.Helper()
	cat, err := catalog.Default(dish)
	require.NoError(t, err)
	eng := layout.New(cat, layout.WithLogger(log.New(io.Discard)))
	return viewport.New(eng, nil).Render(selection.Of(ids...), hovered)
}

func TestRenderJSON(t *testing.T) {
	f := frame(t, "pizza", "pepperoni", "dough", "pepperoni")

	data, err := RenderJSON(f, WithJSONVersion("v1.2.3"))
	require.NoError(t, err)

	var out struct {
		Version string `json:"version"`
		Dish    string `json:"dish"`
		Hovered string `json:"hovered"`
		Camera  struct {
			FOV float32 `json:"fov"`
		} `json:"camera"`
		Counts map[string]int `json:"counts"`
		Pieces []struct {
			Key        string  `json:"key"`
			Ingredient string  `json:"ingredient"`
			Class      string  `json:"class"`
			Scale      float32 `json:"scale"`
		} `json:"pieces"`
	}
	require.NoError(t, json.Unmarshal(data, &out))

	assert.Equal(t, "v1.2.3", out.Version)
	assert.Equal(t, "pizza", out.Dish)
	assert.Equal(t, "pepperoni", out.Hovered)
	assert.Equal(t, float32(50), out.Camera.FOV)
	assert.Equal(t, map[string]int{"dough": 1, "pepperoni": 1}, out.Counts)
	require.Len(t, out.Pieces, 7)
	assert.Equal(t, "dough-0", out.Pieces[0].Key)
	assert.Equal(t, "base", out.Pieces[0].Class)
	assert.Equal(t, "topping", out.Pieces[1].Class)
	assert.Equal(t, float32(1.1), out.Pieces[1].Scale)
	assert.True(t, bytes.Contains(data, []byte("\n  ")), "indented by default")
}

func TestRenderJSONEmpty(t *testing.T) {
	data, err := RenderJSON(frame(t, "burger", ""), WithJSONCompact())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"pieces":[]`)
	assert.NotContains(t, string(data), "\n")
}

func TestTruncatedFrame(t *testing.T) {
	cat, err := catalog.Default("pizza")
	require.NoError(t, err)
	eng := layout.New(cat, layout.WithLogger(log.New(io.Discard)), layout.WithMaxPieces(2))
	f := viewport.New(eng, nil).Render(selection.Of("dough", "olives"), "")
	require.True(t, f.Truncated)

	data, err := RenderJSON(f, WithJSONCompact())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"truncated":true`)
	assert.Contains(t, string(RenderSVG(f)), `data-truncated="true"`)

	full := frame(t, "pizza", "", "dough", "olives")
	data, err = RenderJSON(full, WithJSONCompact())
	require.NoError(t, err)
	assert.NotContains(t, string(data), "truncated")
	assert.NotContains(t, string(RenderSVG(full)), "data-truncated")
}

func TestRenderSVG(t *testing.T) {
	f := frame(t, "pizza", "", "dough", "sauce", "olives")
	svg := string(RenderSVG(f, WithNames(map[catalog.ID]string{"olives": "Black Olives"})))

	assert.True(t, strings.HasPrefix(svg, "<svg "))
	assert.True(t, strings.HasSuffix(svg, "</svg>\n"))
	// Every piece appears once per view.
	assert.Equal(t, 2*len(f.Pieces), strings.Count(svg, `class="piece`))
	assert.Equal(t, 2*6, strings.Count(svg, `data-ingredient="olives" opacity`))
	assert.Contains(t, svg, "Black Olives")
	assert.Contains(t, svg, RemoveEvent)
	assert.Contains(t, svg, "postMessage")
	assert.NotContains(t, svg, "highlight\"", "nothing hovered")
}

func TestRenderSVGHovered(t *testing.T) {
	f := frame(t, "burger", "meat", "bun", "meat", "meat", "bun")
	svg := string(RenderSVG(f))

	assert.Equal(t, 2*2, strings.Count(svg, `class="piece highlight" id=`))
	assert.Contains(t, svg, `class="legend highlight" data-ingredient="meat"`)
	assert.Contains(t, svg, "meat ×2")
}

func TestRenderSVGOptions(t *testing.T) {
	f := frame(t, "pizza", "", "dough")
	svg := string(RenderSVG(f, WithoutScript(), WithoutLegend(), WithUnit(50)))

	assert.NotContains(t, svg, "<script")
	assert.NotContains(t, svg, `class="legend`)
	assert.Contains(t, svg, `class="piece"`)
}

func TestRenderSVGEscapesUnknownIDs(t *testing.T) {
	f := frame(t, "pizza", "", `<evil>&"`)
	svg := string(RenderSVG(f))

	assert.NotContains(t, svg, "<evil>")
	assert.Contains(t, svg, "&lt;evil&gt;")
	assert.Contains(t, svg, `class="piece fallback"`)
}

func TestRenderPNG(t *testing.T) {
	f := frame(t, "pizza", "basil", "dough", "sauce", "cheese", "basil", "peppers", "olives", "nope")

	data, err := RenderPNG(f, WithSize(128), WithRotation())
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 128, img.Bounds().Dx())
	assert.Equal(t, 128, img.Bounds().Dy())

	// The corner shows the background, the center the dish.
	bg := parseColor(f.Background)
	r, g, b, _ := img.At(0, 0).RGBA()
	assert.InDelta(t, bg.R*0xffff, float64(r), 0x200)
	assert.InDelta(t, bg.G*0xffff, float64(g), 0x200)
	assert.InDelta(t, bg.B*0xffff, float64(b), 0x200)
	cr, cg, cb, _ := img.At(64, 64).RGBA()
	assert.False(t, cr == r && cg == g && cb == b, "center should not be background")
}

func TestRenderPNGEmpty(t *testing.T) {
	data, err := RenderPNG(frame(t, "burger", ""))
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 512, img.Bounds().Dx())
}

func TestOutline(t *testing.T) {
	assert.NotEqual(t, "#e8c07d", outline("#e8c07d"))
	assert.Equal(t, "#000000", outline("#000000"))
	assert.Equal(t, "#000000", textColor("#f1c40f"))
	assert.Equal(t, "#ffffff", textColor("#2c3e50"))
}
