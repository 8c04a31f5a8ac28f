package cli

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/chewxy/math32"

	"github.com/matzehuels/foodstack/pkg/catalog"
	"github.com/matzehuels/foodstack/pkg/interact"
	"github.com/matzehuels/foodstack/pkg/layout"
	"github.com/matzehuels/foodstack/pkg/nutrition"
	"github.com/matzehuels/foodstack/pkg/observability"
	"github.com/matzehuels/foodstack/pkg/selection"
	"github.com/matzehuels/foodstack/pkg/viewport"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	panelStyle        = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim).Padding(0, 1)
)

// Plate plot size in terminal cells. Cells are about twice as tall as wide.
const (
	plotCols = 33
	plotRows = 15
)

// tickInterval drives the idle sway of the plate plot.
const tickInterval = 100 * time.Millisecond

type tickMsg struct{}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(time.Time) tea.Msg { return tickMsg{} })
}

// =============================================================================
// basket - selection owned by the builder
// =============================================================================

// basket holds the current selection. The tracker's click callback removes
// from it, so removal goes through the same path a pointer click would.
type basket struct {
	sel selection.Selection
}

func (b *basket) remove(id catalog.ID) {
	b.sel, _ = b.sel.RemoveOne(id)
}

// =============================================================================
// BuildModel - Interactive dish builder
// =============================================================================

// BuildModel is the bubbletea model for building a dish ingredient by
// ingredient with live nutrition and price.
type BuildModel struct {
	ctx     context.Context
	cat     *catalog.Catalog
	agg     *nutrition.Aggregator
	adapter *viewport.Adapter
	tracker *interact.Tracker
	basket  *basket

	ids     []catalog.ID // catalog order
	cursor  int
	elapsed time.Duration
	sway    bool
}

// NewBuildModel creates a builder for cat starting from initial. engine
// lays out every frame; h styles the hovered ingredient.
func NewBuildModel(ctx context.Context, cat *catalog.Catalog, engine *layout.Engine, h interact.Highlight, initial selection.Selection) BuildModel {
	b := &basket{sel: slices.Clone(initial)}
	tracker := interact.New(b.remove, interact.WithHighlight(h))
	m := BuildModel{
		ctx:     ctx,
		cat:     cat,
		agg:     nutrition.New(cat),
		adapter: viewport.New(engine, tracker),
		tracker: tracker,
		basket:  b,
		ids:     cat.IDs(),
		sway:    true,
	}
	m.hover()
	return m
}

// Selection returns the current selection.
func (m BuildModel) Selection() selection.Selection {
	return slices.Clone(m.basket.sel)
}

// Summary aggregates the current selection.
func (m BuildModel) Summary() nutrition.Summary {
	return m.agg.Aggregate(m.basket.sel)
}

// Frame renders the current selection with the tracker's hover state.
func (m BuildModel) Frame() viewport.Frame {
	hovered, _ := m.tracker.Hovered()
	return m.adapter.RenderAt(m.basket.sel, hovered, m.elapsed)
}

// Cursor returns the ingredient under the cursor.
func (m BuildModel) Cursor() catalog.ID {
	if len(m.ids) == 0 {
		return ""
	}
	return m.ids[m.cursor]
}

func (m BuildModel) Init() tea.Cmd {
	return tick()
}

func (m BuildModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if m.sway {
			m.elapsed += tickInterval
		}
		return m, tick()
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
			m.hover()
		case "down", "j":
			if m.cursor < len(m.ids)-1 {
				m.cursor++
			}
			m.hover()
		case "enter", " ", "+", "a", "right", "l":
			if id := m.Cursor(); id != "" {
				m.basket.sel = m.basket.sel.Add(id)
				m.hover()
			}
		case "-", "x", "backspace", "left", "h":
			m.remove(m.Cursor())
		case "c":
			m.basket.sel = nil
			m.tracker.Sync(nil)
		case "s":
			m.sway = !m.sway
		}
	}
	return m, nil
}

// hover moves the highlight to the ingredient under the cursor when it has
// pieces on the plate.
func (m *BuildModel) hover() {
	id := m.Cursor()
	if id == "" || m.basket.sel.Count(id) == 0 {
		m.tracker.ClearHover()
		return
	}
	if !m.tracker.IsHovered(id) {
		m.tracker.SetHover(id)
		observability.Interaction().OnHover(m.ctx, string(id))
	}
}

// remove sends a removal intent for id through the tracker, then releases
// the hover if the last unit is gone.
func (m *BuildModel) remove(id catalog.ID) {
	if id == "" || m.basket.sel.Count(id) == 0 {
		return
	}
	observability.Interaction().OnRemoveIntent(m.ctx, string(id))
	m.tracker.Click(id)
	m.tracker.Sync(m.basket.sel.Counts())
}

func (m BuildModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Build a " + m.cat.Dish()))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎/+ add  -/x remove  c clear  s sway  q done"))
	b.WriteString("\n\n")

	frame := m.Frame()
	list := panelStyle.Render(m.viewList())
	plot := panelStyle.Render(plotTopView(frame, max(frame.Plate.Radius, m.cat.FootprintRadius())*1.05, plotCols, plotRows))
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, list, " ", plot))
	b.WriteString("\n")
	b.WriteString(m.viewTotals())

	return b.String()
}

func (m BuildModel) viewList() string {
	counts := m.basket.sel.Counts()
	var b strings.Builder
	for i, id := range m.ids {
		ing, _ := m.cat.Lookup(id)
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		count := "   "
		if n := counts[id]; n > 0 {
			count = fmt.Sprintf("×%-2d", n)
		}
		line := fmt.Sprintf("%s%-14s %s %7s", cursor, ing.DisplayName(), count, nutrition.FormatCents(ing.PriceCents))

		b.WriteString(swatch(ing.Color))
		b.WriteString(" ")
		switch {
		case i == m.cursor:
			b.WriteString(listSelectedStyle.Render(line))
		case counts[id] == 0:
			b.WriteString(listDimStyle.Render(line))
		default:
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (m BuildModel) viewTotals() string {
	sum := m.Summary()
	t := sum.Totals
	line := fmt.Sprintf("%s kcal  %s protein  %s carbs  %s fat  %s fiber  %s sodium",
		StyleNumber.Render(fmt.Sprintf("%.0f", t.Calories)),
		StyleNumber.Render(fmt.Sprintf("%.0fg", t.Protein)),
		StyleNumber.Render(fmt.Sprintf("%.0fg", t.Carbs)),
		StyleNumber.Render(fmt.Sprintf("%.0fg", t.Fat)),
		StyleNumber.Render(fmt.Sprintf("%.0fg", t.Fiber)),
		StyleNumber.Render(fmt.Sprintf("%.0fmg", t.Sodium)),
	)
	out := line + "\n" + StylePrice.Render(sum.Price.String())
	if badges := renderBadges(nutrition.Badges(t)); badges != "" {
		out += "  " + badges
	}
	return out
}

// =============================================================================
// Plate plot
// =============================================================================

type plotCell struct {
	glyph string
	color string
	bold  bool
}

// plotTopView draws the frame seen from above onto a cols×rows character
// grid covering [-radius, radius] on both axes. The frame's rotation is
// applied to the view, not to the pieces. Higher pieces overdraw lower ones.
func plotTopView(f viewport.Frame, radius float32, cols, rows int) string {
	grid := make([][]plotCell, rows)
	for r := range grid {
		grid[r] = make([]plotCell, cols)
	}

	cx, cy := float32(cols-1)/2, float32(rows-1)/2
	world := func(col, row int) (x, z float32) {
		return (float32(col) - cx) / cx * radius, (float32(row) - cy) / cy * radius
	}
	plate := f.Plate.Radius
	for r := range rows {
		for c := range cols {
			if x, z := world(c, r); x*x+z*z <= plate*plate {
				grid[r][c] = plotCell{glyph: "·", color: f.Plate.Color}
			}
		}
	}

	pieces := slices.Clone(f.Pieces)
	slices.SortStableFunc(pieces, func(a, b layout.Piece) int {
		return cmp.Compare(a.Center().Y, b.Center().Y)
	})

	sin, cos := math32.Sin(f.Rotation), math32.Cos(f.Rotation)
	bold := func(p layout.Piece) bool { return f.Hovered != "" && p.Ingredient == f.Hovered }
	for _, p := range pieces {
		x := p.Position.X*cos - p.Position.Z*sin
		z := p.Position.X*sin + p.Position.Z*cos
		if p.Class == catalog.BaseLayer {
			ext := p.Geometry.Extent() * p.Scale
			for r := range rows {
				for c := range cols {
					wx, wz := world(c, r)
					if dx, dz := wx-x, wz-z; dx*dx+dz*dz <= ext*ext {
						grid[r][c] = plotCell{glyph: "█", color: p.Color, bold: bold(p)}
					}
				}
			}
			continue
		}
		c := int(math32.Floor(x/radius*cx + cx + 0.5))
		r := int(math32.Floor(z/radius*cy + cy + 0.5))
		if r < 0 || r >= rows || c < 0 || c >= cols {
			continue
		}
		grid[r][c] = plotCell{glyph: toppingGlyph(p), color: p.Color, bold: bold(p)}
	}

	var b strings.Builder
	for r, row := range grid {
		for _, cell := range row {
			if cell.glyph == "" {
				b.WriteString(" ")
				continue
			}
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(cell.color))
			if cell.bold {
				style = style.Bold(true).Reverse(true)
			}
			b.WriteString(style.Render(cell.glyph))
		}
		if r < rows-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func toppingGlyph(p layout.Piece) string {
	switch p.Geometry.Shape {
	case catalog.ShapeTorus:
		return "○"
	case catalog.ShapeBox:
		return "■"
	case catalog.ShapeSphere:
		return "•"
	default:
		return "●"
	}
}
