package layout

import (
	"slices"

	"github.com/charmbracelet/log"
	"github.com/chewxy/math32"

	"github.com/matzehuels/foodstack/pkg/catalog"
	"github.com/matzehuels/foodstack/pkg/selection"
)

// Default bounds for pieces_per_unit.
const (
	DefaultMinPieces = 1
	DefaultMaxPieces = 12
)

// Engine lays out selections against one catalog. It holds no mutable state
// and is safe for concurrent use.
type Engine struct {
	cat       *catalog.Catalog
	logger    *log.Logger
	minPieces int
	maxPieces int
	capPieces int
	floor     float32
}

// Option configures an [Engine].
type Option func(*Engine)

// WithLogger sets the logger used to report unknown ids.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithPieceRange clamps every topping's pieces_per_unit into [lo, hi].
// lo is raised to 1 and hi to lo when out of range.
func WithPieceRange(lo, hi int) Option {
	return func(e *Engine) {
		e.minPieces = max(lo, 1)
		e.maxPieces = max(hi, e.minPieces)
	}
}

// WithMaxPieces caps the number of topping pieces per layout. Zero means
// unbounded. When the cap is hit, toppings later in catalog order lose their
// highest-index pieces first and [Layout.Truncated] is set.
func WithMaxPieces(n int) Option {
	return func(e *Engine) { e.capPieces = max(n, 0) }
}

// New creates an engine for cat.
func New(cat *catalog.Catalog, opts ...Option) *Engine {
	e := &Engine{
		cat:       cat,
		logger:    log.Default(),
		minPieces: DefaultMinPieces,
		maxPieces: DefaultMaxPieces,
	}
	for _, opt := range opts {
		opt(e)
	}
	for _, ing := range cat.BaseLayers() {
		e.floor = max(e.floor, ing.Offset+ing.StackStep+ing.Geometry.Height)
	}
	return e
}

// FallbackFloor is the height at which fallback slots for unknown ids start.
// It clears two stacked units of every base layer and depends only on the
// catalog, so selecting or removing base layers never moves fallback pieces.
func (e *Engine) FallbackFloor() float32 { return e.floor }

// Catalog returns the catalog the engine lays out against.
func (e *Engine) Catalog() *catalog.Catalog { return e.cat }

// PiecesPerUnit returns the clamped number of pieces one unit of ing expands
// to. Base layers always expand to one piece.
func (e *Engine) PiecesPerUnit(ing catalog.Ingredient) int {
	if !ing.IsTopping() {
		return 1
	}
	return min(max(ing.Placement.PiecesPerUnit, e.minPieces), e.maxPieces)
}

// Layout places every unit of sel. Order within sel is ignored.
func (e *Engine) Layout(sel []catalog.ID) Layout {
	counts := selection.Count(sel)
	out := Layout{Counts: counts}
	if len(counts) == 0 {
		return out
	}

	for _, ing := range e.cat.BaseLayers() {
		for k := range counts[ing.ID] {
			p := newPiece(ing, k)
			p.Position.Y = ing.Offset + float32(k)*ing.StackStep
			out.Pieces = append(out.Pieces, p)
		}
	}

	budget := e.capPieces
	for _, ing := range e.cat.Toppings() {
		n := counts[ing.ID] * e.PiecesPerUnit(ing)
		if e.capPieces > 0 && n > budget {
			n = budget
			out.Truncated = true
		}
		budget -= n
		for i := range n {
			out.Pieces = append(out.Pieces, scatter(ing, i))
		}
	}
	if out.Truncated {
		e.logger.Warn("piece cap reached, toppings truncated", "max", e.capPieces)
	}

	for id := range counts {
		if !e.cat.Contains(id) {
			out.Unknown = append(out.Unknown, id)
		}
	}
	if len(out.Unknown) == 0 {
		return out
	}
	slices.Sort(out.Unknown)
	e.logger.Warn("unknown ingredients, using fallback", "ingredients", out.Unknown)

	slot := 0
	for _, id := range out.Unknown {
		ing := catalog.Fallback(id)
		for k := range counts[id] {
			p := newPiece(ing, k)
			p.Position.Y = e.floor + float32(slot)*ing.Geometry.Height
			p.Fallback = true
			out.Pieces = append(out.Pieces, p)
			slot++
		}
	}
	return out
}

func newPiece(ing catalog.Ingredient, index int) Piece {
	return Piece{
		Ingredient: ing.ID,
		Index:      index,
		Class:      ing.Class,
		Geometry:   ing.Geometry,
		Color:      ing.Color,
		Opacity:    1,
		Scale:      1,
	}
}

func scatter(ing catalog.Ingredient, i int) Piece {
	pl := ing.Placement
	theta := 2 * math32.Pi * float32(Unit(ing.ID, i, ChannelAngle))
	inner2 := pl.InnerRadius * pl.InnerRadius
	outer2 := pl.OuterRadius * pl.OuterRadius
	r := math32.Sqrt(inner2 + float32(Unit(ing.ID, i, ChannelRadius))*(outer2-inner2))
	// Guard against float32 rounding nudging r past the annulus edges.
	r = min(max(r, pl.InnerRadius), pl.OuterRadius)

	p := newPiece(ing, i)
	p.Position = Vec3{
		X: r * math32.Cos(theta),
		Y: pl.Elevation + (2*float32(Unit(ing.ID, i, ChannelJitter))-1)*pl.Jitter,
		Z: r * math32.Sin(theta),
	}
	p.Yaw = 2 * math32.Pi * float32(Unit(ing.ID, i, ChannelYaw))
	return p
}
