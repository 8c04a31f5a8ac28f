package viewport

import (
	"time"

	"github.com/matzehuels/foodstack/pkg/catalog"
	"github.com/matzehuels/foodstack/pkg/interact"
	"github.com/matzehuels/foodstack/pkg/layout"
)

// Adapter turns selections into frames.
type Adapter struct {
	engine  *layout.Engine
	tracker *interact.Tracker
	scene   Scene
}

// Option configures an [Adapter].
type Option func(*Adapter)

// WithScene replaces [DefaultScene].
func WithScene(s Scene) Option {
	return func(a *Adapter) { a.scene = s }
}

// New creates an adapter. tracker may be nil, in which case
// [interact.DefaultHighlight] is used and [Adapter.Current] never highlights.
func New(engine *layout.Engine, tracker *interact.Tracker, opts ...Option) *Adapter {
	a := &Adapter{engine: engine, tracker: tracker, scene: DefaultScene()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Scene returns the adapter's scene.
func (a *Adapter) Scene() Scene { return a.scene }

// Render lays out sel and highlights hovered. An empty hovered id means
// nothing is hovered.
func (a *Adapter) Render(sel []catalog.ID, hovered catalog.ID) Frame {
	return a.RenderAt(sel, hovered, 0)
}

// RenderAt is [Adapter.Render] with the idle rotation after elapsed.
func (a *Adapter) RenderAt(sel []catalog.ID, hovered catalog.ID, elapsed time.Duration) Frame {
	l := a.engine.Layout(sel)
	h := interact.DefaultHighlight
	if a.tracker != nil {
		h = a.tracker.Highlight()
	}
	if l.Counts[hovered] == 0 {
		hovered = ""
	}
	return Frame{
		Scene:     a.scene,
		Dish:      a.engine.Catalog().Dish(),
		Rotation:  Rotation(elapsed),
		Hovered:   hovered,
		Pieces:    h.Apply(l.Pieces, hovered, hovered != ""),
		Counts:    l.Counts,
		Unknown:   l.Unknown,
		Truncated: l.Truncated,
	}
}

// Current renders sel with the tracker's hover state.
func (a *Adapter) Current(sel []catalog.ID) Frame {
	var hovered catalog.ID
	if a.tracker != nil {
		hovered, _ = a.tracker.Hovered()
	}
	return a.Render(sel, hovered)
}
