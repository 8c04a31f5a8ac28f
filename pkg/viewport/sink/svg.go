package sink

import (
	"bytes"
	"cmp"
	"encoding/xml"
	"fmt"
	"slices"

	"github.com/chewxy/math32"

	"github.com/matzehuels/foodstack/pkg/catalog"
	"github.com/matzehuels/foodstack/pkg/interact"
	"github.com/matzehuels/foodstack/pkg/layout"
	"github.com/matzehuels/foodstack/pkg/viewport"
)

// RemoveEvent is the event and message type emitted when a piece is clicked.
const RemoveEvent = "foodstack:remove"

const pieceInteractionCSS = `
    .piece { cursor: pointer; transition: opacity 0.2s ease; }
    .piece > * { transition: transform 0.2s ease; transform-origin: center; transform-box: fill-box; }
    .piece.highlight { opacity: %.2f; }
    .piece.highlight > *:not(title) { transform: scale(%.2f); }
    .piece.fallback > * { stroke-dasharray: 3 2; }
    .legend.highlight text { font-weight: bold; }
    .panel-title { font-family: sans-serif; font-size: 13px; fill: #333; }`

const pieceInteractionJS = `
    const targets = document.querySelectorAll('.piece, .legend');
    function highlight(id) {
      targets.forEach(el => el.classList.toggle('highlight', el.dataset.ingredient === id));
    }
    function clearHighlight() {
      targets.forEach(el => el.classList.remove('highlight'));
    }
    targets.forEach(el => {
      el.addEventListener('mouseenter', () => highlight(el.dataset.ingredient));
      el.addEventListener('mouseleave', clearHighlight);
      el.addEventListener('click', () => {
        const detail = { type: '` + RemoveEvent + `', ingredient: el.dataset.ingredient };
        document.dispatchEvent(new CustomEvent('` + RemoveEvent + `', { detail }));
        if (window.parent && window.parent !== window) window.parent.postMessage(detail, '*');
      });
    });`

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	unit      float32
	margin    float32
	names     map[catalog.ID]string
	highlight interact.Highlight
	script    bool
	legend    bool
}

// WithUnit sets the number of pixels per scene unit (default 100).
func WithUnit(px float32) SVGOption {
	return func(r *svgRenderer) {
		if px > 0 {
			r.unit = px
		}
	}
}

// WithNames sets display names used in tooltips and the legend.
func WithNames(names map[catalog.ID]string) SVGOption {
	return func(r *svgRenderer) { r.names = names }
}

// WithHighlight sets the hover look. Defaults to [interact.DefaultHighlight].
func WithHighlight(h interact.Highlight) SVGOption {
	return func(r *svgRenderer) { r.highlight = h }
}

// WithoutScript omits the embedded hover and click script, for static output.
func WithoutScript() SVGOption { return func(r *svgRenderer) { r.script = false } }

// WithoutLegend omits the ingredient legend under the views.
func WithoutLegend() SVGOption { return func(r *svgRenderer) { r.legend = false } }

// NamesFrom collects display names from a catalog for [WithNames].
func NamesFrom(cat *catalog.Catalog) map[catalog.ID]string {
	names := make(map[catalog.ID]string, cat.Len())
	for _, ing := range cat.Ingredients() {
		names[ing.ID] = ing.DisplayName()
	}
	return names
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{
		unit:      100,
		margin:    20,
		highlight: interact.DefaultHighlight,
		script:    true,
		legend:    true,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func (r *svgRenderer) name(id catalog.ID) string {
	if n, ok := r.names[id]; ok && n != "" {
		return n
	}
	return string(id)
}

const (
	titleHeight  = 24
	legendRow    = 22
	legendColumn = 150
)

// geometry of the two panels, in pixels.
type panels struct {
	reach        float32 // scene radius shown
	yLo, yHi     float32 // scene heights shown in the front view
	frontX       float32 // pixel x of scene x=0, front view
	frontY       float32 // pixel y of scene y=0, front view
	topX, topY   float32 // pixel center of the top view
	width        float32
	viewsHeight  float32
	legendTop    float32
	legendPerRow int
}

func (r *svgRenderer) measure(f viewport.Frame) panels {
	lo, hi := f.Layout().Bounds()
	reach := max(f.Plate.Radius, -lo.X, hi.X, -lo.Z, hi.Z, 0.5)
	yLo := min(lo.Y, f.Plate.Y-f.Plate.Height/2)
	yHi := max(hi.Y, f.Plate.Y+f.Plate.Height/2)
	// Leave room for hover growth.
	reach *= max(r.highlight.HoverScale, 1)
	yHi += (yHi - yLo) * (max(r.highlight.HoverScale, 1) - 1)

	side := 2 * reach * r.unit
	frontH := (yHi - yLo) * r.unit
	var p panels
	p.reach, p.yLo, p.yHi = reach, yLo, yHi
	p.width = 3*r.margin + 2*side
	p.frontX = r.margin + side/2
	p.frontY = r.margin + titleHeight + yHi*r.unit
	p.topX = 2*r.margin + side + side/2
	p.viewsHeight = r.margin + titleHeight + max(frontH, side)
	p.topY = r.margin + titleHeight + side/2
	p.legendTop = p.viewsHeight + r.margin
	p.legendPerRow = max(1, int((p.width-2*r.margin)/legendColumn))
	return p
}

// RenderSVG renders the frame as a front elevation beside a top view.
// Pieces of the hovered ingredient start highlighted. Unless [WithoutScript]
// is given, pointing at a piece highlights every piece of its ingredient and
// clicking emits a [RemoveEvent].
//
// The idle rotation of the frame is ignored; views are drawn at rest.
func RenderSVG(f viewport.Frame, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	p := r.measure(f)

	ids := f.Layout().Ingredients()
	height := p.viewsHeight + r.margin
	if r.legend && len(ids) > 0 {
		rows := (len(ids) + p.legendPerRow - 1) / p.legendPerRow
		height += float32(rows)*legendRow + r.margin
	}

	var truncated string
	if f.Truncated {
		truncated = ` data-truncated="true"`
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f"%s>`+"\n",
		p.width, height, p.width, height, truncated)
	fmt.Fprintf(&buf, "  <style>"+pieceInteractionCSS+"\n  </style>\n", r.highlight.HoverOpacity, r.highlight.HoverScale)
	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", escapeXML(f.Background))

	fmt.Fprintf(&buf, `  <text class="panel-title" x="%.1f" y="%.1f">Front</text>`+"\n", r.margin, r.margin+14)
	fmt.Fprintf(&buf, `  <text class="panel-title" x="%.1f" y="%.1f">Top</text>`+"\n", p.topX-p.reach*r.unit, r.margin+14)

	r.renderFront(&buf, f, p)
	r.renderTop(&buf, f, p)
	if r.legend {
		r.renderLegend(&buf, f, p, ids)
	}
	if r.script {
		fmt.Fprintf(&buf, "  <script type=\"text/javascript\"><![CDATA[%s\n  ]]></script>\n", pieceInteractionJS)
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *svgRenderer) openPiece(buf *bytes.Buffer, f viewport.Frame, pc layout.Piece, view string) {
	class := "piece"
	if f.Hovered != "" && pc.Ingredient == f.Hovered {
		class += " highlight"
	}
	if pc.Fallback {
		class += " fallback"
	}
	id := escapeXML(string(pc.Ingredient))
	fmt.Fprintf(buf, `    <g class="%s" id="%s-%s" data-ingredient="%s" opacity="%.2f"><title>%s</title>`,
		class, view, escapeXML(pc.Key()), id, r.highlight.BaseOpacity, escapeXML(r.name(pc.Ingredient)))
}

func (r *svgRenderer) renderFront(buf *bytes.Buffer, f viewport.Frame, p panels) {
	u := r.unit
	px := func(x float32) float32 { return p.frontX + x*u }
	py := func(y float32) float32 { return p.frontY - y*u }

	buf.WriteString("  <g class=\"view front\">\n")
	fmt.Fprintf(buf, `    <rect class="plate" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" stroke="%s"/>`+"\n",
		px(-f.Plate.Radius), py(f.Plate.Y+f.Plate.Height/2), 2*f.Plate.Radius*u, f.Plate.Height*u,
		escapeXML(f.Plate.Color), outline(f.Plate.Color))

	// Back to front: base layers as stacked, toppings by depth.
	pieces := slices.Clone(f.Pieces)
	slices.SortStableFunc(pieces, func(a, b layout.Piece) int {
		if a.Class != b.Class {
			return cmp.Compare(a.Class, b.Class)
		}
		if a.Class == catalog.Topping {
			return cmp.Compare(a.Position.Z, b.Position.Z)
		}
		return 0
	})

	for _, pc := range pieces {
		g := pc.Geometry
		fill, stroke := escapeXML(pc.Color), outline(pc.Color)
		r.openPiece(buf, f, pc, "front")
		x, y := pc.Position.X, pc.Position.Y
		switch {
		case pc.Class == catalog.BaseLayer && g.Shape == catalog.ShapeCylinder:
			rt, rb := g.Radius, g.RadiusBottom
			if rb == 0 {
				rb = rt
			}
			fmt.Fprintf(buf, `<polygon points="%.1f,%.1f %.1f,%.1f %.1f,%.1f %.1f,%.1f" fill="%s" stroke="%s"/>`,
				px(x-rb), py(y), px(x+rb), py(y), px(x+rt), py(y+g.Height), px(x-rt), py(y+g.Height), fill, stroke)
		case g.Shape == catalog.ShapeSphere:
			fmt.Fprintf(buf, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s" stroke="%s"/>`,
				px(x), py(y), g.Radius*u, fill, stroke)
		case g.Shape == catalog.ShapeTorus:
			fmt.Fprintf(buf, `<ellipse cx="%.1f" cy="%.1f" rx="%.1f" ry="%.1f" fill="%s" stroke="%s"/>`,
				px(x), py(y), (g.Radius+g.Height/2)*u, max(g.Height/2*u, 1), fill, stroke)
		default:
			w, h := frontWidth(pc), g.Height
			bottom := y - h/2
			if pc.Class == catalog.BaseLayer {
				bottom = y
			}
			fmt.Fprintf(buf, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" stroke="%s"/>`,
				px(x-w/2), py(bottom+h), w*u, max(h*u, 1), fill, stroke)
		}
		buf.WriteString("</g>\n")
	}
	buf.WriteString("  </g>\n")
}

// frontWidth is the width of a piece seen from the front, accounting for yaw.
func frontWidth(pc layout.Piece) float32 {
	g := pc.Geometry
	switch g.Shape {
	case catalog.ShapeBox:
		c, s := math32.Abs(math32.Cos(pc.Yaw)), math32.Abs(math32.Sin(pc.Yaw))
		return g.Width*c + g.Depth*s
	default:
		return 2 * max(g.Radius, g.RadiusBottom)
	}
}

func (r *svgRenderer) renderTop(buf *bytes.Buffer, f viewport.Frame, p panels) {
	u := r.unit
	px := func(x float32) float32 { return p.topX + x*u }
	pz := func(z float32) float32 { return p.topY + z*u }

	buf.WriteString("  <g class=\"view top\">\n")
	fmt.Fprintf(buf, `    <circle class="plate" cx="%.1f" cy="%.1f" r="%.1f" fill="%s" stroke="%s"/>`+"\n",
		p.topX, p.topY, f.Plate.Radius*u, escapeXML(f.Plate.Color), outline(f.Plate.Color))

	// Bottom to top so higher pieces cover lower ones.
	pieces := slices.Clone(f.Pieces)
	slices.SortStableFunc(pieces, func(a, b layout.Piece) int {
		return cmp.Compare(a.Center().Y, b.Center().Y)
	})

	for _, pc := range pieces {
		g := pc.Geometry
		fill, stroke := escapeXML(pc.Color), outline(pc.Color)
		cx, cy := px(pc.Position.X), pz(pc.Position.Z)
		r.openPiece(buf, f, pc, "top")
		switch g.Shape {
		case catalog.ShapeBox:
			fmt.Fprintf(buf, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" transform="rotate(%.1f %.1f %.1f)" fill="%s" stroke="%s"/>`,
				cx-g.Width*u/2, cy-g.Depth*u/2, g.Width*u, g.Depth*u, degrees(pc.Yaw), cx, cy, fill, stroke)
		case catalog.ShapeTorus:
			fmt.Fprintf(buf, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="none" stroke="%s" stroke-width="%.1f"/>`,
				cx, cy, g.Radius*u, fill, max(g.Height*u, 1))
		default:
			fmt.Fprintf(buf, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s" stroke="%s"/>`,
				cx, cy, g.Extent()*u, fill, stroke)
		}
		buf.WriteString("</g>\n")
	}
	buf.WriteString("  </g>\n")
}

func (r *svgRenderer) renderLegend(buf *bytes.Buffer, f viewport.Frame, p panels, ids []catalog.ID) {
	colors := make(map[catalog.ID]string, len(ids))
	for _, pc := range f.Pieces {
		colors[pc.Ingredient] = pc.Color
	}
	for i, id := range ids {
		x := r.margin + float32(i%p.legendPerRow)*legendColumn
		y := p.legendTop + float32(i/p.legendPerRow)*legendRow
		class := "legend"
		if id == f.Hovered {
			class += " highlight"
		}
		fmt.Fprintf(buf, `  <g class="%s" data-ingredient="%s">`, class, escapeXML(string(id)))
		fmt.Fprintf(buf, `<rect x="%.1f" y="%.1f" width="14" height="14" rx="3" fill="%s" stroke="%s"/>`,
			x, y, escapeXML(colors[id]), outline(colors[id]))
		fmt.Fprintf(buf, `<text x="%.1f" y="%.1f" font-family="sans-serif" font-size="12" fill="%s">%s ×%d</text>`,
			x+20, y+11, textColor(f.Background), escapeXML(r.name(id)), f.Counts[id])
		buf.WriteString("</g>\n")
	}
}

func degrees(rad float32) float32 { return rad * 180 / math32.Pi }

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
