package sink

import (
	"bytes"
	"cmp"
	"fmt"
	"slices"

	"github.com/fogleman/gg"

	"github.com/matzehuels/foodstack/pkg/catalog"
	"github.com/matzehuels/foodstack/pkg/layout"
	"github.com/matzehuels/foodstack/pkg/viewport"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	size     int
	rotation bool
}

// WithSize sets the image edge length in pixels (default 512).
func WithSize(px int) PNGOption {
	return func(r *pngRenderer) {
		if px > 0 {
			r.size = px
		}
	}
}

// WithRotation draws the dish turned by the frame's idle rotation.
func WithRotation() PNGOption { return func(r *pngRenderer) { r.rotation = true } }

// RenderPNG rasterizes the top view of the frame into a square PNG. Piece
// scale and opacity come from the frame, so a hovered ingredient shows its
// highlight.
func RenderPNG(f viewport.Frame, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{size: 512}
	for _, opt := range opts {
		opt(&r)
	}

	lo, hi := f.Layout().Bounds()
	reach := max(f.Plate.Radius, -lo.X, hi.X, -lo.Z, hi.Z, 0.5) * 1.1
	size := float64(r.size)
	unit := size / (2 * float64(reach))

	dc := gg.NewContext(r.size, r.size)
	dc.SetColor(parseColor(f.Background))
	dc.Clear()

	dc.Translate(size/2, size/2)
	if r.rotation {
		dc.Rotate(float64(f.Rotation))
	}

	setFill(dc, f.Plate.Color, 1)
	dc.DrawCircle(0, 0, float64(f.Plate.Radius)*unit)
	dc.FillPreserve()
	setStroke(dc, f.Plate.Color)
	dc.Stroke()

	pieces := slices.Clone(f.Pieces)
	slices.SortStableFunc(pieces, func(a, b layout.Piece) int {
		return cmp.Compare(a.Center().Y, b.Center().Y)
	})
	for _, p := range pieces {
		drawPiece(dc, p, unit)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func drawPiece(dc *gg.Context, p layout.Piece, unit float64) {
	g := p.Geometry
	scale := float64(max(p.Scale, 0)) * unit
	x, z := float64(p.Position.X)*unit, float64(p.Position.Z)*unit

	dc.Push()
	defer dc.Pop()
	dc.RotateAbout(float64(p.Yaw), x, z)
	if p.Fallback {
		dc.SetDash(4, 3)
	}

	switch g.Shape {
	case catalog.ShapeBox:
		w, d := float64(g.Width)*scale, float64(g.Depth)*scale
		dc.DrawRectangle(x-w/2, z-d/2, w, d)
		setFill(dc, p.Color, p.Opacity)
		dc.FillPreserve()
		setStroke(dc, p.Color)
		dc.Stroke()
	case catalog.ShapeTorus:
		dc.DrawCircle(x, z, float64(g.Radius)*scale)
		dc.SetLineWidth(max(float64(g.Height)*scale, 1))
		setFill(dc, p.Color, p.Opacity)
		dc.Stroke()
	default:
		dc.DrawCircle(x, z, float64(g.Extent())*scale)
		setFill(dc, p.Color, p.Opacity)
		dc.FillPreserve()
		setStroke(dc, p.Color)
		dc.Stroke()
	}
}

func setFill(dc *gg.Context, hex string, opacity float32) {
	c := parseColor(hex)
	dc.SetRGBA(c.R, c.G, c.B, float64(min(max(opacity, 0), 1)))
}

func setStroke(dc *gg.Context, hex string) {
	c := parseColor(outline(hex))
	dc.SetRGB(c.R, c.G, c.B)
	dc.SetLineWidth(1)
}
