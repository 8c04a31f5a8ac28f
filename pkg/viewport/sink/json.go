package sink

import (
	"encoding/json"

	"github.com/matzehuels/foodstack/pkg/layout"
	"github.com/matzehuels/foodstack/pkg/viewport"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	compact bool
	version string
}

// WithJSONCompact disables indentation.
func WithJSONCompact() JSONOption { return func(r *jsonRenderer) { r.compact = true } }

// WithJSONVersion records the producing tool version in the output.
func WithJSONVersion(v string) JSONOption { return func(r *jsonRenderer) { r.version = v } }

type jsonOutput struct {
	Version string `json:"version,omitempty"`
	viewport.Frame
	// Shadows Frame.Pieces.
	Pieces []jsonPiece `json:"pieces"`
}

type jsonPiece struct {
	Key string `json:"key"`
	layout.Piece
}

// RenderJSON exports the frame as a JSON document. Pieces keep their layout
// order and carry a "key" of the form id-index for stable client-side keys.
//
// RenderJSON does not modify f and is safe to call concurrently.
func RenderJSON(f viewport.Frame, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Version: r.version,
		Frame:   f,
		Pieces:  make([]jsonPiece, len(f.Pieces)),
	}
	for i, p := range f.Pieces {
		out.Pieces[i] = jsonPiece{Key: p.Key(), Piece: p}
	}
	if r.compact {
		return json.Marshal(out)
	}
	return json.MarshalIndent(out, "", "  ")
}
