package sink

import "github.com/lucasb-eyer/go-colorful"

var (
	black = colorful.Color{}
	white = colorful.Color{R: 1, G: 1, B: 1}
)

// parseColor parses a hex color, falling back to mid gray.
func parseColor(hex string) colorful.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{R: 0.5, G: 0.5, B: 0.5}
	}
	return c
}

// outline returns a darker shade of hex for strokes.
func outline(hex string) string {
	return parseColor(hex).BlendLab(black, 0.35).Clamped().Hex()
}

// textColor picks black or white for legible text on hex.
func textColor(hex string) string {
	if l, _, _ := parseColor(hex).Lab(); l > 0.6 {
		return black.Hex()
	}
	return white.Hex()
}
