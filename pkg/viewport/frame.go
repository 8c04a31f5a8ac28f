package viewport

import (
	"github.com/chewxy/math32"

	"github.com/matzehuels/foodstack/pkg/catalog"
	"github.com/matzehuels/foodstack/pkg/layout"
)

// Camera is a perspective camera looking at the origin.
type Camera struct {
	Position layout.Vec3 `json:"position" toml:"position"`
	FOV      float32     `json:"fov" toml:"fov"`
}

// Orbit limits the interactive orbit control. Angles are radians.
type Orbit struct {
	EnablePan     bool    `json:"enable_pan" toml:"enable_pan"`
	EnableZoom    bool    `json:"enable_zoom" toml:"enable_zoom"`
	EnableRotate  bool    `json:"enable_rotate" toml:"enable_rotate"`
	MinDistance   float32 `json:"min_distance" toml:"min_distance"`
	MaxDistance   float32 `json:"max_distance" toml:"max_distance"`
	MinPolarAngle float32 `json:"min_polar_angle" toml:"min_polar_angle"`
	MaxPolarAngle float32 `json:"max_polar_angle" toml:"max_polar_angle"`
}

// LightKind is the type of a light source.
type LightKind string

const (
	Ambient     LightKind = "ambient"
	Directional LightKind = "directional"
	Point       LightKind = "point"
)

// Light describes one light source. Position is ignored for ambient lights.
type Light struct {
	Kind       LightKind   `json:"kind" toml:"kind"`
	Position   layout.Vec3 `json:"position" toml:"position"`
	Intensity  float32     `json:"intensity" toml:"intensity"`
	CastShadow bool        `json:"cast_shadow,omitempty" toml:"cast_shadow"`
}

// Plate is the serving plate drawn under the dish.
type Plate struct {
	Radius   float32 `json:"radius" toml:"radius"`
	Height   float32 `json:"height" toml:"height"`
	Y        float32 `json:"y" toml:"y"`
	Color    string  `json:"color" toml:"color"`
	Segments int     `json:"segments" toml:"segments"`
}

// Scene holds the parts of a frame that do not depend on the selection.
type Scene struct {
	Camera      Camera      `json:"camera" toml:"camera"`
	Orbit       Orbit       `json:"orbit" toml:"orbit"`
	Lights      []Light     `json:"lights" toml:"lights"`
	Plate       Plate       `json:"plate" toml:"plate"`
	GroupOffset layout.Vec3 `json:"group_offset" toml:"group_offset"`
	Background  string      `json:"background" toml:"background"`
}

// DefaultScene returns the stock scene.
func DefaultScene() Scene {
	return Scene{
		Camera: Camera{Position: layout.Vec3{Y: 2, Z: 5}, FOV: 50},
		Orbit: Orbit{
			EnableZoom:    true,
			EnableRotate:  true,
			MinDistance:   3,
			MaxDistance:   8,
			MinPolarAngle: math32.Pi / 6,
			MaxPolarAngle: 5 * math32.Pi / 6,
		},
		Lights: []Light{
			{Kind: Ambient, Intensity: 0.4},
			{Kind: Directional, Position: layout.Vec3{X: 10, Y: 10, Z: 5}, Intensity: 1, CastShadow: true},
			{Kind: Point, Position: layout.Vec3{X: -10, Y: -10, Z: -10}, Intensity: 0.2},
		},
		Plate:       Plate{Radius: 2, Height: 0.1, Y: -0.8, Color: "#e8e8e8", Segments: 32},
		GroupOffset: layout.Vec3{Y: -1},
		Background:  "#f1c40f",
	}
}

// Frame is everything needed to draw one frame.
type Frame struct {
	Scene
	Dish     string             `json:"dish"`
	Rotation float32            `json:"rotation"`
	Hovered  catalog.ID         `json:"hovered,omitempty"`
	Pieces   []layout.Piece     `json:"pieces"`
	Counts   map[catalog.ID]int `json:"counts"`
	Unknown  []catalog.ID       `json:"unknown,omitempty"`

	// Truncated is set when a piece cap dropped topping pieces.
	Truncated bool `json:"truncated,omitempty"`
}

// Layout returns the frame's pieces as a layout value, for bounds and grouping.
func (f Frame) Layout() layout.Layout {
	return layout.Layout{Pieces: f.Pieces, Counts: f.Counts, Unknown: f.Unknown, Truncated: f.Truncated}
}
