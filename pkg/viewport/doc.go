// Package viewport assembles everything a 3D substrate needs to draw one
// frame of a dish: camera, orbit limits, lights, the serving plate, and the
// highlighted pieces from the layout engine.
//
// A [Frame] is a plain value. Sinks in the sink subpackage turn it into JSON
// for a WebGL client, an interactive SVG, or a PNG preview.
//
// The idle sway of the dish is [Rotation], a pure function of elapsed time
// applied to the whole group. It never changes piece positions.
package viewport
