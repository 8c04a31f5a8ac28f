package viewport

import (
	"time"

	"github.com/chewxy/math32"
)

// Idle sway parameters.
const (
	SwaySpeed     = 0.3 // radians of phase per second
	SwayAmplitude = 0.1 // radians
)

// Rotation returns the yaw of the whole dish group after elapsed time of
// idle animation: sin(t·0.3)·0.1 with t in seconds.
func Rotation(elapsed time.Duration) float32 {
	t := float32(elapsed.Seconds())
	return math32.Sin(t*SwaySpeed) * SwayAmplitude
}
