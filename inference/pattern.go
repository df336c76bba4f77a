package inference

import (
	"math"
)

// ToPattern maps an output y in [-1, 1] onto a 0..255 brightness code,
// rounding to nearest. Out of range values clamp; NaN is 0.
func ToPattern(y float32) uint8 {
	norm := (y + 1.0) * 0.5
	switch {
	case norm > 1.0:
		norm = 1.0
	case norm >= 0.0:
	default:
		norm = 0.0
	}

	return uint8(math.Round(float64(norm * 255.0)))
}
