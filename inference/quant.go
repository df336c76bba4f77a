package inference

import (
	"math"
)

// Fixed quantization scales of the model.
const (
	PI        = float32(3.14159265) // Phase scale is 2*PI.
	IN_SCALE  = float32(255)        // Normalized input to int8 code span.
	IN_ZERO   = float32(128)        // Input zero point.
	OUT_SCALE = float32(0.0078125)  // 1/128, int8 output code to [-1, 1].
)

// Quantize maps the phase x in [0, 2π] onto an int8 code, so that
// 0 is -128 and 2π is 127. Out of range phases clamp.
func Quantize(x float32) int8 {
	norm := x / (2.0 * PI)
	switch {
	case norm > 1.0:
		norm = 1.0
	case norm >= 0.0:
	default:
		// Negative or NaN.
		norm = 0.0
	}

	// The explicit float32 keeps the product rounded apart from the
	// subtraction; the int32 conversion truncates toward zero.
	return ClampInt8(int32(float32(norm*IN_SCALE) - IN_ZERO))
}

// Dequantize maps an int8 output code onto [-1, 1].
func Dequantize(q int8) float32 {
	y := float32(q) * OUT_SCALE
	if y > 1.0 {
		y = 1.0
	}
	if y < -1.0 {
		y = -1.0
	}
	return y
}

// ClampInt8 saturates v to [-128, 127].
func ClampInt8(v int32) int8 {
	if v > math.MaxInt8 {
		return math.MaxInt8
	}
	if v < math.MinInt8 {
		return math.MinInt8
	}
	return int8(v)
}

// ReluClamp zeroes negative v and saturates the rest to [0, 127].
func ReluClamp(v int32) int8 {
	if v < 0 {
		return 0
	}
	if v > math.MaxInt8 {
		return math.MaxInt8
	}
	return int8(v)
}
