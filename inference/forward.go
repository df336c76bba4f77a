package inference

import (
	"github.com/ezrec/sinefw/model"
)

// Fixed-point rescaling of the layers.
const (
	NEURONS_L1  = model.NEURONS_L1
	NEURONS_L2  = model.NEURONS_L2
	BIAS_SCALE  = 8  // Biases are stored at 1/8 of accumulator scale.
	ACC_DIVISOR = 32 // Accumulator to int8 activation scale.
)

// Weights are the six tables the forward pass reads.
// Every view must be resolved and sized per model.Region.Size().
type Weights struct {
	W1   model.View
	B1   model.View
	W2   model.View
	B2   model.View
	Wout model.View
	Bout model.View
}

// NewWeights gathers the views of a resolved model.
func NewWeights(views [model.REGION_COUNT]model.View) *Weights {
	return &Weights{
		W1:   views[model.W1],
		B1:   views[model.B1],
		W2:   views[model.W2],
		B2:   views[model.B2],
		Wout: views[model.WOUT],
		Bout: views[model.BOUT],
	}
}

// Resolved is true if every table resolved.
func (w *Weights) Resolved() bool {
	return w.W1.Resolved() && w.B1.Resolved() &&
		w.W2.Resolved() && w.B2.Resolved() &&
		w.Wout.Resolved() && w.Bout.Resolved()
}

// Forward runs the network on phase x and returns the dequantized output.
func Forward(w *Weights, x float32) float32 {
	return Dequantize(ForwardQ(w, Quantize(x)))
}

// ForwardQ runs the network on the quantized input q.
//
// Accumulators are divided with Go's truncating integer division, which
// rounds negative sums toward zero. The model is calibrated for that; an
// arithmetic shift would round toward negative infinity instead.
func ForwardQ(w *Weights, q int8) int8 {
	var l1 [NEURONS_L1]int8
	for i := range NEURONS_L1 {
		acc := int32(w.B1.At(i)) * BIAS_SCALE
		acc += int32(w.W1.At(i)) * int32(q)
		acc /= ACC_DIVISOR
		l1[i] = ReluClamp(acc)
	}

	var l2 [NEURONS_L2]int8
	for i := range NEURONS_L2 {
		acc := int32(w.B2.At(i)) * BIAS_SCALE
		for j := range NEURONS_L1 {
			acc += int32(w.W2.At(i*NEURONS_L1+j)) * int32(l1[j])
		}
		acc /= ACC_DIVISOR
		l2[i] = ReluClamp(acc)
	}

	acc := int32(w.Bout.At(0)) * BIAS_SCALE
	for i := range NEURONS_L2 {
		acc += int32(w.Wout.At(i)) * int32(l2[i])
	}
	acc /= ACC_DIVISOR

	return ClampInt8(acc)
}
