// Package inference runs the quantized sine model held in a model.Blob.
//
// The network is fixed: one input, two dense+ReLU layers of 16 units and a
// single output unit, all int8 with int32 accumulators. An input phase in
// [0, 2π] is quantized to int8, pushed through the layers with truncating
// fixed-point rescaling, and the int8 result is dequantized to [-1, 1].
//
// An Engine is created over a blob, initialized once, and then run any number
// of times. An engine whose regions did not all resolve never touches the
// blob and always returns 0.
package inference
