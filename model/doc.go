// Package model locates the weight and bias tables of the sine model inside
// an opaque binary blob.
//
// The blob carries no header, version or checksum. Its layout is a build-time
// contract described by a fixed table of six regions: layer-1 weights and
// biases, layer-2 weights and biases, and the output weights and bias. Each
// region is bounds-checked before a view into the blob is handed out, so a
// resolved View is always fully inside the blob it was cut from. A region
// that fails the check stays unresolved; the other regions are unaffected.
package model
