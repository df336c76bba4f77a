package model

import (
	"math/bits"
)

// Valid reports whether [offset, offset+size) fits in a blob of length bytes.
// An offset+size that overflows 32 bits is never valid.
func Valid(offset, size, length uint32) bool {
	end, carry := bits.Add32(offset, size, 0)
	if carry != 0 {
		return false
	}
	return end <= length
}
