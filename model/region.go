package model

import (
	"iter"
	"strings"

	"github.com/ezrec/sinefw/internal"
)

// Region names one contiguous weight or bias table in the blob.
type Region int

//go:generate go tool stringer -linecomment -type=Region
const (
	W1   = Region(0) // w1
	B1   = Region(1) // b1
	W2   = Region(2) // w2
	B2   = Region(3) // b2
	WOUT = Region(4) // wout
	BOUT = Region(5) // bout
)

// REGION_COUNT is the number of regions in a model.
const REGION_COUNT = int(BOUT) + 1

// Default region offsets, as laid out by the model build.
const (
	OFFSET_W1   = uint32(0xA8C) // dense_2 weights
	OFFSET_B1   = uint32(0xA9C) // dense_2 biases
	OFFSET_W2   = uint32(0xAAC) // dense_3 weights
	OFFSET_B2   = uint32(0xBAC) // dense_3 biases
	OFFSET_WOUT = uint32(0xBBC) // dense_4 weights
	OFFSET_BOUT = uint32(0xBCC) // dense_4 bias

	LAYOUT_END = OFFSET_BOUT + 1 // End of the last region.
)

// Network topology.
const (
	NEURONS_L1 = 16
	NEURONS_L2 = 16
)

var _region_size = [REGION_COUNT]uint32{
	W1:   NEURONS_L1,
	B1:   NEURONS_L1,
	W2:   NEURONS_L2 * NEURONS_L1,
	B2:   NEURONS_L2,
	WOUT: NEURONS_L2,
	BOUT: 1,
}

// Size returns the byte size the topology requires for the region.
func (r Region) Size() uint32 {
	if r < 0 || int(r) >= REGION_COUNT {
		return 0
	}
	return _region_size[r]
}

// Valid reports whether r names a region.
func (r Region) Valid() bool {
	return r >= 0 && int(r) < REGION_COUNT
}

// RegionSpec places a region in the blob.
type RegionSpec struct {
	Region Region
	Offset uint32 // Byte offset from the start of the blob.
	Size   uint32 // Byte size.
}

// End returns the offset one past the region, and false if it overflows.
func (rs RegionSpec) End() (end uint32, ok bool) {
	if !Valid(rs.Offset, rs.Size, ^uint32(0)) {
		return
	}
	return rs.Offset + rs.Size, true
}

// DefaultLayout returns the layout produced by the model build.
func DefaultLayout() []RegionSpec {
	return []RegionSpec{
		{W1, OFFSET_W1, W1.Size()},
		{B1, OFFSET_B1, B1.Size()},
		{W2, OFFSET_W2, W2.Size()},
		{B2, OFFSET_B2, B2.Size()},
		{WOUT, OFFSET_WOUT, WOUT.Size()},
		{BOUT, OFFSET_BOUT, BOUT.Size()},
	}
}

// Defines yields the default layout as NAME_OFFSET and NAME_SIZE values.
func Defines() iter.Seq2[string, string] {
	table := map[string]uint32{
		"LAYOUT_END": LAYOUT_END,
	}
	for _, spec := range DefaultLayout() {
		name := strings.ToUpper(spec.Region.String())
		table[name+"_OFFSET"] = spec.Offset
		table[name+"_SIZE"] = spec.Size
	}

	return internal.HexDefines(table)
}
