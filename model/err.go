package model

import (
	"errors"

	"github.com/ezrec/sinefw/translate"
)

var f = translate.From

var (
	// Blob errors
	ErrBounds       = errors.New(f("region out of bounds"))
	ErrBlobTooLarge = errors.New(f("blob exceeds 32-bit length"))
)

// ErrOutOfBounds reports a region whose offset + size does not fit in the blob.
type ErrOutOfBounds struct {
	Region Region
	Offset uint32
	Size   uint32
	Length uint32 // Length of the blob.
}

func (err *ErrOutOfBounds) Error() string {
	return f("region %v out of bounds (offset=0x%x size=%v blob length=%v)",
		err.Region, err.Offset, err.Size, err.Length)
}

func (err *ErrOutOfBounds) Is(target error) bool {
	return target == ErrBounds
}

// ErrRegionInvalid is a layout entry naming a region that does not exist.
type ErrRegionInvalid Region

func (er ErrRegionInvalid) Error() string {
	return f("region %v invalid", Region(er))
}

// ErrRegionMissing is a region the layout never describes.
type ErrRegionMissing Region

func (er ErrRegionMissing) Error() string {
	return f("region %v missing from layout", Region(er))
}

// ErrRegionDuplicate is a region the layout describes more than once.
type ErrRegionDuplicate Region

func (er ErrRegionDuplicate) Error() string {
	return f("region %v duplicated in layout", Region(er))
}

// ErrRegionSize is a layout entry whose size disagrees with the network topology.
type ErrRegionSize struct {
	Region Region
	Size   uint32
}

func (err ErrRegionSize) Error() string {
	return f("region %v size %v, expected %v", err.Region, err.Size, err.Region.Size())
}
