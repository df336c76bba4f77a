package model

import (
	"io"
	"math"
)

// Blob is the flat model artifact. It is borrowed, never written.
type Blob []byte

// Len returns the blob length, saturated to 32 bits.
func (b Blob) Len() uint32 {
	if uint64(len(b)) > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(len(b))
}

// LoadBlob reads an entire blob from r.
func LoadBlob(r io.Reader) (blob Blob, err error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return
	}

	if uint64(len(data)) > math.MaxUint32 {
		err = ErrBlobTooLarge
		return
	}

	blob = Blob(data)
	return
}
