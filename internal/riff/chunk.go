// Package riff walks and rebuilds RIFF/WAVE containers at the chunk level.
//
// Audio samples are never decoded or modified: the rebuilder copies the
// source up to the end of its data chunk and appends cue metadata after it.
package riff

import (
	"bytes"

	binutil "github.com/simonhull/dawmark/internal/binary"
	"github.com/simonhull/dawmark/internal/types"
)

// Chunk identifiers used by this package.
const (
	IDRiff = "RIFF"
	IDWave = "WAVE"
	IDFmt  = "fmt "
	IDData = "data"
	IDCue  = "cue "
	IDList = "LIST"
	IDAdtl = "adtl"
	IDLabl = "labl"
)

// headerSize is the length of the RIFF header ("RIFF" + size + "WAVE").
const headerSize = 12

// Chunk is one chunk header found while walking a RIFF buffer.
type Chunk struct {
	ID     string
	Size   uint32 // declared payload size, excluding header and pad byte
	Offset int64  // offset of the 8-byte chunk header
}

// DataOffset returns the offset of the first payload byte.
func (c Chunk) DataOffset() int64 {
	return c.Offset + 8
}

// End returns the offset just past the payload and its pad byte.
func (c Chunk) End() int64 {
	return c.DataOffset() + int64(c.Size) + int64(c.Size&1)
}

// Walk visits the chunks of a RIFF/WAVE buffer in order, starting at offset
// 12. fn returns false to stop early.
//
// Walking stops silently at trailing bytes too short to hold a chunk
// header. A chunk whose declared size overruns the buffer is still passed
// to fn (callers decide whether that is fatal) and ends the walk.
func Walk(data []byte, fn func(Chunk) bool) error {
	if err := checkHeader(data); err != nil {
		return err
	}

	sr := binutil.NewSafeReader(bytes.NewReader(data), int64(len(data)), "riff")
	off := int64(headerSize)
	for off+8 <= sr.Size() {
		id, err := sr.FourCC(off, "chunk id")
		if err != nil {
			return err
		}
		size, err := binutil.ReadLE[uint32](sr, off+4, "chunk size")
		if err != nil {
			return err
		}

		c := Chunk{ID: id, Size: size, Offset: off}
		if !fn(c) {
			return nil
		}
		if c.DataOffset()+int64(c.Size) > sr.Size() {
			return nil
		}
		off = c.End()
	}
	return nil
}

func checkHeader(data []byte) error {
	if len(data) < headerSize {
		return &types.FormatError{Format: types.FormatWAV, Reason: "buffer shorter than RIFF header"}
	}
	if string(data[0:4]) != IDRiff {
		return &types.FormatError{Format: types.FormatWAV, Reason: "missing RIFF header"}
	}
	if string(data[8:12]) != IDWave {
		return &types.FormatError{Format: types.FormatWAV, Reason: "RIFF form type is not WAVE"}
	}
	return nil
}
