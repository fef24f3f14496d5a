package riff

import (
	"bytes"

	binutil "github.com/simonhull/dawmark/internal/binary"
	"github.com/simonhull/dawmark/internal/types"
)

// ReadCues returns the cue points of the first "cue " chunk, or nil when
// the buffer has none.
func ReadCues(data []byte) ([]CuePoint, error) {
	c, ok, err := find(data, func(c Chunk) bool { return c.ID == IDCue })
	if err != nil || !ok {
		return nil, err
	}

	sr := binutil.NewSafeReader(bytes.NewReader(data), int64(len(data)), "riff")
	off := c.DataOffset()
	count, err := binutil.ReadLE[uint32](sr, off, "cue count")
	if err != nil {
		return nil, err
	}
	if int64(count)*cueRecordSize+4 > int64(c.Size) {
		return nil, &types.StructureError{Chunk: IDCue, Reason: "cue count exceeds chunk size", Offset: c.Offset}
	}

	points := make([]CuePoint, 0, count)
	off += 4
	for range count {
		var p CuePoint
		if p.ID, err = binutil.ReadLE[uint32](sr, off, "cue id"); err != nil {
			return nil, err
		}
		if p.Position, err = binutil.ReadLE[uint32](sr, off+4, "cue position"); err != nil {
			return nil, err
		}
		if p.ChunkID, err = sr.FourCC(off+8, "cue chunk id"); err != nil {
			return nil, err
		}
		if p.ChunkStart, err = binutil.ReadLE[uint32](sr, off+12, "cue chunk start"); err != nil {
			return nil, err
		}
		if p.BlockStart, err = binutil.ReadLE[uint32](sr, off+16, "cue block start"); err != nil {
			return nil, err
		}
		if p.SampleOffset, err = binutil.ReadLE[uint32](sr, off+20, "cue sample offset"); err != nil {
			return nil, err
		}
		points = append(points, p)
		off += cueRecordSize
	}
	return points, nil
}

// ReadLabels returns the labl entries of the first LIST/adtl chunk in file
// order, or nil when the buffer has none.
func ReadLabels(data []byte) ([]Label, error) {
	c, ok, err := find(data, func(c Chunk) bool {
		return c.ID == IDList && c.Size >= 4 &&
			c.DataOffset()+4 <= int64(len(data)) &&
			string(data[c.DataOffset():c.DataOffset()+4]) == IDAdtl
	})
	if err != nil || !ok {
		return nil, err
	}

	sr := binutil.NewSafeReader(bytes.NewReader(data), int64(len(data)), "riff")
	end := min(c.DataOffset()+int64(c.Size), sr.Size())

	var labels []Label
	off := c.DataOffset() + 4
	for off+8 <= end {
		id, err := sr.FourCC(off, "adtl sub-chunk id")
		if err != nil {
			return nil, err
		}
		size, err := binutil.ReadLE[uint32](sr, off+4, "adtl sub-chunk size")
		if err != nil {
			return nil, err
		}
		payload := off + 8
		if payload+int64(size) > end {
			return nil, &types.StructureError{Chunk: id, Reason: "sub-chunk overruns LIST", Offset: off}
		}

		if id == IDLabl && size >= 4 {
			cueID, err := binutil.ReadLE[uint32](sr, payload, "label cue id")
			if err != nil {
				return nil, err
			}
			text := data[payload+4 : payload+int64(size)]
			if i := bytes.IndexByte(text, 0); i >= 0 {
				text = text[:i]
			}
			labels = append(labels, Label{CueID: cueID, Text: string(text)})
		}
		off = payload + int64(size) + int64(size&1)
	}
	return labels, nil
}

func find(data []byte, match func(Chunk) bool) (Chunk, bool, error) {
	var found Chunk
	ok := false
	err := Walk(data, func(c Chunk) bool {
		if match(c) {
			found, ok = c, true
			return false
		}
		return true
	})
	return found, ok, err
}
