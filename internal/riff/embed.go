package riff

import (
	"encoding/binary"
	"math"

	"github.com/simonhull/dawmark/internal/types"
)

// EmbedCues returns a copy of a WAV buffer with a "cue " chunk and a
// LIST/adtl label chunk holding one cue point per marker.
//
// Sample positions use the fmt chunk's sample rate, or defaultRate when
// the file has no fmt chunk. The output holds the source bytes up to the
// end of the data chunk unchanged, then the cue chunk, then the label list,
// with the RIFF size field rewritten. With no markers the input is
// returned as is.
func EmbedCues(data []byte, markers []types.Marker, defaultRate int) ([]byte, error) {
	if len(markers) == 0 {
		return data, nil
	}

	w, err := ParseWave(data)
	if err != nil {
		return nil, err
	}

	rate := defaultRate
	if w.HasFmt && w.SampleRate > 0 {
		rate = w.SampleRate
	}
	if rate <= 0 {
		return nil, &types.StructureError{Chunk: IDFmt, Reason: "no sample rate available"}
	}

	cue := BuildCueChunk(CuePoints(markers, rate))
	list := BuildLabelList(Labels(markers))

	// The pad byte after an odd-sized data chunk may be missing at EOF.
	dataEnd := w.Data.DataOffset() + int64(w.Data.Size)
	end := min(w.Data.End(), int64(len(data)))

	total := w.Data.End() + int64(len(cue)) + int64(len(list))
	if total-8 > math.MaxUint32 {
		return nil, &types.StructureError{Chunk: IDRiff, Reason: "output exceeds 4 GiB RIFF limit"}
	}

	out := make([]byte, 0, total)
	out = append(out, data[:end]...)
	if end == dataEnd && w.Data.Size&1 == 1 {
		out = append(out, 0)
	}
	out = append(out, cue...)
	out = append(out, list...)

	binary.LittleEndian.PutUint32(out[4:8], uint32(len(out)-8))
	return out, nil
}
