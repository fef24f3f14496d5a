package riff

import (
	"bytes"
	"math"
	"strings"

	binutil "github.com/simonhull/dawmark/internal/binary"
	"github.com/simonhull/dawmark/internal/types"
)

// cueRecordSize is the size of one cue point record.
const cueRecordSize = 24

// CuePoint is one record of a "cue " chunk.
type CuePoint struct {
	ID           uint32
	Position     uint32
	ChunkID      string // always "data" for points written here
	ChunkStart   uint32
	BlockStart   uint32
	SampleOffset uint32
}

// Label ties a text label to a cue point ID.
type Label struct {
	CueID uint32
	Text  string
}

// SamplePosition converts seconds to a sample index at rate, rounding to
// the nearest sample. Negative times clamp to zero.
func SamplePosition(seconds float64, rate int) uint32 {
	pos := math.Round(seconds * float64(rate))
	switch {
	case pos <= 0 || math.IsNaN(pos):
		return 0
	case pos >= math.MaxUint32:
		return math.MaxUint32
	default:
		return uint32(pos)
	}
}

// CuePoints numbers markers from 1 in order and places each at its sample
// position.
func CuePoints(markers []types.Marker, rate int) []CuePoint {
	points := make([]CuePoint, len(markers))
	for i, m := range markers {
		pos := SamplePosition(m.Time, rate)
		points[i] = CuePoint{
			ID:           uint32(i + 1),
			Position:     pos,
			ChunkID:      IDData,
			SampleOffset: pos,
		}
	}
	return points
}

// Labels pairs each marker's label with its 1-based cue ID.
func Labels(markers []types.Marker) []Label {
	labels := make([]Label, len(markers))
	for i, m := range markers {
		labels[i] = Label{CueID: uint32(i + 1), Text: m.Label}
	}
	return labels
}

// BuildCueChunk serializes a complete "cue " chunk, header included.
func BuildCueChunk(points []CuePoint) []byte {
	size := 4 + cueRecordSize*len(points)

	var buf bytes.Buffer
	buf.Grow(8 + size)
	sw := binutil.NewSafeWriter(&buf)

	sw.WriteFourCC(IDCue)
	binutil.WriteLE(sw, uint32(size))
	binutil.WriteLE(sw, uint32(len(points)))
	for _, p := range points {
		chunkID := p.ChunkID
		if len(chunkID) != 4 {
			chunkID = IDData
		}
		binutil.WriteLE(sw, p.ID)
		binutil.WriteLE(sw, p.Position)
		sw.WriteFourCC(chunkID)
		binutil.WriteLE(sw, p.ChunkStart)
		binutil.WriteLE(sw, p.BlockStart)
		binutil.WriteLE(sw, p.SampleOffset)
	}
	return buf.Bytes()
}

// BuildLabelList serializes a "LIST" chunk of form type "adtl" holding one
// "labl" sub-chunk per label. Each sub-chunk is padded to an even length;
// the LIST size counts the form type plus every padded sub-chunk.
func BuildLabelList(labels []Label) []byte {
	var body bytes.Buffer
	sw := binutil.NewSafeWriter(&body)
	sw.WriteFourCC(IDAdtl)
	for _, l := range labels {
		text := labelText(l.Text)
		size := 4 + len(text) + 1

		sw.WriteFourCC(IDLabl)
		binutil.WriteLE(sw, uint32(size))
		binutil.WriteLE(sw, l.CueID)
		sw.WriteString(text)
		sw.WriteBytes([]byte{0})
		sw.PadEven(size)
	}

	var buf bytes.Buffer
	buf.Grow(8 + body.Len())
	out := binutil.NewSafeWriter(&buf)
	out.WriteFourCC(IDList)
	binutil.WriteLE(out, uint32(body.Len()))
	out.WriteBytes(body.Bytes())
	return buf.Bytes()
}

// labelText strips NUL bytes, which would cut the label short in readers.
func labelText(s string) string {
	return strings.ReplaceAll(s, "\x00", "")
}
