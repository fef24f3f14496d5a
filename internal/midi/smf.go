// Package midi writes Standard MIDI Files that carry markers as meta
// events on an SMPTE time base.
//
// The division header selects 30 fps with 4 ticks per frame, giving 120
// ticks per second. Marker positions are therefore absolute and do not
// depend on the importing DAW's tempo map.
package midi

import (
	"bytes"
	"cmp"
	"math"
	"slices"

	binutil "github.com/simonhull/dawmark/internal/binary"
	"github.com/simonhull/dawmark/internal/markers"
	"github.com/simonhull/dawmark/internal/types"
)

const (
	// TicksPerSecond is 30 frames/s × 4 ticks/frame.
	TicksPerSecond = 120

	// Division is the header time division: high byte -30 (two's
	// complement 0xE2) selects 30 fps SMPTE, low byte is ticks per frame.
	Division uint16 = 0xE204

	metaTrackName = 0x03
	metaMarker    = 0x06
	metaEndTrack  = 0x2F
)

// Tick converts seconds to an absolute SMPTE tick, clamping negatives to 0.
func Tick(seconds float64) uint32 {
	t := math.Round(seconds * TicksPerSecond)
	switch {
	case t <= 0 || math.IsNaN(t):
		return 0
	case t > MaxVLQ:
		return MaxVLQ
	default:
		return uint32(t)
	}
}

// Encode builds a format 0, single-track SMF holding a track name and one
// marker meta event per marker, in timestamp order. An empty marker list
// still yields a valid file with just the name and end-of-track events.
func Encode(ms []types.Marker, name string) []byte {
	sorted := slices.Clone(ms)
	slices.SortStableFunc(sorted, func(a, b types.Marker) int {
		return cmp.Compare(a.Time, b.Time)
	})

	var track bytes.Buffer
	tw := binutil.NewSafeWriter(&track)
	writeMeta(tw, 0, metaTrackName, []byte(markers.ASCII(name)))

	var prev uint32
	for _, m := range sorted {
		tick := Tick(m.Time)
		writeMeta(tw, tick-prev, metaMarker, []byte(markers.PlainText(m)))
		prev = tick
	}
	writeMeta(tw, 0, metaEndTrack, nil)

	var buf bytes.Buffer
	buf.Grow(14 + 8 + track.Len())
	sw := binutil.NewSafeWriter(&buf)

	sw.WriteFourCC("MThd")
	binutil.Write(sw, uint32(6))
	binutil.Write(sw, uint16(0)) // format 0
	binutil.Write(sw, uint16(1)) // one track
	binutil.Write(sw, Division)

	sw.WriteFourCC("MTrk")
	binutil.Write(sw, uint32(track.Len()))
	sw.WriteBytes(track.Bytes())

	return buf.Bytes()
}

func writeMeta(sw *binutil.SafeWriter, delta uint32, kind byte, data []byte) {
	sw.WriteBytes(EncodeVLQ(delta))
	sw.WriteBytes([]byte{0xFF, kind})
	sw.WriteBytes(EncodeVLQ(uint32(len(data))))
	sw.WriteBytes(data)
}
