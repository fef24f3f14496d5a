package riff

import (
	"bytes"
	"time"

	binutil "github.com/simonhull/dawmark/internal/binary"
	"github.com/simonhull/dawmark/internal/types"
)

// Wave holds what the rebuilder needs to know about a WAV buffer.
type Wave struct {
	AudioFormat   int // 1 = PCM, 3 = IEEE float, 0xFFFE = extensible
	Channels      int
	SampleRate    int
	ByteRate      int
	BlockAlign    int
	BitsPerSample int

	HasFmt bool
	Data   Chunk
	Chunks []Chunk
}

// Duration returns the playing time implied by the data size and byte rate.
func (w *Wave) Duration() time.Duration {
	if w.ByteRate <= 0 {
		return 0
	}
	seconds := float64(w.Data.Size) / float64(w.ByteRate)
	return time.Duration(seconds * float64(time.Second))
}

// Descriptor converts the parsed header into a container descriptor.
func (w *Wave) Descriptor() types.Descriptor {
	d := types.NewDescriptor(types.FormatWAV)
	d.SampleRate = w.SampleRate
	d.Channels = w.Channels
	d.BitsPerSample = w.BitsPerSample
	d.Duration = w.Duration()
	return d
}

// ParseWave validates the RIFF/WAVE header, locates the data chunk and
// reads the fmt chunk.
//
// Returns *types.FormatError when the buffer is not RIFF/WAVE and
// *types.StructureError when the data chunk is missing or declares more
// bytes than the buffer holds.
func ParseWave(data []byte) (*Wave, error) {
	w := &Wave{}
	found := false
	var walkErr error

	err := Walk(data, func(c Chunk) bool {
		w.Chunks = append(w.Chunks, c)
		switch c.ID {
		case IDFmt:
			if err := w.readFmt(data, c); err != nil {
				walkErr = err
				return false
			}
		case IDData:
			if found {
				return true
			}
			if c.DataOffset()+int64(c.Size) > int64(len(data)) {
				walkErr = &types.StructureError{
					Chunk:  IDData,
					Reason: "declared size exceeds remaining buffer",
					Offset: c.Offset,
				}
				return false
			}
			w.Data = c
			found = true
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	if walkErr != nil {
		return nil, walkErr
	}
	if !found {
		return nil, &types.StructureError{
			Chunk:  IDData,
			Reason: "no data chunk found",
			Offset: int64(len(data)),
		}
	}
	return w, nil
}

func (w *Wave) readFmt(data []byte, c Chunk) error {
	if c.Size < 16 || c.DataOffset()+16 > int64(len(data)) {
		return &types.StructureError{Chunk: IDFmt, Reason: "fmt chunk shorter than 16 bytes", Offset: c.Offset}
	}

	sr := binutil.NewSafeReader(bytes.NewReader(data), int64(len(data)), "riff")
	off := c.DataOffset()

	audioFormat, err := binutil.ReadLE[uint16](sr, off, "audio format")
	if err != nil {
		return err
	}
	channels, err := binutil.ReadLE[uint16](sr, off+2, "channel count")
	if err != nil {
		return err
	}
	rate, err := binutil.ReadLE[uint32](sr, off+4, "sample rate")
	if err != nil {
		return err
	}
	byteRate, err := binutil.ReadLE[uint32](sr, off+8, "byte rate")
	if err != nil {
		return err
	}
	blockAlign, err := binutil.ReadLE[uint16](sr, off+12, "block align")
	if err != nil {
		return err
	}
	bits, err := binutil.ReadLE[uint16](sr, off+14, "bits per sample")
	if err != nil {
		return err
	}

	w.AudioFormat = int(audioFormat)
	w.Channels = int(channels)
	w.SampleRate = int(rate)
	w.ByteRate = int(byteRate)
	w.BlockAlign = int(blockAlign)
	w.BitsPerSample = int(bits)
	w.HasFmt = true
	return nil
}
