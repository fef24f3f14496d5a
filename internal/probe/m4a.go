package probe

import (
	"bytes"
	"fmt"
	"time"

	binutil "github.com/simonhull/dawmark/internal/binary"
	"github.com/simonhull/dawmark/internal/types"
)

// atom is an ISO base media box.
type atom struct {
	typ    string
	offset int64
	size   int64
	header int64 // 8, or 16 with a 64-bit size
}

func (a atom) dataOffset() int64 { return a.offset + a.header }
func (a atom) end() int64        { return a.offset + a.size }

func readAtom(sr *binutil.SafeReader, off int64) (atom, error) {
	size32, err := binutil.ReadBE[uint32](sr, off, "atom size")
	if err != nil {
		return atom{}, err
	}
	typ, err := sr.FourCC(off+4, "atom type")
	if err != nil {
		return atom{}, err
	}

	a := atom{typ: typ, offset: off, size: int64(size32), header: 8}
	switch size32 {
	case 0:
		// extends to the end of the file
		a.size = sr.Size() - off
	case 1:
		size64, err := binutil.ReadBE[uint64](sr, off+8, "extended atom size")
		if err != nil {
			return atom{}, err
		}
		a.size = int64(size64)
		a.header = 16
	}
	if a.size < a.header {
		return atom{}, &types.StructureError{Chunk: typ, Offset: off, Reason: fmt.Sprintf("invalid atom size %d", a.size)}
	}
	return a, nil
}

// findAtom returns the first atom of typ between start and end.
func findAtom(sr *binutil.SafeReader, start, end int64, typ string) (atom, error) {
	for off := start; off+8 <= end; {
		a, err := readAtom(sr, off)
		if err != nil {
			return atom{}, err
		}
		if a.typ == typ {
			return a, nil
		}
		off = a.end()
	}
	return atom{}, fmt.Errorf("atom %q not found", typ)
}

// findPath descends through nested atoms, e.g. "trak", "mdia", "minf".
func findPath(sr *binutil.SafeReader, parent atom, path ...string) (atom, error) {
	a := parent
	for _, typ := range path {
		next, err := findAtom(sr, a.dataOffset(), a.end(), typ)
		if err != nil {
			return atom{}, err
		}
		a = next
	}
	return a, nil
}

// probeM4A reads the duration from mvhd and the channel count and rate
// from the first sample description of the first track.
func probeM4A(data []byte, d *types.Descriptor) error {
	sr := binutil.NewSafeReader(bytes.NewReader(data), int64(len(data)), "m4a")
	moov, err := findAtom(sr, 0, sr.Size(), "moov")
	if err != nil {
		return fmt.Errorf("probe m4a: %w", err)
	}

	mvhd, err := findAtom(sr, moov.dataOffset(), moov.end(), "mvhd")
	if err != nil {
		return fmt.Errorf("probe m4a: %w", err)
	}
	if err := readMvhd(sr, mvhd, d); err != nil {
		return err
	}

	stsd, err := findPath(sr, moov, "trak", "mdia", "minf", "stbl", "stsd")
	if err != nil {
		return fmt.Errorf("probe m4a: %w", err)
	}
	// version/flags and entry count, then the first sample entry
	entry := stsd.dataOffset() + 8
	channels, err := binutil.ReadBE[uint16](sr, entry+24, "channel count")
	if err != nil {
		return err
	}
	rate, err := binutil.ReadBE[uint32](sr, entry+32, "sample rate")
	if err != nil {
		return err
	}
	d.Channels = int(channels)
	d.SampleRate = int(rate >> 16) // 16.16 fixed point
	return nil
}

func readMvhd(sr *binutil.SafeReader, mvhd atom, d *types.Descriptor) error {
	off := mvhd.dataOffset()
	version, err := binutil.ReadBE[uint8](sr, off, "mvhd version")
	if err != nil {
		return err
	}

	var (
		timescale uint32
		duration  uint64
	)
	if version == 1 {
		off += 4 + 16 // flags, 64-bit creation and modification times
		if timescale, err = binutil.ReadBE[uint32](sr, off, "mvhd timescale"); err != nil {
			return err
		}
		if duration, err = binutil.ReadBE[uint64](sr, off+4, "mvhd duration"); err != nil {
			return err
		}
	} else {
		off += 4 + 8
		if timescale, err = binutil.ReadBE[uint32](sr, off, "mvhd timescale"); err != nil {
			return err
		}
		d32, err := binutil.ReadBE[uint32](sr, off+4, "mvhd duration")
		if err != nil {
			return err
		}
		duration = uint64(d32)
	}

	if timescale > 0 {
		d.Duration = time.Duration(float64(duration) / float64(timescale) * float64(time.Second))
	}
	return nil
}
