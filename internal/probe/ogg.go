package probe

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"time"

	binutil "github.com/simonhull/dawmark/internal/binary"
	"github.com/simonhull/dawmark/internal/types"
)

// Page header: "OggS", version, header type, granule position (8),
// serial (4), sequence (4), checksum (4), segment count, segment table.
const oggHeaderSize = 27

// lastPageWindow is how far from the end the final page is searched for.
// Pages are at most 65307 bytes.
const lastPageWindow = 65536

// firstOggPacket returns the payload of the page at offset 0. Codec
// identification headers always fill the first page alone.
func firstOggPacket(sr *binutil.SafeReader) ([]byte, error) {
	magic, err := sr.FourCC(0, "ogg capture pattern")
	if err != nil {
		return nil, err
	}
	if magic != "OggS" {
		return nil, &types.StructureError{Chunk: "OggS", Reason: "missing capture pattern"}
	}
	version, err := binutil.ReadLE[uint8](sr, 4, "ogg version")
	if err != nil {
		return nil, err
	}
	if version != 0 {
		return nil, &types.StructureError{Chunk: "OggS", Offset: 4, Reason: fmt.Sprintf("unsupported version %d", version)}
	}

	count, err := binutil.ReadLE[uint8](sr, 26, "segment count")
	if err != nil {
		return nil, err
	}
	table := make([]byte, count)
	if err := sr.ReadAt(table, oggHeaderSize, "segment table"); err != nil {
		return nil, err
	}
	size := 0
	for _, s := range table {
		size += int(s)
	}
	packet := make([]byte, size)
	if err := sr.ReadAt(packet, oggHeaderSize+int64(count), "page data"); err != nil {
		return nil, err
	}
	return packet, nil
}

// lastGranule returns the granule position of the final page, which
// counts the samples in the stream.
func lastGranule(data []byte, sr *binutil.SafeReader) (int64, error) {
	start := max(0, len(data)-lastPageWindow)
	i := bytes.LastIndex(data[start:], []byte("OggS"))
	if i < 0 {
		return 0, &types.StructureError{Chunk: "OggS", Offset: int64(start), Reason: "no page near end of stream"}
	}
	g, err := binutil.ReadLE[uint64](sr, int64(start+i)+6, "granule position")
	return int64(g), err
}

// probeOgg reads the Vorbis or Opus identification header. Opus always
// decodes at 48 kHz and its granule positions include the pre-skip.
func probeOgg(data []byte, d *types.Descriptor) error {
	sr := binutil.NewSafeReader(bytes.NewReader(data), int64(len(data)), "ogg")
	head, err := firstOggPacket(sr)
	if err != nil {
		return err
	}

	var preSkip int64
	switch {
	case len(head) >= 30 && head[0] == 0x01 && string(head[1:7]) == "vorbis":
		d.Channels = int(head[11])
		d.SampleRate = int(binary.LittleEndian.Uint32(head[12:16]))
	case len(head) >= 19 && string(head[:8]) == "OpusHead":
		d.Channels = int(head[9])
		d.SampleRate = 48000
		preSkip = int64(binary.LittleEndian.Uint16(head[10:12]))
	default:
		return fmt.Errorf("probe ogg: unsupported codec")
	}

	granule, err := lastGranule(data, sr)
	if err != nil {
		return err
	}
	if d.SampleRate > 0 && granule > preSkip {
		d.Duration = time.Duration(granule-preSkip) * time.Second / time.Duration(d.SampleRate)
	}
	return nil
}
