package riff

import (
	"bytes"

	binutil "github.com/simonhull/dawmark/internal/binary"
)

// PCM builds a minimal canonical WAV buffer (RIFF header, 16-byte fmt
// chunk, data chunk) around raw sample bytes.
func PCM(rate, channels, bits int, samples []byte) []byte {
	blockAlign := channels * bits / 8
	dataSize := len(samples)

	var buf bytes.Buffer
	buf.Grow(44 + dataSize + 1)
	sw := binutil.NewSafeWriter(&buf)

	sw.WriteFourCC(IDRiff)
	binutil.WriteLE(sw, uint32(36+dataSize+dataSize&1))
	sw.WriteFourCC(IDWave)

	sw.WriteFourCC(IDFmt)
	binutil.WriteLE(sw, uint32(16))
	binutil.WriteLE(sw, uint16(1))
	binutil.WriteLE(sw, uint16(channels))
	binutil.WriteLE(sw, uint32(rate))
	binutil.WriteLE(sw, uint32(rate*blockAlign))
	binutil.WriteLE(sw, uint16(blockAlign))
	binutil.WriteLE(sw, uint16(bits))

	sw.WriteFourCC(IDData)
	binutil.WriteLE(sw, uint32(dataSize))
	sw.WriteBytes(samples)
	sw.PadEven(dataSize)

	return buf.Bytes()
}
