package binary

import (
	"encoding/binary"
	"fmt"
	"io"
)

// SafeWriter wraps io.Writer with position tracking.
//
// The first write error is sticky: later writes are skipped and Err
// reports it, so a sequence of writes can be checked once at the end.
type SafeWriter struct {
	w      io.Writer
	offset int64
	err    error
}

// NewSafeWriter creates a new SafeWriter.
func NewSafeWriter(w io.Writer) *SafeWriter {
	return &SafeWriter{w: w}
}

// Offset returns the current position (number of bytes written).
func (sw *SafeWriter) Offset() int64 {
	return sw.offset
}

// Err returns the first error encountered, if any.
func (sw *SafeWriter) Err() error {
	return sw.err
}

// WriteBytes writes raw bytes to the underlying writer.
func (sw *SafeWriter) WriteBytes(b []byte) error {
	if sw.err != nil {
		return sw.err
	}
	n, err := sw.w.Write(b)
	sw.offset += int64(n)
	if err != nil {
		sw.err = err
	}
	return err
}

// WriteString writes a string as bytes to the underlying writer.
func (sw *SafeWriter) WriteString(s string) error {
	return sw.WriteBytes([]byte(s))
}

// WriteFourCC writes a four-character chunk identifier.
func (sw *SafeWriter) WriteFourCC(id string) error {
	if len(id) != 4 {
		if sw.err == nil {
			sw.err = fmt.Errorf("fourcc %q: want 4 bytes, got %d", id, len(id))
		}
		return sw.err
	}
	return sw.WriteString(id)
}

// PadEven writes a single zero byte when n is odd. RIFF chunks are aligned
// to even offsets.
func (sw *SafeWriter) PadEven(n int) error {
	if n%2 == 0 {
		return sw.err
	}
	return sw.WriteBytes([]byte{0})
}

// Write writes a value of type T in big-endian byte order.
func Write[T uint8 | uint16 | uint32 | uint64](sw *SafeWriter, val T) error {
	return sw.WriteBytes(encode(val, binary.BigEndian))
}

// WriteLE writes a value of type T in little-endian byte order.
func WriteLE[T uint8 | uint16 | uint32 | uint64](sw *SafeWriter, val T) error {
	return sw.WriteBytes(encode(val, binary.LittleEndian))
}

func encode[T uint8 | uint16 | uint32 | uint64](val T, order binary.ByteOrder) []byte {
	buf := make([]byte, sizeOf(val))
	switch v := any(val).(type) {
	case uint8:
		buf[0] = v
	case uint16:
		order.PutUint16(buf, v)
	case uint32:
		order.PutUint32(buf, v)
	case uint64:
		order.PutUint64(buf, v)
	}
	return buf
}
