// Package binary provides bounds-checked binary reading and offset-tracking
// writing primitives for chunked container formats.
package binary

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/simonhull/dawmark/internal/types"
)

// SafeReader wraps io.ReaderAt with bounds checking and helpful error messages.
type SafeReader struct {
	r    io.ReaderAt
	path string
	size int64
}

// NewSafeReader creates a new SafeReader.
func NewSafeReader(r io.ReaderAt, size int64, path string) *SafeReader {
	return &SafeReader{
		r:    r,
		size: size,
		path: path,
	}
}

// Path returns the name associated with this reader.
func (sr *SafeReader) Path() string {
	return sr.path
}

// Size returns the readable size in bytes.
func (sr *SafeReader) Size() int64 {
	return sr.size
}

// ReadAt reads len(b) bytes at off. Reads that would cross the end of the
// buffer fail with *types.OutOfBoundsError before touching the reader.
func (sr *SafeReader) ReadAt(b []byte, off int64, what string) error {
	if off < 0 || off >= sr.size || off+int64(len(b)) > sr.size {
		return &types.OutOfBoundsError{
			Path:   sr.path,
			What:   what,
			Offset: off,
			Length: len(b),
			Size:   sr.size,
		}
	}

	n, err := sr.r.ReadAt(b, off)
	if err != nil && err != io.EOF {
		return fmt.Errorf("%s: failed to read %s at offset %d: %w", sr.path, what, off, err)
	}

	if n < len(b) {
		return fmt.Errorf("%s: short read for %s at offset %d: got %d bytes, expected %d",
			sr.path, what, off, n, len(b))
	}

	return nil
}

// FourCC reads a four-character code at off.
func (sr *SafeReader) FourCC(off int64, what string) (string, error) {
	buf := make([]byte, 4)
	if err := sr.ReadAt(buf, off, what); err != nil {
		return "", err
	}
	return string(buf), nil
}

// ReadLE reads a little-endian value of type T at off.
//
// Example:
//
//	size, err := binary.ReadLE[uint32](sr, offset+4, "chunk size")
func ReadLE[T uint8 | uint16 | uint32 | uint64](sr *SafeReader, off int64, what string) (T, error) {
	return readOrdered[T](sr, off, what, binary.LittleEndian)
}

// ReadBE reads a big-endian value of type T at off.
func ReadBE[T uint8 | uint16 | uint32 | uint64](sr *SafeReader, off int64, what string) (T, error) {
	return readOrdered[T](sr, off, what, binary.BigEndian)
}

func readOrdered[T uint8 | uint16 | uint32 | uint64](sr *SafeReader, off int64, what string, order binary.ByteOrder) (T, error) {
	var zero T
	buf := make([]byte, sizeOf(zero))
	if err := sr.ReadAt(buf, off, what); err != nil {
		return zero, err
	}

	switch any(zero).(type) {
	case uint8:
		return T(buf[0]), nil
	case uint16:
		return T(order.Uint16(buf)), nil
	case uint32:
		return T(order.Uint32(buf)), nil
	default:
		return T(order.Uint64(buf)), nil
	}
}

func sizeOf[T uint8 | uint16 | uint32 | uint64](v T) int {
	switch any(v).(type) {
	case uint8:
		return 1
	case uint16:
		return 2
	case uint32:
		return 4
	default:
		return 8
	}
}
