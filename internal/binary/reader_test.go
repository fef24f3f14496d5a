package binary

import (
	"bytes"
	"errors"
	"testing"

	"github.com/simonhull/dawmark/internal/types"
)

func TestReadLE(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}
	sr := NewSafeReader(bytes.NewReader(data), int64(len(data)), "test.wav")

	u16, err := ReadLE[uint16](sr, 0, "uint16")
	if err != nil || u16 != 0x0201 {
		t.Errorf("ReadLE[uint16] = %#x, %v; want 0x0201", u16, err)
	}

	u32, err := ReadLE[uint32](sr, 4, "uint32")
	if err != nil || u32 != 0x08070605 {
		t.Errorf("ReadLE[uint32] = %#x, %v; want 0x08070605", u32, err)
	}

	u64, err := ReadLE[uint64](sr, 0, "uint64")
	if err != nil || u64 != 0x0807060504030201 {
		t.Errorf("ReadLE[uint64] = %#x, %v", u64, err)
	}
}

func TestReadBE(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0x04}
	sr := NewSafeReader(bytes.NewReader(data), int64(len(data)), "test")

	val, err := ReadBE[uint32](sr, 0, "uint32")
	if err != nil {
		t.Fatalf("ReadBE failed: %v", err)
	}
	if val != 0x01020304 {
		t.Errorf("ReadBE = %#x, want 0x01020304", val)
	}

	b, err := ReadBE[uint8](sr, 3, "byte")
	if err != nil || b != 0x04 {
		t.Errorf("ReadBE[uint8] = %#x, %v", b, err)
	}
}

func TestSafeReader_OutOfBounds(t *testing.T) {
	data := []byte("RIFF")
	sr := NewSafeReader(bytes.NewReader(data), int64(len(data)), "short.wav")

	tests := []struct {
		name string
		off  int64
		n    int
	}{
		{"past end", 4, 1},
		{"crosses end", 2, 4},
		{"negative", -1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := sr.ReadAt(make([]byte, tt.n), tt.off, "probe")
			var oob *types.OutOfBoundsError
			if !errors.As(err, &oob) {
				t.Fatalf("expected *OutOfBoundsError, got %T: %v", err, err)
			}
			if oob.Path != "short.wav" || oob.What != "probe" {
				t.Errorf("error context = %+v", oob)
			}
		})
	}
}

func TestSafeReader_FourCC(t *testing.T) {
	data := []byte("RIFF\x00\x00\x00\x00WAVE")
	sr := NewSafeReader(bytes.NewReader(data), int64(len(data)), "test.wav")

	id, err := sr.FourCC(8, "form type")
	if err != nil {
		t.Fatalf("FourCC failed: %v", err)
	}
	if id != "WAVE" {
		t.Errorf("FourCC = %q, want WAVE", id)
	}
}
