package binary

import (
	"bytes"
	"errors"
	"testing"
)

func TestSafeWriter_WriteLE(t *testing.T) {
	buf := &bytes.Buffer{}
	sw := NewSafeWriter(buf)

	WriteLE[uint32](sw, 0x12345678)
	WriteLE[uint16](sw, 0xABCD)

	if err := sw.Err(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []byte{0x78, 0x56, 0x34, 0x12, 0xCD, 0xAB}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("got % x, want % x", buf.Bytes(), want)
	}
}

func TestSafeWriter_WriteBE(t *testing.T) {
	buf := &bytes.Buffer{}
	sw := NewSafeWriter(buf)

	Write[uint16](sw, 0xE204)
	Write[uint32](sw, 6)

	want := []byte{0xE2, 0x04, 0x00, 0x00, 0x00, 0x06}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("got % x, want % x", buf.Bytes(), want)
	}
}

func TestSafeWriter_Offset(t *testing.T) {
	sw := NewSafeWriter(&bytes.Buffer{})

	if sw.Offset() != 0 {
		t.Errorf("expected initial offset 0, got %d", sw.Offset())
	}

	sw.WriteFourCC("labl")
	WriteLE[uint32](sw, 5)
	sw.WriteString("abc")
	sw.PadEven(3)

	if sw.Offset() != 12 {
		t.Errorf("expected offset 12, got %d", sw.Offset())
	}
}

func TestSafeWriter_PadEven(t *testing.T) {
	buf := &bytes.Buffer{}
	sw := NewSafeWriter(buf)

	sw.PadEven(4)
	if buf.Len() != 0 {
		t.Errorf("even length should not pad, wrote %d bytes", buf.Len())
	}
	sw.PadEven(5)
	if !bytes.Equal(buf.Bytes(), []byte{0}) {
		t.Errorf("odd length should pad with one zero byte, got % x", buf.Bytes())
	}
}

func TestSafeWriter_BadFourCC(t *testing.T) {
	sw := NewSafeWriter(&bytes.Buffer{})
	if err := sw.WriteFourCC("cue"); err == nil {
		t.Fatal("expected error for 3-byte fourcc")
	}
	if err := sw.WriteString("more"); err == nil {
		t.Error("error should be sticky")
	}
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) { return 0, errors.New("disk full") }

func TestSafeWriter_StickyError(t *testing.T) {
	sw := NewSafeWriter(failingWriter{})
	WriteLE[uint32](sw, 1)
	WriteLE[uint32](sw, 2)
	if sw.Err() == nil || sw.Err().Error() != "disk full" {
		t.Errorf("Err() = %v, want disk full", sw.Err())
	}
	if sw.Offset() != 0 {
		t.Errorf("Offset() = %d, want 0", sw.Offset())
	}
}
