package midi

import "errors"

// MaxVLQ is the largest value a four-byte variable-length quantity holds.
const MaxVLQ = 0x0FFFFFFF

var errVLQTruncated = errors.New("variable-length quantity truncated")

// EncodeVLQ encodes v as a MIDI variable-length quantity: 7 bits per byte,
// most significant group first, high bit set on every byte but the last.
// Values above MaxVLQ are clamped.
func EncodeVLQ(v uint32) []byte {
	if v > MaxVLQ {
		v = MaxVLQ
	}

	var tmp [4]byte
	i := len(tmp) - 1
	tmp[i] = byte(v & 0x7F)
	for v >>= 7; v > 0; v >>= 7 {
		i--
		tmp[i] = byte(v&0x7F) | 0x80
	}
	return append([]byte(nil), tmp[i:]...)
}

// DecodeVLQ decodes a variable-length quantity from the start of b and
// returns the value and the number of bytes consumed.
func DecodeVLQ(b []byte) (uint32, int, error) {
	var v uint32
	for i := 0; i < len(b) && i < 4; i++ {
		v = v<<7 | uint32(b[i]&0x7F)
		if b[i]&0x80 == 0 {
			return v, i + 1, nil
		}
	}
	return 0, 0, errVLQTruncated
}
