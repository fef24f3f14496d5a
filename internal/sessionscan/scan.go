// Package sessionscan inspects opaque DAW session files for traces of
// markers: known names in UTF-8 or UTF-16LE, printable string tables and
// 32-bit integers that read as plausible sample positions. It also diffs
// two session files, e.g. an empty session against one with markers.
package sessionscan

import (
	"bytes"
	"encoding/binary"

	"golang.org/x/text/encoding/unicode"
)

// Encoding names the text encoding a term was found in.
type Encoding string

const (
	UTF8    Encoding = "UTF-8"
	UTF16LE Encoding = "UTF-16LE"
)

// DefaultContext is the number of bytes kept either side of a match.
const DefaultContext = 50

// Match is one occurrence of a search term.
type Match struct {
	Term     string
	Encoding Encoding
	Offset   int
	Context  []byte
}

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// FindTerms returns every occurrence of each term, overlapping matches
// included, in UTF-8 and UTF-16LE. Matches are grouped by term, UTF-8
// first, in offset order.
func FindTerms(data []byte, terms []string, radius int) []Match {
	var out []Match
	for _, term := range terms {
		if term == "" {
			continue
		}
		out = appendMatches(out, data, term, UTF8, []byte(term), radius)

		wide, err := utf16le.NewEncoder().Bytes([]byte(term))
		if err != nil {
			continue
		}
		out = appendMatches(out, data, term, UTF16LE, wide, radius)
	}
	return out
}

func appendMatches(out []Match, data []byte, term string, enc Encoding, needle []byte, radius int) []Match {
	for off := 0; ; {
		i := bytes.Index(data[off:], needle)
		if i < 0 {
			return out
		}
		pos := off + i
		start := max(0, pos-radius)
		end := min(len(data), pos+len(needle)+radius)
		out = append(out, Match{
			Term:     term,
			Encoding: enc,
			Offset:   pos,
			Context:  data[start:end],
		})
		off = pos + 1
	}
}

// String is a run of printable ASCII.
type String struct {
	Offset int
	Text   string
}

// Strings returns runs of printable ASCII (0x20-0x7E) at least minLen long,
// terminated by NUL or any other byte.
func Strings(data []byte, minLen int) []String {
	var out []String
	start := -1
	flush := func(end int) {
		if start >= 0 && end-start >= minLen {
			out = append(out, String{Offset: start, Text: string(data[start:end])})
		}
		start = -1
	}
	for i, b := range data {
		if b >= 0x20 && b <= 0x7E {
			if start < 0 {
				start = i
			}
			continue
		}
		flush(i)
	}
	flush(len(data))
	return out
}

// ByteOrder tags how a candidate integer was read.
type ByteOrder string

const (
	LittleEndian ByteOrder = "LE"
	BigEndian    ByteOrder = "BE"
)

// Candidate is a 4-byte aligned integer that falls inside a plausible
// marker time range when read as a sample position.
type Candidate struct {
	Offset  int
	Value   uint32
	Order   ByteOrder
	Seconds float64
}

// SamplePositions reads every aligned 32-bit word in both byte orders and
// keeps values that land strictly between minSec and maxSec at rate.
func SamplePositions(data []byte, rate int, minSec, maxSec float64) []Candidate {
	if rate <= 0 {
		return nil
	}
	var out []Candidate
	for i := 0; i+4 <= len(data); i += 4 {
		word := data[i : i+4]
		for _, c := range []struct {
			order ByteOrder
			value uint32
		}{
			{LittleEndian, binary.LittleEndian.Uint32(word)},
			{BigEndian, binary.BigEndian.Uint32(word)},
		} {
			if c.value == 0 {
				continue
			}
			sec := float64(c.value) / float64(rate)
			if sec > minSec && sec < maxSec {
				out = append(out, Candidate{Offset: i, Value: c.value, Order: c.order, Seconds: sec})
			}
		}
	}
	return out
}

// Diff summarises how two session files differ.
type Diff struct {
	SizeA, SizeB int
	// FirstDifference is the first differing offset within the common
	// prefix, or -1 when one file is a prefix of the other.
	FirstDifference int
	ContextA        []byte
	ContextB        []byte
	// Extra holds the bytes B has beyond A's length.
	Extra []byte
}

// Compare diffs a against b.
func Compare(a, b []byte, radius int) Diff {
	d := Diff{SizeA: len(a), SizeB: len(b), FirstDifference: -1}

	common := min(len(a), len(b))
	for i := range common {
		if a[i] != b[i] {
			d.FirstDifference = i
			start := max(0, i-radius)
			end := min(common, i+radius)
			d.ContextA = a[start:end]
			d.ContextB = b[start:end]
			break
		}
	}
	if len(b) > len(a) {
		d.Extra = b[len(a):]
	}
	return d
}
