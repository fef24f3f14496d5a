package dawmark

import (
	"github.com/simonhull/dawmark/internal/types"
)

// Format is an alias to types.Format.
type Format = types.Format

// Re-export all format constants.
const (
	FormatUnknown = types.FormatUnknown
	FormatWAV     = types.FormatWAV
	FormatMP3     = types.FormatMP3
	FormatM4A     = types.FormatM4A
	FormatAIFF    = types.FormatAIFF
	FormatFLAC    = types.FormatFLAC
	FormatOgg     = types.FormatOgg
)

// Descriptor is an alias to types.Descriptor.
type Descriptor = types.Descriptor

// SniffSize is how many leading bytes Sniff needs to recognise every
// supported container.
const SniffSize = 12

// Sniff identifies the container of a source.
//
// The locator's extension is consulted first; the URL path is examined
// before the raw string, so signed query parameters cannot influence the
// result. When it is inconclusive, header (the first SniffSize bytes of
// the resource, or fewer) is matched against known magic bytes.
//
// Sniff never fails. Anything unrecognised is FormatUnknown, which is not
// embeddable and is otherwise treated like mp3.
func Sniff(locator string, header []byte) Descriptor {
	f := types.FormatFromLocator(locator)
	if f == types.FormatUnknown {
		f = types.DetectFormat(header)
	}
	return types.NewDescriptor(f)
}

// DetectFormat is a wrapper around types.DetectFormat.
func DetectFormat(header []byte) Format {
	return types.DetectFormat(header)
}
