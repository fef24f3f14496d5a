package types

import (
	"bytes"
	"net/url"
	"strings"
)

// Format represents the detected audio container format.
type Format int

const (
	// FormatUnknown represents an unknown or unsupported container.
	FormatUnknown Format = iota
	// FormatWAV represents RIFF/WAVE files.
	FormatWAV
	// FormatMP3 represents MPEG audio, with or without an ID3v2 tag.
	FormatMP3
	// FormatM4A represents ISO base media files (ftyp).
	FormatM4A
	// FormatAIFF represents AIFF and AIFF-C files.
	FormatAIFF
	// FormatFLAC represents native FLAC streams.
	FormatFLAC
	// FormatOgg represents Ogg-encapsulated audio.
	FormatOgg
)

// String returns the lowercase format tag ("wav", "mp3", ...).
func (f Format) String() string {
	switch f {
	case FormatWAV:
		return "wav"
	case FormatMP3:
		return "mp3"
	case FormatM4A:
		return "m4a"
	case FormatAIFF:
		return "aiff"
	case FormatFLAC:
		return "flac"
	case FormatOgg:
		return "ogg"
	default:
		return "unknown"
	}
}

// Extensions returns common file extensions for this format.
func (f Format) Extensions() []string {
	switch f {
	case FormatWAV:
		return []string{".wav"}
	case FormatMP3:
		return []string{".mp3"}
	case FormatM4A:
		return []string{".m4a"}
	case FormatAIFF:
		return []string{".aiff", ".aif"}
	case FormatFLAC:
		return []string{".flac"}
	case FormatOgg:
		return []string{".ogg"}
	default:
		return nil
	}
}

// Extension returns the preferred extension, falling back to ".mp3" for
// unknown containers since they are treated like mp3 downstream.
func (f Format) Extension() string {
	if exts := f.Extensions(); len(exts) > 0 {
		return exts[0]
	}
	return ".mp3"
}

// MediaType returns the MIME type used when the format is handed out as an artifact.
func (f Format) MediaType() string {
	switch f {
	case FormatWAV:
		return "audio/wav"
	case FormatMP3:
		return "audio/mpeg"
	case FormatM4A:
		return "audio/mp4"
	case FormatAIFF:
		return "audio/aiff"
	case FormatFLAC:
		return "audio/flac"
	case FormatOgg:
		return "audio/ogg"
	default:
		return "application/octet-stream"
	}
}

// CanEmbedCues reports whether cue points can be written in place.
// Only RIFF/WAVE carries cue and adtl chunks.
func (f Format) CanEmbedCues() bool {
	return f == FormatWAV
}

// locatorOrder is the match order for extension sniffing. ".aiff" is tried
// before ".aif" so the longer spelling wins.
var locatorOrder = []struct {
	ext    string
	format Format
}{
	{".wav", FormatWAV},
	{".mp3", FormatMP3},
	{".m4a", FormatM4A},
	{".aiff", FormatAIFF},
	{".aif", FormatAIFF},
	{".flac", FormatFLAC},
	{".ogg", FormatOgg},
}

// FormatFromLocator guesses the format from a filename or URL.
//
// The path component of a URL is examined first so that signed query
// parameters cannot influence the result. If nothing matches there, the raw
// locator is searched for any known extension substring. Returns
// FormatUnknown when no extension is recognised.
func FormatFromLocator(locator string) Format {
	if locator == "" {
		return FormatUnknown
	}

	if u, err := url.Parse(locator); err == nil && u.Path != "" {
		if f := matchExtension(strings.ToLower(u.Path)); f != FormatUnknown {
			return f
		}
	}

	return matchExtension(strings.ToLower(locator))
}

func matchExtension(s string) Format {
	for _, e := range locatorOrder {
		if strings.HasSuffix(s, e.ext) {
			return e.format
		}
	}
	for _, e := range locatorOrder {
		if strings.Contains(s, e.ext) {
			return e.format
		}
	}
	return FormatUnknown
}

// DetectFormat determines the container format by examining magic bytes.
//
// header should hold at least the first 12 bytes of the resource; shorter
// input is matched as far as it goes. Detection never fails: anything
// unrecognised is FormatUnknown.
func DetectFormat(header []byte) Format {
	if len(header) < 4 {
		return FormatUnknown
	}

	switch {
	case bytes.HasPrefix(header, []byte("RIFF")):
		if len(header) >= 12 && string(header[8:12]) == "WAVE" {
			return FormatWAV
		}
		return FormatUnknown
	case bytes.HasPrefix(header, []byte("ID3")):
		return FormatMP3
	case header[0] == 0xFF && header[1]&0xE0 == 0xE0:
		// MPEG frame sync (11 set bits)
		return FormatMP3
	case len(header) >= 8 && string(header[4:8]) == "ftyp":
		return FormatM4A
	case bytes.HasPrefix(header, []byte("FORM")):
		return FormatAIFF
	case bytes.HasPrefix(header, []byte("fLaC")):
		return FormatFLAC
	case bytes.HasPrefix(header, []byte("OggS")):
		return FormatOgg
	}

	return FormatUnknown
}
