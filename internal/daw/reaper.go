package daw

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/simonhull/dawmark/internal/types"
)

// NewGUID returns a REAPER object identifier such as
// "{0F8E6B0A-...}". Replaced in tests.
var NewGUID = func() string {
	return "{" + strings.ToUpper(uuid.New().String()) + "}"
}

// now is replaced in tests.
var now = time.Now

// reaperSource maps a container to REAPER's SOURCE type keyword.
func reaperSource(f types.Format) string {
	switch f {
	case types.FormatMP3:
		return "MP3"
	case types.FormatFLAC:
		return "FLAC"
	case types.FormatOgg:
		return "VORBIS"
	case types.FormatWAV, types.FormatAIFF:
		return "WAVE"
	default:
		// REAPER probes the file itself for containers it has no keyword for.
		return "SECTION"
	}
}

// ReaperProject renders a REAPER .rpp project with one marker per entry
// and a single track holding the audio file.
func ReaperProject(markers []types.Marker, s types.Session) string {
	var b strings.Builder

	fmt.Fprintf(&b, "<REAPER_PROJECT 0.1 \"7.0\" %d\n", now().Unix())
	b.WriteString("  RIPPLE 0\n")
	b.WriteString("  AUTOXFADE 129\n")
	fmt.Fprintf(&b, "  TITLE %s\n", quoted(s.Title()))
	if s.SampleRate > 0 {
		fmt.Fprintf(&b, "  SAMPLERATE %d 0 0\n", s.SampleRate)
	}
	b.WriteString("  TEMPO 120 4 4\n")

	for i, m := range markers {
		fmt.Fprintf(&b, "  MARKER %d %.3f %s 0 %d 1 R %s 0\n",
			i+1, m.Time, quoted(m.Label), m.Color.Packed(), NewGUID())
	}

	fmt.Fprintf(&b, "  <TRACK %s\n", NewGUID())
	fmt.Fprintf(&b, "    NAME %s\n", quoted(s.Title()))
	b.WriteString("    <ITEM\n")
	b.WriteString("      POSITION 0\n")
	fmt.Fprintf(&b, "      LENGTH %.3f\n", s.Length(markers))
	b.WriteString("      LOOP 0\n")
	fmt.Fprintf(&b, "      NAME %s\n", quoted(s.AudioFile))
	fmt.Fprintf(&b, "      IGUID %s\n", NewGUID())
	fmt.Fprintf(&b, "      GUID %s\n", NewGUID())
	fmt.Fprintf(&b, "      <SOURCE %s\n", reaperSource(s.Format()))
	fmt.Fprintf(&b, "        FILE %s\n", quoted(s.AudioFile))
	b.WriteString("      >\n")
	b.WriteString("    >\n")
	b.WriteString("  >\n")
	b.WriteString(">\n")

	return b.String()
}
