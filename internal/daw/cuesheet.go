package daw

import (
	"fmt"
	"math"
	"strings"

	"github.com/simonhull/dawmark/internal/markers"
	"github.com/simonhull/dawmark/internal/types"
)

const (
	// FramesPerSecond is the CD frame rate used by INDEX timestamps.
	FramesPerSecond = 75

	// maxTracks is the cue sheet track limit. Later markers are kept as
	// REM lines.
	maxTracks = 99
)

// CueTime formats seconds as mm:ss:ff with 75 frames per second. Minutes
// are not wrapped, so long recordings produce values above 99.
func CueTime(seconds float64) string {
	frames := int64(math.Round(max(seconds, 0) * FramesPerSecond))
	mm := frames / (FramesPerSecond * 60)
	ss := frames / FramesPerSecond % 60
	ff := frames % FramesPerSecond
	return fmt.Sprintf("%02d:%02d:%02d", mm, ss, ff)
}

// cueFileType maps a container to the cue sheet FILE type keyword.
func cueFileType(f types.Format) string {
	switch f {
	case types.FormatMP3:
		return "MP3"
	case types.FormatAIFF:
		return "AIFF"
	default:
		return "WAVE"
	}
}

// CueSheet renders a CD cue sheet with one TRACK per marker.
//
// Text is folded to ASCII since cue sheet readers disagree on encoding.
func CueSheet(ms []types.Marker, s types.Session) string {
	var b strings.Builder

	b.WriteString("REM COMMENT \"dawmark marker export\"\n")
	fmt.Fprintf(&b, "TITLE %s\n", quoted(markers.ASCII(s.Title())))
	fmt.Fprintf(&b, "FILE %s %s\n", quoted(s.AudioFile), cueFileType(s.Format()))

	for i, m := range ms {
		if i >= maxTracks {
			fmt.Fprintf(&b, "REM MARKER %s %s\n", CueTime(m.Time), quoted(markers.PlainText(m)))
			continue
		}
		fmt.Fprintf(&b, "  TRACK %02d AUDIO\n", i+1)
		fmt.Fprintf(&b, "    TITLE %s\n", quoted(markers.PlainText(m)))
		fmt.Fprintf(&b, "    PERFORMER %s\n", quoted(markers.PlainAuthor(m)))
		fmt.Fprintf(&b, "    INDEX 01 %s\n", CueTime(m.Time))
	}

	return b.String()
}
