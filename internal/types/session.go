package types

import (
	"path"
	"strings"
	"time"
)

// Session carries the per-export context an emitter needs beyond the
// markers themselves.
type Session struct {
	Name       string        // project title
	AudioFile  string        // bundled audio filename, no directories or query
	Duration   time.Duration // source length, zero if unknown
	SampleRate int           // zero if unknown
}

// Format returns the audio container implied by AudioFile's extension.
func (s Session) Format() Format {
	return FormatFromLocator(s.AudioFile)
}

// Title returns Name, or the audio filename without extension, or
// "Untitled".
func (s Session) Title() string {
	if t := strings.TrimSpace(s.Name); t != "" {
		return t
	}
	if s.AudioFile != "" {
		return strings.TrimSuffix(s.AudioFile, path.Ext(s.AudioFile))
	}
	return "Untitled"
}

// Length returns the timeline length in seconds: the source duration, or
// when that is unknown, one second past the last marker.
func (s Session) Length(markers []Marker) float64 {
	if s.Duration > 0 {
		return s.Duration.Seconds()
	}
	var last float64
	for _, m := range markers {
		last = max(last, m.Time)
	}
	return last + 1
}
