package types

import "fmt"

// Target names an export format a caller can request.
type Target string

const (
	// TargetEmbeddedCues is a WAV copy with cue and label chunks.
	TargetEmbeddedCues Target = "embedded-cues"
	// TargetTimelineProject is a REAPER project bundled with the audio.
	TargetTimelineProject Target = "timeline-project"
	// TargetMIDIMarkers is a Standard MIDI File of marker events.
	TargetMIDIMarkers Target = "midi-markers"
	// TargetSessionMarkers is a CD cue sheet bundled with the audio.
	TargetSessionMarkers Target = "session-markers"
	// TargetUniversalMarkers is a tab-delimited marker list.
	TargetUniversalMarkers Target = "universal-markers"
	// TargetLabelTrack is an Audacity label track.
	TargetLabelTrack Target = "label-track"
	// TargetID3Markers is an MP3 copy with the markers in an ID3 comment.
	TargetID3Markers Target = "id3-markers"
)

// Targets lists every target in presentation order.
var Targets = []Target{
	TargetEmbeddedCues,
	TargetTimelineProject,
	TargetMIDIMarkers,
	TargetSessionMarkers,
	TargetUniversalMarkers,
	TargetLabelTrack,
	TargetID3Markers,
}

// ParseTarget validates a target name. "MIDI-markers" style spellings are
// accepted case-insensitively.
func ParseTarget(s string) (Target, error) {
	for _, t := range Targets {
		if equalFold(string(t), s) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown export target %q", s)
}

// Embeds reports whether the target modifies a copy of the source
// container instead of emitting sidecar files only.
func (t Target) Embeds() bool {
	return t == TargetEmbeddedCues || t == TargetID3Markers
}

func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range len(a) {
		x, y := a[i], b[i]
		if 'A' <= x && x <= 'Z' {
			x += 'a' - 'A'
		}
		if 'A' <= y && y <= 'Z' {
			y += 'a' - 'A'
		}
		if x != y {
			return false
		}
	}
	return true
}
