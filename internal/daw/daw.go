// Package daw renders marker lists as DAW import formats: a REAPER
// project, a CD cue sheet, a tab-delimited marker list, an Audacity label
// track and a plain-text instructions document.
//
// Every emitter is a pure function of the markers and a types.Session.
// Filenames in the session must already be clean; emitters copy them
// verbatim.
package daw

import "strings"

// Filename suffixes appended to the project's base name.
const (
	SuffixReaper       = ".rpp"
	SuffixMIDI         = ".mid"
	SuffixCue          = ".cue"
	SuffixMarkers      = " - Markers.txt"
	SuffixLabels       = " - Labels.txt"
	SuffixInstructions = " - Import Instructions.txt"
)

// oneLine replaces line breaks and tabs with spaces.
func oneLine(s string) string {
	return strings.Join(strings.FieldsFunc(s, func(r rune) bool {
		return r == '\n' || r == '\r' || r == '\t'
	}), " ")
}

// quoted sanitizes s for a double-quoted field: embedded double quotes
// become single quotes and the result is on one line.
func quoted(s string) string {
	return `"` + strings.ReplaceAll(oneLine(s), `"`, "'") + `"`
}
