package daw

import (
	"fmt"
	"strings"

	"github.com/simonhull/dawmark/internal/types"
)

// Manifest describes the package an instructions document travels with.
type Manifest struct {
	Files    []string // names of the other files in the package
	Degraded bool     // the requested artifact could not be produced
	Reason   string   // why, when Degraded
}

// importSteps pairs a filename suffix with how to import that file.
var importSteps = []struct {
	suffix string
	steps  []string
}{
	{".wav", []string{
		"Open the WAV file in REAPER, Adobe Audition, Sound Forge, WaveLab or any",
		"editor that reads RIFF cue points. Markers appear on the timeline.",
	}},
	{SuffixReaper, []string{
		"REAPER: File > Open project, select the .rpp file. Keep the audio file in",
		"the same folder so the item finds its source.",
	}},
	{SuffixMIDI, []string{
		"Pro Tools: File > Import > MIDI, enable \"Import markers\".",
		"Logic Pro: File > Import > MIDI File. Markers land in the marker track.",
		"Cubase / Nuendo / Studio One: drag the .mid file onto the project.",
		"The file uses SMPTE timing so positions hold at any tempo.",
	}},
	{SuffixCue, []string{
		"Load the cue sheet in any CUE-aware player or editor (foobar2000,",
		"Audition, WaveLab). Each marker is one track index.",
	}},
	{SuffixMarkers, []string{
		"The tab-delimited list opens in a spreadsheet and imports into DAWs",
		"with a marker list import (e.g. Resolve, Nuendo via CSV).",
	}},
	{SuffixLabels, []string{
		"Audacity: File > Import > Labels, select the label file.",
	}},
}

func stepsFor(name string) (string, []string) {
	lower := strings.ToLower(name)
	for _, s := range importSteps {
		if strings.HasSuffix(lower, strings.ToLower(s.suffix)) {
			return s.suffix, s.steps
		}
	}
	return "", nil
}

// Instructions renders a plain-text readme for an export package. A
// degraded package opens with a notice naming the reason.
func Instructions(markers []types.Marker, s types.Session, man Manifest) string {
	var b strings.Builder

	title := s.Title()
	fmt.Fprintf(&b, "%s: marker export\n", title)
	b.WriteString(strings.Repeat("=", len(title)+15))
	b.WriteString("\n\n")

	if man.Degraded {
		b.WriteString("NOTICE: markers could not be embedded into the audio file.\n")
		if man.Reason != "" {
			fmt.Fprintf(&b, "Reason: %s\n", oneLine(man.Reason))
		}
		b.WriteString("The original audio is included unchanged. Import one of the marker\n")
		b.WriteString("files below alongside it.\n\n")
	}

	fmt.Fprintf(&b, "Markers: %d\n", len(markers))
	if s.AudioFile != "" {
		fmt.Fprintf(&b, "Audio:   %s\n", s.AudioFile)
	}
	b.WriteString("\n")

	if len(man.Files) > 0 {
		b.WriteString("Files\n-----\n")
		for _, f := range man.Files {
			fmt.Fprintf(&b, "  %s\n", f)
		}
		b.WriteString("\n")
	}

	seen := make(map[string]bool)
	for _, f := range man.Files {
		suffix, steps := stepsFor(f)
		if steps == nil || seen[suffix] {
			continue
		}
		seen[suffix] = true
		fmt.Fprintf(&b, "%s\n", f)
		for _, line := range steps {
			fmt.Fprintf(&b, "  %s\n", line)
		}
		b.WriteString("\n")
	}

	if len(markers) > 0 {
		b.WriteString("Marker list\n-----------\n")
		for _, m := range markers {
			fmt.Fprintf(&b, "  %s  %s\n", Timestamp(m.Time), oneLine(m.Label))
		}
	}

	return b.String()
}
