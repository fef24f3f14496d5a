package types

// Media types for generated artifacts.
const (
	MediaTypeMIDI   = "audio/midi"
	MediaTypeText   = "text/plain; charset=utf-8"
	MediaTypeCue    = "application/x-cue"
	MediaTypeReaper = "application/x-reaper-project"
	MediaTypeZip    = "application/zip"
)

// Artifact is one named output file.
type Artifact struct {
	Name      string
	MediaType string
	Data      []byte
}

// Size returns the payload length in bytes.
func (a Artifact) Size() int {
	return len(a.Data)
}

// Package groups the artifacts produced for a single export request,
// optionally with a copy of the source audio.
type Package struct {
	Artifacts []Artifact
	Audio     *Artifact
}

// Files returns the artifacts followed by the audio copy, if any.
func (p Package) Files() []Artifact {
	files := make([]Artifact, 0, len(p.Artifacts)+1)
	files = append(files, p.Artifacts...)
	if p.Audio != nil {
		files = append(files, *p.Audio)
	}
	return files
}
