package midi

import (
	"github.com/simonhull/dawmark/internal/registry"
	"github.com/simonhull/dawmark/internal/types"
)

// init registers the MIDI marker file for its own target and the
// fallback package.
func init() {
	e := registry.Emitter{
		Suffix:    ".mid",
		MediaType: types.MediaTypeMIDI,
		Render: func(markers []types.Marker, s types.Session) []byte {
			return Encode(markers, s.Title())
		},
	}
	registry.Register(types.TargetMIDIMarkers, false, e)
	registry.Register(registry.FallbackTarget, false, e)
}
