package daw

import (
	"github.com/simonhull/dawmark/internal/registry"
	"github.com/simonhull/dawmark/internal/types"
)

func text(fn func([]types.Marker, types.Session) string) registry.RenderFunc {
	return func(markers []types.Marker, s types.Session) []byte {
		return []byte(fn(markers, s))
	}
}

var (
	reaperEmitter    = registry.Emitter{Suffix: SuffixReaper, MediaType: types.MediaTypeReaper, Render: text(ReaperProject)}
	cueEmitter       = registry.Emitter{Suffix: SuffixCue, MediaType: types.MediaTypeCue, Render: text(CueSheet)}
	universalEmitter = registry.Emitter{Suffix: SuffixMarkers, MediaType: types.MediaTypeText, Render: text(UniversalMarkers)}
	labelEmitter     = registry.Emitter{Suffix: SuffixLabels, MediaType: types.MediaTypeText, Render: text(LabelTrack)}
)

// init registers the text emitters. The project and cue sheet reference
// the audio by name, so those targets bundle it.
func init() {
	registry.Register(types.TargetTimelineProject, true, reaperEmitter)
	registry.Register(types.TargetSessionMarkers, true, cueEmitter)
	registry.Register(types.TargetUniversalMarkers, false, universalEmitter)
	registry.Register(types.TargetLabelTrack, false, labelEmitter)
	registry.Register(registry.FallbackTarget, false, reaperEmitter, cueEmitter, universalEmitter, labelEmitter)
}
