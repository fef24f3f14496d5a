package dawmark

import (
	"github.com/simonhull/dawmark/internal/types"
)

// Artifact is an alias to types.Artifact.
type Artifact = types.Artifact

// Target is an alias to types.Target.
type Target = types.Target

// Re-export target constants.
const (
	TargetEmbeddedCues     = types.TargetEmbeddedCues
	TargetTimelineProject  = types.TargetTimelineProject
	TargetMIDIMarkers      = types.TargetMIDIMarkers
	TargetSessionMarkers   = types.TargetSessionMarkers
	TargetUniversalMarkers = types.TargetUniversalMarkers
	TargetLabelTrack       = types.TargetLabelTrack
	TargetID3Markers       = types.TargetID3Markers
)

// Targets returns every export target in presentation order.
func Targets() []Target {
	return append([]Target(nil), types.Targets...)
}

// ParseTarget validates a target name, ignoring case.
func ParseTarget(s string) (Target, error) {
	return types.ParseTarget(s)
}
