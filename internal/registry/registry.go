// Package registry maps export targets to the emitters that render them.
package registry

import (
	"slices"

	"github.com/simonhull/dawmark/internal/types"
)

// RenderFunc renders one artifact body.
type RenderFunc func(markers []types.Marker, s types.Session) []byte

// Emitter produces one file of a target's output.
type Emitter struct {
	// Suffix is appended to the project base name, e.g. ".rpp".
	Suffix    string
	MediaType string
	Render    RenderFunc
}

// Entry describes how a sidecar target is built.
type Entry struct {
	Emitters []Emitter
	// BundleAudio adds the unmodified source audio to the package because
	// the emitted files reference it by name.
	BundleAudio bool
}

// FallbackTarget keys the emitter set used when embedding fails.
const FallbackTarget types.Target = "fallback"

// entries maps targets to how they are built.
var entries = make(map[types.Target]Entry)

// Register adds emitters for a target. Registering the same target again
// appends, so several packages can contribute to one target.
// This is called by emitter packages during initialization (init functions).
func Register(target types.Target, bundleAudio bool, emitters ...Emitter) {
	s := entries[target]
	s.Emitters = append(s.Emitters, emitters...)
	s.BundleAudio = s.BundleAudio || bundleAudio
	entries[target] = s
}

// Get returns the entry for a target.
// Returns false if nothing is registered for it.
func Get(target types.Target) (Entry, bool) {
	s, ok := entries[target]
	return s, ok
}

// Targets returns every registered target, sorted.
func Targets() []types.Target {
	out := make([]types.Target, 0, len(entries))
	for t := range entries {
		out = append(out, t)
	}
	slices.Sort(out)
	return out
}
