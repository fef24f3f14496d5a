package daw

import (
	"fmt"
	"strings"

	"github.com/simonhull/dawmark/internal/types"
)

// LabelTrack renders an Audacity label track: point labels as
// "start<TAB>end<TAB>text" with start == end.
func LabelTrack(markers []types.Marker, _ types.Session) string {
	var b strings.Builder
	for _, m := range markers {
		fmt.Fprintf(&b, "%.6f\t%.6f\t%s\n", m.Time, m.Time, oneLine(m.Label))
	}
	return b.String()
}
