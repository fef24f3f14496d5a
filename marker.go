package dawmark

import (
	"io"

	"github.com/simonhull/dawmark/internal/markers"
	"github.com/simonhull/dawmark/internal/types"
)

// Annotation is an alias to types.Annotation.
type Annotation = types.Annotation

// Marker is an alias to types.Marker.
type Marker = types.Marker

// Category is an alias to types.Category.
type Category = types.Category

// Priority is an alias to types.Priority.
type Priority = types.Priority

// RGB is an alias to types.RGB.
type RGB = types.RGB

// Re-export category and priority constants.
const (
	CategoryIssue    = types.CategoryIssue
	CategoryApproval = types.CategoryApproval
	CategoryMarker   = types.CategoryMarker
	CategorySection  = types.CategorySection
	CategoryVoice    = types.CategoryVoice
	CategoryComment  = types.CategoryComment

	PriorityNone     = types.PriorityNone
	PriorityLow      = types.PriorityLow
	PriorityMedium   = types.PriorityMedium
	PriorityHigh     = types.PriorityHigh
	PriorityCritical = types.PriorityCritical
)

// BuildMarkers turns annotations into the sorted marker list every export
// target renders. Replies are dropped.
func BuildMarkers(annotations []Annotation) []Marker {
	return markers.Build(annotations)
}

// DecodeAnnotations reads a JSON array of loosely typed annotation records,
// as stored by the collaboration backend, into validated Annotations.
func DecodeAnnotations(r io.Reader) ([]Annotation, error) {
	return types.DecodeAnnotations(r)
}
