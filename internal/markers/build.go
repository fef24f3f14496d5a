// Package markers turns raw annotations into the ordered marker list that
// every emitter consumes.
package markers

import (
	"cmp"
	"slices"
	"strings"

	"github.com/rivo/uniseg"
	"golang.org/x/text/unicode/norm"

	"github.com/simonhull/dawmark/internal/types"
)

const (
	// MaxBody is the longest body kept verbatim in a label.
	MaxBody = 60
	// truncatedBody is how much of a longer body survives before the ellipsis.
	truncatedBody = MaxBody - len(ellipsis)
	ellipsis      = "..."
)

// Build converts annotations to markers.
//
// Replies (non-empty ParentID) are dropped, as are repeated records of an
// ID already seen; the first occurrence wins. Annotations without an ID are
// always kept. The result is sorted by time; annotations sharing a
// timestamp keep their input order. Build never returns nil.
func Build(annotations []types.Annotation) []types.Marker {
	out := make([]types.Marker, 0, len(annotations))
	seen := make(map[string]struct{}, len(annotations))
	for _, a := range annotations {
		if a.IsReply() {
			continue
		}
		if a.ID != "" {
			if _, dup := seen[a.ID]; dup {
				continue
			}
			seen[a.ID] = struct{}{}
		}
		out = append(out, newMarker(a))
	}

	slices.SortStableFunc(out, func(a, b types.Marker) int {
		return cmp.Compare(a.Time, b.Time)
	})
	return out
}

func newMarker(a types.Annotation) types.Marker {
	body := norm.NFC.String(strings.TrimSpace(a.Body))
	author := norm.NFC.String(strings.TrimSpace(a.Author))

	return types.Marker{
		Time:     a.Time,
		Label:    Label(a.Priority, a.Category, author, body),
		Category: types.ParseCategory(string(a.Category)),
		Priority: types.ParsePriority(string(a.Priority)),
		Color:    Color(a.Priority, a.Category),
		Author:   author,
		Body:     body,
	}
}

// Label renders the marker label: priority glyph, category glyph, then
// "author: body" with the body truncated to fit.
func Label(p types.Priority, c types.Category, author, body string) string {
	var sb strings.Builder
	sb.WriteString(PriorityGlyph(p))
	sb.WriteString(CategoryGlyph(c))
	sb.WriteByte(' ')
	sb.WriteString(author)
	sb.WriteString(": ")
	sb.WriteString(Truncate(body))
	return sb.String()
}

// Truncate shortens s to truncatedBody user-perceived characters plus an
// ellipsis when it is longer than MaxBody. Grapheme clusters are never split.
func Truncate(s string) string {
	if uniseg.GraphemeClusterCount(s) <= MaxBody {
		return s
	}

	var sb strings.Builder
	g := uniseg.NewGraphemes(s)
	for n := 0; n < truncatedBody && g.Next(); n++ {
		sb.WriteString(g.Str())
	}
	return sb.String() + ellipsis
}
