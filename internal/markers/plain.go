package markers

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/simonhull/dawmark/internal/types"
)

// ASCII decomposes s, drops combining marks and then anything outside
// printable ASCII, so "Café" becomes "Cafe" and emoji disappear. Runs of
// whitespace collapse to a single space.
func ASCII(s string) string {
	t := transform.Chain(
		norm.NFKD,
		runes.Remove(runes.In(unicode.Mn)),
		runes.Map(func(r rune) rune {
			if r == '\n' || r == '\r' || r == '\t' {
				return ' '
			}
			return r
		}),
		runes.Remove(runes.Predicate(func(r rune) bool {
			return r > unicode.MaxASCII || !unicode.IsPrint(r)
		})),
	)
	out, _, err := transform.String(t, s)
	if err != nil {
		return ""
	}
	return strings.Join(strings.Fields(out), " ")
}

// PlainText renders a marker as ASCII for targets that mangle multi-byte
// text:
//
//	[HIGH] [ISSUE] Sam: Kick too loud
//
// The priority tag is omitted when the marker has none.
func PlainText(m types.Marker) string {
	var b strings.Builder
	if m.Priority != types.PriorityNone {
		b.WriteString("[" + strings.ToUpper(string(m.Priority)) + "] ")
	}
	category := m.Category
	if category == "" {
		category = types.CategoryComment
	}
	b.WriteString("[" + strings.ToUpper(string(category)) + "] ")

	b.WriteString(PlainAuthor(m))
	b.WriteString(": ")

	body := ASCII(m.Body)
	if len(body) > MaxBody {
		body = body[:truncatedBody] + ellipsis
	}
	b.WriteString(body)
	return strings.TrimSpace(b.String())
}

// PlainAuthor returns the ASCII author name, or "Unknown" when nothing
// printable survives folding.
func PlainAuthor(m types.Marker) string {
	if a := ASCII(m.Author); a != "" {
		return a
	}
	return "Unknown"
}
