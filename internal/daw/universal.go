package daw

import (
	"fmt"
	"math"
	"strings"

	"github.com/simonhull/dawmark/internal/types"
)

// UniversalHeader is the first line of a universal marker list.
const UniversalHeader = "#\tName\tStart\tSeconds\tPriority\tCategory\tAuthor\tColor"

// Timestamp formats seconds as HH:MM:SS.mmm.
func Timestamp(seconds float64) string {
	ms := int64(math.Round(max(seconds, 0) * 1000))
	h := ms / 3_600_000
	m := ms / 60_000 % 60
	sec := ms / 1000 % 60
	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, sec, ms%1000)
}

// UniversalMarkers renders a tab-delimited marker list with one row per
// marker under UniversalHeader. Most DAWs and spreadsheet tools import it.
func UniversalMarkers(markers []types.Marker, _ types.Session) string {
	var b strings.Builder
	b.WriteString(UniversalHeader)
	b.WriteByte('\n')

	for i, m := range markers {
		priority := string(m.Priority)
		if priority == "" {
			priority = "-"
		}
		fields := []string{
			fmt.Sprint(i + 1),
			oneLine(m.Label),
			Timestamp(m.Time),
			fmt.Sprintf("%.3f", m.Time),
			priority,
			string(m.Category),
			oneLine(m.Author),
			m.Color.Hex(),
		}
		b.WriteString(strings.Join(fields, "\t"))
		b.WriteByte('\n')
	}
	return b.String()
}
