package markers

import (
	"strings"
	"testing"

	"github.com/rivo/uniseg"

	"github.com/simonhull/dawmark/internal/types"
)

func TestBuild_ExcludesReplies(t *testing.T) {
	in := []types.Annotation{
		{ID: "1", Time: 5, Body: "root", Author: "A"},
		{ID: "2", Time: 6, Body: "reply", Author: "B", ParentID: "1"},
		{ID: "3", Time: 1, Body: "another root", Author: "C"},
	}

	got := Build(in)
	if len(got) != 2 {
		t.Fatalf("Build() returned %d markers, want 2", len(got))
	}
	for _, m := range got {
		if m.Body == "reply" {
			t.Error("reply annotation leaked into markers")
		}
	}
}

func TestBuild_StableSortByTime(t *testing.T) {
	in := []types.Annotation{
		{Time: 10, Body: "c", Author: "x"},
		{Time: 2.5, Body: "a", Author: "x"},
		{Time: 10, Body: "d", Author: "x"},
		{Time: 2.5, Body: "b", Author: "x"},
		{Time: 0, Body: "start", Author: "x"},
	}

	got := Build(in)
	var order []string
	for _, m := range got {
		order = append(order, m.Body)
	}
	if strings.Join(order, ",") != "start,a,b,c,d" {
		t.Errorf("order = %v, want [start a b c d]", order)
	}
}

func TestBuild_DeduplicatesByID(t *testing.T) {
	in := []types.Annotation{
		{ID: "1", Time: 4, Body: "first", Author: "A"},
		{ID: "2", Time: 1, Body: "other", Author: "B"},
		{ID: "1", Time: 4, Body: "resent", Author: "A"},
		{Time: 4, Body: "no id", Author: "C"},
		{Time: 4, Body: "no id", Author: "C"},
	}

	got := Build(in)
	var order []string
	for _, m := range got {
		order = append(order, m.Body)
	}
	if strings.Join(order, ",") != "other,first,no id,no id" {
		t.Errorf("order = %v, want [other first no id no id]", order)
	}
}

func TestBuild_Empty(t *testing.T) {
	got := Build(nil)
	if got == nil {
		t.Fatal("Build(nil) returned nil, want empty slice")
	}
	if len(got) != 0 {
		t.Errorf("Build(nil) returned %d markers", len(got))
	}
}

func TestLabel(t *testing.T) {
	tests := []struct {
		name     string
		priority types.Priority
		category types.Category
		want     string
	}{
		{"critical issue", types.PriorityCritical, types.CategoryIssue, "\U0001F525\u26A0\uFE0F Sam: Kick too loud"},
		{"high approval", types.PriorityHigh, types.CategoryApproval, "\u26A1\u2705 Sam: Kick too loud"},
		{"low section", types.PriorityLow, types.CategorySection, "\U0001F4D1 Sam: Kick too loud"},
		{"unknown category", types.PriorityNone, types.Category("other"), "\U0001F4AC Sam: Kick too loud"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Label(tt.priority, tt.category, "Sam", "Kick too loud"); got != tt.want {
				t.Errorf("Label() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	short := strings.Repeat("a", MaxBody)
	if got := Truncate(short); got != short {
		t.Errorf("Truncate() changed a %d-character body", MaxBody)
	}

	long := strings.Repeat("b", 100)
	got := Truncate(long)
	if got != strings.Repeat("b", 57)+"..." {
		t.Errorf("Truncate() = %q", got)
	}

	// Family emoji is one grapheme cluster made of several code points.
	family := "\U0001F468\u200D\U0001F469\u200D\U0001F467"
	emoji := strings.Repeat(family, 70)
	got = Truncate(emoji)
	if n := uniseg.GraphemeClusterCount(got); n != MaxBody {
		t.Errorf("truncated emoji body has %d clusters, want %d", n, MaxBody)
	}
	if !strings.HasPrefix(got, family) || !strings.HasSuffix(got, family+"...") {
		t.Error("truncation split a grapheme cluster")
	}
}

func TestColor(t *testing.T) {
	tests := []struct {
		name     string
		priority types.Priority
		category types.Category
		want     string
	}{
		{"priority wins", types.PriorityCritical, types.CategoryApproval, "#DC2626"},
		{"medium", types.PriorityMedium, types.CategoryIssue, "#CA8A04"},
		{"category fallback", types.PriorityNone, types.CategoryMarker, "#3B82F6"},
		{"accent", types.PriorityNone, types.Category(""), "#6366F1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Color(tt.priority, tt.category).Hex(); got != tt.want {
				t.Errorf("Color() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestBuild_NormalizesCategory(t *testing.T) {
	got := Build([]types.Annotation{{Time: 1, Body: "x", Author: "y", Category: "bogus", Priority: "urgent"}})
	m := got[0]
	if m.Category != types.CategoryComment {
		t.Errorf("Category = %q, want comment", m.Category)
	}
	if m.Priority != types.PriorityNone {
		t.Errorf("Priority = %q, want none", m.Priority)
	}
	if m.Color != AccentColor {
		t.Errorf("Color = %s, want accent", m.Color.Hex())
	}
}
