package types

import (
	"strings"
	"testing"
)

func TestDecodeAnnotations(t *testing.T) {
	input := `[
		{"id": 7, "timestamp": 12.5, "text": " Kick too loud ", "annotation_type": "ISSUE", "priority": "High", "user_name": "Sam"},
		{"id": "a-2", "timestamp": "3.25", "content": "nice", "annotation_type": "weird", "priority": "urgent", "parent_id": 7},
		{"id": 9, "timestamp": -1, "text": "pre-roll", "parent_id": null, "author": "Kim"}
	]`

	got, err := DecodeAnnotations(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodeAnnotations() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d annotations, want 3", len(got))
	}

	first := got[0]
	if first.ID != "7" || first.Time != 12.5 || first.Body != "Kick too loud" {
		t.Errorf("first = %+v", first)
	}
	if first.Category != CategoryIssue || first.Priority != PriorityHigh || first.Author != "Sam" {
		t.Errorf("first classification = %q/%q/%q", first.Category, first.Priority, first.Author)
	}

	second := got[1]
	if second.Time != 3.25 || second.Body != "nice" {
		t.Errorf("second = %+v", second)
	}
	if second.Category != CategoryComment || second.Priority != PriorityNone {
		t.Errorf("unknown strings should normalize, got %q/%q", second.Category, second.Priority)
	}
	if !second.IsReply() || second.ParentID != "7" {
		t.Errorf("second should be a reply to 7, got ParentID %q", second.ParentID)
	}
	if second.Author != "Unknown" {
		t.Errorf("missing author = %q, want Unknown", second.Author)
	}

	third := got[2]
	if third.Time != 0 {
		t.Errorf("negative timestamp should clamp to 0, got %v", third.Time)
	}
	if third.IsReply() {
		t.Error("null parent_id should not be a reply")
	}
}

func TestDecodeAnnotations_MissingTimestamp(t *testing.T) {
	_, err := DecodeAnnotations(strings.NewReader(`[{"id": 1, "text": "x"}]`))
	if err == nil {
		t.Fatal("expected error for missing timestamp")
	}
	if !strings.Contains(err.Error(), "annotation 0") {
		t.Errorf("error should name the record, got %v", err)
	}
}

func TestDecodeAnnotations_NotJSON(t *testing.T) {
	if _, err := DecodeAnnotations(strings.NewReader("{")); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}

func TestRGB(t *testing.T) {
	c, err := ParseHex("#DC2626")
	if err != nil {
		t.Fatalf("ParseHex() error = %v", err)
	}
	if c != (RGB{R: 0xDC, G: 0x26, B: 0x26}) {
		t.Errorf("ParseHex() = %+v", c)
	}
	if got := c.Hex(); got != "#DC2626" {
		t.Errorf("Hex() = %q", got)
	}
	if got, want := c.Packed(), uint32(0x012626DC); got != want {
		t.Errorf("Packed() = %#x, want %#x", got, want)
	}
	if _, err := ParseHex("#12"); err == nil {
		t.Error("expected error for short color")
	}
}
