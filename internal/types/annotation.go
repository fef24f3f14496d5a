package types

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Category classifies an annotation.
type Category string

const (
	CategoryIssue    Category = "issue"
	CategoryApproval Category = "approval"
	CategoryMarker   Category = "marker"
	CategorySection  Category = "section"
	CategoryVoice    Category = "voice"
	CategoryComment  Category = "comment"
)

// ParseCategory normalizes a free-form category string. Anything
// unrecognised becomes CategoryComment.
func ParseCategory(s string) Category {
	switch c := Category(strings.ToLower(strings.TrimSpace(s))); c {
	case CategoryIssue, CategoryApproval, CategoryMarker, CategorySection, CategoryVoice, CategoryComment:
		return c
	default:
		return CategoryComment
	}
}

// Priority ranks an annotation. The zero value means no priority was set.
type Priority string

const (
	PriorityNone     Priority = ""
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// ParsePriority normalizes a free-form priority string. Anything
// unrecognised becomes PriorityNone.
func ParsePriority(s string) Priority {
	switch p := Priority(strings.ToLower(strings.TrimSpace(s))); p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return p
	default:
		return PriorityNone
	}
}

// Annotation is a timestamped, user-authored note on a recording, as
// supplied by the collaboration system.
type Annotation struct {
	ID       string
	Time     float64 // seconds from the start of the recording
	Body     string
	Category Category
	Priority Priority
	Author   string
	ParentID string // non-empty for replies
	VoiceRef string // optional linked voice recording
}

// IsReply reports whether the annotation answers another one.
func (a Annotation) IsReply() bool {
	return a.ParentID != ""
}

// rawAnnotation mirrors the loosely typed records of the surrounding
// application. Field names follow its JSON.
type rawAnnotation struct {
	ID        json.RawMessage `json:"id"`
	Timestamp json.RawMessage `json:"timestamp"`
	Text      string          `json:"text"`
	Content   string          `json:"content"`
	Type      string          `json:"annotation_type"`
	Priority  string          `json:"priority"`
	UserName  string          `json:"user_name"`
	Author    string          `json:"author"`
	ParentID  json.RawMessage `json:"parent_id"`
	VoiceURL  string          `json:"voice_url"`
}

// DecodeAnnotations reads a JSON array of annotation records and validates
// them into strict Annotation values.
//
// IDs and timestamps may be JSON numbers or strings. Records without a
// usable timestamp are rejected; a negative timestamp is clamped to zero.
func DecodeAnnotations(r io.Reader) ([]Annotation, error) {
	var raws []rawAnnotation
	if err := json.NewDecoder(r).Decode(&raws); err != nil {
		return nil, fmt.Errorf("decode annotations: %w", err)
	}

	out := make([]Annotation, 0, len(raws))
	for i, raw := range raws {
		a, err := raw.normalize()
		if err != nil {
			return nil, fmt.Errorf("annotation %d: %w", i, err)
		}
		out = append(out, a)
	}
	return out, nil
}

func (r rawAnnotation) normalize() (Annotation, error) {
	ts, err := jsonNumber(r.Timestamp)
	if err != nil {
		return Annotation{}, fmt.Errorf("timestamp: %w", err)
	}
	if math.IsNaN(ts) || math.IsInf(ts, 0) {
		return Annotation{}, fmt.Errorf("timestamp: not finite")
	}
	if ts < 0 {
		ts = 0
	}

	body := r.Text
	if body == "" {
		body = r.Content
	}
	author := r.UserName
	if author == "" {
		author = r.Author
	}
	if author == "" {
		author = "Unknown"
	}

	return Annotation{
		ID:       jsonString(r.ID),
		Time:     ts,
		Body:     strings.TrimSpace(body),
		Category: ParseCategory(r.Type),
		Priority: ParsePriority(r.Priority),
		Author:   strings.TrimSpace(author),
		ParentID: jsonString(r.ParentID),
		VoiceRef: r.VoiceURL,
	}, nil
}

// jsonString renders a string, number or null JSON value as a string.
// null and absent values become "".
func jsonString(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}

func jsonNumber(raw json.RawMessage) (float64, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, fmt.Errorf("missing")
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, fmt.Errorf("not a number: %s", raw)
	}
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
