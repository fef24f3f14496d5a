package markers

import "github.com/simonhull/dawmark/internal/types"

// Priority glyphs. Low and medium carry no glyph.
const (
	glyphCritical = "\U0001F525" // fire
	glyphHigh     = "\u26A1"     // high voltage
)

var categoryGlyphs = map[types.Category]string{
	types.CategoryIssue:    "\u26A0\uFE0F", // warning sign
	types.CategoryApproval: "\u2705",       // check mark
	types.CategoryMarker:   "\U0001F4CD",   // round pushpin
	types.CategorySection:  "\U0001F4D1",   // bookmark tabs
	types.CategoryVoice:    "\U0001F3A4",   // microphone
	types.CategoryComment:  "\U0001F4AC",   // speech balloon
}

var priorityColors = map[types.Priority]types.RGB{
	types.PriorityCritical: {R: 0xDC, G: 0x26, B: 0x26},
	types.PriorityHigh:     {R: 0xEA, G: 0x58, B: 0x0C},
	types.PriorityMedium:   {R: 0xCA, G: 0x8A, B: 0x04},
	types.PriorityLow:      {R: 0x16, G: 0xA3, B: 0x4A},
}

var categoryColors = map[types.Category]types.RGB{
	types.CategoryIssue:    {R: 0xEF, G: 0x44, B: 0x44},
	types.CategoryApproval: {R: 0x22, G: 0xC5, B: 0x5E},
	types.CategoryMarker:   {R: 0x3B, G: 0x82, B: 0xF6},
	types.CategorySection:  {R: 0x8B, G: 0x5C, B: 0xF6},
	types.CategoryVoice:    {R: 0xEC, G: 0x48, B: 0x99},
	types.CategoryComment:  {R: 0x6B, G: 0x72, B: 0x80},
}

// AccentColor is used when neither priority nor category maps to a color.
var AccentColor = types.RGB{R: 0x63, G: 0x66, B: 0xF1}

// PriorityGlyph returns the glyph prefix for p, or "".
func PriorityGlyph(p types.Priority) string {
	switch p {
	case types.PriorityCritical:
		return glyphCritical
	case types.PriorityHigh:
		return glyphHigh
	default:
		return ""
	}
}

// CategoryGlyph returns the glyph for c, falling back to the comment glyph.
func CategoryGlyph(c types.Category) string {
	if g, ok := categoryGlyphs[c]; ok {
		return g
	}
	return categoryGlyphs[types.CategoryComment]
}

// Color picks the display color. Priority wins over category.
func Color(p types.Priority, c types.Category) types.RGB {
	if col, ok := priorityColors[p]; ok {
		return col
	}
	if col, ok := categoryColors[c]; ok {
		return col
	}
	return AccentColor
}
