package types

import "fmt"

// RGB is a 24-bit display color.
type RGB struct {
	R, G, B uint8
}

// ParseHex parses "#RRGGBB" (the leading '#' is optional).
func ParseHex(s string) (RGB, error) {
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	var c RGB
	if len(s) != 6 {
		return c, fmt.Errorf("color %q: want 6 hex digits", s)
	}
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
		return c, fmt.Errorf("color %q: %w", s, err)
	}
	return c, nil
}

// Hex returns the color as "#RRGGBB".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// Packed returns the color in the integer layout REAPER uses for custom
// marker colors: 0x01BBGGRR, where the high byte flags the color as set.
func (c RGB) Packed() uint32 {
	return 0x01000000 | uint32(c.B)<<16 | uint32(c.G)<<8 | uint32(c.R)
}

// Marker is the normalized, exportable form of one root-level annotation.
//
// Markers are built once per export and never modified afterwards.
type Marker struct {
	Time     float64 // seconds
	Label    string  // glyphs + author + truncated body
	Category Category
	Priority Priority
	Color    RGB
	Author   string
	Body     string // untruncated annotation text
}
