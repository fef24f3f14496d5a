package types

import (
	"fmt"
	"strings"
	"time"
)

// Descriptor describes a probed source container.
//
// Format and Embeddable are always set. SampleRate, Channels and
// BitsPerSample are filled when the container declares them (always for a
// well-formed WAV, best effort for mp3 and flac). Duration is zero when it
// could not be determined.
type Descriptor struct {
	Format        Format
	Embeddable    bool
	SampleRate    int
	Channels      int
	BitsPerSample int
	Duration      time.Duration
}

// NewDescriptor returns a descriptor for f with the embedding flag derived
// from the format.
func NewDescriptor(f Format) Descriptor {
	return Descriptor{
		Format:     f,
		Embeddable: f.CanEmbedCues(),
	}
}

// String returns a human-readable representation of the descriptor.
// Example output: "wav 44.1kHz 16-bit stereo 3m12s".
func (d Descriptor) String() string {
	parts := []string{d.Format.String()}
	if d.SampleRate > 0 {
		parts = append(parts, fmt.Sprintf("%.1fkHz", float64(d.SampleRate)/1000))
	}
	if d.BitsPerSample > 0 {
		parts = append(parts, fmt.Sprintf("%d-bit", d.BitsPerSample))
	}
	if ch := channelDescription(d.Channels); ch != "" {
		parts = append(parts, ch)
	}
	if d.Duration > 0 {
		parts = append(parts, d.Duration.Round(time.Millisecond).String())
	}
	return strings.Join(parts, " ")
}

// Seconds returns the duration in seconds.
func (d Descriptor) Seconds() float64 {
	return d.Duration.Seconds()
}

// channelDescription returns a human-readable channel description.
func channelDescription(channels int) string {
	switch channels {
	case 0:
		return ""
	case 1:
		return "mono"
	case 2:
		return "stereo"
	case 6:
		return "5.1"
	case 8:
		return "7.1"
	default:
		return fmt.Sprintf("%dch", channels)
	}
}
