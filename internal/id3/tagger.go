// Package id3 writes the marker list into an MP3 copy as ID3v2 frames.
//
// MP3 has no cue points, so markers travel as a comment frame that
// taggers and several DAWs display. Audio frames are copied unchanged.
package id3

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/bogem/id3v2"

	"github.com/simonhull/dawmark/internal/daw"
	"github.com/simonhull/dawmark/internal/types"
)

// CommentDescription identifies the comment frame holding the markers.
// Earlier frames with this description are replaced on re-export.
const CommentDescription = "dawmark markers"

const headerSize = 10

// decodeSynchsafe decodes a synchsafe integer (7 bits per byte).
func decodeSynchsafe(b []byte) uint32 {
	return uint32(b[0]&0x7F)<<21 | uint32(b[1]&0x7F)<<14 | uint32(b[2]&0x7F)<<7 | uint32(b[3]&0x7F)
}

// TagSize returns the byte length of the ID3v2 tag at the start of data,
// header and footer included, or 0 when there is none.
func TagSize(data []byte) int {
	if len(data) < headerSize || string(data[0:3]) != "ID3" {
		return 0
	}
	size := headerSize + int(decodeSynchsafe(data[6:10]))
	if data[5]&0x10 != 0 {
		size += headerSize
	}
	return min(size, len(data))
}

// MarkerComment renders the comment text: one "HH:MM:SS.mmm label" line
// per marker.
func MarkerComment(markers []types.Marker) string {
	lines := make([]string, len(markers))
	for i, m := range markers {
		lines[i] = daw.Timestamp(m.Time) + " " + strings.Join(strings.Fields(m.Label), " ")
	}
	return strings.Join(lines, "\n")
}

// Tag returns a copy of an MP3 buffer whose ID3v2.4 tag carries the
// markers in a comment frame. Existing frames are kept. title fills TIT2
// when the source has none.
func Tag(data []byte, markers []types.Marker, title string) ([]byte, error) {
	if types.DetectFormat(data[:min(len(data), 12)]) != types.FormatMP3 {
		return nil, &types.FormatError{Format: types.FormatMP3, Reason: "no ID3 tag or MPEG frame sync"}
	}

	tag, err := id3v2.ParseReader(bytes.NewReader(data), id3v2.Options{Parse: true})
	if err != nil {
		return nil, fmt.Errorf("parse id3 tag: %w", err)
	}
	tag.SetVersion(4)
	tag.SetDefaultEncoding(id3v2.EncodingUTF8)

	if tag.Title() == "" && title != "" {
		tag.SetTitle(title)
	}

	commentID := tag.CommonID("Comments")
	var kept []id3v2.CommentFrame
	for _, f := range tag.GetFrames(commentID) {
		cf, ok := f.(id3v2.CommentFrame)
		if !ok || cf.Description == CommentDescription {
			continue
		}
		kept = append(kept, cf)
	}
	tag.DeleteFrames(commentID)
	for _, cf := range kept {
		tag.AddCommentFrame(cf)
	}

	if len(markers) > 0 {
		tag.AddCommentFrame(id3v2.CommentFrame{
			Encoding:    id3v2.EncodingUTF8,
			Language:    "eng",
			Description: CommentDescription,
			Text:        MarkerComment(markers),
		})
	}

	var buf bytes.Buffer
	if _, err := tag.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write id3 tag: %w", err)
	}
	buf.Write(data[TagSize(data):])
	return buf.Bytes(), nil
}
