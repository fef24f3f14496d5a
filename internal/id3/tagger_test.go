package id3

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/bogem/id3v2"

	"github.com/simonhull/dawmark/internal/types"
)

func mpegFrames(n int) []byte {
	var buf bytes.Buffer
	for range n {
		frame := make([]byte, 417)
		copy(frame, []byte{0xFF, 0xFB, 0x90, 0x04})
		buf.Write(frame)
	}
	return buf.Bytes()
}

func withTag(t *testing.T, audio []byte, build func(*id3v2.Tag)) []byte {
	t.Helper()
	tag := id3v2.NewEmptyTag()
	tag.SetVersion(4)
	build(tag)
	var buf bytes.Buffer
	if _, err := tag.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	buf.Write(audio)
	return buf.Bytes()
}

func comments(t *testing.T, data []byte) []id3v2.CommentFrame {
	t.Helper()
	tag, err := id3v2.ParseReader(bytes.NewReader(data), id3v2.Options{Parse: true})
	if err != nil {
		t.Fatalf("ParseReader: %v", err)
	}
	var out []id3v2.CommentFrame
	for _, f := range tag.GetFrames(tag.CommonID("Comments")) {
		if cf, ok := f.(id3v2.CommentFrame); ok {
			out = append(out, cf)
		}
	}
	return out
}

var testMarkers = []types.Marker{
	{Time: 1, Label: "\U0001F4CD Sam: intro"},
	{Time: 75.5, Label: "\u2705 Ana: chorus\nok"},
}

func TestTag_UntaggedMP3(t *testing.T) {
	audio := mpegFrames(4)

	out, err := Tag(audio, testMarkers, "My Mix")
	if err != nil {
		t.Fatalf("Tag failed: %v", err)
	}

	n := TagSize(out)
	if n == 0 {
		t.Fatal("output has no ID3 tag")
	}
	if !bytes.Equal(out[n:], audio) {
		t.Error("audio frames changed")
	}

	cs := comments(t, out)
	if len(cs) != 1 || cs[0].Description != CommentDescription {
		t.Fatalf("comments = %+v", cs)
	}
	want := "00:00:01.000 \U0001F4CD Sam: intro\n00:01:15.500 \u2705 Ana: chorus ok"
	if cs[0].Text != want {
		t.Errorf("comment = %q, want %q", cs[0].Text, want)
	}

	tag, _ := id3v2.ParseReader(bytes.NewReader(out), id3v2.Options{Parse: true})
	if tag.Title() != "My Mix" {
		t.Errorf("title = %q", tag.Title())
	}
}

func TestTag_KeepsExistingFramesAndReplacesMarkers(t *testing.T) {
	audio := mpegFrames(2)
	src := withTag(t, audio, func(tag *id3v2.Tag) {
		tag.SetTitle("Original")
		tag.AddCommentFrame(id3v2.CommentFrame{Encoding: id3v2.EncodingUTF8, Language: "eng", Description: "note", Text: "keep me"})
		tag.AddCommentFrame(id3v2.CommentFrame{Encoding: id3v2.EncodingUTF8, Language: "eng", Description: CommentDescription, Text: "stale"})
	})

	out, err := Tag(src, testMarkers[:1], "Ignored")
	if err != nil {
		t.Fatalf("Tag failed: %v", err)
	}
	if !bytes.Equal(out[TagSize(out):], audio) {
		t.Error("audio frames changed")
	}

	var texts []string
	for _, c := range comments(t, out) {
		texts = append(texts, c.Description+"="+c.Text)
	}
	joined := strings.Join(texts, "|")
	if !strings.Contains(joined, "note=keep me") || strings.Contains(joined, "stale") {
		t.Errorf("comments = %q", texts)
	}
	if strings.Count(joined, CommentDescription) != 1 {
		t.Errorf("want exactly one marker comment, got %q", texts)
	}

	tag, _ := id3v2.ParseReader(bytes.NewReader(out), id3v2.Options{Parse: true})
	if tag.Title() != "Original" {
		t.Errorf("title = %q, want existing title kept", tag.Title())
	}
}

func TestTag_RejectsNonMP3(t *testing.T) {
	_, err := Tag([]byte("RIFF\x00\x00\x00\x00WAVEfmt "), testMarkers, "")
	var fe *types.FormatError
	if !errors.As(err, &fe) {
		t.Errorf("got %v, want *FormatError", err)
	}
}

func TestTagSize(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want int
	}{
		{"none", []byte{0xFF, 0xFB, 0x90, 0x04, 0, 0, 0, 0, 0, 0}, 0},
		{"short", []byte("ID3"), 0},
		{"plain", append([]byte("ID3\x04\x00\x00\x00\x00\x01\x00"), make([]byte, 200)...), 138},
		{"footer", append([]byte("ID3\x04\x00\x10\x00\x00\x00\x14"), make([]byte, 50)...), 40},
		{"clamped", []byte("ID3\x04\x00\x00\x00\x00\x7F\x7F"), 10},
	}
	for _, tt := range tests {
		if got := TagSize(tt.data); got != tt.want {
			t.Errorf("%s: TagSize = %d, want %d", tt.name, got, tt.want)
		}
	}
}
