package naming

import (
	"strings"
	"testing"

	"github.com/simonhull/dawmark/internal/types"
)

func TestAudioName(t *testing.T) {
	signed := "https://bucket.s3.amazonaws.com/uploads/8f14e45f-ea9d-4c54-8c1e-8c3e2f6c6a2a.wav" +
		"?X-Amz-Algorithm=AWS4-HMAC-SHA256&X-Amz-Signature=abcdef0123456789"

	tests := []struct {
		name     string
		explicit string
		locator  string
		title    string
		format   types.Format
		want     string
	}{
		{"signed url falls back to title", "", signed, "My Mix", types.FormatWAV, "My Mix.wav"},
		{"meaningful url name", "", "https://cdn.example.com/a/Final%20Master.mp3?token=1", "My Mix", types.FormatMP3, "Final Master.mp3"},
		{"explicit name wins", "take 3.wav", signed, "My Mix", types.FormatWAV, "take 3.wav"},
		{"format sets extension", "", "https://x/y/song.bin", "", types.FormatFLAC, "song.flac"},
		{"unknown format", "", "", "Demo", types.FormatUnknown, "Demo.mp3"},
		{"nothing usable", "", signed, "", types.FormatWAV, "audio.wav"},
		{"title sanitized", "", "", `Mix: "v2"?`, types.FormatWAV, "Mix_ _v2__.wav"},
		{"object key", "", "https://x/0123456789abcdef0123.m4a", "Podcast", types.FormatM4A, "Podcast.m4a"},
		{"dotted title keeps its dots", "", "", "Mix v1.2", types.FormatWAV, "Mix v1.2.wav"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AudioName(tt.explicit, tt.locator, tt.title, tt.format)
			if got != tt.want {
				t.Errorf("AudioName() = %q, want %q", got, tt.want)
			}
			if strings.Contains(got, "?") || strings.Contains(got, "X-Amz") {
				t.Errorf("AudioName() leaked query text: %q", got)
			}
		})
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"normal name", "normal name"},
		{"a/b\\c", "a_b_c"},
		{"  spaced   out  ", "spaced out"},
		{"dots...", "dots"},
		{"tab\there", "tab_here"},
		{"nul\x00byte", "nul_byte"},
		{"", ""},
		{strings.Repeat("é", 100), strings.Repeat("é", 60)},
	}
	for _, tt := range tests {
		if got := Sanitize(tt.in); got != tt.want {
			t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBaseName(t *testing.T) {
	tests := map[string]string{
		"https://x.com/a/b/c.wav?sig=1#frag": "c.wav",
		"/tmp/file.mp3":                      "file.mp3",
		`C:\music\take.wav`:                  "take.wav",
		"https://x.com/":                     "",
		"":                                   "",
	}
	for in, want := range tests {
		if got := BaseName(in); got != want {
			t.Errorf("BaseName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSet_Claim(t *testing.T) {
	var s Set
	got := []string{
		s.Claim("Mix.txt"),
		s.Claim("mix.TXT"),
		s.Claim("Mix.txt"),
		s.Claim("Mix.rpp"),
	}
	want := []string{"Mix.txt", "mix (2).TXT", "Mix (3).txt", "Mix.rpp"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Claim #%d = %q, want %q", i, got[i], want[i])
		}
	}
}
