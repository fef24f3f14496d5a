package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/simonhull/dawmark/internal/riff"
)

var (
	heading = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Prints the chunk layout of a WAV file plus any cue points and labels, to
// check what an export actually wrote.
func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: riff-dump <file.wav>")
		os.Exit(1)
	}

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	if err := dump(data); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func dump(data []byte) error {
	w, err := riff.ParseWave(data)
	if err != nil {
		return err
	}

	fmt.Println(heading.Render("Chunks"))
	for _, c := range w.Chunks {
		fmt.Printf("  %q (size: %d, offset: %d)\n", c.ID, c.Size, c.Offset)
	}
	fmt.Println(dim.Render(fmt.Sprintf("  %s, %d bytes total", w.Descriptor(), len(data))))

	cues, err := riff.ReadCues(data)
	if err != nil {
		return err
	}
	labels, err := riff.ReadLabels(data)
	if err != nil {
		return err
	}
	text := make(map[uint32]string, len(labels))
	for _, l := range labels {
		text[l.CueID] = l.Text
	}

	fmt.Println()
	fmt.Println(heading.Render(fmt.Sprintf("Cue points (%d)", len(cues))))
	rate := w.SampleRate
	for _, c := range cues {
		var at string
		if rate > 0 {
			at = fmt.Sprintf("%10.3fs", float64(c.Position)/float64(rate))
		}
		fmt.Printf("  #%-3d %10d %s  %s\n", c.ID, c.Position, at, strings.TrimSpace(text[c.ID]))
	}
	return nil
}
