package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/simonhull/dawmark/internal/sessionscan"
)

var heading = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))

// Looks for marker traces inside DAW session files whose format is not
// documented. Compare an empty session with one holding known markers to
// find where they are stored.
func main() {
	terms := flag.String("terms", "Intro,Verse 1,Chorus,Outro", "comma-separated marker names to search for")
	rate := flag.Int("rate", 44100, "sample rate used to interpret candidate positions")
	limit := flag.Int("limit", 20, "maximum strings and positions to print")
	compare := flag.String("compare", "", "second session file to diff against the first")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: session-scan [flags] <session-file>")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	data, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(heading.Render("=== " + flag.Arg(0) + " ==="))
	fmt.Printf("File size: %d bytes\n", len(data))
	printHeader(data)
	printMatches(data, splitTerms(*terms))
	printStrings(data, *limit)
	printPositions(data, *rate, *limit)

	if *compare != "" {
		other, err := os.ReadFile(*compare)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		printDiff(flag.Arg(0), *compare, data, other)
	}
}

func splitTerms(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func printHeader(data []byte) {
	head := data[:min(len(data), 100)]
	fmt.Println()
	fmt.Println(heading.Render("Header"))
	fmt.Printf("  hex:   %s\n", hex.EncodeToString(head))
	fmt.Printf("  ascii: %q\n", printable(head))
}

func printMatches(data []byte, terms []string) {
	matches := sessionscan.FindTerms(data, terms, sessionscan.DefaultContext)
	fmt.Println()
	fmt.Println(heading.Render(fmt.Sprintf("Marker names (%d)", len(matches))))
	for _, m := range matches {
		fmt.Printf("  %q (%s) at %d\n", m.Term, m.Encoding, m.Offset)
		fmt.Printf("    hex:  %s\n", hex.EncodeToString(m.Context))
		fmt.Printf("    text: %q\n", printable(m.Context))
	}
}

func printStrings(data []byte, limit int) {
	strs := sessionscan.Strings(data, 3)
	fmt.Println()
	fmt.Println(heading.Render(fmt.Sprintf("Strings (%d)", len(strs))))
	for _, s := range strs[:min(len(strs), limit)] {
		fmt.Printf("  %8d: %q\n", s.Offset, s.Text)
	}
	if len(strs) > limit {
		fmt.Printf("  ... and %d more\n", len(strs)-limit)
	}
}

func printPositions(data []byte, rate, limit int) {
	cands := sessionscan.SamplePositions(data, rate, 10, 300)
	fmt.Println()
	fmt.Println(heading.Render(fmt.Sprintf("Candidate sample positions at %d Hz (%d)", rate, len(cands))))
	for _, c := range cands[:min(len(cands), limit)] {
		fmt.Printf("  %8d: %10d %s = %6.1fs\n", c.Offset, c.Value, c.Order, c.Seconds)
	}
}

func printDiff(nameA, nameB string, a, b []byte) {
	d := sessionscan.Compare(a, b, 20)
	fmt.Println()
	fmt.Println(heading.Render(fmt.Sprintf("=== %s vs %s ===", nameA, nameB)))
	fmt.Printf("Sizes: %d / %d (%+d bytes)\n", d.SizeA, d.SizeB, d.SizeB-d.SizeA)
	if d.FirstDifference >= 0 {
		fmt.Printf("First difference at byte %d\n", d.FirstDifference)
		fmt.Printf("  A: %s\n", hex.EncodeToString(d.ContextA))
		fmt.Printf("  B: %s\n", hex.EncodeToString(d.ContextB))
	}
	if len(d.Extra) > 0 {
		extra := d.Extra[:min(len(d.Extra), 50)]
		fmt.Printf("Extra data in B (%d bytes):\n", len(d.Extra))
		fmt.Printf("  hex:   %s...\n", hex.EncodeToString(extra))
		fmt.Printf("  ascii: %q\n", printable(extra))
	}
}

// printable keeps printable ASCII and drops everything else.
func printable(b []byte) string {
	var sb strings.Builder
	for _, c := range b {
		if c >= 0x20 && c <= 0x7E {
			sb.WriteByte(c)
		}
	}
	return sb.String()
}
