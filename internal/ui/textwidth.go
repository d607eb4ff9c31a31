package ui

import (
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"
)

// TextWidth provides Unicode-aware text width calculations for proper handling
// of wide characters (emoji, CJK, combining marks, etc.)
// All functions work with display width (screen columns) not byte length

// RuneWidth returns the display width of a single rune
// - ASCII and most Unicode: 1 column
// - Wide characters (emoji, CJK): 2 columns
// - Combining marks, zero-width spaces, control characters: 0 columns
func RuneWidth(r rune) int {
	w := runewidth.RuneWidth(r)
	if w < 0 {
		return 0
	}
	return w
}

// StringWidth returns the display width of a string
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}

// TruncateToWidth safely truncates a string to fit within maxWidth columns
// Properly handles multi-byte characters without splitting them
func TruncateToWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}

	runes := []rune(s)
	width := 0

	for i, r := range runes {
		rw := RuneWidth(r)
		if width+rw > maxWidth {
			return string(runes[:i])
		}
		width += rw
	}

	return s
}

// TruncateToWidthWithEllipsis truncates a string with "..." if it exceeds maxWidth
func TruncateToWidthWithEllipsis(s string, maxWidth int) string {
	if maxWidth <= 3 {
		return TruncateToWidth(s, maxWidth)
	}

	if StringWidth(s) <= maxWidth {
		return s
	}

	return TruncateToWidth(s, maxWidth-3) + "..."
}

// PadStringToWidth pads a string to a specific display width with spaces
// If string is already wider, returns unchanged
func PadStringToWidth(s string, width int) string {
	current := StringWidth(s)
	if current >= width {
		return s
	}
	return s + strings.Repeat(" ", width-current)
}

// Segment is a run of label text that is either highlighted or not
type Segment struct {
	Text        string
	Highlighted bool
}

// SplitHighlights cuts text into segments at the given half-open rune
// ranges. Ranges are clamped to the text, and overlapping ranges merge.
func SplitHighlights(text string, ranges [][2]int) []Segment {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}

	clamped := make([][2]int, 0, len(ranges))
	for _, r := range ranges {
		start, end := max(r[0], 0), min(r[1], len(runes))
		if start < end {
			clamped = append(clamped, [2]int{start, end})
		}
	}
	sort.Slice(clamped, func(i, j int) bool { return clamped[i][0] < clamped[j][0] })

	var segments []Segment
	pos := 0
	for _, r := range clamped {
		start, end := r[0], r[1]
		if end <= pos {
			continue
		}
		if start < pos {
			start = pos
		}
		if start > pos {
			segments = append(segments, Segment{Text: string(runes[pos:start])})
		}
		// merge with a directly preceding highlighted segment
		if n := len(segments); n > 0 && segments[n-1].Highlighted && start == pos {
			segments[n-1].Text += string(runes[start:end])
		} else {
			segments = append(segments, Segment{Text: string(runes[start:end]), Highlighted: true})
		}
		pos = end
	}
	if pos < len(runes) {
		segments = append(segments, Segment{Text: string(runes[pos:])})
	}
	return segments
}
