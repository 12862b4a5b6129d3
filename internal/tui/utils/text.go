package utils

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Truncate shortens text to maxWidth display cells, ending it with "..."
func Truncate(text string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(text) <= maxWidth {
		return text
	}
	if maxWidth <= 3 {
		return runewidth.Truncate(text, maxWidth, "")
	}
	return runewidth.Truncate(text, maxWidth, "...")
}

// PadRight pads text with spaces to exactly width display cells, truncating longer text
func PadRight(text string, width int) string {
	text = Truncate(text, width)
	return runewidth.FillRight(text, width)
}

// Wrap breaks text at word boundaries so that no line is wider than maxWidth.
// Words wider than maxWidth are truncated.
func Wrap(text string, maxWidth int) []string {
	var (
		lines []string
		line  strings.Builder
		width int
	)

	for _, word := range strings.Fields(text) {
		w := runewidth.StringWidth(word)
		if w > maxWidth {
			word = Truncate(word, maxWidth)
			w = runewidth.StringWidth(word)
		}

		switch {
		case width == 0:
			line.WriteString(word)
			width = w
		case width+1+w <= maxWidth:
			line.WriteByte(' ')
			line.WriteString(word)
			width += 1 + w
		default:
			lines = append(lines, line.String())
			line.Reset()
			line.WriteString(word)
			width = w
		}
	}

	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	return lines
}
