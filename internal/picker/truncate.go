package picker

import (
	"regexp"

	"github.com/mattn/go-runewidth"
)

// ansiRE matches CSI and OSC escape sequences. Icon names coming off the
// wire should never contain them, but they end up in rendered cells, so
// they are stripped before measuring.
var ansiRE = regexp.MustCompile(`\x1b(?:\[[0-9;]*[A-Za-z]|\].*?(?:\x1b\\|\x07))`)

// StripANSI removes ANSI escape sequences from a string.
func StripANSI(s string) string {
	return ansiRE.ReplaceAllString(s, "")
}

// MiddleTruncate shortens s to maxWidth display columns by replacing its
// middle with an ellipsis. It is display-width-aware, so CJK characters
// and emoji count as two columns.
func MiddleTruncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}

	const ellipsis = "…"
	if maxWidth < 3 {
		return prefixToWidth(s, maxWidth)
	}

	remaining := maxWidth - 1 // One column for the ellipsis.
	headWidth := (remaining + 1) / 2
	tailWidth := remaining / 2
	return prefixToWidth(s, headWidth) + ellipsis + suffixToWidth(s, tailWidth)
}

// prefixToWidth returns the longest prefix of s not exceeding maxWidth
// display columns.
func prefixToWidth(s string, maxWidth int) string {
	w := 0
	for i, r := range s {
		rw := runewidth.RuneWidth(r)
		if w+rw > maxWidth {
			return s[:i]
		}
		w += rw
	}
	return s
}

// suffixToWidth returns the longest suffix of s not exceeding maxWidth
// display columns.
func suffixToWidth(s string, maxWidth int) string {
	runes := []rune(s)
	w := 0
	start := len(runes)
	for i := len(runes) - 1; i >= 0; i-- {
		rw := runewidth.RuneWidth(runes[i])
		if w+rw > maxWidth {
			break
		}
		w += rw
		start = i
	}
	return string(runes[start:])
}
