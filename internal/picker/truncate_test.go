package picker

import (
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
)

func TestStripANSI(t *testing.T) {
	assert.Equal(t, "plain", StripANSI("plain"))
	assert.Equal(t, "red text", StripANSI("\x1b[31mred text\x1b[0m"))
	assert.Equal(t, "title", StripANSI("\x1b]0;ignored\x07title"))
}

func TestMiddleTruncate(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		maxWidth int
		want     string
	}{
		{"fits untouched", "arrow", 10, "arrow"},
		{"exact width untouched", "arrow", 5, "arrow"},
		{"middle ellipsis", "abcdefghij", 7, "abc…hij"},
		{"head gets extra column", "abcdefghij", 6, "abc…ij"},
		{"tiny width hard truncates", "abcdef", 2, "ab"},
		{"zero width", "abcdef", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MiddleTruncate(tt.in, tt.maxWidth))
		})
	}
}

func TestMiddleTruncateWideRunes(t *testing.T) {
	// CJK runes occupy two display columns; the result must respect the
	// display width, not the rune count.
	got := MiddleTruncate("箭头图标一二三四", 9)
	assert.LessOrEqual(t, runewidth.StringWidth(got), 9)
	assert.Contains(t, got, "…")
}
