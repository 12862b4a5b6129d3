package utils

import (
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "Naruto", Truncate("Naruto", 10))
	assert.Equal(t, "Naruto: ...", Truncate("Naruto: Shippuuden", 11))
	assert.Equal(t, "", Truncate("Naruto", 0))
	assert.Equal(t, "Na", Truncate("Naruto", 2))

	// wide runes count as two cells
	got := Truncate("進撃の巨人 The Final Season", 9)
	assert.LessOrEqual(t, runewidth.StringWidth(got), 9)
	assert.Contains(t, got, "...")
}

func TestPadRight(t *testing.T) {
	assert.Equal(t, "One Piece ", PadRight("One Piece", 10))
	assert.Equal(t, 10, runewidth.StringWidth(PadRight("ワンピース", 10)))
	assert.Equal(t, 6, runewidth.StringWidth(PadRight("Bleach: Thousand-Year Blood War", 6)))
}

func TestWrap(t *testing.T) {
	lines := Wrap("the quick brown fox jumps over the lazy dog", 10)
	assert.Equal(t, []string{"the quick", "brown fox", "jumps over", "the lazy", "dog"}, lines)

	for _, l := range Wrap("supercalifragilistic word", 8) {
		assert.LessOrEqual(t, runewidth.StringWidth(l), 8)
	}

	assert.Empty(t, Wrap("   ", 10))
}
