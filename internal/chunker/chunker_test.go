package chunker

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunk_Empty(t *testing.T) {
	assert.Empty(t, Chunk("", 1000, 200))
	assert.Empty(t, Chunk("   \n\t  ", 1000, 200))
}

func TestChunk_ShorterThanSize(t *testing.T) {
	pieces := Chunk("  a short document.  ", 1000, 200)
	require.Len(t, pieces, 1)
	assert.Equal(t, "a short document.", pieces[0].Text)
	assert.Equal(t, 0, pieces[0].Index)
}

func TestChunk_IndicesMonotonic(t *testing.T) {
	text := strings.Repeat("Some sentence with a few words in it. ", 200)
	pieces := Chunk(text, 1000, 200)
	require.NotEmpty(t, pieces)
	for i, p := range pieces {
		assert.Equal(t, i, p.Index)
		assert.NotEmpty(t, p.Text)
	}
}

func TestChunk_MaxSize(t *testing.T) {
	text := strings.Repeat("word ", 2000)
	for _, p := range Chunk(text, 1000, 200) {
		assert.LessOrEqual(t, len(p.Text), 1000)
	}
}

func TestChunk_PrefersSentenceBoundary(t *testing.T) {
	// The terminator sits in the back half of the first window, so the
	// first chunk must end exactly at it.
	text := strings.Repeat("a", 700) + ". " + strings.Repeat("b", 600)
	pieces := Chunk(text, 1000, 200)
	require.NotEmpty(t, pieces)
	assert.True(t, strings.HasSuffix(pieces[0].Text, "."), "chunk should end at sentence terminator, got %q", tail(pieces[0].Text))
	assert.Len(t, pieces[0].Text, 701)
}

func TestChunk_FallsBackToSpaceBoundary(t *testing.T) {
	// No terminator anywhere, one space in the back half of the window.
	text := strings.Repeat("a", 800) + " " + strings.Repeat("b", 800)
	pieces := Chunk(text, 1000, 200)
	require.NotEmpty(t, pieces)
	assert.Equal(t, strings.Repeat("a", 800), pieces[0].Text)
}

func TestChunk_HardCutWithoutBoundary(t *testing.T) {
	text := strings.Repeat("x", 2500)
	pieces := Chunk(text, 1000, 200)
	require.NotEmpty(t, pieces)
	assert.Len(t, pieces[0].Text, 1000)
}

func TestChunk_NoContentLost(t *testing.T) {
	// Concatenating all chunks must retain every non-whitespace character
	// of the input (overlap may duplicate, but nothing disappears).
	text := strings.Repeat("The quick brown fox jumps over the lazy dog. ", 100)
	pieces := Chunk(text, 1000, 200)
	require.NotEmpty(t, pieces)

	var joined strings.Builder
	for _, p := range pieces {
		joined.WriteString(p.Text)
		joined.WriteByte(' ')
	}
	// Every sentence of the input appears somewhere in the output.
	assert.Contains(t, joined.String(), "The quick brown fox jumps over the lazy dog.")

	stripped := func(s string) int {
		n := 0
		for _, r := range s {
			if !isSpace(r) {
				n++
			}
		}
		return n
	}
	assert.GreaterOrEqual(t, stripped(joined.String()), stripped(text))
}

func TestChunk_HardCutKeepsMultiByteRunesIntact(t *testing.T) {
	// No spaces and no terminators, so every window is a hard cut. With
	// three-byte runes a byte-indexed cut would split characters; every
	// chunk must stay valid UTF-8 and within the character budget.
	text := strings.Repeat("情", 1000)
	pieces := Chunk(text, 100, 20)
	require.NotEmpty(t, pieces)
	for _, p := range pieces {
		assert.True(t, utf8.ValidString(p.Text), "chunk %d is not valid UTF-8", p.Index)
		assert.LessOrEqual(t, utf8.RuneCountInString(p.Text), 100)
	}
}

func TestChunk_SizeCountsRunesNotBytes(t *testing.T) {
	// 600 two-byte runes are 1200 bytes but only 600 characters, so the
	// whole text fits in a single 1000-character window.
	text := strings.Repeat("ä", 600)
	pieces := Chunk(text, 1000, 200)
	require.Len(t, pieces, 1)
	assert.Equal(t, text, pieces[0].Text)
}

func TestChunk_OverlapLargerThanWindowStillTerminates(t *testing.T) {
	text := strings.Repeat("y", 500)
	pieces := Chunk(text, 100, 100)
	require.NotEmpty(t, pieces)
	for i, p := range pieces {
		assert.Equal(t, i, p.Index)
	}
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r':
		return true
	}
	return false
}

func tail(s string) string {
	if len(s) <= 20 {
		return s
	}
	return s[len(s)-20:]
}
