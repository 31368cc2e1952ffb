package chunker

import "strings"

// Default chunking parameters. 1000 characters keeps each chunk well under
// the embedding model's token limit while staying large enough to carry a
// complete thought; 200 characters of overlap preserve context across cuts.
const (
	DefaultChunkSize = 1000
	DefaultOverlap   = 200
)

// Piece is a single chunk of a larger text, in order of appearance.
type Piece struct {
	Text  string
	Index int
}

// Chunk splits text into overlapping pieces of at most size characters.
// Sizes and offsets count runes, not bytes, so multi-byte input is never
// cut mid-character. For any window that does not reach the end of the
// text, the cut prefers the last sentence terminator (. ! ?) in the back
// half of the window, then the last space in the back half, and falls back
// to a hard character cut. Empty pieces (after trimming) are skipped;
// indices are assigned only to emitted pieces and increase monotonically
// from 0.
func Chunk(text string, size, overlap int) []Piece {
	if size <= 0 {
		size = DefaultChunkSize
	}
	if overlap < 0 {
		overlap = DefaultOverlap
	}

	runes := []rune(text)

	var pieces []Piece
	start := 0
	index := 0

	for start < len(runes) {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		} else {
			end = boundary(runes, start, end, size)
		}

		piece := strings.TrimSpace(string(runes[start:end]))
		if piece != "" {
			pieces = append(pieces, Piece{Text: piece, Index: index})
			index++
		}

		// Advance with overlap; if the boundary search collapsed the window
		// (or overlap >= window length), advance past end to guarantee progress.
		next := end - overlap
		if next <= start {
			next = end
		}
		start = next
	}

	return pieces
}

// boundary finds the preferred cut position within runes[start:end].
// A sentence terminator or space is only used if it lies in the back half of
// the window, so a chunk is never cut down to less than half the target size.
func boundary(runes []rune, start, end, size int) int {
	half := start + size/2

	if i := lastSentenceEnd(runes, half, end); i >= 0 {
		return i + 1
	}
	if i := lastSpace(runes, half, end); i >= 0 {
		return i
	}
	return end
}

// lastSentenceEnd returns the position of the last '.', '!' or '?' before
// end and after half, or -1 if none exists there.
func lastSentenceEnd(runes []rune, half, end int) int {
	for i := end - 1; i > half; i-- {
		switch runes[i] {
		case '.', '!', '?':
			return i
		}
	}
	return -1
}

// lastSpace returns the position of the last space before end and after
// half, or -1 if none exists there.
func lastSpace(runes []rune, half, end int) int {
	for i := end - 1; i > half; i-- {
		if runes[i] == ' ' {
			return i
		}
	}
	return -1
}
