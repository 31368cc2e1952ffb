package embeddings

import (
	"context"
	"math"
)

// MockEmbedder produces deterministic pseudo-embeddings seeded by a hash of
// the input text. The vectors carry no semantic meaning; identical texts map
// to identical vectors, which is enough to exercise ingestion and retrieval
// without network calls.
type MockEmbedder struct {
	dims int
}

var _ Embedder = (*MockEmbedder)(nil)

// NewMockEmbedder creates a deterministic embedder. dims defaults to 1536,
// matching text-embedding-3-small.
func NewMockEmbedder(dims int) *MockEmbedder {
	if dims <= 0 {
		dims = 1536
	}
	return &MockEmbedder{dims: dims}
}

// Dimensions returns the vector length.
func (m *MockEmbedder) Dimensions() int {
	return m.dims
}

// Embed returns an L2-normalized pseudo-vector derived from text.
func (m *MockEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	// djb2-style hash seeds a linear congruential generator.
	var hash int32
	for _, r := range text {
		hash = hash<<5 - hash + int32(r)
	}
	seed := hash
	if seed < 0 {
		seed = -seed
	}

	vec := make([]float32, m.dims)
	random := int64(seed)
	var sumSq float64
	for i := range vec {
		random = (random*9301 + 49297) % 233280
		v := float64(random)/233280*2 - 1
		vec[i] = float32(v)
		sumSq += v * v
	}

	// Normalize so dot products behave like cosine similarity.
	mag := float32(math.Sqrt(sumSq))
	if mag > 0 {
		for i := range vec {
			vec[i] /= mag
		}
	}
	return vec, nil
}

// EmbedBatch embeds each text independently.
func (m *MockEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vecs := make([][]float32, len(texts))
	for i, text := range texts {
		vec, err := m.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		vecs[i] = vec
	}
	return vecs, nil
}
