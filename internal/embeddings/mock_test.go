package embeddings

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockEmbedder_Deterministic(t *testing.T) {
	m := NewMockEmbedder(0)
	ctx := context.Background()

	a, err := m.Embed(ctx, "some text")
	require.NoError(t, err)
	b, err := m.Embed(ctx, "some text")
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := m.Embed(ctx, "other text")
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestMockEmbedder_Dimensions(t *testing.T) {
	m := NewMockEmbedder(0)
	assert.Equal(t, 1536, m.Dimensions())

	vec, err := m.Embed(context.Background(), "x")
	require.NoError(t, err)
	assert.Len(t, vec, 1536)

	assert.Equal(t, 64, NewMockEmbedder(64).Dimensions())
}

func TestMockEmbedder_Normalized(t *testing.T) {
	vec, err := NewMockEmbedder(128).Embed(context.Background(), "normalize me")
	require.NoError(t, err)

	var sumSq float64
	for _, v := range vec {
		sumSq += float64(v) * float64(v)
	}
	assert.InDelta(t, 1.0, math.Sqrt(sumSq), 1e-3)
}

func TestMockEmbedder_BatchOrder(t *testing.T) {
	m := NewMockEmbedder(32)
	ctx := context.Background()

	vecs, err := m.EmbedBatch(ctx, []string{"one", "two", "three"})
	require.NoError(t, err)
	require.Len(t, vecs, 3)

	for i, text := range []string{"one", "two", "three"} {
		single, err := m.Embed(ctx, text)
		require.NoError(t, err)
		assert.Equal(t, single, vecs[i])
	}
}
