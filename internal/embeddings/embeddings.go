package embeddings

import (
	"context"
	"errors"
)

// Embedding errors callers dispatch on with errors.Is.
var (
	// ErrMissingAPIKey indicates no API credential was configured.
	// Raised at construction time, before any network call.
	ErrMissingAPIKey = errors.New("embeddings: missing API key")

	// ErrTimeout indicates the provider did not answer within the request
	// timeout. Distinguished from a provider error so callers can tell
	// transient-slow from hard-failing.
	ErrTimeout = errors.New("embeddings: request timed out")
)

// Embedder converts text into fixed-length vectors. Every implementation
// must return exactly one vector per input, in input order. All vectors in
// the store must come from the same model; mixing embedding spaces makes
// similarity scores meaningless, and nothing downstream checks for it.
type Embedder interface {
	// Embed generates an embedding for a single text.
	Embed(ctx context.Context, text string) ([]float32, error)
	// EmbedBatch generates embeddings for multiple texts in one provider
	// call, with result[i] corresponding to texts[i].
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	// Dimensions returns the length of the vectors this embedder produces.
	Dimensions() int
}
