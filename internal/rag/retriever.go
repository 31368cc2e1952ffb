// Package rag answers questions from stored documents: it retrieves the
// most similar chunks and synthesizes a grounded answer from them.
package rag

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"

	"github.com/docquery/cli/internal/db"
	"github.com/docquery/cli/internal/embeddings"
)

// Retrieval defaults.
const (
	// DefaultMatchThreshold is the minimum cosine similarity for a chunk
	// to count as relevant.
	DefaultMatchThreshold = 0.3
	// DefaultMatchCount is the maximum number of chunks retrieved.
	DefaultMatchCount = 5
	// previewLength bounds the chunk text included in a Source.
	previewLength = 200
)

// ChunkSearcher is the store surface the retriever needs. *db.DB satisfies it.
type ChunkSearcher interface {
	SearchSimilarChunks(ctx context.Context, embedding pgvector.Vector, threshold float64, limit int) ([]*db.SimilarChunk, error)
	GetDocumentTitles(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error)
}

// Source attributes part of an answer to a stored chunk.
type Source struct {
	DocumentTitle string
	ChunkPreview  string
	Similarity    float64
}

// Result holds the ranked context retrieved for one question, best match
// first.
type Result struct {
	Chunks  []*db.SimilarChunk
	Sources []Source
}

// Empty reports whether retrieval found nothing above the threshold.
func (r *Result) Empty() bool {
	return len(r.Chunks) == 0
}

// ChunkIDs returns the ids of the retrieved chunks in rank order.
func (r *Result) ChunkIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(r.Chunks))
	for i, c := range r.Chunks {
		ids[i] = c.ID
	}
	return ids
}

// Retriever finds the stored chunks most relevant to a question.
//
// The question is embedded with the same model that embedded the chunks;
// this is a hard precondition. Vectors from a different model make the
// similarity scores meaningless and nothing here can detect it.
type Retriever struct {
	store     ChunkSearcher
	embedder  embeddings.Embedder
	threshold float64
	count     int
}

// NewRetriever creates a retriever. Non-positive threshold or count fall
// back to the defaults.
func NewRetriever(store ChunkSearcher, embedder embeddings.Embedder, threshold float64, count int) *Retriever {
	if threshold <= 0 {
		threshold = DefaultMatchThreshold
	}
	if count <= 0 {
		count = DefaultMatchCount
	}
	return &Retriever{
		store:     store,
		embedder:  embedder,
		threshold: threshold,
		count:     count,
	}
}

// Retrieve embeds the question, searches the store and assembles ranked
// context with document provenance. An empty result is a normal outcome,
// not an error.
func (r *Retriever) Retrieve(ctx context.Context, question string) (*Result, error) {
	vec, err := r.embedder.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("failed to embed question: %w", err)
	}

	chunks, err := r.store.SearchSimilarChunks(ctx, pgvector.NewVector(vec), r.threshold, r.count)
	if err != nil {
		return nil, fmt.Errorf("failed to search chunks: %w", err)
	}
	if len(chunks) == 0 {
		return &Result{}, nil
	}

	titles, err := r.store.GetDocumentTitles(ctx, dedupeDocumentIDs(chunks))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve document titles: %w", err)
	}

	sources := make([]Source, len(chunks))
	for i, chunk := range chunks {
		title, ok := titles[chunk.DocumentID]
		if !ok {
			title = "Unknown"
		}
		sources[i] = Source{
			DocumentTitle: title,
			ChunkPreview:  preview(chunk.Text),
			Similarity:    chunk.Similarity,
		}
	}

	return &Result{Chunks: chunks, Sources: sources}, nil
}

// dedupeDocumentIDs collects the distinct document ids, preserving rank
// order of first appearance.
func dedupeDocumentIDs(chunks []*db.SimilarChunk) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(chunks))
	var ids []uuid.UUID
	for _, c := range chunks {
		if !seen[c.DocumentID] {
			seen[c.DocumentID] = true
			ids = append(ids, c.DocumentID)
		}
	}
	return ids
}

// preview truncates chunk text for display and marks the cut. The limit
// counts runes so multi-byte text is never cut mid-character.
func preview(text string) string {
	if len(text) > previewLength {
		if runes := []rune(text); len(runes) > previewLength {
			text = string(runes[:previewLength])
		}
	}
	return text + "..."
}
