package db

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

// Document represents an uploaded document. Rows are created once at
// ingestion and never mutated; deleting a document cascades to its chunks.
type Document struct {
	ID        uuid.UUID
	Title     string
	Content   string
	FileType  string
	CreatedAt time.Time
}

// Chunk represents one passage of a document with its embedding. The
// chunk_index follows the order the passages appeared in the source text;
// indices of stored chunks may have gaps when embedding batches failed.
type Chunk struct {
	ID         uuid.UUID
	DocumentID uuid.UUID
	ChunkIndex int
	Text       string
	Embedding  *pgvector.Vector
	CreatedAt  time.Time
}

// SimilarChunk is a similarity-search hit: a stored chunk plus its cosine
// similarity to the query vector.
type SimilarChunk struct {
	ID         uuid.UUID
	DocumentID uuid.UUID
	ChunkIndex int
	Text       string
	Similarity float64
}

// QueryLog records one answered question with the chunks that grounded it.
type QueryLog struct {
	ID             uuid.UUID
	Question       string
	Answer         string
	ModelName      string
	SourceChunkIDs []uuid.UUID
	CreatedAt      time.Time
}
