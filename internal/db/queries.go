package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pgvector/pgvector-go"
)

// CreateDocument inserts a new document record and returns it with its
// generated id and timestamp.
func (db *DB) CreateDocument(ctx context.Context, title, content, fileType string) (*Document, error) {
	var doc Document
	err := db.pool.QueryRow(ctx,
		`INSERT INTO documents (id, title, content, file_type)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, title, content, file_type, created_at`,
		uuid.New(), title, content, fileType,
	).Scan(&doc.ID, &doc.Title, &doc.Content, &doc.FileType, &doc.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create document: %w", err)
	}
	return &doc, nil
}

// GetDocument retrieves a single document by id. Returns nil when the id
// does not exist.
func (db *DB) GetDocument(ctx context.Context, id uuid.UUID) (*Document, error) {
	var doc Document
	err := db.pool.QueryRow(ctx,
		`SELECT id, title, content, file_type, created_at
		 FROM documents WHERE id = $1`,
		id,
	).Scan(&doc.ID, &doc.Title, &doc.Content, &doc.FileType, &doc.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	return &doc, nil
}

// GetAllDocuments retrieves all documents, newest first.
func (db *DB) GetAllDocuments(ctx context.Context) ([]*Document, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, title, content, file_type, created_at
		 FROM documents ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get documents: %w", err)
	}
	defer rows.Close()

	var docs []*Document
	for rows.Next() {
		var doc Document
		if err := rows.Scan(&doc.ID, &doc.Title, &doc.Content, &doc.FileType, &doc.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, &doc)
	}
	return docs, rows.Err()
}

// GetDocumentTitles resolves document titles for a set of ids in one query.
func (db *DB) GetDocumentTitles(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	titles := make(map[uuid.UUID]string, len(ids))
	if len(ids) == 0 {
		return titles, nil
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, title FROM documents WHERE id = ANY($1)`,
		ids,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get document titles: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		var title string
		if err := rows.Scan(&id, &title); err != nil {
			return nil, fmt.Errorf("failed to scan document title: %w", err)
		}
		titles[id] = title
	}
	return titles, rows.Err()
}

// DeleteDocument deletes a document; its chunks go with it via ON DELETE
// CASCADE. Returns false when no row matched the id.
func (db *DB) DeleteDocument(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := db.pool.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete document: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// InsertChunksBatch bulk-inserts chunks with their embeddings.
func (db *DB) InsertChunksBatch(ctx context.Context, chunks []*Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, chunk := range chunks {
		batch.Queue(
			`INSERT INTO document_chunks (id, document_id, chunk_index, chunk_text, embedding)
			 VALUES ($1, $2, $3, $4, $5)`,
			chunk.ID, chunk.DocumentID, chunk.ChunkIndex, chunk.Text, chunk.Embedding,
		)
	}
	br := db.pool.SendBatch(ctx, batch)
	defer br.Close()

	for i := 0; i < len(chunks); i++ {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("failed to insert chunk %d: %w", i, err)
		}
	}
	return nil
}

// CountChunks returns the number of stored chunks for a document.
func (db *DB) CountChunks(ctx context.Context, docID uuid.UUID) (int, error) {
	var count int
	err := db.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM document_chunks WHERE document_id = $1`,
		docID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count chunks: %w", err)
	}
	return count, nil
}

// SearchSimilarChunks finds the chunks most similar to the query embedding,
// filtered to cosine similarity >= threshold and ordered best first.
func (db *DB) SearchSimilarChunks(ctx context.Context, embedding pgvector.Vector, threshold float64, limit int) ([]*SimilarChunk, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, document_id, chunk_index, chunk_text, 1 - (embedding <=> $1) AS similarity
		 FROM document_chunks
		 WHERE embedding IS NOT NULL
		   AND 1 - (embedding <=> $1) >= $2
		 ORDER BY embedding <=> $1
		 LIMIT $3`,
		embedding, threshold, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search chunks: %w", err)
	}
	defer rows.Close()

	var chunks []*SimilarChunk
	for rows.Next() {
		var chunk SimilarChunk
		if err := rows.Scan(&chunk.ID, &chunk.DocumentID, &chunk.ChunkIndex, &chunk.Text, &chunk.Similarity); err != nil {
			return nil, fmt.Errorf("failed to scan chunk: %w", err)
		}
		chunks = append(chunks, &chunk)
	}
	return chunks, rows.Err()
}

// SaveQueryLog records an answered question with the chunks that grounded it.
func (db *DB) SaveQueryLog(ctx context.Context, log *QueryLog) error {
	if log.ID == uuid.Nil {
		log.ID = uuid.New()
	}
	_, err := db.pool.Exec(ctx,
		`INSERT INTO query_log (id, question, answer, model_name, source_chunk_ids)
		 VALUES ($1, $2, $3, $4, $5)`,
		log.ID, log.Question, log.Answer, log.ModelName, log.SourceChunkIDs,
	)
	if err != nil {
		return fmt.Errorf("failed to save query log: %w", err)
	}
	return nil
}
