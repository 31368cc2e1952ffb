// Package ingest orchestrates document ingestion: sanitization, chunking,
// batched embedding and persistence.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"

	"github.com/docquery/cli/internal/chunker"
	"github.com/docquery/cli/internal/db"
	"github.com/docquery/cli/internal/embeddings"
)

// Ingestion limits and defaults.
const (
	// MinContentLength is the minimum sanitized content length accepted.
	MinContentLength = 10
	// MaxStoredContentLength caps the raw content persisted with the
	// document row; chunking still covers the full text.
	MaxStoredContentLength = 50000
	// MinChunkLength drops fragments too short to be worth retrieving.
	MinChunkLength = 50
	// DefaultBatchSize is the number of chunks embedded per provider call.
	DefaultBatchSize = 20
)

// Ingestion errors callers dispatch on with errors.Is.
var (
	// ErrInvalidInput indicates missing or too-short input. Raised before
	// any side effects.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoChunks indicates chunking produced nothing usable.
	ErrNoChunks = errors.New("no chunks produced")

	// ErrNoEmbeddings indicates every embedding batch failed. The document
	// row already exists at this point; the report carries its id so the
	// caller can decide whether to delete the orphan.
	ErrNoEmbeddings = errors.New("no embeddings generated")
)

// DocumentStore is the persistence surface the ingestor needs.
type DocumentStore interface {
	CreateDocument(ctx context.Context, title, content, fileType string) (*db.Document, error)
	InsertChunksBatch(ctx context.Context, chunks []*db.Chunk) error
}

// Status classifies an ingestion outcome.
type Status string

const (
	// StatusSuccess means every chunk was embedded and persisted.
	StatusSuccess Status = "success"
	// StatusPartial means some embedding batches failed but at least one
	// chunk was persisted. Not an error.
	StatusPartial Status = "partial"
	// StatusFailed means nothing usable was persisted.
	StatusFailed Status = "failed"
)

// BatchError records one failed embedding batch.
type BatchError struct {
	Batch int // 1-based batch number
	Err   error
}

// Report summarizes one ingestion run.
type Report struct {
	DocumentID       uuid.UUID
	Title            string
	Status           Status
	TotalChunks      int
	EmbeddedChunks   int
	TotalBatches     int
	BatchesSucceeded int
	BatchesFailed    int
	BatchErrors      []BatchError
	Elapsed          time.Duration
}

// Ingestor sequences the ingestion pipeline for one document at a time.
type Ingestor struct {
	store     DocumentStore
	embedder  embeddings.Embedder
	chunkSize int
	overlap   int
	batchSize int
}

// NewIngestor creates an ingestor. Zero values fall back to defaults.
func NewIngestor(store DocumentStore, embedder embeddings.Embedder, chunkSize, overlap, batchSize int) *Ingestor {
	if chunkSize <= 0 {
		chunkSize = chunker.DefaultChunkSize
	}
	if overlap < 0 {
		overlap = chunker.DefaultOverlap
	}
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Ingestor{
		store:     store,
		embedder:  embedder,
		chunkSize: chunkSize,
		overlap:   overlap,
		batchSize: batchSize,
	}
}

type docResult struct {
	doc *db.Document
	err error
}

// Ingest runs the full pipeline for one document. A failed embedding batch
// does not abort the run; its chunks are skipped and the outcome becomes
// StatusPartial. Only validation, persistence failures and total embedding
// failure return an error. When the document row was already created before
// the failure, the returned report carries its id.
func (ing *Ingestor) Ingest(ctx context.Context, title, content, fileType string) (*Report, error) {
	start := time.Now()

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	clean := chunker.Sanitize(content)
	if len(clean) < MinContentLength {
		return nil, fmt.Errorf("%w: content too short (%d characters, need at least %d)",
			ErrInvalidInput, len(clean), MinContentLength)
	}

	// Cap on characters, not bytes, so multi-byte input is never cut
	// mid-rune; the database rejects invalid UTF-8 in text columns.
	stored := clean
	if len(stored) > MaxStoredContentLength {
		if runes := []rune(stored); len(runes) > MaxStoredContentLength {
			stored = string(runes[:MaxStoredContentLength])
		}
	}

	// The document insert has no dependency on chunking, so it runs
	// concurrently; chunk insertion below waits for the document id.
	docCh := make(chan docResult, 1)
	go func() {
		doc, err := ing.store.CreateDocument(ctx, title, stored, fileType)
		docCh <- docResult{doc: doc, err: err}
	}()

	texts := ing.chunkTexts(clean)

	res := <-docCh
	if res.err != nil {
		return nil, fmt.Errorf("failed to persist document: %w", res.err)
	}
	doc := res.doc

	report := &Report{
		DocumentID:  doc.ID,
		Title:       doc.Title,
		TotalChunks: len(texts),
	}

	if len(texts) == 0 {
		// The document row exists with no chunks; surfaced via the report
		// so the caller can clean up.
		report.Status = StatusFailed
		report.Elapsed = time.Since(start)
		return report, ErrNoChunks
	}

	embedded := ing.embedBatches(ctx, doc.ID, texts, report)

	report.EmbeddedChunks = len(embedded)
	if len(embedded) == 0 {
		report.Status = StatusFailed
		report.Elapsed = time.Since(start)
		return report, fmt.Errorf("%w (%d batches failed)", ErrNoEmbeddings, report.BatchesFailed)
	}

	if err := ing.store.InsertChunksBatch(ctx, embedded); err != nil {
		report.Status = StatusFailed
		report.Elapsed = time.Since(start)
		return report, fmt.Errorf("failed to persist chunks: %w", err)
	}

	if report.BatchesFailed > 0 {
		report.Status = StatusPartial
	} else {
		report.Status = StatusSuccess
	}
	report.Elapsed = time.Since(start)
	return report, nil
}

// chunkTexts chunks the sanitized content and keeps passages long enough to
// retrieve. Indices are assigned after filtering so stored chunk_index
// values start at 0 and follow source order.
func (ing *Ingestor) chunkTexts(content string) []string {
	pieces := chunker.Chunk(content, ing.chunkSize, ing.overlap)
	texts := make([]string, 0, len(pieces))
	for _, p := range pieces {
		if len(p.Text) > MinChunkLength {
			texts = append(texts, p.Text)
		}
	}
	return texts
}

// embedBatches embeds texts in fixed-size batches. One batch's failure is
// recorded in the report and does not stop the remaining batches.
func (ing *Ingestor) embedBatches(ctx context.Context, docID uuid.UUID, texts []string, report *Report) []*db.Chunk {
	var embedded []*db.Chunk

	for batchStart := 0; batchStart < len(texts); batchStart += ing.batchSize {
		batchEnd := batchStart + ing.batchSize
		if batchEnd > len(texts) {
			batchEnd = len(texts)
		}
		batchNum := batchStart/ing.batchSize + 1
		report.TotalBatches++

		vecs, err := ing.embedder.EmbedBatch(ctx, texts[batchStart:batchEnd])
		if err != nil {
			report.BatchesFailed++
			report.BatchErrors = append(report.BatchErrors, BatchError{
				Batch: batchNum,
				Err:   fmt.Errorf("embed batch %d: %w", batchNum, err),
			})
			continue
		}

		report.BatchesSucceeded++
		for i, vec := range vecs {
			v := pgvector.NewVector(vec)
			embedded = append(embedded, &db.Chunk{
				ID:         uuid.New(),
				DocumentID: docID,
				ChunkIndex: batchStart + i,
				Text:       texts[batchStart+i],
				Embedding:  &v,
			})
		}
	}

	return embedded
}
