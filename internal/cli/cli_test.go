package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docquery/cli/internal/db"
	"github.com/docquery/cli/internal/ingest"
	"github.com/docquery/cli/internal/rag"
)

func captureCmd() (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	cmd := &cobra.Command{}
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	return cmd, out, errOut
}

func TestPrintReport_Success(t *testing.T) {
	cmd, out, errOut := captureCmd()
	printReport(cmd, &ingest.Report{
		DocumentID:     uuid.New(),
		Title:          "My Doc",
		Status:         ingest.StatusSuccess,
		TotalChunks:    4,
		EmbeddedChunks: 4,
		Elapsed:        1200 * time.Millisecond,
	})

	assert.Contains(t, out.String(), `Ingested "My Doc": 4 chunks`)
	assert.Contains(t, out.String(), "Document id:")
	assert.Empty(t, errOut.String())
}

func TestPrintReport_Partial(t *testing.T) {
	cmd, out, errOut := captureCmd()
	printReport(cmd, &ingest.Report{
		DocumentID:       uuid.New(),
		Title:            "My Doc",
		Status:           ingest.StatusPartial,
		TotalChunks:      6,
		EmbeddedChunks:   4,
		BatchesSucceeded: 2,
		BatchesFailed:    1,
		BatchErrors: []ingest.BatchError{
			{Batch: 2, Err: errors.New("embed batch 2: provider unavailable")},
		},
	})

	assert.Contains(t, out.String(), "Partially ingested")
	assert.Contains(t, out.String(), "4 of 6 chunks")
	assert.Contains(t, out.String(), "2 succeeded, 1 failed")
	assert.Contains(t, errOut.String(), "embed batch 2")
}

// fakeDeleter answers document lookups and records deletes.
type fakeDeleter struct {
	docs    map[uuid.UUID]*db.Document
	getErr  error
	delErr  error
	deleted []uuid.UUID
}

func (f *fakeDeleter) GetDocument(_ context.Context, id uuid.UUID) (*db.Document, error) {
	return f.docs[id], f.getErr
}

func (f *fakeDeleter) DeleteDocument(_ context.Context, id uuid.UUID) (bool, error) {
	if f.delErr != nil {
		return false, f.delErr
	}
	if _, ok := f.docs[id]; !ok {
		return false, nil
	}
	f.deleted = append(f.deleted, id)
	return true, nil
}

func TestDeleteDocument_ReportsTitle(t *testing.T) {
	id := uuid.New()
	store := &fakeDeleter{docs: map[uuid.UUID]*db.Document{
		id: {ID: id, Title: "Quarterly Report"},
	}}
	cmd, out, _ := captureCmd()

	err := deleteDocument(context.Background(), cmd, store, id)
	require.NoError(t, err)
	assert.Contains(t, out.String(), `Deleted "Quarterly Report"`)
	assert.Contains(t, out.String(), id.String())
	assert.Equal(t, []uuid.UUID{id}, store.deleted)
}

func TestDeleteDocument_UnknownIDIsNoOp(t *testing.T) {
	store := &fakeDeleter{}
	cmd, out, _ := captureCmd()

	id := uuid.New()
	err := deleteDocument(context.Background(), cmd, store, id)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "No document with id")
	assert.Empty(t, store.deleted)
}

func TestDeleteDocument_LookupFailure(t *testing.T) {
	store := &fakeDeleter{getErr: errors.New("connection reset")}
	cmd, _, _ := captureCmd()

	err := deleteDocument(context.Background(), cmd, store, uuid.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to look up document")
	assert.Empty(t, store.deleted)
}

func TestTemplatedAnswer(t *testing.T) {
	result := &rag.Result{
		Chunks: []*db.SimilarChunk{{ID: uuid.New()}, {ID: uuid.New()}},
		Sources: []rag.Source{
			{DocumentTitle: "Doc A", ChunkPreview: "first passage...", Similarity: 0.9},
			{DocumentTitle: "Doc B", ChunkPreview: "second passage...", Similarity: 0.6},
		},
	}

	answer := templatedAnswer(result)
	assert.Contains(t, answer, `1. From "Doc A"`)
	assert.Contains(t, answer, `2. From "Doc B"`)
	assert.Contains(t, answer, "first passage...")
}
