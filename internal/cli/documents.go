package cli

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/docquery/cli/internal/db"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List ingested documents, newest first",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var deleteCmd = &cobra.Command{
	Use:   "delete [document-id]",
	Short: "Delete a document and all of its chunks",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(deleteCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	docs, err := a.db.GetAllDocuments(ctx)
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if len(docs) == 0 {
		cmd.Println("No documents ingested yet.")
		return nil
	}

	for _, doc := range docs {
		chunks, err := a.db.CountChunks(ctx, doc.ID)
		if err != nil {
			return fmt.Errorf("failed to count chunks: %w", err)
		}
		cmd.Printf("%s  %s\n", doc.ID, doc.Title)
		cmd.Printf("    type: %s, chunks: %d, created: %s\n",
			doc.FileType, chunks, doc.CreatedAt.Format("2006-01-02 15:04"))
	}
	cmd.Printf("\nTotal: %d documents\n", len(docs))
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	id, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid document id %q: %w", args[0], err)
	}

	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	return deleteDocument(ctx, cmd, a.db, id)
}

// documentDeleter is the store surface the delete command needs.
type documentDeleter interface {
	GetDocument(ctx context.Context, id uuid.UUID) (*db.Document, error)
	DeleteDocument(ctx context.Context, id uuid.UUID) (bool, error)
}

func deleteDocument(ctx context.Context, cmd *cobra.Command, store documentDeleter, id uuid.UUID) error {
	doc, err := store.GetDocument(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to look up document: %w", err)
	}

	// Deleting an unknown id is a no-op, not an error.
	if doc == nil {
		cmd.Printf("No document with id %s\n", id)
		return nil
	}

	deleted, err := store.DeleteDocument(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	if !deleted {
		// Removed between the lookup and the delete.
		cmd.Printf("No document with id %s\n", id)
		return nil
	}
	cmd.Printf("Deleted %q (%s) and its chunks\n", doc.Title, id)
	return nil
}
