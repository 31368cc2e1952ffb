package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/docquery/cli/internal/documents"
	"github.com/docquery/cli/internal/ingest"
)

// timeUnit rounds elapsed times for display.
const timeUnit = 10 * time.Millisecond

var ingestTitle string

var ingestCmd = &cobra.Command{
	Use:   "ingest [file]",
	Short: "Ingest a document into the store",
	Long: `Extracts text from the file, splits it into overlapping chunks,
embeds each chunk and stores everything for retrieval.
Supported file types: ` + strings.Join(documents.SupportedExtensions(), ", "),
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVarP(&ingestTitle, "title", "t", "", "document title (defaults to the file name)")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	path := args[0]

	text, fileType, err := documents.ExtractFile(path)
	if err != nil {
		return fmt.Errorf("failed to extract text: %w", err)
	}

	title := ingestTitle
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	ingestor, err := a.ingestor()
	if err != nil {
		return err
	}

	report, err := ingestor.Ingest(ctx, title, text, fileType)
	if err != nil {
		if report != nil && report.DocumentID != uuid.Nil {
			// The document row may already exist; tell the user which one.
			cmd.PrintErrf("Ingestion failed after creating document %s; delete it with: docquery delete %s\n",
				report.DocumentID, report.DocumentID)
		}
		if errors.Is(err, ingest.ErrInvalidInput) {
			return fmt.Errorf("invalid document: %w", err)
		}
		return fmt.Errorf("ingestion failed: %w", err)
	}

	printReport(cmd, report)
	return nil
}

func printReport(cmd *cobra.Command, report *ingest.Report) {
	switch report.Status {
	case ingest.StatusSuccess:
		cmd.Printf("Ingested %q: %d chunks in %s\n", report.Title, report.EmbeddedChunks, report.Elapsed.Round(timeUnit))
	case ingest.StatusPartial:
		cmd.Printf("Partially ingested %q: %d of %d chunks in %s\n",
			report.Title, report.EmbeddedChunks, report.TotalChunks, report.Elapsed.Round(timeUnit))
		cmd.Printf("  batches: %d succeeded, %d failed\n", report.BatchesSucceeded, report.BatchesFailed)
		for _, be := range report.BatchErrors {
			cmd.PrintErrf("  warning: %v\n", be.Err)
		}
	}
	cmd.Printf("Document id: %s\n", report.DocumentID)
}
