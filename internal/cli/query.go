package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/docquery/cli/internal/db"
	"github.com/docquery/cli/internal/rag"
)

var queryCmd = &cobra.Command{
	Use:   "query [question]",
	Short: "Ask a question about the ingested documents",
	Long: `Embeds the question, retrieves the most similar chunks and generates
a grounded answer with source attributions.`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

func init() {
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	question := args[0]

	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	retriever, err := a.retriever()
	if err != nil {
		return err
	}

	result, err := retriever.Retrieve(ctx, question)
	if err != nil {
		return fmt.Errorf("retrieval failed: %w", err)
	}

	if result.Empty() {
		cmd.Println(rag.NoResultsAnswer)
		return nil
	}

	var answer, modelName string
	if useMock {
		// Mock mode has no generation provider; fall back to a templated
		// answer built from the raw retrieved context.
		answer = templatedAnswer(result)
		modelName = "mock"
	} else {
		synth, err := a.synthesizer()
		if err != nil {
			return err
		}
		answer, err = synth.Synthesize(ctx, question, result)
		if err != nil {
			return fmt.Errorf("answer generation failed: %w", err)
		}
		modelName = synth.Model()
	}

	cmd.Println(answer)
	cmd.Println()
	cmd.Println("Sources:")
	for i, src := range result.Sources {
		cmd.Printf("  [%d] %s (%.0f%%)\n", i+1, src.DocumentTitle, src.Similarity*100)
		cmd.Printf("      %s\n", src.ChunkPreview)
	}

	// The query log is best-effort; a write failure must not hide the answer.
	if err := a.db.SaveQueryLog(ctx, &db.QueryLog{
		Question:       question,
		Answer:         answer,
		ModelName:      modelName,
		SourceChunkIDs: result.ChunkIDs(),
	}); err != nil {
		cmd.PrintErrf("warning: failed to save query log: %v\n", err)
	}

	return nil
}

// templatedAnswer presents the retrieved passages directly when no
// generation provider is available.
func templatedAnswer(result *rag.Result) string {
	var b strings.Builder
	b.WriteString("Most relevant passages:\n")
	for i, src := range result.Sources {
		fmt.Fprintf(&b, "\n%d. From %q:\n%s\n", i+1, src.DocumentTitle, src.ChunkPreview)
	}
	return b.String()
}
