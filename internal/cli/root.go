// Package cli wires the ingestion and query pipelines to cobra commands.
package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/docquery/cli/config"
	"github.com/docquery/cli/internal/db"
	"github.com/docquery/cli/internal/embeddings"
	"github.com/docquery/cli/internal/ingest"
	"github.com/docquery/cli/internal/openai"
	"github.com/docquery/cli/internal/rag"
)

var (
	cfg     *config.Config
	useMock bool
)

var rootCmd = &cobra.Command{
	Use:   "docquery",
	Short: "Ask questions about your documents",
	Long: `docquery ingests text documents into a Postgres/pgvector store and
answers natural-language questions from the most relevant passages.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&useMock, "mock", false,
		"use deterministic mock embeddings instead of the OpenAI API")
}

// Execute runs the CLI with the given configuration.
func Execute(c *config.Config) error {
	cfg = c
	return rootCmd.Execute()
}

// app holds the services wired for one command invocation. The embedder and
// chat client are built on demand so commands that only touch the store
// (list, delete) work without an API key.
type app struct {
	db *db.DB
}

// newApp connects to the database. The caller must Close the returned app.
func newApp(ctx context.Context) (*app, error) {
	database, err := db.New(ctx, cfg.Database.ConnectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return &app{db: database}, nil
}

func (a *app) Close() {
	a.db.Close()
}

func (a *app) embedder() (embeddings.Embedder, error) {
	if useMock {
		return embeddings.NewMockEmbedder(0), nil
	}
	return embeddings.NewOpenAIEmbedder(embeddings.Config{
		APIKey:  cfg.APIKey(),
		BaseURL: cfg.OpenAI.BaseURL,
		Model:   cfg.OpenAI.EmbeddingModel,
		Timeout: time.Duration(cfg.OpenAI.TimeoutSeconds) * time.Second,
	})
}

func (a *app) ingestor() (*ingest.Ingestor, error) {
	emb, err := a.embedder()
	if err != nil {
		return nil, err
	}
	return ingest.NewIngestor(a.db, emb,
		cfg.Processing.ChunkSize, cfg.Processing.ChunkOverlap, cfg.Processing.EmbedBatchSize), nil
}

func (a *app) retriever() (*rag.Retriever, error) {
	emb, err := a.embedder()
	if err != nil {
		return nil, err
	}
	return rag.NewRetriever(a.db, emb,
		cfg.Processing.MatchThreshold, cfg.Processing.MatchCount), nil
}

func (a *app) synthesizer() (*rag.Synthesizer, error) {
	client, err := openai.NewClient(openai.Config{
		APIKey:  cfg.APIKey(),
		BaseURL: cfg.OpenAI.BaseURL,
		Model:   cfg.OpenAI.ChatModel,
	})
	if err != nil {
		return nil, err
	}
	return rag.NewSynthesizer(client), nil
}
