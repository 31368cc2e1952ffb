package rag

import (
	"context"
	"fmt"
	"strings"

	"github.com/docquery/cli/internal/openai"
)

// Generation parameters for answer synthesis.
const (
	answerTemperature = 0.7
	answerMaxTokens   = 1500

	// contextDelimiter separates chunks in the prompt so the model can
	// tell passages apart.
	contextDelimiter = "\n\n---\n\n"
)

// NoResultsAnswer is returned when retrieval finds nothing relevant. It is
// a normal answer, not an error, and the generation provider is never
// called for it.
const NoResultsAnswer = "No relevant information found. Please upload documents first."

const systemPromptFormat = `You are a helpful assistant for document analysis. Answer questions based on the provided context.

IMPORTANT RULES:
1. Answer the question precisely and completely based on the context
2. If the exact answer is not in the context, give relevant information from the available material
3. Be specific and structure your answer clearly
4. When you cite information, mention which part of the material it comes from
5. Answer in the same language the question was asked in

Context from the documents:
%s`

// Generator produces text from chat messages. *openai.Client satisfies it.
type Generator interface {
	Complete(ctx context.Context, messages []openai.Message, temperature float64, maxTokens int) (string, error)
	Model() string
}

// Synthesizer builds a grounded prompt from retrieved context and calls the
// generation provider. A provider failure propagates; there is no retry and
// no fallback answer.
type Synthesizer struct {
	generator Generator
}

// NewSynthesizer creates a synthesizer backed by generator.
func NewSynthesizer(generator Generator) *Synthesizer {
	return &Synthesizer{generator: generator}
}

// Model returns the generation model name, for logging answered queries.
func (s *Synthesizer) Model() string {
	return s.generator.Model()
}

// Synthesize answers the question from the retrieved context. The context
// chunks are concatenated in rank order; an empty result returns
// NoResultsAnswer without touching the provider.
func (s *Synthesizer) Synthesize(ctx context.Context, question string, result *Result) (string, error) {
	if result.Empty() {
		return NoResultsAnswer, nil
	}

	answer, err := s.generator.Complete(ctx, []openai.Message{
		{Role: "system", Content: fmt.Sprintf(systemPromptFormat, buildContext(result))},
		{Role: "user", Content: question},
	}, answerTemperature, answerMaxTokens)
	if err != nil {
		return "", fmt.Errorf("failed to generate answer: %w", err)
	}
	return answer, nil
}

// buildContext joins the retrieved chunk texts in rank order.
func buildContext(result *Result) string {
	texts := make([]string, len(result.Chunks))
	for i, chunk := range result.Chunks {
		texts[i] = chunk.Text
	}
	return strings.Join(texts, contextDelimiter)
}
