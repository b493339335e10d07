package port

import "context"

// AIProvider abstracts the hosted model backend for embeddings and text
// generation. The production implementation targets Amazon Bedrock.
type AIProvider interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Generate produces a single best completion for the given prompt.
	Generate(ctx context.Context, prompt string) (string, error)
}
