package llm

import (
	"context"
)

// Client is the one capability the extraction pipeline needs from a
// language model provider.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Extraction asks for structured JSON over whole documents, so responses get
// a generous token cap and a near-zero temperature: repeated runs over the
// same document should yield the same statement list.
const (
	maxTokens             = 4096
	extractionTemperature = 0.1
)
