// Package llm abstracts the text generation backends.
package llm

import (
	"context"

	"github.com/google/generative-ai-go/genai"
)

// TokenUsage reports token counts for a single generation call.
type TokenUsage struct {
	Model            string
	PromptTokens     int
	CompletionTokens int
}

// ContentResponse contains the generated text and metadata like token usage.
type ContentResponse struct {
	Content string
	Usage   TokenUsage
}

// TextGenerator is an interface for generating structured JSON text from a
// prompt. The schema describes the required response shape; backends that
// cannot enforce it natively receive it as an instruction instead.
type TextGenerator interface {
	GenerateContent(ctx context.Context, prompt string, schema *genai.Schema) (ContentResponse, error)
}

// Closer is an interface for closing resources.
type Closer interface {
	Close() error
}
