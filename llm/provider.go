// LLM Provider interface - the abstract interface for LLM providers.
// Each provider implementation hides:
// - API client initialization and authentication
// - Request/response format conversion
// - Provider-specific error handling

package llm

import (
	"context"
)

// Provider defines the abstract interface for LLM providers.
type Provider interface {
	// Name returns the provider name (for logging/debugging).
	Name() string

	// Model returns the current model being used.
	Model() string

	// Chat sends a chat completion request and returns the full response.
	Chat(ctx context.Context, messages []ChatMessage) (Response, error)

	// StreamChat streams a chat completion, sending text fragments to the
	// chunks channel as they arrive. Returns token usage when the
	// provider reports it in the terminal fragment.
	StreamChat(ctx context.Context, messages []ChatMessage, chunks chan<- string) (*TokenUsage, error)
}
