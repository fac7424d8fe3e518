// DeepSeek Provider - OpenAI-compatible API with a fixed base URL.

package llm

const deepseekBaseURL = "https://api.deepseek.com/v1"

// DeepSeekProvider reuses the OpenAI wire format against DeepSeek's endpoint.
type DeepSeekProvider struct {
	*OpenAIProvider
}

// NewDeepSeekProvider creates a new DeepSeek provider.
func NewDeepSeekProvider(apiKey, model string, maxTokens uint32, temperature float32) *DeepSeekProvider {
	inner := NewOpenAIProvider(apiKey, deepseekBaseURL, model, maxTokens, temperature)
	inner.name = "deepseek"
	return &DeepSeekProvider{OpenAIProvider: inner}
}

// Verify DeepSeekProvider implements Provider
var _ Provider = (*DeepSeekProvider)(nil)
