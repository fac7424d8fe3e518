package llm

import (
	"testing"
)

func TestParseProviderType(t *testing.T) {
	tests := []struct {
		input string
		want  ProviderType
	}{
		{"openai", ProviderOpenAI},
		{"GPT", ProviderOpenAI},
		{"anthropic", ProviderAnthropic},
		{"claude", ProviderAnthropic},
		{"deepseek", ProviderDeepSeek},
		{"gemini", ProviderGemini},
		{"google", ProviderGemini},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseProviderType(tt.input)
			if err != nil {
				t.Fatalf("ParseProviderType(%q) failed: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseProviderType(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseProviderTypeUnknown(t *testing.T) {
	if _, err := ParseProviderType("cohere"); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestProviderDefaults(t *testing.T) {
	for _, p := range []ProviderType{ProviderOpenAI, ProviderAnthropic, ProviderDeepSeek, ProviderGemini} {
		if p.DefaultModel() == "" {
			t.Errorf("%s: missing default model", p)
		}
		if p.EnvVar() == "" {
			t.Errorf("%s: missing API key env var", p)
		}
	}
}

func TestFromEnvRequiresKey(t *testing.T) {
	t.Setenv("DEEPSEEK_API_KEY", "")

	if _, err := ProviderDeepSeek.FromEnv(); err == nil {
		t.Error("expected error when API key env var is empty")
	}
}

func TestBuilderConfiguresOpenAI(t *testing.T) {
	provider, err := ProviderOpenAI.
		Model("gpt-4o-mini").
		MaxTokens(256).
		Temperature(0.1).
		APIKey("sk-test")
	if err != nil {
		t.Fatalf("builder failed: %v", err)
	}
	if provider.Name() != "openai" {
		t.Errorf("expected provider openai, got %q", provider.Name())
	}
	if provider.Model() != "gpt-4o-mini" {
		t.Errorf("expected model gpt-4o-mini, got %q", provider.Model())
	}
}

func TestDeepSeekReportsOwnName(t *testing.T) {
	provider, err := ProviderDeepSeek.APIKey("sk-test")
	if err != nil {
		t.Fatalf("builder failed: %v", err)
	}
	if provider.Name() != "deepseek" {
		t.Errorf("expected provider deepseek, got %q", provider.Name())
	}
	if provider.Model() != "deepseek-chat" {
		t.Errorf("expected default model deepseek-chat, got %q", provider.Model())
	}
}

func TestTokenUsageAdd(t *testing.T) {
	var total TokenUsage
	total.Add(&TokenUsage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15})
	total.Add(nil)
	total.Add(&TokenUsage{PromptTokens: 1, CompletionTokens: 2, TotalTokens: 3})

	if total.PromptTokens != 11 || total.CompletionTokens != 7 || total.TotalTokens != 18 {
		t.Errorf("unexpected accumulated usage: %+v", total)
	}
}
