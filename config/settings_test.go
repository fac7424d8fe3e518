package config

import (
	"testing"
)

func TestNewDefaults(t *testing.T) {
	settings, err := New("anthropic")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if settings.LLM.Provider != "anthropic" {
		t.Errorf("provider = %q", settings.LLM.Provider)
	}
	if settings.LLM.Model != "claude-sonnet-4-20250514" {
		t.Errorf("model = %q", settings.LLM.Model)
	}
	if settings.LLM.MaxTokens != 4096 {
		t.Errorf("max tokens = %d", settings.LLM.MaxTokens)
	}
	if settings.LLM.Temperature != 0.7 {
		t.Errorf("temperature = %v", settings.LLM.Temperature)
	}
	if settings.Agent.MaxSteps != 10 {
		t.Errorf("max steps = %d", settings.Agent.MaxSteps)
	}
	if settings.Agent.CodeRoot != "." {
		t.Errorf("code root = %q", settings.Agent.CodeRoot)
	}
}

func TestNewAliases(t *testing.T) {
	tests := []struct {
		alias    string
		provider string
	}{
		{"claude", "anthropic"},
		{"gpt", "openai"},
		{"google", "gemini"},
		{"DeepSeek", "deepseek"},
	}

	for _, tt := range tests {
		settings, err := New(tt.alias)
		if err != nil {
			t.Errorf("New(%q) failed: %v", tt.alias, err)
			continue
		}
		if settings.LLM.Provider != tt.provider {
			t.Errorf("New(%q).Provider = %q, want %q", tt.alias, settings.LLM.Provider, tt.provider)
		}
	}
}

func TestNewUnknownProvider(t *testing.T) {
	if _, err := New("mystery"); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestNewReadsEnvironment(t *testing.T) {
	t.Setenv("LLM_MAX_TOKENS", "2048")
	t.Setenv("LLM_TEMPERATURE", "0.2")
	t.Setenv("AGENT_MAX_STEPS", "25")
	t.Setenv("OPENAI_MODEL", "gpt-4o-mini")
	t.Setenv("OPENAI_BASE_URL", "http://localhost:8080/v1")
	t.Setenv("CODESCOUT_ROOT", "/src/project")
	t.Setenv("CODESCOUT_DB", "/tmp/scout.db")

	settings, err := New("openai")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if settings.LLM.MaxTokens != 2048 {
		t.Errorf("max tokens = %d", settings.LLM.MaxTokens)
	}
	if settings.LLM.Temperature != 0.2 {
		t.Errorf("temperature = %v", settings.LLM.Temperature)
	}
	if settings.Agent.MaxSteps != 25 {
		t.Errorf("max steps = %d", settings.Agent.MaxSteps)
	}
	if settings.LLM.Model != "gpt-4o-mini" {
		t.Errorf("model = %q", settings.LLM.Model)
	}
	if settings.LLM.BaseURL != "http://localhost:8080/v1" {
		t.Errorf("base URL = %q", settings.LLM.BaseURL)
	}
	if settings.Agent.CodeRoot != "/src/project" {
		t.Errorf("code root = %q", settings.Agent.CodeRoot)
	}
	if settings.Agent.DatabasePath != "/tmp/scout.db" {
		t.Errorf("database path = %q", settings.Agent.DatabasePath)
	}
}

func TestNewInvalidEnvValue(t *testing.T) {
	t.Setenv("AGENT_MAX_STEPS", "lots")

	if _, err := New("openai"); err == nil {
		t.Error("expected error for non-numeric AGENT_MAX_STEPS")
	}
}

func TestBaseURLOnlyForOpenAI(t *testing.T) {
	t.Setenv("OPENAI_BASE_URL", "http://localhost:8080/v1")

	settings, err := New("anthropic")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if settings.LLM.BaseURL != "" {
		t.Errorf("base URL = %q, want empty for anthropic", settings.LLM.BaseURL)
	}
}

func TestAPIKeyFor(t *testing.T) {
	t.Setenv("DEEPSEEK_API_KEY", "sk-test")

	key, err := APIKeyFor("deepseek")
	if err != nil {
		t.Fatalf("APIKeyFor failed: %v", err)
	}
	if key != "sk-test" {
		t.Errorf("key = %q", key)
	}

	t.Setenv("DEEPSEEK_API_KEY", "")
	if _, err := APIKeyFor("deepseek"); err == nil {
		t.Error("expected error for unset key")
	}
}

func TestModelFor(t *testing.T) {
	t.Setenv("GEMINI_MODEL", "")
	model, err := ModelFor("google")
	if err != nil {
		t.Fatalf("ModelFor failed: %v", err)
	}
	if model != "gemini-2.5-flash" {
		t.Errorf("model = %q", model)
	}

	t.Setenv("GEMINI_MODEL", "gemini-exp")
	model, err = ModelFor("gemini")
	if err != nil {
		t.Fatalf("ModelFor failed: %v", err)
	}
	if model != "gemini-exp" {
		t.Errorf("model = %q", model)
	}
}

func TestSupportedProviders(t *testing.T) {
	names := SupportedProviders()
	if len(names) != 4 {
		t.Errorf("providers = %v, want 4", names)
	}
}
