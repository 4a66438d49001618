package llm

import "testing"

func clearKeys(t *testing.T) {
	t.Helper()
	for _, k := range []string{"GROQ_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "GEMINI_API_KEY", "ZYRA_LLM_PROVIDER"} {
		t.Setenv(k, "")
	}
}

func TestDiscoverConfig_PriorityOrder(t *testing.T) {
	clearKeys(t)
	t.Setenv("OPENAI_API_KEY", "sk-openai")
	t.Setenv("GROQ_API_KEY", "gsk-groq")

	cfg, ok := DiscoverConfig()
	if !ok {
		t.Fatal("expected discovery to succeed")
	}
	if cfg.Provider != "groq" {
		t.Errorf("groq should win discovery, got %q", cfg.Provider)
	}
	if cfg.Groq.APIKey != "gsk-groq" {
		t.Errorf("unexpected key %q", cfg.Groq.APIKey)
	}
	if cfg.Groq.BaseURL != "https://api.groq.com/openai/v1" {
		t.Errorf("unexpected base URL %q", cfg.Groq.BaseURL)
	}
}

func TestDiscoverConfig_NoKeys(t *testing.T) {
	clearKeys(t)
	if _, ok := DiscoverConfig(); ok {
		t.Fatal("expected discovery to fail with no keys")
	}
}

func TestConfigFromEnv_Overrides(t *testing.T) {
	clearKeys(t)
	t.Setenv("ZYRA_LLM_PROVIDER", "openai")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("ZYRA_OPENAI_MODEL", "gpt-custom")

	cfg := ConfigFromEnv()
	if cfg.Provider != "openai" {
		t.Errorf("expected openai provider, got %q", cfg.Provider)
	}
	if cfg.OpenAI.Model != "gpt-custom" {
		t.Errorf("expected model override, got %q", cfg.OpenAI.Model)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected validation error: %v", err)
	}
}

func TestValidate_MissingKey(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = "anthropic"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for missing key")
	}
}

func TestValidate_UnknownProvider(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = "carrier-pigeon"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for unknown provider")
	}
}

func TestDefaultConfig_RetryDisabled(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Retry.MaxAttempts != 1 {
		t.Errorf("retries are off by default, got %d attempts", cfg.Retry.MaxAttempts)
	}
}
