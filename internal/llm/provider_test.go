package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func userRequest(prompt string) Request {
	return Request{Messages: []Message{{Role: RoleUser, Content: prompt}}}
}

func TestMockProvider_FIFO(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: mcqJSON(5), Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		MockText("no list here"),
	)
	ctx := context.Background()

	first, err := mock.Generate(ctx, userRequest("first"))
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	if string(first.Content) != string(mcqJSON(5)) {
		t.Errorf("first content = %s", first.Content)
	}
	if first.Usage.InputTokens != 10 {
		t.Errorf("input tokens = %d, want 10", first.Usage.InputTokens)
	}
	if first.StopReason != "end" || first.Model != "mock" {
		t.Errorf("stop reason %q, model %q; want end, mock", first.StopReason, first.Model)
	}

	second, err := mock.Generate(ctx, userRequest("second"))
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if string(second.Content) != "no list here" {
		t.Errorf("second content = %s", second.Content)
	}

	_, err = mock.Generate(ctx, userRequest("third"))
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("exhausted mock: got %T (%v), want ErrProviderUnavailable", err, err)
	}
	if mock.CallCount() != 3 {
		t.Errorf("CallCount = %d, want 3", mock.CallCount())
	}
}

func TestMockProvider_RecordsRequests(t *testing.T) {
	mock := NewMockProvider(MockText("[]"))
	_, err := mock.Generate(context.Background(), Request{
		System:   "sys",
		Messages: []Message{{Role: RoleUser, Content: "Generate 5 MCQs."}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(mock.Calls) != 1 {
		t.Fatalf("recorded %d calls, want 1", len(mock.Calls))
	}
	if mock.Calls[0].System != "sys" {
		t.Errorf("system = %q", mock.Calls[0].System)
	}
	if mock.LastPrompt() != "Generate 5 MCQs." {
		t.Errorf("LastPrompt = %q", mock.LastPrompt())
	}
}

func TestMockProvider_ConfiguredErrorAndStopReason(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrRateLimit{RetryAfter: time.Second}},
		MockResponse{Content: json.RawMessage(`[{"question":`), StopReason: "max_tokens"},
	)
	mock.AddResponse(MockText("[]"))

	_, err := mock.Generate(context.Background(), Request{})
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("got %T (%v), want ErrRateLimit", err, err)
	}
	if rl.RetryAfter != time.Second {
		t.Errorf("RetryAfter = %s", rl.RetryAfter)
	}

	resp, err := mock.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StopReason != "max_tokens" {
		t.Errorf("stop reason = %q, want max_tokens", resp.StopReason)
	}

	resp, err = mock.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != "[]" {
		t.Errorf("content = %s, want []", resp.Content)
	}
}

func TestMockProvider_LastPromptSkipsAssistantTurns(t *testing.T) {
	mock := NewMockProvider(MockText("ok"))
	if mock.LastPrompt() != "" {
		t.Errorf("LastPrompt before any call = %q", mock.LastPrompt())
	}

	_, err := mock.Generate(context.Background(), Request{Messages: []Message{
		{Role: RoleUser, Content: "question"},
		{Role: RoleAssistant, Content: "answer"},
	}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mock.LastPrompt() != "question" {
		t.Errorf("LastPrompt = %q, want question", mock.LastPrompt())
	}
	if mock.ModelID() != "mock" {
		t.Errorf("ModelID = %q", mock.ModelID())
	}
}

func TestContextValues(t *testing.T) {
	ctx := context.Background()
	if PurposeFrom(ctx) != "unknown" || RequestIDFrom(ctx) != "" {
		t.Errorf("empty context: purpose %q, request ID %q", PurposeFrom(ctx), RequestIDFrom(ctx))
	}

	ctx = WithPurpose(ctx, "mcq-gen")
	ctx = WithRequestID(ctx, "req-42")
	if PurposeFrom(ctx) != "mcq-gen" {
		t.Errorf("purpose = %q", PurposeFrom(ctx))
	}
	if RequestIDFrom(ctx) != "req-42" {
		t.Errorf("request ID = %q", RequestIDFrom(ctx))
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"anthropic without key", Config{Provider: "anthropic"}, true},
		{"anthropic with key", Config{Provider: "anthropic", Anthropic: AnthropicConfig{APIKey: "sk-test"}}, false},
		{"openai without key", Config{Provider: "openai"}, true},
		{"openai with key", Config{Provider: "openai", OpenAI: OpenAIConfig{APIKey: "sk-test"}}, false},
		{"gemini without key", Config{Provider: "gemini"}, true},
		{"gemini with key", Config{Provider: "gemini", Gemini: GeminiConfig{APIKey: "g-test"}}, false},
		{"openrouter with key", Config{Provider: "openrouter", OpenRouter: OpenRouterConfig{APIKey: "sk-or"}}, false},
		{"negative timeout", Config{Provider: "mock", Timeout: -1}, true},
		{"mock needs no key", Config{Provider: "mock"}, false},
		{"unknown provider", Config{Provider: "palm"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func clearProviderEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
		"DOCQUIZ_LLM_PROVIDER", "DOCQUIZ_LLM_TIMEOUT", "DOCQUIZ_GEMINI_API_KEY", "DOCQUIZ_GEMINI_MODEL",
	} {
		t.Setenv(k, "")
	}
}

func TestConfigFromEnv(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("DOCQUIZ_LLM_PROVIDER", "gemini")
	t.Setenv("DOCQUIZ_GEMINI_API_KEY", "g-key")
	t.Setenv("DOCQUIZ_GEMINI_MODEL", "gemini-1.5-flash")
	t.Setenv("DOCQUIZ_LLM_TIMEOUT", "90s")

	cfg := ConfigFromEnv()
	if cfg.Provider != "gemini" || cfg.Gemini.APIKey != "g-key" || cfg.Gemini.Model != "gemini-1.5-flash" {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.Timeout != 90*time.Second {
		t.Errorf("timeout = %s, want 90s", cfg.Timeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestConfigFromEnv_BadTimeoutKeepsDefault(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("DOCQUIZ_LLM_TIMEOUT", "soon")
	if got, want := ConfigFromEnv().Timeout, DefaultConfig().Timeout; got != want {
		t.Errorf("timeout = %s, want default %s", got, want)
	}
}

func TestDiscoverConfig(t *testing.T) {
	clearProviderEnv(t)
	if _, ok := DiscoverConfig(); ok {
		t.Fatal("expected no config without keys")
	}

	t.Setenv("ANTHROPIC_API_KEY", "a-key")
	t.Setenv("OPENAI_API_KEY", "o-key")
	cfg, ok := DiscoverConfig()
	if !ok {
		t.Fatal("expected a discovered config")
	}
	if cfg.Provider != "openai" || cfg.OpenAI.APIKey != "o-key" {
		t.Errorf("OpenAI should take priority over Anthropic, got %q", cfg.Provider)
	}

	t.Setenv("GEMINI_API_KEY", "g-key")
	cfg, ok = DiscoverConfig()
	if !ok || cfg.Provider != "gemini" {
		t.Errorf("provider = %q, want gemini", cfg.Provider)
	}
}

func TestNewProvider_Mock(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{Provider: "mock"}, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "mock" {
		t.Errorf("ModelID = %q", p.ModelID())
	}

	if _, err := NewProvider(context.Background(), Config{Provider: "openai"}, nil, nil); err == nil {
		t.Error("expected error for openai without key")
	}
}
