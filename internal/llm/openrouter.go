package llm

import (
	"fmt"
	"strings"
)

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// OpenRouterProvider sends MCQ prompts through OpenRouter's
// OpenAI-compatible endpoint, so it is the OpenAI provider with a
// different base URL. Models must be vendor-qualified
// ("google/gemini-2.0-flash-exp"); no alias table applies.
type OpenRouterProvider struct {
	*OpenAIProvider
}

func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	switch {
	case cfg.APIKey == "":
		return nil, fmt.Errorf("openrouter API key is required")
	case cfg.Model != "" && !strings.Contains(cfg.Model, "/"):
		return nil, fmt.Errorf("openrouter model %q must be vendor-qualified, e.g. google/gemini-2.0-flash-exp", cfg.Model)
	}

	oai := OpenAIConfig{APIKey: cfg.APIKey, Model: cfg.Model, BaseURL: cfg.BaseURL}
	if oai.BaseURL == "" {
		oai.BaseURL = defaultOpenRouterBaseURL
	}
	inner, err := newOpenAIProviderRaw(oai)
	if err != nil {
		return nil, err
	}
	return &OpenRouterProvider{OpenAIProvider: inner}, nil
}
