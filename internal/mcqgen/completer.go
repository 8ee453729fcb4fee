package mcqgen

import (
	"context"

	"github.com/abhisek/docquiz/internal/llm"
)

// Purpose labels LLM events issued for MCQ generation.
const Purpose = "mcq-gen"

// Completer turns a prompt into a raw text completion.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// CompleterFunc adapts a function to the Completer interface.
type CompleterFunc func(ctx context.Context, prompt string) (string, error)

func (f CompleterFunc) Complete(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// ProviderCompleter implements Completer on top of an llm.Provider. The
// prompt is sent as a single user message.
type ProviderCompleter struct {
	provider llm.Provider
	config   Config
}

// NewProviderCompleter creates a Completer backed by provider.
func NewProviderCompleter(provider llm.Provider, cfg Config) *ProviderCompleter {
	return &ProviderCompleter{provider: provider, config: cfg}
}

// Complete sends prompt to the provider. Every provider failure, including
// a completion cut off by the token limit, is returned as
// *ErrGenerationClient.
func (c *ProviderCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	ctx = llm.WithPurpose(ctx, Purpose)

	req := llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: prompt},
		},
		MaxTokens:   c.config.MaxTokens,
		Temperature: c.config.Temperature,
	}
	if c.config.StructuredOutput {
		req.Schema = PayloadSchema
	}

	resp, err := c.provider.Generate(ctx, req)
	if err != nil {
		return "", &ErrGenerationClient{Err: err}
	}
	if resp.StopReason == "max_tokens" {
		return "", &ErrGenerationClient{Err: &llm.ErrMaxTokensExceeded{Content: resp.Content}}
	}

	return string(resp.Content), nil
}
