package mcqgen

import (
	"fmt"
	"time"
)

// Config controls the behavior of the Generator.
type Config struct {
	// MaxAttempts is the default attempt bound used by callers that don't
	// supply their own. Default: 1 (no automatic retry).
	MaxAttempts int `yaml:"max_attempts"`

	// Cooldown is the fixed wait between a failed attempt and the next one.
	// Default: 3s.
	Cooldown time.Duration `yaml:"cooldown"`

	// SourceCharLimit caps how many characters of source text go into the
	// prompt. Default: 3000.
	SourceCharLimit int `yaml:"source_char_limit"`

	// MaxTokens is the token budget for the completion.
	MaxTokens int `yaml:"max_tokens"`

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64 `yaml:"temperature"`

	// StructuredOutput asks the provider for native JSON output constrained
	// by PayloadSchema. Off by default; the prompt alone describes the format.
	StructuredOutput bool `yaml:"structured_output"`
}

// DefaultConfig returns a Config with recommended defaults.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:     1,
		Cooldown:        3 * time.Second,
		SourceCharLimit: SourceCharLimit,
		MaxTokens:       4096,
		Temperature:     0.7,
	}
}

// Validate rejects settings the Generator cannot run with.
func (c Config) Validate() error {
	if c.MaxAttempts < 1 {
		return fmt.Errorf("max attempts must be at least 1, got %d", c.MaxAttempts)
	}
	if c.Cooldown < 0 {
		return fmt.Errorf("cooldown must not be negative, got %s", c.Cooldown)
	}
	if c.SourceCharLimit < 0 {
		return fmt.Errorf("source char limit must not be negative, got %d", c.SourceCharLimit)
	}
	if c.Temperature < 0 || c.Temperature > 1 {
		return fmt.Errorf("temperature must be within [0, 1], got %g", c.Temperature)
	}
	return nil
}
