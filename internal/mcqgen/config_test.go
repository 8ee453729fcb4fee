package mcqgen

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 1, cfg.MaxAttempts)
	assert.Equal(t, 3*time.Second, cfg.Cooldown)
	assert.Equal(t, 3000, cfg.SourceCharLimit)
	assert.False(t, cfg.StructuredOutput)
	assert.NoError(t, cfg.Validate())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero attempts", func(c *Config) { c.MaxAttempts = 0 }},
		{"negative cooldown", func(c *Config) { c.Cooldown = -time.Second }},
		{"negative char limit", func(c *Config) { c.SourceCharLimit = -1 }},
		{"temperature too high", func(c *Config) { c.Temperature = 1.5 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestErrorKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{&ErrExtraction{Reason: "x"}, "extraction"},
		{&ErrMalformedPayload{}, "malformed_payload"},
		{&ErrShape{Got: "object"}, "shape"},
		{&ErrInsufficientCount{Expected: 5, Actual: 1}, "insufficient_count"},
		{&ErrMissingField{Index: 1, Field: "question"}, "missing_field"},
		{&ErrOptionCount{Index: 1, Count: 3}, "option_count"},
		{&ErrAnswerMismatch{Index: 1}, "answer_mismatch"},
		{&ErrGenerationClient{}, "generation_client"},
		{&ErrGenerationFailed{Attempts: 2, Err: &ErrShape{Got: "null"}}, "shape"},
		{assert.AnError, "other"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ErrorKind(tt.err))
	}
}
