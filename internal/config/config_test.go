package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets every variable Load reads so the host environment
// cannot leak into tests.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"DOCQUIZ_LLM_PROVIDER", "DOCQUIZ_LLM_TIMEOUT",
		"DOCQUIZ_ANTHROPIC_API_KEY", "DOCQUIZ_ANTHROPIC_MODEL",
		"DOCQUIZ_OPENAI_API_KEY", "DOCQUIZ_OPENAI_MODEL", "DOCQUIZ_OPENAI_BASE_URL",
		"DOCQUIZ_GEMINI_API_KEY", "DOCQUIZ_GEMINI_MODEL",
		"DOCQUIZ_OPENROUTER_API_KEY", "DOCQUIZ_OPENROUTER_MODEL",
		"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
		"DOCQUIZ_DB", "DOCQUIZ_ADDR", "DOCQUIZ_UPLOAD_DIR", "DOCQUIZ_SESSION_SECRET",
		"DOCQUIZ_PDFTOTEXT", "DOCQUIZ_LOG_LEVEL", "DOCQUIZ_LOG_FORMAT",
		"DOCQUIZ_MAX_UPLOAD_BYTES", "DOCQUIZ_MAX_ATTEMPTS", "DOCQUIZ_COOLDOWN",
		"DOCQUIZ_STRUCTURED_OUTPUT",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "docquiz.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":5000", cfg.Server.Addr)
	assert.Equal(t, "uploads", cfg.Server.UploadDir)
	assert.Equal(t, int64(20<<20), cfg.Server.MaxUploadBytes)
	assert.Equal(t, 1, cfg.Generation.MaxAttempts)
	assert.Equal(t, 3*time.Second, cfg.Generation.Cooldown)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
llm:
  provider: openai
  timeout: 30s
  openai:
    api_key: sk-file
    model: gpt-4o
generation:
  max_attempts: 3
  cooldown: 500ms
  source_char_limit: 1000
server:
  addr: ":8080"
  upload_dir: /tmp/docs
db: /tmp/docquiz.db
log:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "sk-file", cfg.LLM.OpenAI.APIKey)
	assert.Equal(t, "gpt-4o", cfg.LLM.OpenAI.Model)
	assert.Equal(t, 30*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 3, cfg.Generation.MaxAttempts)
	assert.Equal(t, 500*time.Millisecond, cfg.Generation.Cooldown)
	assert.Equal(t, 1000, cfg.Generation.SourceCharLimit)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "/tmp/docs", cfg.Server.UploadDir)
	assert.Equal(t, "/tmp/docquiz.db", cfg.DBPath)
	assert.Equal(t, "debug", cfg.Log.Level)

	// Unset keys keep their defaults.
	assert.Equal(t, int64(20<<20), cfg.Server.MaxUploadBytes)
	assert.Equal(t, "claude-haiku", cfg.LLM.Anthropic.Model)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
generation:
  max_attempts: 3
server:
  addr: ":8080"
`)
	t.Setenv("DOCQUIZ_MAX_ATTEMPTS", "5")
	t.Setenv("DOCQUIZ_ADDR", ":9000")
	t.Setenv("DOCQUIZ_COOLDOWN", "1s")
	t.Setenv("DOCQUIZ_STRUCTURED_OUTPUT", "true")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Generation.MaxAttempts)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, time.Second, cfg.Generation.Cooldown)
	assert.True(t, cfg.Generation.StructuredOutput)
}

func TestLoad_InvalidEnv(t *testing.T) {
	for _, kv := range [][2]string{
		{"DOCQUIZ_MAX_ATTEMPTS", "many"},
		{"DOCQUIZ_COOLDOWN", "soon"},
		{"DOCQUIZ_MAX_UPLOAD_BYTES", "big"},
		{"DOCQUIZ_STRUCTURED_OUTPUT", "maybe"},
	} {
		t.Run(kv[0], func(t *testing.T) {
			clearEnv(t)
			t.Setenv(kv[0], kv[1])
			_, err := Load("")
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoad_BadYAML(t *testing.T) {
	clearEnv(t)
	_, err := Load(writeConfig(t, "generation: [unclosed"))
	assert.Error(t, err)
}

func TestLoad_DiscoversProvider(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-discovered")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "sk-discovered", cfg.LLM.OpenAI.APIKey)
	assert.NoError(t, cfg.LLM.Validate())
}

func TestLoad_ExplicitProviderNotOverridden(t *testing.T) {
	clearEnv(t)
	t.Setenv("DOCQUIZ_LLM_PROVIDER", "anthropic")
	t.Setenv("OPENAI_API_KEY", "sk-discovered")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "anthropic", cfg.LLM.Provider)
	assert.Error(t, cfg.LLM.Validate())
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Generation.MaxAttempts = 0
	cfg.Server.Addr = ""
	cfg.Server.MaxUploadBytes = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "generation")
	assert.Contains(t, err.Error(), "addr")
	assert.Contains(t, err.Error(), "max_upload_bytes")
}
