// Package config assembles docquiz configuration from defaults, an
// optional YAML file and DOCQUIZ_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/docquiz/internal/docsource"
	"github.com/abhisek/docquiz/internal/llm"
	"github.com/abhisek/docquiz/internal/logging"
	"github.com/abhisek/docquiz/internal/mcqgen"
)

// Config is the complete application configuration.
type Config struct {
	LLM        llm.Config       `yaml:"llm"`
	Generation mcqgen.Config    `yaml:"generation"`
	Server     ServerConfig     `yaml:"server"`
	Document   docsource.Config `yaml:"document"`
	Log        logging.Config   `yaml:"log"`

	// DBPath is the SQLite event store location. Empty selects the
	// default data directory.
	DBPath string `yaml:"db"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr      string `yaml:"addr"`       // Default: ":5000"
	UploadDir string `yaml:"upload_dir"` // Default: "uploads"

	// SessionSecret signs session cookies. When empty a random secret is
	// generated at startup and sessions do not survive a restart.
	SessionSecret string `yaml:"session_secret"`

	// MaxUploadBytes caps the size of an uploaded document. Default: 20 MiB.
	MaxUploadBytes int64 `yaml:"max_upload_bytes"`
}

// Default returns a Config with defaults for every section.
func Default() Config {
	return Config{
		LLM:        llm.DefaultConfig(),
		Generation: mcqgen.DefaultConfig(),
		Server: ServerConfig{
			Addr:           ":5000",
			UploadDir:      "uploads",
			MaxUploadBytes: 20 << 20,
		},
		Document: docsource.Config{Pdftotext: "pdftotext"},
		Log:      logging.DefaultConfig(),
	}
}

// Load builds a Config. Values from the YAML file at path (skipped when
// path is empty) override defaults; environment variables override both.
//
// If no LLM provider was chosen explicitly and the default provider has no
// API key, the standard vendor API key variables are probed instead.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	fileProvider := cfg.LLM.Provider != llm.DefaultConfig().Provider
	llm.ApplyEnv(&cfg.LLM)
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	explicit := fileProvider || os.Getenv("DOCQUIZ_LLM_PROVIDER") != ""
	if !explicit && cfg.LLM.Validate() != nil {
		if discovered, ok := llm.DiscoverConfig(); ok {
			discovered.Timeout = cfg.LLM.Timeout
			cfg.LLM = discovered
		}
	}

	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// applyEnv overlays non-LLM DOCQUIZ_* variables onto cfg.
func applyEnv(cfg *Config) error {
	if v := os.Getenv("DOCQUIZ_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("DOCQUIZ_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("DOCQUIZ_UPLOAD_DIR"); v != "" {
		cfg.Server.UploadDir = v
	}
	if v := os.Getenv("DOCQUIZ_SESSION_SECRET"); v != "" {
		cfg.Server.SessionSecret = v
	}
	if v := os.Getenv("DOCQUIZ_PDFTOTEXT"); v != "" {
		cfg.Document.Pdftotext = v
	}
	if v := os.Getenv("DOCQUIZ_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("DOCQUIZ_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}

	if v := os.Getenv("DOCQUIZ_MAX_UPLOAD_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("DOCQUIZ_MAX_UPLOAD_BYTES: %w", err)
		}
		cfg.Server.MaxUploadBytes = n
	}
	if v := os.Getenv("DOCQUIZ_MAX_ATTEMPTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("DOCQUIZ_MAX_ATTEMPTS: %w", err)
		}
		cfg.Generation.MaxAttempts = n
	}
	if v := os.Getenv("DOCQUIZ_COOLDOWN"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("DOCQUIZ_COOLDOWN: %w", err)
		}
		cfg.Generation.Cooldown = d
	}
	if v := os.Getenv("DOCQUIZ_STRUCTURED_OUTPUT"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("DOCQUIZ_STRUCTURED_OUTPUT: %w", err)
		}
		cfg.Generation.StructuredOutput = b
	}
	return nil
}

// Validate checks every section. LLM settings are validated separately by
// the commands that need a provider.
func (c Config) Validate() error {
	var errs []error
	if err := c.Generation.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("generation: %w", err))
	}
	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server: addr is required"))
	}
	if c.Server.UploadDir == "" {
		errs = append(errs, errors.New("server: upload_dir is required"))
	}
	if c.Server.MaxUploadBytes <= 0 {
		errs = append(errs, fmt.Errorf("server: max_upload_bytes must be positive, got %d", c.Server.MaxUploadBytes))
	}
	return errors.Join(errs...)
}
