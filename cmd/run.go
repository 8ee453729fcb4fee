package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/docquiz/internal/config"
	"github.com/abhisek/docquiz/internal/docsource"
	"github.com/abhisek/docquiz/internal/llm"
	"github.com/abhisek/docquiz/internal/logging"
	"github.com/abhisek/docquiz/internal/mcqgen"
	"github.com/abhisek/docquiz/internal/store"
)

// pipeline holds everything needed to turn a document into MCQs.
type pipeline struct {
	cfg       config.Config
	logger    *zap.Logger
	store     *store.Store
	source    *docsource.PDFSource
	generator *mcqgen.Generator
}

// buildPipeline opens the store, builds the LLM provider and wires the
// generator. LLM calls and generation runs are recorded in the store.
func buildPipeline(cmd *cobra.Command, cfg config.Config) (*pipeline, error) {
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	eventRepo := st.EventRepo()
	provider, err := llm.NewProvider(cmd.Context(), cfg.LLM, eventRepo, logger)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("LLM provider: %w", err)
	}

	gen := mcqgen.New(mcqgen.NewProviderCompleter(provider, cfg.Generation), cfg.Generation, logger)
	gen.Recorder = mcqgen.NewEventRecorder(eventRepo, logger)

	logger.Debug("pipeline ready",
		zap.String("provider", cfg.LLM.Provider),
		zap.String("model", provider.ModelID()),
		zap.String("db", dbPath),
		zap.Int("max_attempts", cfg.Generation.MaxAttempts),
	)

	return &pipeline{
		cfg:       cfg,
		logger:    logger,
		store:     st,
		source:    docsource.NewPDFSource(cfg.Document, logger),
		generator: gen,
	}, nil
}

func (p *pipeline) Close() {
	p.store.Close()
	_ = p.logger.Sync()
}
