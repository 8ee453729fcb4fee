package mcqgen

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/docquiz/internal/store"
)

// RunSummary is the outcome of one Generate call.
type RunSummary struct {
	RequestID      string
	RequestedCount int
	MaxAttempts    int
	Attempts       int
	Err            error
	Latency        time.Duration
}

// RunRecorder receives a summary of every finished generation run.
type RunRecorder interface {
	RecordRun(ctx context.Context, summary RunSummary)
}

// EventRecorder persists run summaries as generation_runs events.
type EventRecorder struct {
	repo   store.EventRepo
	logger *zap.Logger
}

// NewEventRecorder creates a RunRecorder backed by repo.
func NewEventRecorder(repo store.EventRepo, logger *zap.Logger) *EventRecorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventRecorder{repo: repo, logger: logger}
}

// RecordRun stores s. Storage failures are logged and otherwise ignored.
func (r *EventRecorder) RecordRun(ctx context.Context, s RunSummary) {
	data := store.GenerationRunData{
		RequestID:      s.RequestID,
		RequestedCount: s.RequestedCount,
		MaxAttempts:    s.MaxAttempts,
		Attempts:       s.Attempts,
		Success:        s.Err == nil,
		ErrorKind:      ErrorKind(s.Err),
		LatencyMs:      s.Latency.Milliseconds(),
	}
	if s.Err != nil {
		data.ErrorMessage = s.Err.Error()
	}

	// The run's own context may already be cancelled; the record should
	// still land.
	if err := r.repo.AppendGenerationRun(context.WithoutCancel(ctx), data); err != nil {
		r.logger.Warn("failed to record generation run", zap.Error(err))
	}
}
