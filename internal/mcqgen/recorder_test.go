package mcqgen

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/docquiz/internal/llm"
	"github.com/abhisek/docquiz/internal/store"
)

func TestEventRecorder_PersistsRuns(t *testing.T) {
	s, err := store.Open("file:mcqgen_recorder?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	repo := s.EventRepo()
	mock := llm.NewMockProvider(
		llm.MockText("no payload"),
		llm.MockText(samplePayload(6)),
	)
	cfg := DefaultConfig()
	gen := New(NewProviderCompleter(llm.WithLogging(mock, "mock", repo, nil), cfg), cfg, nil)
	gen.Sleep = func(context.Context, time.Duration) error { return nil }
	gen.Recorder = NewEventRecorder(repo, nil)

	_, err = gen.Generate(context.Background(), testSource, "6 questions", 2)
	require.NoError(t, err)

	ctx := context.Background()
	runs, err := repo.QueryGenerationRuns(ctx, store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.True(t, runs[0].Success)
	assert.Equal(t, 6, runs[0].RequestedCount)
	assert.Equal(t, 2, runs[0].Attempts)
	assert.Empty(t, runs[0].ErrorKind)

	// Both LLM calls carry the run's request ID.
	events, err := repo.QueryLLMEvents(ctx, store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 2)
	for _, e := range events {
		assert.Equal(t, runs[0].RequestID, e.RequestID)
		assert.Equal(t, Purpose, e.Purpose)
		assert.Equal(t, "mock", e.Provider)
	}
}

func TestEventRecorder_Failure(t *testing.T) {
	s, err := store.Open("file:mcqgen_recorder_failure?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	rec := NewEventRecorder(s.EventRepo(), nil)
	rec.RecordRun(context.Background(), RunSummary{
		RequestID:      "r",
		RequestedCount: 5,
		MaxAttempts:    1,
		Attempts:       1,
		Err:            &ErrGenerationFailed{Attempts: 1, Err: &ErrOptionCount{Index: 2, Count: 3}},
		Latency:        1500 * time.Millisecond,
	})

	runs, err := s.EventRepo().QueryGenerationRuns(context.Background(), store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.False(t, runs[0].Success)
	assert.Equal(t, "option_count", runs[0].ErrorKind)
	assert.Contains(t, runs[0].ErrorMessage, "question 2 must have exactly 4 options")
	assert.Equal(t, int64(1500), runs[0].LatencyMs)
}
