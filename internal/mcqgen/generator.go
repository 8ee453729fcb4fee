package mcqgen

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/docquiz/internal/llm"
)

// Generator runs the MCQ pipeline, retrying whole attempts on failure.
// It holds no per-run state and is safe for concurrent use.
type Generator struct {
	completer Completer
	config    Config
	logger    *zap.Logger

	// Sleep waits out the cooldown between attempts. It returns early with
	// ctx.Err() when ctx is done.
	Sleep func(ctx context.Context, d time.Duration) error

	// OnTransition, if set, observes every state change of every run.
	OnTransition func(Transition)

	// Recorder, if set, receives a summary of every finished run.
	Recorder RunRecorder
}

// New creates a Generator. A nil logger disables logging.
func New(completer Completer, cfg Config, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		completer: completer,
		config:    cfg,
		logger:    logger,
		Sleep:     sleepContext,
	}
}

// Config returns the generator's configuration.
func (g *Generator) Config() Config {
	return g.config
}

// Generate produces exactly Interpret(instruction).Count validated
// questions about sourceText. Each attempt issues a fresh completion; after
// a failed attempt the generator waits Config.Cooldown and tries again, up
// to maxAttempts in total. maxAttempts < 1 is treated as 1.
//
// On exhaustion the error is *ErrGenerationFailed wrapping the last
// attempt's error.
func (g *Generator) Generate(ctx context.Context, sourceText, instruction string, maxAttempts int) (Set, error) {
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	runID := llm.RequestIDFrom(ctx)
	if runID == "" {
		runID = uuid.NewString()
		ctx = llm.WithRequestID(ctx, runID)
	}

	params := Interpret(instruction)
	r := &run{
		g:           g,
		logger:      g.logger.With(zap.String("request_id", runID)),
		prompt:      buildPrompt(params, sourceText, g.config.SourceCharLimit),
		count:       params.Count,
		maxAttempts: maxAttempts,
		state:       StateIdle,
	}

	start := time.Now()
	set, err := r.drive(ctx)

	if g.Recorder != nil {
		g.Recorder.RecordRun(ctx, RunSummary{
			RequestID:      runID,
			RequestedCount: params.Count,
			MaxAttempts:    maxAttempts,
			Attempts:       r.attempt,
			Err:            err,
			Latency:        time.Since(start),
		})
	}
	return set, err
}

// run is the state of one Generate call.
type run struct {
	g      *Generator
	logger *zap.Logger

	prompt      string
	count       int
	maxAttempts int

	state   State
	attempt int
	raw     string
	payload string
	set     Set
	lastErr error
}

// drive steps the state machine until it reaches a terminal state.
func (r *run) drive(ctx context.Context) (Set, error) {
	for {
		switch r.state {
		case StateIdle:
			r.attempt = 1
			r.enter(StateGenerating, nil)

		case StateGenerating:
			raw, err := r.g.completer.Complete(ctx, r.prompt)
			if err != nil {
				var client *ErrGenerationClient
				if !errors.As(err, &client) {
					err = &ErrGenerationClient{Err: err}
				}
				r.fail(err)
				continue
			}
			r.raw = raw
			r.enter(StateExtracting, nil)

		case StateExtracting:
			payload, err := ExtractPayload(r.raw)
			r.raw = ""
			if err != nil {
				r.fail(err)
				continue
			}
			r.payload = payload
			r.enter(StateValidating, nil)

		case StateValidating:
			set, err := Validate(r.payload, r.count)
			r.payload = ""
			if err != nil {
				r.fail(err)
				continue
			}
			r.set = set
			r.enter(StateSucceeded, nil)

		case StateFailed:
			if r.attempt >= r.maxAttempts || ctx.Err() != nil {
				r.enter(StateExhausted, r.lastErr)
				continue
			}
			if err := r.g.Sleep(ctx, r.g.config.Cooldown); err != nil {
				r.enter(StateExhausted, r.lastErr)
				continue
			}
			r.attempt++
			r.enter(StateGenerating, nil)

		case StateSucceeded:
			r.logger.Debug("mcq generation succeeded",
				zap.Int("attempt", r.attempt),
				zap.Int("count", len(r.set)),
			)
			return r.set, nil

		case StateExhausted:
			r.logger.Warn("mcq generation exhausted",
				zap.Int("attempts", r.attempt),
				zap.Int("max_attempts", r.maxAttempts),
				zap.Error(r.lastErr),
			)
			return nil, &ErrGenerationFailed{Attempts: r.attempt, Err: r.lastErr}
		}
	}
}

// fail records err as the outcome of the current attempt.
func (r *run) fail(err error) {
	r.logger.Warn("mcq generation attempt failed",
		zap.Int("attempt", r.attempt),
		zap.Int("max_attempts", r.maxAttempts),
		zap.Stringer("state", r.state),
		zap.String("kind", ErrorKind(err)),
		zap.Error(err),
	)
	r.lastErr = err
	r.enter(StateFailed, err)
}

func (r *run) enter(to State, err error) {
	t := Transition{Attempt: r.attempt, From: r.state, To: to, Err: err}
	r.state = to
	if r.g.OnTransition != nil {
		r.g.OnTransition(t)
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
