package inference

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"github.com/JohnSili/multimodal-demo/pkg/metrics"
	"github.com/JohnSili/multimodal-demo/pkg/models"
	"github.com/JohnSili/multimodal-demo/pkg/prompting"
)

var (
	// ErrTimeout is returned when a call does not finish within its deadline.
	ErrTimeout = errors.New("inference timed out")
	// ErrCanceled is returned when the caller goes away before the call finishes.
	ErrCanceled = errors.New("inference canceled")
)

// Options tune a Runner. Zero values select the defaults.
type Options struct {
	// Device is reported by health checks only.
	Device string
	// Timeout bounds a single call, including the wait for the backend and
	// for a pending load. It also bounds each background load attempt.
	Timeout time.Duration
	// LoadRetry is the pause between failed background loads.
	LoadRetry time.Duration
	// MaxNewTokens overrides the prompt's token budget when positive.
	MaxNewTokens int
	Registry     *metrics.Registry
}

const (
	defaultTimeout   = 120 * time.Second
	defaultLoadRetry = 15 * time.Second
)

// Runner owns an Engine. It is constructed once and shared by all requests.
type Runner struct {
	engine Engine
	opts   Options

	// one call at a time; the backend is not assumed re-entrant
	sem *semaphore.Weighted

	// held for the whole of an engine load, even one its caller gave up on
	loadSem *semaphore.Weighted
	loaded  atomic.Bool
}

func NewRunner(engine Engine, opts Options) *Runner {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.LoadRetry <= 0 {
		opts.LoadRetry = defaultLoadRetry
	}
	if opts.Device == "" {
		opts.Device = "cpu"
	}
	return &Runner{
		engine:  engine,
		opts:    opts,
		sem:     semaphore.NewWeighted(1),
		loadSem: semaphore.NewWeighted(1),
	}
}

// Ready reports whether the engine has loaded.
func (r *Runner) Ready() bool { return r.loaded.Load() }

func (r *Runner) Device() string { return r.opts.Device }

func (r *Runner) Backend() string { return r.engine.Name() }

// Load loads the engine once. Concurrent callers wait for the same attempt,
// but never past their own ctx.
func (r *Runner) Load(ctx context.Context) error {
	if r.loaded.Load() {
		return nil
	}
	if err := r.loadSem.Acquire(ctx, 1); err != nil {
		return err
	}
	if r.loaded.Load() {
		r.loadSem.Release(1)
		return nil
	}

	start := time.Now()
	done := make(chan error, 1)
	go func() {
		defer r.loadSem.Release(1)
		err := r.engine.Load(ctx)
		if err == nil {
			r.loaded.Store(true)
			log.Ctx(ctx).Info().
				Str("backend", r.engine.Name()).
				Str("device", r.opts.Device).
				Dur("duration", time.Since(start)).
				Msg("model loaded")
		}
		done <- err
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		if err != nil {
			return fmt.Errorf("load %s backend: %w", r.engine.Name(), err)
		}
		return nil
	}
}

// Start loads the engine in the background, retrying until it succeeds or ctx
// ends. Each attempt is bounded by Options.Timeout. It always returns nil so
// it can run in an errgroup without taking the server down.
func (r *Runner) Start(ctx context.Context) error {
	for {
		attemptCtx, cancel := context.WithTimeout(ctx, r.opts.Timeout)
		err := r.Load(attemptCtx)
		cancel()
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return nil
		}
		log.Ctx(ctx).Warn().Err(err).Dur("retry_in", r.opts.LoadRetry).Msg("model load failed")

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(r.opts.LoadRetry):
		}
	}
}

type outcome struct {
	completion models.Completion
	err        error
}

// Infer runs one generation and returns the raw, unsanitized text. A runner
// that has not loaded yet tries to load first. Errors are never retried.
func (r *Runner) Infer(ctx context.Context, spec prompting.Spec, img models.Image) (string, error) {
	timeout := r.opts.Timeout
	if d, ok := timeoutFrom(ctx); ok {
		timeout = d
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if r.opts.MaxNewTokens > 0 {
		spec.MaxNewTokens = r.opts.MaxNewTokens
	}

	logger := log.Ctx(ctx).With().Str("task", string(spec.Task)).Str("backend", r.engine.Name()).Logger()

	if err := r.Load(ctx); err != nil {
		if ctx.Err() != nil {
			return "", r.abandon(ctx, &logger, spec.Task, timeout, "waiting for the model to load")
		}
		r.count(ctx, spec.Task, "error")
		return "", err
	}

	if err := r.sem.Acquire(ctx, 1); err != nil {
		return "", r.abandon(ctx, &logger, spec.Task, timeout, "waiting for the backend")
	}

	start := time.Now()
	done := make(chan outcome, 1)
	go func() {
		// Released when the engine actually returns, so an abandoned call
		// still holds the backend.
		defer r.sem.Release(1)
		c, err := r.engine.Complete(ctx, spec, img)
		done <- outcome{completion: c, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", r.abandon(ctx, &logger, spec.Task, timeout, "running the model")
	case res := <-done:
		if res.err != nil {
			r.count(ctx, spec.Task, "error")
			logger.Error().Err(res.err).Dur("duration", time.Since(start)).Msg("inference failed")
			return "", res.err
		}
		r.count(ctx, spec.Task, "ok")
		logger.Info().
			Str("model", res.completion.Model).
			Str("finish_reason", res.completion.FinishReason).
			Int64("prompt_tokens", res.completion.PromptTokens).
			Int64("completion_tokens", res.completion.CompletionTokens).
			Dur("duration", time.Since(start)).
			Msg("inference completed")
		return res.completion.Text, nil
	}
}

// abandon reports a call whose ctx ended at stage, telling a client that
// went away apart from an expired deadline.
func (r *Runner) abandon(ctx context.Context, logger *zerolog.Logger, task prompting.Task, timeout time.Duration, stage string) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		r.count(ctx, task, "canceled")
		logger.Warn().Str("stage", stage).Msg("inference canceled")
		return fmt.Errorf("%w while %s", ErrCanceled, stage)
	}
	r.count(ctx, task, "timeout")
	logger.Error().Str("stage", stage).Dur("timeout", timeout).Msg("inference timed out")
	return fmt.Errorf("%w after %s while %s", ErrTimeout, timeout, stage)
}

func (r *Runner) count(ctx context.Context, task prompting.Task, status string) {
	r.opts.Registry.Inc(ctx, metrics.InferenceRequests, metrics.Labels{
		"task":   string(task),
		"status": status,
	}, 1)
}
