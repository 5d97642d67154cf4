// Package inference drives a vision-language backend: it tracks whether the
// backend is ready, serializes calls to it and bounds each call in time.
package inference

import (
	"context"
	"time"

	"github.com/JohnSili/multimodal-demo/pkg/models"
	"github.com/JohnSili/multimodal-demo/pkg/prompting"
)

// Engine is a model backend. Implementations need not be safe for concurrent
// use; Runner never calls Complete concurrently.
type Engine interface {
	// Name identifies the backend in logs and health output.
	Name() string
	// Load prepares the backend, typically by checking that the configured
	// model is reachable. It is retried until it succeeds.
	Load(ctx context.Context) error
	// Complete returns the raw generated text for the prompt and image.
	Complete(ctx context.Context, spec prompting.Spec, img models.Image) (models.Completion, error)
}

type timeoutKey struct{}

// WithTimeout overrides the runner's default per-call timeout for calls made
// with the returned context.
func WithTimeout(ctx context.Context, d time.Duration) context.Context {
	return context.WithValue(ctx, timeoutKey{}, d)
}

func timeoutFrom(ctx context.Context) (time.Duration, bool) {
	d, ok := ctx.Value(timeoutKey{}).(time.Duration)
	return d, ok && d > 0
}
