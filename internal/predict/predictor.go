// Package predict provides prediction providers for unresolved messages and
// the retry machinery around them. Providers never surface errors: every
// failure is normalized into an unsuccessful Prediction so the pipeline can
// degrade instead of erroring.
package predict

import (
	"context"
	"errors"
	"time"

	"github.com/capitalize-ai/response-engine/internal/model"
)

// Defaults for the HTTP predictor's two retry layers: an application-level
// retry around whole attempts, and a transport-level retry around each
// connection.
const (
	DefaultConnectTimeout = 10 * time.Second
	DefaultTimeout        = 15 * time.Second

	DefaultAttempts     = 2
	DefaultAttemptDelay = 1 * time.Second

	DefaultTransportAttempts = 2
	DefaultTransportDelay    = 100 * time.Millisecond
)

// Predictor is the interface for prediction providers.
type Predictor interface {
	// Predict answers a question. It never returns an error; failed or
	// exhausted attempts come back as an unsuccessful Prediction.
	Predict(ctx context.Context, question string) *model.Prediction

	// Name returns the provider name.
	Name() string
}

// RetryPolicy is a fixed-delay retry loop shared by both retry layers.
type RetryPolicy struct {
	MaxAttempts int
	Delay       time.Duration
}

// Do runs fn until it succeeds or attempts are exhausted, sleeping Delay
// between attempts. The context cancels the wait.
func (p RetryPolicy) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	attempts := p.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 && p.Delay > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(p.Delay):
			}
		}

		if err := fn(ctx); err != nil {
			lastErr = err
			continue
		}
		return nil
	}

	if lastErr == nil {
		lastErr = errors.New("retry attempts exhausted")
	}
	return lastErr
}
