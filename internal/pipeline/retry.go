package pipeline

import (
	"context"
	"fmt"
	"math"
	"time"

	"ocr-batch-pipeline/internal/model"
	"ocr-batch-pipeline/internal/recognize"
	"ocr-batch-pipeline/pkg/utils"
)

// RetryPolicy wraps a single WorkItem's recognition call, re-invoking it
// with backoff until it succeeds or retries are exhausted. Rate-limited
// failures get amplified backoff; classification never decides whether a
// retry happens, only how long it waits.
type RetryPolicy struct {
	MaxRetries          int
	BaseDelay           time.Duration
	MaxDelay            time.Duration
	RateLimitMultiplier float64
	Exponential         bool

	// sleep is replaceable in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewRetryPolicy builds a policy from the run spec.
func NewRetryPolicy(spec model.RetrySpec) *RetryPolicy {
	multiplier := spec.RateLimitMultiplier
	if multiplier <= 0 {
		multiplier = 1
	}
	return &RetryPolicy{
		MaxRetries:          spec.MaxRetries,
		BaseDelay:           utils.ParseDuration(spec.BaseRetryDelay, time.Second),
		MaxDelay:            utils.ParseDuration(spec.MaxRetryDelay, 30*time.Second),
		RateLimitMultiplier: multiplier,
		Exponential:         spec.ExponentialBackoff,
		sleep:               sleepCtx,
	}
}

// BackoffDelay computes the wait before the retry following the given
// zero-based attempt, clamped to MaxDelay.
func (p *RetryPolicy) BackoffDelay(attempt int, rateLimited bool) time.Duration {
	delay := float64(p.BaseDelay)
	if rateLimited {
		delay *= p.RateLimitMultiplier
	}
	if p.Exponential {
		delay *= math.Pow(2, float64(attempt))
	}
	d := time.Duration(delay)
	if d > p.MaxDelay {
		d = p.MaxDelay
	}
	return d
}

// Execute runs attemptFn for the item, retrying on failure up to MaxRetries.
// The item's Attempt counter is incremented once per retry and never exceeds
// MaxRetries. The backoff wait blocks only this item's own retry path.
func (p *RetryPolicy) Execute(ctx context.Context, item *model.WorkItem, attemptFn func(ctx context.Context) error) error {
	for {
		err := attemptFn(ctx)
		if err == nil {
			return nil
		}

		if item.Attempt >= p.MaxRetries {
			return fmt.Errorf("failed after %d attempts: %w", item.Attempt+1, err)
		}

		delay := p.BackoffDelay(item.Attempt, recognize.IsRateLimited(err))
		fmt.Printf("🔄 Retry %d/%d for %s in %v: %v\n",
			item.Attempt+1, p.MaxRetries, item.InputPath, delay, err)
		if sleepErr := p.sleep(ctx, delay); sleepErr != nil {
			return fmt.Errorf("retry wait aborted: %w", err)
		}
		item.Attempt++
	}
}

// Classify derives the immutable error record for a terminal failure.
func Classify(err error) *model.ErrorInfo {
	if err == nil {
		return nil
	}
	return &model.ErrorInfo{
		Message:       err.Error(),
		IsRateLimited: recognize.IsRateLimited(err),
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
