// Package retry provides a shared retry policy for transport collaborators.
package retry

import (
	"context"
	"log/slog"
	"time"
)

// Policy retries an operation with linearly increasing backoff. The same
// policy instance is shared by every transport call site so retry behavior
// stays uniform across collaborators.
type Policy struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int
	// BaseDelay is multiplied by the attempt number for the backoff wait
	// (attempt 1 waits BaseDelay, attempt 2 waits 2×BaseDelay, ...).
	BaseDelay time.Duration
	// Retryable decides whether an error is worth retrying. A nil predicate
	// retries nothing.
	Retryable func(error) bool

	// sleep is swappable in tests.
	sleep func(context.Context, time.Duration) error
}

// New creates a Policy with the given attempt cap, base delay and predicate.
func New(maxAttempts int, baseDelay time.Duration, retryable func(error) bool) Policy {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return Policy{
		MaxAttempts: maxAttempts,
		BaseDelay:   baseDelay,
		Retryable:   retryable,
	}
}

// Do runs op, retrying per the policy. It returns the last error when all
// attempts are exhausted. The context aborts the backoff wait but never an
// in-flight op.
func (p Policy) Do(ctx context.Context, op func() error) error {
	sleep := p.sleep
	if sleep == nil {
		sleep = contextSleep
	}

	var lastErr error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if p.Retryable == nil || !p.Retryable(lastErr) || attempt == p.MaxAttempts {
			return lastErr
		}

		delay := time.Duration(attempt) * p.BaseDelay
		slog.Debug("Retrying after failure", "attempt", attempt, "delay", delay, "error", lastErr)
		if err := sleep(ctx, delay); err != nil {
			return lastErr
		}
	}
	return lastErr
}

func contextSleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
