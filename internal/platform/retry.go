package platform

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// ErrInvalidAttempts is returned when a retry policy asks for fewer than one attempt.
var ErrInvalidAttempts = errors.New("attempts must be at least 1")

// RetryPolicy describes a bounded retry with a fixed delay between attempts.
type RetryPolicy struct {
	Attempts  int
	Delay     time.Duration
	Retryable func(error) bool

	// Sleep waits between attempts. Nil means a context-aware timer.
	Sleep func(ctx context.Context, d time.Duration) error
}

// Retry calls fn up to p.Attempts times. Only errors accepted by p.Retryable
// are retried; any other error is returned at once. There is no wait after
// the last attempt, so n attempts sleep n-1 times.
func Retry(ctx context.Context, p RetryPolicy, fn func(attempt int) error) error {
	if p.Attempts < 1 {
		return ErrInvalidAttempts
	}
	sleep := p.Sleep
	if sleep == nil {
		sleep = wait
	}

	var lastErr error
	for attempt := 1; attempt <= p.Attempts; attempt++ {
		lastErr = fn(attempt)
		if lastErr == nil {
			return nil
		}
		if p.Retryable == nil || !p.Retryable(lastErr) {
			return lastErr
		}
		if attempt == p.Attempts {
			break
		}

		slog.Warn("retry attempt failed",
			"component", "platform",
			"operation", "retry",
			"attempt", attempt,
			"max_attempts", p.Attempts,
			"error", lastErr,
		)

		if err := sleep(ctx, p.Delay); err != nil {
			return err
		}
	}
	return lastErr
}

func wait(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
