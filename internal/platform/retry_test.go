package platform

import (
	"context"
	"errors"
	"testing"
	"time"
)

var errTransient = errors.New("transient")

func always(error) bool { return true }

func countingSleep(n *int) func(context.Context, time.Duration) error {
	return func(context.Context, time.Duration) error {
		*n++
		return nil
	}
}

func TestRetry_successFirstAttempt(t *testing.T) {
	calls, sleeps := 0, 0
	err := Retry(context.Background(), RetryPolicy{Attempts: 3, Retryable: always, Sleep: countingSleep(&sleeps)}, func(int) error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if calls != 1 || sleeps != 0 {
		t.Fatalf("calls = %d, sleeps = %d, want 1, 0", calls, sleeps)
	}
}

func TestRetry_successAfterRetries(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), RetryPolicy{Attempts: 3, Delay: time.Millisecond, Retryable: always}, func(int) error {
		calls++
		if calls < 3 {
			return errTransient
		}
		return nil
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected 3 calls, got %d", calls)
	}
}

func TestRetry_allAttemptsFail(t *testing.T) {
	calls, sleeps := 0, 0
	err := Retry(context.Background(), RetryPolicy{Attempts: 3, Retryable: always, Sleep: countingSleep(&sleeps)}, func(int) error {
		calls++
		return errTransient
	})
	if !errors.Is(err, errTransient) {
		t.Fatalf("expected transient error, got %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected 3 calls, got %d", calls)
	}
	if sleeps != 2 {
		t.Fatalf("expected 2 sleeps, got %d", sleeps)
	}
}

func TestRetry_nonRetryableShortCircuits(t *testing.T) {
	fatal := errors.New("connection reset")
	calls, sleeps := 0, 0
	p := RetryPolicy{
		Attempts:  5,
		Retryable: func(err error) bool { return errors.Is(err, errTransient) },
		Sleep:     countingSleep(&sleeps),
	}
	err := Retry(context.Background(), p, func(int) error {
		calls++
		return fatal
	})
	if !errors.Is(err, fatal) {
		t.Fatalf("expected fatal error, got %v", err)
	}
	if calls != 1 || sleeps != 0 {
		t.Fatalf("calls = %d, sleeps = %d, want 1, 0", calls, sleeps)
	}
}

func TestRetry_nilRetryableNeverRetries(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), RetryPolicy{Attempts: 4}, func(int) error {
		calls++
		return errTransient
	})
	if !errors.Is(err, errTransient) {
		t.Fatalf("expected transient error, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
}

func TestRetry_attemptNumbers(t *testing.T) {
	var seen []int
	_ = Retry(context.Background(), RetryPolicy{Attempts: 3, Retryable: always, Sleep: countingSleep(new(int))}, func(attempt int) error {
		seen = append(seen, attempt)
		return errTransient
	})
	if len(seen) != 3 || seen[0] != 1 || seen[2] != 3 {
		t.Fatalf("attempts = %v, want [1 2 3]", seen)
	}
}

func TestRetry_invalidAttempts(t *testing.T) {
	for _, n := range []int{0, -1} {
		calls := 0
		err := Retry(context.Background(), RetryPolicy{Attempts: n}, func(int) error {
			calls++
			return nil
		})
		if !errors.Is(err, ErrInvalidAttempts) {
			t.Fatalf("attempts=%d: expected ErrInvalidAttempts, got %v", n, err)
		}
		if calls != 0 {
			t.Fatalf("attempts=%d: fn called %d times", n, calls)
		}
	}
}

func TestRetry_contextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := Retry(ctx, RetryPolicy{Attempts: 5, Delay: 100 * time.Millisecond, Retryable: always}, func(int) error {
		calls++
		if calls == 1 {
			cancel() // Cancel before retry wait.
		}
		return errTransient
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected 1 call before cancellation, got %d", calls)
	}
}

func TestRetry_fixedDelay(t *testing.T) {
	delay := 10 * time.Millisecond
	timestamps := make([]time.Time, 0, 3)

	_ = Retry(context.Background(), RetryPolicy{Attempts: 3, Delay: delay, Retryable: always}, func(int) error {
		timestamps = append(timestamps, time.Now())
		return errTransient
	})

	for i := 1; i < len(timestamps); i++ {
		gap := timestamps[i].Sub(timestamps[i-1])
		if gap < delay/2 {
			t.Errorf("gap %d: %v < expected min %v", i, gap, delay/2)
		}
	}
}
