// Package retry implements the bounded fixed-delay retry policy used for
// selector calls. The policy is deliberately simple: a fixed number of
// attempts with a constant pause between them, aborted early only by context
// cancellation.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Policy bounds how often an operation is attempted.
type Policy struct {
	// MaxAttempts is the total number of attempts, including the first.
	// Values below 1 are treated as 1.
	MaxAttempts int
	// Delay is the pause between consecutive attempts.
	Delay time.Duration
	// Sleeper overrides how the pause is performed. Tests inject a recorder
	// here; nil uses a context-aware timer.
	Sleeper func(time.Duration)
}

func (p Policy) attempts() int {
	if p.MaxAttempts < 1 {
		return 1
	}
	return p.MaxAttempts
}

// Do runs fn until it succeeds or the policy is exhausted. The last error is
// returned wrapped with the attempt count. Context cancellation stops the
// loop immediately and returns the context error.
func Do(ctx context.Context, policy Policy, fn func(context.Context) error) error {
	attempts := policy.attempts()
	var lastErr error

	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx != nil && ctx.Err() != nil {
			return ctx.Err()
		}
		err := fn(ctx)
		if err == nil {
			return nil
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		lastErr = err
		if attempt == attempts {
			break
		}
		if err := sleep(ctx, policy); err != nil {
			return err
		}
	}

	if attempts == 1 {
		return lastErr
	}
	return fmt.Errorf("failed after %d attempts: %w", attempts, lastErr)
}

func sleep(ctx context.Context, policy Policy) error {
	if policy.Delay <= 0 {
		return nil
	}
	if policy.Sleeper != nil {
		policy.Sleeper(policy.Delay)
		if ctx != nil && ctx.Err() != nil {
			return ctx.Err()
		}
		return nil
	}
	timer := time.NewTimer(policy.Delay)
	defer timer.Stop()
	if ctx == nil {
		<-timer.C
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
