package probe

import (
	"context"
	"fmt"
	"time"
)

// RetryRunner re-runs Inner until it succeeds or Attempts are used up.
type RetryRunner struct {
	Inner    Runner
	Attempts int
	Backoff  time.Duration
}

func (r *RetryRunner) Run(ctx context.Context, address string, count int) (string, error) {
	attempts := r.Attempts
	if attempts < 1 {
		attempts = 1
	}
	var lastErr error
	for i := 0; i < attempts; i++ {
		out, err := r.Inner.Run(ctx, address, count)
		if err == nil {
			return out, nil
		}
		lastErr = err
		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(r.Backoff):
			}
		}
	}
	if attempts == 1 {
		return "", lastErr
	}
	return "", fmt.Errorf("after %d attempts: %w", attempts, lastErr)
}
