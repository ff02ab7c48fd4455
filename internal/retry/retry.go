// Package retry wraps explicitly opted-in operations with bounded
// exponential backoff. Nothing in the codebase retries implicitly.
package retry

import (
	"context"
	"math"
	"time"
)

// Do runs fn up to attempts times, sleeping backoff * 2^(attempt-1) between
// failures. It returns nil on the first success, the last error once the
// attempts are exhausted, or ctx.Err() if the context ends mid-wait.
func Do(ctx context.Context, attempts int, backoff time.Duration, fn func() error) error {
	if attempts < 1 {
		attempts = 1
	}
	var last error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := fn(); err == nil {
			return nil
		} else {
			last = err
		}
		if attempt == attempts {
			break
		}
		wait := time.Duration(float64(backoff) * math.Pow(2, float64(attempt-1)))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
	return last
}
