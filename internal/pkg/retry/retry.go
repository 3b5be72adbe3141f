// Package retry wraps record-store calls that may fail transiently.
package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Do runs op with exponential backoff up to maxAttempts total tries.
// The last error is returned once attempts are exhausted; context
// cancellation stops retrying immediately.
func Do(ctx context.Context, maxAttempts int, op func() error) error {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 200 * time.Millisecond
	policy.MaxInterval = 2 * time.Second

	return backoff.Retry(op, backoff.WithContext(
		backoff.WithMaxRetries(policy, uint64(maxAttempts-1)), ctx))
}

// Permanent marks err so Do stops retrying it. Used for rejections
// that retrying cannot fix (ordering and security outcomes).
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return backoff.Permanent(err)
}
