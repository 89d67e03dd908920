package services

import (
	"context"
	"errors"
	"time"

	"campuscert/internal/domain"
)

const (
	storageAttempts     = 3
	storageRetryBackoff = 100 * time.Millisecond
)

// withStorageRetry runs fn under the given per-attempt timeout and retries
// only when it fails with ErrStorageUnavailable, backing off exponentially
// between attempts. Retrying is safe because every write path is idempotent
// by natural key: a write that actually landed surfaces as AlreadyRecorded/
// AlreadyIssued on the retry, never as a duplicate.
func withStorageRetry(ctx context.Context, timeout time.Duration, fn func(context.Context) error) error {
	backoff := storageRetryBackoff
	var err error
	for attempt := 0; attempt < storageAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
			backoff *= 2
		}

		attemptCtx := ctx
		if timeout > 0 {
			var cancel context.CancelFunc
			attemptCtx, cancel = context.WithTimeout(ctx, timeout)
			err = fn(attemptCtx)
			cancel()
		} else {
			err = fn(attemptCtx)
		}

		if err == nil || !errors.Is(err, domain.ErrStorageUnavailable) {
			return err
		}
	}
	return err
}
