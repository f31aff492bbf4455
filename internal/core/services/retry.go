package services

import (
	"context"
	"errors"
	"time"

	"github.com/georgeperezsalinas/siscont-erp-sub002/internal/apperrors"
)

const lockRetryAttempts = 3

// withLockRetry re-runs fn a bounded number of times when the database
// reports a lock or serialization failure. Other errors return immediately.
func withLockRetry(ctx context.Context, fn func() error) error {
	var err error
	for attempt := 0; attempt < lockRetryAttempts; attempt++ {
		err = fn()
		if err == nil || !errors.Is(err, apperrors.ErrLockNotAvailable) {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt+1) * 25 * time.Millisecond):
		}
	}
	return err
}
