// Package retry provides a bounded retry policy for fallible operations.
//
// The policy retries only transient infrastructure failures (errors wrapping
// errs.ErrOperationFailed). Business outcomes like conflicts, guard violations,
// validation and authorization errors are surfaced immediately: retrying them
// cannot change the result.
package retry

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"dentallab/internal/pkg/errs"
)

// Policy describes a bounded exponential backoff with jitter.
type Policy struct {
	// MaxAttempts is the total number of attempts, including the first one.
	MaxAttempts int

	// BaseDelay is the delay before the first retry.
	BaseDelay time.Duration

	// Multiplier scales the delay after each attempt.
	Multiplier float64

	// MaxDelay caps the delay between attempts.
	MaxDelay time.Duration
}

// DefaultPolicy matches the platform-wide retry contract:
// 3 attempts, 1s base delay, doubling, capped at 10s.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: 3,
		BaseDelay:   time.Second,
		Multiplier:  2,
		MaxDelay:    10 * time.Second,
	}
}

// IsRetryable reports whether err is a transient infrastructure failure.
// Only errors wrapping errs.ErrOperationFailed qualify.
func IsRetryable(err error) bool {
	return errors.Is(err, errs.ErrOperationFailed)
}

// Do runs op, retrying per the policy while op returns a retryable error.
// The last error is returned once attempts are exhausted or a non-retryable
// error occurs. Context cancellation aborts the wait between attempts.
func (p Policy) Do(ctx context.Context, op func(ctx context.Context) error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	delay := p.BaseDelay
	var err error

	for attempt := 1; ; attempt++ {
		err = op(ctx)
		if err == nil || !IsRetryable(err) || attempt >= attempts {
			return err
		}

		select {
		case <-ctx.Done():
			return errs.NewOperationFailedError("retry aborted", ctx.Err())
		case <-time.After(jitter(delay)):
		}

		delay = time.Duration(float64(delay) * p.Multiplier)
		if p.MaxDelay > 0 && delay > p.MaxDelay {
			delay = p.MaxDelay
		}
	}
}

// jitter spreads the delay uniformly over [delay/2, delay) to avoid
// synchronized retries from concurrent callers.
func jitter(delay time.Duration) time.Duration {
	if delay <= 0 {
		return 0
	}
	half := delay / 2
	return half + time.Duration(rand.Int63n(int64(half)+1))
}
