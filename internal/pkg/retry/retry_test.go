package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"dentallab/internal/pkg/errs"
	"dentallab/internal/pkg/retry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastPolicy() retry.Policy {
	return retry.Policy{
		MaxAttempts: 3,
		BaseDelay:   time.Millisecond,
		Multiplier:  2,
		MaxDelay:    5 * time.Millisecond,
	}
}

func TestDo_SucceedsFirstAttempt(t *testing.T) {
	calls := 0
	err := fastPolicy().Do(t.Context(), func(_ context.Context) error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestDo_RetriesTransientFailures(t *testing.T) {
	calls := 0
	err := fastPolicy().Do(t.Context(), func(_ context.Context) error {
		calls++
		if calls < 3 {
			return errs.NewOperationFailedError("connect", errors.New("connection refused"))
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDo_ExhaustsAttempts(t *testing.T) {
	calls := 0
	err := fastPolicy().Do(t.Context(), func(_ context.Context) error {
		calls++
		return errs.NewOperationFailedError("commit", errors.New("timeout"))
	})

	require.ErrorIs(t, err, errs.ErrOperationFailed)
	assert.Equal(t, 3, calls)
}

func TestDo_NeverRetriesBusinessOutcomes(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"conflict", errs.NewConflictError(errs.ConflictAlreadyAssigned, "")},
		{"guard violation", errs.NewGuardViolationError(errs.GuardQCIncomplete, "")},
		{"validation", errs.NewValueIsRequiredError("doctorId")},
		{"authorization", errs.NewAuthorizationError("lab-1", "accept application")},
		{"not found", errs.NewObjectNotFoundError("order", "o-1")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := fastPolicy().Do(t.Context(), func(_ context.Context) error {
				calls++
				return tt.err
			})

			require.Error(t, err)
			assert.Equal(t, 1, calls, "business outcomes must not be retried")
			assert.False(t, retry.IsRetryable(err))
		})
	}
}

func TestDo_ContextCancellationAbortsWait(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())

	policy := retry.Policy{
		MaxAttempts: 3,
		BaseDelay:   time.Minute,
		Multiplier:  2,
		MaxDelay:    time.Minute,
	}

	calls := 0
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	err := policy.Do(ctx, func(_ context.Context) error {
		calls++
		return errs.NewOperationFailedError("fetch", errors.New("unavailable"))
	})

	require.ErrorIs(t, err, errs.ErrOperationFailed)
	assert.Equal(t, 1, calls)
}

func TestDefaultPolicy(t *testing.T) {
	p := retry.DefaultPolicy()

	assert.Equal(t, 3, p.MaxAttempts)
	assert.Equal(t, time.Second, p.BaseDelay)
	assert.InEpsilon(t, 2.0, p.Multiplier, 0.001)
	assert.Equal(t, 10*time.Second, p.MaxDelay)
}
