package notification_test

import (
	"testing"
	"time"

	"dentallab/internal/core/domain/model/kernel"
	"dentallab/internal/core/domain/model/notification"
	"dentallab/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNotification(t *testing.T) {
	t.Run("valid notification starts unsent", func(t *testing.T) {
		recipient := kernel.NewUUID()
		orderID := kernel.NewUUID()

		n, err := notification.NewNotification(
			kernel.NewUUID(), recipient, orderID,
			"Order status changed", "Order moved to InProgress", "/orders/123",
		)

		require.NoError(t, err)
		require.NoError(t, n.Validate())
		assert.Equal(t, recipient, n.RecipientID())
		assert.Equal(t, orderID, n.OrderID())
		assert.False(t, n.IsSent())
		assert.Nil(t, n.SentAt())
	})

	t.Run("missing title", func(t *testing.T) {
		_, err := notification.NewNotification(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			"", "body", "",
		)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestNotification_MarkSent(t *testing.T) {
	n, err := notification.NewNotification(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		"New note", "Doctor added a note", "/orders/123",
	)
	require.NoError(t, err)

	sentAt := time.Now()
	require.NoError(t, n.MarkSent(sentAt))

	assert.True(t, n.IsSent())
	require.NotNil(t, n.SentAt())
	assert.Equal(t, sentAt.UTC(), *n.SentAt())

	require.ErrorIs(t, n.MarkSent(time.Now()), errs.ErrValueIsInvalid)
}
