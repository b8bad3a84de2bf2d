package commands_test

import (
	"testing"

	"dentallab/internal/core/application/usecases/commands"
	"dentallab/internal/core/domain/model/kernel"
	"dentallab/internal/core/domain/model/notification"
	"dentallab/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func unsentTestNotification(t *testing.T) *notification.Notification {
	t.Helper()

	orderID := kernel.NewUUID()
	n, err := notification.NewNotification(
		kernel.NewUUID(),
		kernel.NewUUID(),
		orderID,
		"Status updated",
		"Order moved to InProgress",
		"/orders/"+orderID.String(),
	)
	require.NoError(t, err)
	return n
}

func TestDeliverNotificationsCommandHandler_Handle_MarksPushedRecordsSent(t *testing.T) {
	ctx := t.Context()

	first := unsentTestNotification(t)
	second := unsentTestNotification(t)

	repo := new(MockNotificationRepository)
	transport := new(MockNotificationTransport)
	uow := new(MockUoW)

	uow.On("NotificationRepository").Return(repo).Once()
	repo.On("GetUnsent", ctx, 100).Return([]*notification.Notification{first, second}, nil).Once()
	transport.On("Push", ctx, first).Return(nil).Once()
	repo.On("Update", ctx, first).Return(nil).Once()
	transport.On("Push", ctx, second).Return(nil).Once()
	repo.On("Update", ctx, second).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, err := commands.NewDeliverNotificationsCommand(100)
	require.NoError(t, err)

	handler := commands.NewDeliverNotificationsCommandHandler(factory, transport)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.NotNil(t, first.SentAt())
	assert.NotNil(t, second.SentAt())
	repo.AssertExpectations(t)
	transport.AssertExpectations(t)
}

func TestDeliverNotificationsCommandHandler_Handle_FailedPushLeavesRecordUnsent(t *testing.T) {
	ctx := t.Context()

	failing := unsentTestNotification(t)
	delivered := unsentTestNotification(t)

	repo := new(MockNotificationRepository)
	transport := new(MockNotificationTransport)
	uow := new(MockUoW)

	uow.On("NotificationRepository").Return(repo).Once()
	repo.On("GetUnsent", ctx, 10).Return([]*notification.Notification{failing, delivered}, nil).Once()
	transport.On("Push", ctx, failing).Return(errs.NewValueIsInvalidError("recipient")).Once()
	transport.On("Push", ctx, delivered).Return(nil).Once()
	repo.On("Update", ctx, delivered).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, err := commands.NewDeliverNotificationsCommand(10)
	require.NoError(t, err)

	handler := commands.NewDeliverNotificationsCommandHandler(factory, transport)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Nil(t, failing.SentAt())
	assert.NotNil(t, delivered.SentAt())
	repo.AssertNotCalled(t, "Update", ctx, failing)
	transport.AssertExpectations(t)
}

func TestDeliverNotificationsCommandHandler_Handle_NothingPending_NoPushes(t *testing.T) {
	ctx := t.Context()

	repo := new(MockNotificationRepository)
	transport := new(MockNotificationTransport)
	uow := new(MockUoW)

	uow.On("NotificationRepository").Return(repo).Once()
	repo.On("GetUnsent", ctx, 100).Return([]*notification.Notification{}, nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, err := commands.NewDeliverNotificationsCommand(100)
	require.NoError(t, err)

	handler := commands.NewDeliverNotificationsCommandHandler(factory, transport)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	transport.AssertNotCalled(t, "Push", mock.Anything, mock.Anything)
}

func TestNewDeliverNotificationsCommand_NonPositiveLimit_ReturnsError(t *testing.T) {
	for _, limit := range []int{0, -5} {
		_, err := commands.NewDeliverNotificationsCommand(limit)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	}
}
