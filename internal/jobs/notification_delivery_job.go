package jobs

import (
	"context"
	"log/slog"

	"dentallab/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// notificationBatchSize caps how many records one delivery run drains.
const notificationBatchSize = 100

// NotificationDeliveryJob manages the scheduled draining of unsent
// notifications to the push transport. Runs every ten seconds.
type NotificationDeliveryJob struct {
	handler commands.DeliverNotificationsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewNotificationDeliveryJob creates a new job for notification delivery.
// Uses DeliverNotificationsCommandHandler to drain pending records.
func NewNotificationDeliveryJob(handler commands.DeliverNotificationsCommandHandler, logger *slog.Logger) *NotificationDeliveryJob {
	return &NotificationDeliveryJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "notification_delivery_job"),
	}
}

// Start begins the notification delivery job to run every ten seconds.
func (j *NotificationDeliveryJob) Start() error {
	_, err := j.cron.AddFunc("*/10 * * * * *", func() {
		ctx := context.Background()

		cmd, err := commands.NewDeliverNotificationsCommand(notificationBatchSize)
		if err != nil {
			j.logger.ErrorContext(ctx, "Notification delivery command invalid", "error", err)
			return
		}

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Notification delivery job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Notification delivery job started (running every ten seconds)")
	return nil
}

// Stop stops the notification delivery job.
func (j *NotificationDeliveryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Notification delivery job stopped")
}
