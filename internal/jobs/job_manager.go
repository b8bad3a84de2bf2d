package jobs

import (
	"fmt"
	"log/slog"

	"dentallab/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	slaSweepJob             *SlaSweepJob
	notificationDeliveryJob *NotificationDeliveryJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	sweepHandler commands.SweepDeliverySlaCommandHandler,
	deliverHandler commands.DeliverNotificationsCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		slaSweepJob:             NewSlaSweepJob(sweepHandler, logger),
		notificationDeliveryJob: NewNotificationDeliveryJob(deliverHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.slaSweepJob.Start(); err != nil {
		return fmt.Errorf("failed to start SLA sweep job: %w", err)
	}

	if err := jm.notificationDeliveryJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.slaSweepJob.Stop()
		return fmt.Errorf("failed to start notification delivery job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.notificationDeliveryJob.Stop()
	jm.slaSweepJob.Stop()
}
