package jobs

import (
	"context"
	"log/slog"

	"dentallab/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// SlaSweepJob manages the scheduled delivery SLA sweep.
// Runs every hour to find overdue unconfirmed deliveries and apply SLA billing.
type SlaSweepJob struct {
	handler commands.SweepDeliverySlaCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewSlaSweepJob creates a new job for the delivery SLA sweep.
// Uses SweepDeliverySlaCommandHandler to process overdue deliveries every hour.
func NewSlaSweepJob(handler commands.SweepDeliverySlaCommandHandler, logger *slog.Logger) *SlaSweepJob {
	return &SlaSweepJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "sla_sweep_job"),
	}
}

// Start begins the SLA sweep job to run every hour.
func (j *SlaSweepJob) Start() error {
	_, err := j.cron.AddFunc("0 0 * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewSweepDeliverySlaCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "SLA sweep job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "SLA sweep job started (running every hour)")
	return nil
}

// Stop stops the SLA sweep job.
func (j *SlaSweepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "SLA sweep job stopped")
}
