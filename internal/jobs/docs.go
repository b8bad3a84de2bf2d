// Package jobs provides scheduled background tasks for the lab platform.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required by the work order service.
//
// # Available Jobs
//
// 1. SlaSweepJob - Runs every hour to apply SLA billing to overdue unconfirmed deliveries
// 2. NotificationDeliveryJob - Runs every ten seconds to drain unsent notifications to the push transport
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(sweepHandler, deliverHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - The SLA sweep is idempotent: line item ids are deterministic, so re-running
//   a sweep over the same orders never duplicates charges
// - The delivery job treats push failures as transient and leaves the record
//   unsent for the next run
// - Failed job starts will stop any already running jobs
package jobs
