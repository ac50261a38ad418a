// Package jobs provides scheduled background tasks for the fulfillment system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for order fulfillment.
//
// # Available Jobs
//
// 1. OverdueOrderCheckJob - Runs hourly to detect active orders past their
// scheduled date that are neither delivered nor cancelled
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(getOverdueOrdersHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The overdue check uses the cron expression "0 0 * * * *" (seconds field
// enabled), firing at the top of every hour. Overdue detection is a reporting
// concern; it never mutates order state. Each overdue order is logged and
// announced through the order notifier so subscribed dashboards refresh.
//
// # Error Handling
//
// - Query failures are logged and retried on the next tick
// - Failed job starts surface through StartAll so the process can abort
package jobs
