package jobs

import (
	"fmt"
	"log/slog"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	overdueOrderCheckJob *OverdueOrderCheckJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes handlers as dependencies to wire up the job execution.
func NewJobManager(
	getOverdueOrdersHandler queries.GetOverdueOrdersQueryHandler,
	notifier ports.OrderNotifier,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		overdueOrderCheckJob: NewOverdueOrderCheckJob(getOverdueOrdersHandler, notifier, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.overdueOrderCheckJob.Start(); err != nil {
		return fmt.Errorf("failed to start overdue order check job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.overdueOrderCheckJob.Stop()
}
