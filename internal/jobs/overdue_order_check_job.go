package jobs

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// OverdueOrderCheckJob periodically scans for active orders whose scheduled
// date has passed without delivery or cancellation and reports them, so
// operations can chase late orders without polling the API.
type OverdueOrderCheckJob struct {
	handler  queries.GetOverdueOrdersQueryHandler
	notifier ports.OrderNotifier
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewOverdueOrderCheckJob creates a new job for detecting overdue orders.
func NewOverdueOrderCheckJob(
	handler queries.GetOverdueOrdersQueryHandler,
	notifier ports.OrderNotifier,
	logger *slog.Logger,
) *OverdueOrderCheckJob {
	return &OverdueOrderCheckJob{
		handler:  handler,
		notifier: notifier,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "overdue_order_check_job"),
	}
}

// Start begins the overdue check, running at the top of every hour.
func (j *OverdueOrderCheckJob) Start() error {
	_, err := j.cron.AddFunc("0 0 * * * *", j.run)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Overdue order check job started (running hourly)")
	return nil
}

// Stop stops the overdue check job.
func (j *OverdueOrderCheckJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Overdue order check job stopped")
}

func (j *OverdueOrderCheckJob) run() {
	ctx := context.Background()

	query, err := queries.NewGetOverdueOrdersQuery(time.Now())
	if err != nil {
		j.logger.ErrorContext(ctx, "Overdue order check failed to build query", "error", err)
		return
	}

	overdue, err := j.handler.Handle(ctx, query)
	if err != nil {
		j.logger.ErrorContext(ctx, "Overdue order check failed", "error", err)
		return
	}

	if len(overdue) == 0 {
		return
	}

	j.logger.WarnContext(ctx, "Overdue orders detected", "count", len(overdue))
	for _, o := range overdue {
		j.logger.WarnContext(ctx, "Order is overdue",
			"orderId", o.ID.String(),
			"trackingCode", o.TrackingCode,
			"status", o.Status,
			"scheduledDate", o.ScheduledDate,
		)
		// Nudges subscribed dashboards to refresh the late order.
		j.notifier.NotifyOrderUpdated(ctx, o.ID)
	}
}
