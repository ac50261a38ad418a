package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

// ScheduleOrderCommandHandler plans or replans an order's delivery date.
// Scheduling does not touch the status ledger; the date is an orthogonal fact
// the overdue check later compares against.
type ScheduleOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.OrderNotifier
}

// NewScheduleOrderCommandHandler creates a handler for order scheduling operations.
func NewScheduleOrderCommandHandler(uowFactory OrderUoWFactory, notifier ports.OrderNotifier) ScheduleOrderCommandHandler {
	return ScheduleOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the order scheduling command.
// The aggregate's guard rejects scheduling of cancelled and delivered orders.
func (h ScheduleOrderCommandHandler) Handle(ctx context.Context, command ScheduleOrderCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	aggregate, err := orderRepo.Get(ctx, command.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.Schedule(command.ScheduledDate()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.NotifyOrderUpdated(ctx, aggregate.ID())
	return nil
}
