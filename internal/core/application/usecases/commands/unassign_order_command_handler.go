package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

// UnassignOrderCommandHandler removes the current assignee from an order.
// The aggregate's guard rejects unassignment of orders that are not assigned
// or whose status no longer allows it.
type UnassignOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.OrderNotifier
}

// NewUnassignOrderCommandHandler creates a handler for order unassignment operations.
func NewUnassignOrderCommandHandler(uowFactory OrderUoWFactory, notifier ports.OrderNotifier) UnassignOrderCommandHandler {
	return UnassignOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the order unassignment command.
func (h UnassignOrderCommandHandler) Handle(ctx context.Context, command UnassignOrderCommand) error {
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

	if err = aggregate.Unassign(); err != nil {
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
