package commands

import (
	"context"
)

// DeactivateOrderCommandHandler soft-deletes an order.
// Deactivation emits no notification; the order simply disappears from
// active listings while its data stays queryable.
type DeactivateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewDeactivateOrderCommandHandler creates a handler for order deactivation operations.
func NewDeactivateOrderCommandHandler(uowFactory OrderUoWFactory) DeactivateOrderCommandHandler {
	return DeactivateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order deactivation command.
// Deactivating an already inactive order fails with a state conflict.
func (h DeactivateOrderCommandHandler) Handle(ctx context.Context, command DeactivateOrderCommand) error {
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

	if err = aggregate.Deactivate(); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
