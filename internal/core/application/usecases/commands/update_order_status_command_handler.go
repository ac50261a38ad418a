package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// UpdateOrderStatusCommandHandler moves an order through its lifecycle.
// The aggregate's transition matrix decides legality; the handler sequences
// the side effects around it and appends the matching ledger entry in the
// same transaction, so the cached status and the ledger never diverge.
type UpdateOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.OrderNotifier
}

// NewUpdateOrderStatusCommandHandler creates a handler for status change operations.
func NewUpdateOrderStatusCommandHandler(uowFactory OrderUoWFactory, notifier ports.OrderNotifier) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the status change command.
//
// Moving to ENTREGADO additionally stamps the delivery date, which the
// aggregate only allows from DESPACHADO. The date is recorded before the
// transition so both guards see the dispatched state.
func (h UpdateOrderStatusCommandHandler) Handle(ctx context.Context, command UpdateOrderStatusCommand) error {
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

	now := time.Now()
	if command.NewStatus() == order.Delivered {
		if err = aggregate.MarkDelivered(now); err != nil {
			return err
		}
	}
	if err = aggregate.ChangeStatus(command.NewStatus()); err != nil {
		return err
	}

	entry, err := order.NewStatusHistoryEntry(
		kernel.NewUUID(), aggregate.ID(), command.NewStatus(), command.ActorID(), now, command.Description(),
	)
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}
	if err = orderRepo.AppendHistory(ctx, entry); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.NotifyOrderUpdated(ctx, aggregate.ID())
	return nil
}
