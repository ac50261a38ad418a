package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// CancelOrderCommandHandler cancels an order and records the reason in the
// status ledger. Cancellation is terminal: once recorded, no further status
// transitions are possible. Delivered orders cannot be cancelled.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.OrderNotifier
}

// NewCancelOrderCommandHandler creates a handler for order cancellation operations.
func NewCancelOrderCommandHandler(uowFactory OrderUoWFactory, notifier ports.OrderNotifier) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the order cancellation command.
// Applies the cancellation guard, moves the cached status to CANCELADO and
// appends the ledger entry carrying the reason, all in one transaction.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, command CancelOrderCommand) error {
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

	if err = aggregate.ValidateCancel(); err != nil {
		return err
	}
	if err = aggregate.ChangeStatus(order.Cancelled); err != nil {
		return err
	}

	reason := command.Reason()
	entry, err := order.NewStatusHistoryEntry(
		kernel.NewUUID(), aggregate.ID(), order.Cancelled, command.ActorID(), time.Now(), &reason,
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
