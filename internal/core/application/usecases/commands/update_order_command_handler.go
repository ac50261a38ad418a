package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// UpdateOrderCommandHandler edits an order's notes and line items.
// Item replacement retires the previous set in storage rather than deleting
// it, keeping delivered-quantity history queryable.
type UpdateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.OrderNotifier
}

// NewUpdateOrderCommandHandler creates a handler for order edit operations.
func NewUpdateOrderCommandHandler(uowFactory OrderUoWFactory, notifier ports.OrderNotifier) UpdateOrderCommandHandler {
	return UpdateOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the order edit command.
// The aggregate's guard rejects item replacement on delivered and cancelled
// orders; note edits carry no guard beyond the order existing.
func (h UpdateOrderCommandHandler) Handle(ctx context.Context, command UpdateOrderCommand) error {
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

	aggregate.UpdateNotes(command.Notes(), command.DeliveryNotes())

	if command.ReplacesItems() {
		items := make([]*order.Item, 0, len(command.Items()))
		for _, spec := range command.Items() {
			item, itemErr := order.NewItem(kernel.NewUUID(), spec.ProductID, spec.Quantity, spec.Notes)
			if itemErr != nil {
				return itemErr
			}
			items = append(items, item)
		}

		if err = aggregate.ReplaceItems(items); err != nil {
			return err
		}
		if err = orderRepo.ReplaceItems(ctx, aggregate); err != nil {
			return err
		}
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
