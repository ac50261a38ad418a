package commands

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// maxTrackingCodeAttempts bounds the collision retry loop during creation.
// With a 6-digit random body per year, exhausting five attempts means the code
// space is pathologically full and the request should fail loudly.
const maxTrackingCodeAttempts = 5

// ErrTrackingCodeExhausted is returned when code generation collided with
// existing orders on every attempt.
var ErrTrackingCodeExhausted = errors.New("could not generate a unique tracking code")

// CreateOrderCommandHandler handles the business logic for order creation.
// Generates a checksum-verified tracking code, persists the order in the
// PENDIENTE status and seeds the first ledger entry, all in one transaction.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	cmd, _ := NewCreateOrderCommand(kernel.NewUUID(), customerID, nil, actorID, nil, "", "", items)
//
//	created, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
//	fmt.Printf("order %s created\n", created.TrackingCode())
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
// Requires an OrderUoWFactory for transactional persistence.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order creation command and returns the created order.
//
// Tracking code generation is retried up to five times: generation is random
// and uniqueness is a persistence invariant, so the handler probes the store
// for collisions before inserting. The matching PENDIENTE ledger entry is
// appended in the same transaction, keeping the ledger's invariant that every
// order has at least one entry.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	trackingCode, err := h.generateUniqueTrackingCode(ctx, orderRepo)
	if err != nil {
		return nil, err
	}

	items := make([]*order.Item, 0, len(cmd.Items()))
	for _, spec := range cmd.Items() {
		item, itemErr := order.NewItem(kernel.NewUUID(), spec.ProductID, spec.Quantity, spec.Notes)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	now := time.Now()
	aggregate, err := order.NewOrder(
		cmd.OrderID(),
		trackingCode,
		cmd.CustomerID(),
		cmd.AddressID(),
		cmd.CreatedBy(),
		now,
		cmd.ScheduledDate(),
		cmd.Notes(),
		cmd.DeliveryNotes(),
		items,
	)
	if err != nil {
		return nil, err
	}

	if err = orderRepo.Add(ctx, aggregate); err != nil {
		return nil, err
	}

	entry, err := order.NewStatusHistoryEntry(
		kernel.NewUUID(), aggregate.ID(), order.Pending, cmd.CreatedBy(), now, nil,
	)
	if err != nil {
		return nil, err
	}
	if err = orderRepo.AppendHistory(ctx, entry); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}

func (h CreateOrderCommandHandler) generateUniqueTrackingCode(
	ctx context.Context,
	orderRepo ports.OrderRepository,
) (kernel.TrackingCode, error) {
	for range maxTrackingCodeAttempts {
		code := kernel.GenerateTrackingCodeForCurrentYear()

		exists, err := orderRepo.TrackingCodeExists(ctx, code)
		if err != nil {
			return kernel.TrackingCode{}, err
		}
		if !exists {
			return code, nil
		}
	}

	return kernel.TrackingCode{}, ErrTrackingCodeExhausted
}
