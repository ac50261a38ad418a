package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrDeactivateOrderCommandIsNotConstructed = errors.New(
	"DeactivateOrderCommand must be created via NewDeactivateOrderCommand constructor",
)

// DeactivateOrderCommand represents a request to soft-delete an order.
// The record and its ledger are preserved; the order merely stops appearing
// in active listings and rejects further lifecycle operations.
type DeactivateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewDeactivateOrderCommand creates a command to soft-delete an order.
func NewDeactivateOrderCommand(orderID kernel.UUID) (DeactivateOrderCommand, error) {
	command := DeactivateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setOrderID(orderID); err != nil {
		return DeactivateOrderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrDeactivateOrderCommandIsNotConstructed if validation fails.
func (c DeactivateOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeactivateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to deactivate.
func (c DeactivateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *DeactivateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
