package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrUnassignOrderCommandIsNotConstructed = errors.New(
	"UnassignOrderCommand must be created via NewUnassignOrderCommand constructor",
)

// UnassignOrderCommand represents a request to take an order away from its
// current assignee. Only assigned orders in PENDIENTE, PREPARANDO or
// DESPACHADO can be unassigned; delivered and cancelled orders keep their
// assignee for the record.
type UnassignOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewUnassignOrderCommand creates a command to unassign an order.
func NewUnassignOrderCommand(orderID kernel.UUID) (UnassignOrderCommand, error) {
	command := UnassignOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setOrderID(orderID); err != nil {
		return UnassignOrderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrUnassignOrderCommandIsNotConstructed if validation fails.
func (c UnassignOrderCommand) Validate() error {
	return c.guard.Validate(ErrUnassignOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to unassign.
func (c UnassignOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *UnassignOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
