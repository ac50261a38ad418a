package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrAssignOrderCommandIsNotConstructed = errors.New(
	"AssignOrderCommand must be created via NewAssignOrderCommand constructor",
)

// AssignOrderCommand represents a request to hand an order to an employee for
// delivery. Assignment is rejected for orders that are cancelled, delivered,
// deactivated or already assigned, and for employees who are not active drivers.
type AssignOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	employeeID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignOrderCommand creates a command to assign an order to an employee.
// Validates that both identifiers are valid UUIDs.
func NewAssignOrderCommand(orderID kernel.UUID, employeeID kernel.UUID) (AssignOrderCommand, error) {
	command := AssignOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setEmployeeID(employeeID),
	); err != nil {
		return AssignOrderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAssignOrderCommandIsNotConstructed if validation fails.
func (c AssignOrderCommand) Validate() error {
	return c.guard.Validate(ErrAssignOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to assign.
func (c AssignOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// EmployeeID returns the identifier of the employee receiving the order.
func (c AssignOrderCommand) EmployeeID() kernel.UUID {
	return c.employeeID
}

func (c *AssignOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AssignOrderCommand) setEmployeeID(employeeID kernel.UUID) error {
	if err := employeeID.Validate(); err != nil {
		return err
	}

	c.employeeID = employeeID
	return nil
}
