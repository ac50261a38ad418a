package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrUpdateOrderCommandIsNotConstructed = errors.New(
		"UpdateOrderCommand must be created via NewUpdateOrderCommand constructor",
	)
	ErrNothingToUpdate = errors.New("update carries no changes")
)

// UpdateOrderCommand represents a request to edit an order's mutable details:
// the free-text notes and the line item set. Item replacement is wholesale;
// passing items retires the entire current set and installs the new one.
// Nil fields mean "keep the current value".
type UpdateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	notes         *string
	deliveryNotes *string
	items         []ItemSpec

	guard guard.ConstructorGuard
}

// NewUpdateOrderCommand creates a command to edit an order.
// At least one of notes, deliveryNotes or items must be present; an item list,
// when given, must not be empty.
func NewUpdateOrderCommand(
	orderID kernel.UUID,
	notes *string,
	deliveryNotes *string,
	items []ItemSpec,
) (UpdateOrderCommand, error) {
	command := UpdateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if notes != nil {
		n := *notes
		command.notes = &n
	}
	if deliveryNotes != nil {
		n := *deliveryNotes
		command.deliveryNotes = &n
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setItems(items),
	); err != nil {
		return UpdateOrderCommand{}, err
	}

	if command.notes == nil && command.deliveryNotes == nil && command.items == nil {
		return UpdateOrderCommand{}, ErrNothingToUpdate
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrUpdateOrderCommandIsNotConstructed if validation fails.
func (c UpdateOrderCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to edit.
func (c UpdateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Notes returns the replacement general remarks, or nil to keep the current ones.
func (c UpdateOrderCommand) Notes() *string {
	return c.notes
}

// DeliveryNotes returns the replacement delivery instructions, or nil to keep
// the current ones.
func (c UpdateOrderCommand) DeliveryNotes() *string {
	return c.deliveryNotes
}

// Items returns the replacement line items, or nil to keep the current set.
func (c UpdateOrderCommand) Items() []ItemSpec {
	return c.items
}

// ReplacesItems reports whether the command carries a replacement item set.
func (c UpdateOrderCommand) ReplacesItems() bool {
	return c.items != nil
}

func (c *UpdateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *UpdateOrderCommand) setItems(items []ItemSpec) error {
	if items == nil {
		return nil
	}
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	c.items = items
	return nil
}
