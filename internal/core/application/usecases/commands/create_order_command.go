package commands

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrItemsAreRequired = errors.New("at least one item is required")
)

// ItemSpec describes one requested line item on an incoming order.
// The line item's identity is generated by the handler; callers only name the
// product, the quantity and optional notes.
type ItemSpec struct {
	ProductID kernel.UUID
	Quantity  int
	Notes     *string
}

// CreateOrderCommand represents a request to register a new fulfillment order.
// The tracking code is not part of the command: the handler generates one and
// retries on persistence collisions.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(
//	    kernel.NewUUID(), customerID, nil, actorID, nil, "", "",
//	    []ItemSpec{{ProductID: productID, Quantity: 2}},
//	)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	customerID    kernel.UUID
	addressID     *kernel.UUID
	createdBy     kernel.UUID
	scheduledDate *time.Time
	notes         string
	deliveryNotes string
	items         []ItemSpec

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order.
// Validates that the order, customer and creator IDs are valid and that at
// least one item is requested. Item-level rules (quantity range, notes length)
// are enforced by the aggregate when the handler builds the line items.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	customerID kernel.UUID,
	addressID *kernel.UUID,
	createdBy kernel.UUID,
	scheduledDate *time.Time,
	notes string,
	deliveryNotes string,
	items []ItemSpec,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		notes:         notes,
		deliveryNotes: deliveryNotes,
		guard:         guard.NewConstructorGuard(),
	}

	if scheduledDate != nil {
		d := *scheduledDate
		orderCommand.scheduledDate = &d
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setCustomerID(customerID),
		orderCommand.setAddressID(addressID),
		orderCommand.setCreatedBy(createdBy),
		orderCommand.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the ordering customer's identifier.
func (c CreateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// AddressID returns the optional delivery address reference.
func (c CreateOrderCommand) AddressID() *kernel.UUID {
	return c.addressID
}

// CreatedBy returns the identifier of the user creating the order.
func (c CreateOrderCommand) CreatedBy() kernel.UUID {
	return c.createdBy
}

// ScheduledDate returns the optional planned delivery date.
func (c CreateOrderCommand) ScheduledDate() *time.Time {
	return c.scheduledDate
}

// Notes returns the general remarks for the order.
func (c CreateOrderCommand) Notes() string {
	return c.notes
}

// DeliveryNotes returns the delivery instructions.
func (c CreateOrderCommand) DeliveryNotes() string {
	return c.deliveryNotes
}

// Items returns the requested line items.
func (c CreateOrderCommand) Items() []ItemSpec {
	return c.items
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customerID", err)
	}

	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setAddressID(addressID *kernel.UUID) error {
	if addressID == nil {
		return nil
	}
	if err := addressID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("addressID", err)
	}

	a := *addressID
	c.addressID = &a
	return nil
}

func (c *CreateOrderCommand) setCreatedBy(createdBy kernel.UUID) error {
	if err := createdBy.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("createdBy", err)
	}

	c.createdBy = createdBy
	return nil
}

func (c *CreateOrderCommand) setItems(items []ItemSpec) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}

	c.items = items
	return nil
}
