package commands

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrScheduleOrderCommandIsNotConstructed = errors.New(
	"ScheduleOrderCommand must be created via NewScheduleOrderCommand constructor",
)

// ScheduleOrderCommand represents a request to plan a delivery date for an
// order. Rescheduling is allowed; the new date simply replaces the old one.
type ScheduleOrderCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	scheduledDate time.Time

	guard guard.ConstructorGuard
}

// NewScheduleOrderCommand creates a command to schedule an order's delivery.
// The date must be set; whether it lies in the future is checked at the edge,
// since imports and corrections legitimately schedule into the past.
func NewScheduleOrderCommand(orderID kernel.UUID, scheduledDate time.Time) (ScheduleOrderCommand, error) {
	command := ScheduleOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setScheduledDate(scheduledDate),
	); err != nil {
		return ScheduleOrderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrScheduleOrderCommandIsNotConstructed if validation fails.
func (c ScheduleOrderCommand) Validate() error {
	return c.guard.Validate(ErrScheduleOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to schedule.
func (c ScheduleOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ScheduledDate returns the planned delivery date.
func (c ScheduleOrderCommand) ScheduledDate() time.Time {
	return c.scheduledDate
}

func (c *ScheduleOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ScheduleOrderCommand) setScheduledDate(scheduledDate time.Time) error {
	if scheduledDate.IsZero() {
		return errs.NewValueIsRequiredError("scheduledDate")
	}

	c.scheduledDate = scheduledDate
	return nil
}
