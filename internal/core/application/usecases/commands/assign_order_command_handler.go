package commands

import (
	"context"

	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// ErrEmployeeCannotDeliver is returned when the target employee is not an
// active driver and therefore cannot be assigned deliveries.
var ErrEmployeeCannotDeliver = errs.NewStateConflictError(
	"employee is not an active driver",
)

// AssignOrderCommandHandler orchestrates the order assignment process.
// Verifies the employee is an active driver before mutating the order, and
// updates both facts within a single transaction. Assignment by itself does
// not change the order's status; the ledger only records status changes.
//
// After a successful commit the handler emits fire-and-forget notifications:
// an order update for subscribers, plus an assignment notice when the employee
// is linked to an external user identity. Notification failures never undo the
// assignment.
type AssignOrderCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.OrderNotifier
}

// NewAssignOrderCommandHandler creates a handler for order assignment operations.
// Requires a UoWFactory for coordinating reads across both aggregates and an
// OrderNotifier for post-commit notifications.
func NewAssignOrderCommandHandler(uowFactory UoWFactory, notifier ports.OrderNotifier) AssignOrderCommandHandler {
	return AssignOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the order assignment command.
// Loads the order and the employee, applies the assignment guards and persists
// the updated order. Returns errs.ErrObjectNotFound variants when either side
// is missing and ErrEmployeeCannotDeliver for non-driver or inactive employees.
func (h AssignOrderCommandHandler) Handle(ctx context.Context, command AssignOrderCommand) error {
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
	employeeRepo := uow.EmployeeRepository()

	aggregate, err := orderRepo.Get(ctx, command.OrderID())
	if err != nil {
		return err
	}

	assignee, err := employeeRepo.Get(ctx, command.EmployeeID())
	if err != nil {
		return err
	}
	if !assignee.CanDeliver() {
		return ErrEmployeeCannotDeliver
	}

	if err = aggregate.Assign(assignee.ID()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.NotifyOrderUpdated(ctx, aggregate.ID())
	if assignee.HasLinkedUser() {
		h.notifier.NotifyOrderAssigned(ctx, aggregate.ID(), *assignee.UserID())
	}

	return nil
}
