package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/employee"
)

// CreateEmployeeCommandHandler handles the business logic for employee creation.
type CreateEmployeeCommandHandler struct {
	uowFactory EmployeeUoWFactory
}

// NewCreateEmployeeCommandHandler creates a handler for employee creation operations.
// Requires an EmployeeUoWFactory for transactional persistence.
func NewCreateEmployeeCommandHandler(uowFactory EmployeeUoWFactory) CreateEmployeeCommandHandler {
	return CreateEmployeeCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the employee creation command.
func (h CreateEmployeeCommandHandler) Handle(ctx context.Context, command CreateEmployeeCommand) error {
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

	aggregate, err := employee.NewEmployee(command.EmployeeID(), command.Name(), command.Role(), command.UserID())
	if err != nil {
		return err
	}

	if err = uow.EmployeeRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
