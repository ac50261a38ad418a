package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/employee"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrCreateEmployeeCommandIsNotConstructed = errors.New(
	"CreateEmployeeCommand must be created via NewCreateEmployeeCommand constructor",
)

// CreateEmployeeCommand represents a request to register a new employee.
// Only employees with the DRIVER role can later be assigned orders.
type CreateEmployeeCommand struct { //nolint:recvcheck //using for validation
	employeeID kernel.UUID
	name       string
	role       employee.Role
	userID     *kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreateEmployeeCommand creates a command to register an employee.
// Validates the identifier, name and role; the user link is optional.
func NewCreateEmployeeCommand(
	employeeID kernel.UUID,
	name string,
	role employee.Role,
	userID *kernel.UUID,
) (CreateEmployeeCommand, error) {
	command := CreateEmployeeCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setEmployeeID(employeeID),
		command.setName(name),
		command.setRole(role),
		command.setUserID(userID),
	); err != nil {
		return CreateEmployeeCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateEmployeeCommandIsNotConstructed if validation fails.
func (c CreateEmployeeCommand) Validate() error {
	return c.guard.Validate(ErrCreateEmployeeCommandIsNotConstructed)
}

// EmployeeID returns the unique identifier for the new employee.
func (c CreateEmployeeCommand) EmployeeID() kernel.UUID {
	return c.employeeID
}

// Name returns the employee's name.
func (c CreateEmployeeCommand) Name() string {
	return c.name
}

// Role returns the employee's role.
func (c CreateEmployeeCommand) Role() employee.Role {
	return c.role
}

// UserID returns the optional external user link.
func (c CreateEmployeeCommand) UserID() *kernel.UUID {
	return c.userID
}

func (c *CreateEmployeeCommand) setEmployeeID(employeeID kernel.UUID) error {
	if err := employeeID.Validate(); err != nil {
		return err
	}

	c.employeeID = employeeID
	return nil
}

func (c *CreateEmployeeCommand) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}

	c.name = name
	return nil
}

func (c *CreateEmployeeCommand) setRole(role employee.Role) error {
	if err := role.Validate(); err != nil {
		return err
	}

	c.role = role
	return nil
}

func (c *CreateEmployeeCommand) setUserID(userID *kernel.UUID) error {
	if userID == nil {
		return nil
	}
	if err := userID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("userID", err)
	}

	u := *userID
	c.userID = &u
	return nil
}
