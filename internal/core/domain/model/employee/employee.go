package employee

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// Domain errors for employee operations.
var (
	// ErrNameIsRequired is returned when attempting to create an employee without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrEmployeeIsNotConstructed is returned when using an improperly initialized Employee.
	ErrEmployeeIsNotConstructed = errors.New("Employee must be created via NewEmployee or RestoreEmployee")
)

// Role classifies what an employee may do in the fulfillment flow.
// Only drivers can be assigned to deliver orders.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RoleDriver delivers orders and is the only assignable role.
	RoleDriver

	// RoleDispatcher prepares and schedules orders.
	RoleDispatcher

	// RoleAdmin administers the system.
	RoleAdmin
)

// getRoleNames maps every Role to its wire name.
func getRoleNames() map[Role]string {
	return map[Role]string{
		RoleUnknown:    "UNKNOWN",
		RoleDriver:     "DRIVER",
		RoleDispatcher: "DISPATCHER",
		RoleAdmin:      "ADMIN",
	}
}

// RoleFromName parses a wire name ("DRIVER", "DISPATCHER", "ADMIN") into a Role.
func RoleFromName(name string) (Role, error) {
	for role, n := range getRoleNames() {
		if role != RoleUnknown && n == name {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role name", name))
}

// Validate checks if the Role value is valid.
func (r Role) Validate() error {
	if r != RoleDriver && r != RoleDispatcher && r != RoleAdmin {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the wire name of the role, or "UNKNOWN" for invalid values.
func (r Role) String() string {
	if name, ok := getRoleNames()[r]; ok {
		return name
	}
	return "UNKNOWN"
}

// Employee represents a member of staff who participates in order fulfillment.
// It is the aggregate the assignment guard reads: an order may only be
// assigned to an active employee whose role is DRIVER.
//
// An employee may be linked to an external user identity; when present, the
// link drives the order:assigned notification so the user's own devices are
// told about new work.
type Employee struct {
	// id uniquely identifies the employee
	id kernel.UUID
	// name is the human-readable name of the employee
	name string
	// role classifies the employee's duties
	role Role
	// userID links the employee to an external user identity (nil if unlinked)
	userID *kernel.UUID
	// isActive is false once the employee has been deactivated
	isActive bool
	// guard ensures the employee was properly constructed
	guard guard.ConstructorGuard
}

// NewEmployee creates a new active Employee with the specified parameters.
// The name must be non-empty and the role valid; the user link is optional.
func NewEmployee(id kernel.UUID, name string, role Role, userID *kernel.UUID) (*Employee, error) {
	employee := &Employee{
		isActive: true,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		employee.setID(id),
		employee.setName(name),
		employee.setRole(role),
		employee.setUserID(userID),
	); err != nil {
		return nil, err
	}

	return employee, nil
}

// RestoreEmployee reconstructs an Employee aggregate from persistent storage.
func RestoreEmployee(id kernel.UUID, name string, role Role, userID *kernel.UUID, isActive bool) (*Employee, error) {
	employee, err := NewEmployee(id, name, role, userID)
	if err != nil {
		return nil, err
	}

	employee.isActive = isActive
	return employee, nil
}

// Validate ensures the Employee was properly constructed.
func (e *Employee) Validate() error {
	if e == nil {
		return ErrEmployeeIsNotConstructed
	}
	return e.guard.Validate(ErrEmployeeIsNotConstructed)
}

// ID returns the employee's unique identifier.
func (e *Employee) ID() kernel.UUID {
	return e.id
}

// Name returns the employee's name.
func (e *Employee) Name() string {
	return e.name
}

// Role returns the employee's role.
func (e *Employee) Role() Role {
	return e.role
}

// UserID returns the linked external user identity, or nil if unlinked.
func (e *Employee) UserID() *kernel.UUID {
	return e.userID
}

// IsActive reports whether the employee has not been deactivated.
func (e *Employee) IsActive() bool {
	return e.isActive
}

// HasLinkedUser reports whether the employee is linked to an external user identity.
func (e *Employee) HasLinkedUser() bool {
	return e.userID != nil
}

// CanDeliver reports whether orders may be assigned to this employee:
// only active drivers qualify.
func (e *Employee) CanDeliver() bool {
	return e.isActive && e.role == RoleDriver
}

func (e *Employee) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	e.id = id
	return nil
}

func (e *Employee) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	e.name = name
	return nil
}

func (e *Employee) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	e.role = role
	return nil
}

func (e *Employee) setUserID(userID *kernel.UUID) error {
	if userID == nil {
		return nil
	}
	if err := userID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("userID", err)
	}
	u := *userID
	e.userID = &u
	return nil
}
