// Package ports defines the contracts between the application core and
// infrastructure. These interfaces establish dependency inversion points for
// persistence, transactions and outbound notifications, keeping the domain
// testable.
package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/employee"
	"fulfillment/internal/core/domain/model/kernel"
)

// EmployeeRepository defines the persistence contract for employee aggregates.
// The assignment flow reads employees to verify that an order is only handed
// to an active driver.
type EmployeeRepository interface {
	// Add persists a new employee aggregate to storage.
	Add(ctx context.Context, aggregate *employee.Employee) error

	// Update persists changes to an existing employee aggregate.
	Update(ctx context.Context, aggregate *employee.Employee) error

	// Get retrieves an employee aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*employee.Employee, error)
}
