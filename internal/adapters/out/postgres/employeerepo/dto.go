// Package employeerepo provides data transfer objects and mapping functions for employee persistence.
// This package implements the repository pattern for the employee domain aggregate, handling
// the conversion between domain entities and database representations.
package employeerepo

import (
	"fulfillment/internal/core/domain/model/employee"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// EmployeeDTO represents the database structure for persisting employee aggregates.
// The role is stored by its wire name so rows stay readable and the enum can
// grow without a schema migration.
type EmployeeDTO struct {
	ID       uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name     string     `gorm:"type:varchar(255);not null"`
	Role     string     `gorm:"type:varchar(20);not null"`
	UserID   *uuid.UUID `gorm:"type:uuid;index"`
	IsActive bool
}

// TableName specifies the database table name for employee entities.
// Overrides GORM's default naming convention to use "employees".
func (EmployeeDTO) TableName() string {
	return "employees"
}

// fromDomain converts an employee domain aggregate to its database representation.
func fromDomain(aggregate *employee.Employee) EmployeeDTO {
	dto := EmployeeDTO{
		ID:       aggregate.ID().Bytes(),
		Name:     aggregate.Name(),
		Role:     aggregate.Role().String(),
		IsActive: aggregate.IsActive(),
	}

	if id := aggregate.UserID(); id != nil {
		raw := id.Bytes()
		dto.UserID = &raw
	}

	return dto
}

// toDomain converts a database DTO to an employee domain aggregate.
func toDomain(dto EmployeeDTO) (*employee.Employee, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	role, err := employee.RoleFromName(dto.Role)
	if err != nil {
		return nil, err
	}

	var userID *kernel.UUID
	if dto.UserID != nil {
		u, userErr := kernel.UUIDFromBytes((*dto.UserID)[:])
		if userErr != nil {
			return nil, userErr
		}
		userID = &u
	}

	return employee.RestoreEmployee(id, dto.Name, role, userID, dto.IsActive)
}
