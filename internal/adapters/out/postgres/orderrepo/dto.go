// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The tracking code carries a unique index because code uniqueness is a
// persistence invariant, not a generation guarantee. The version column is the
// optimistic concurrency token compared on every update.
type OrderDTO struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TrackingCode  string     `gorm:"type:varchar(18);uniqueIndex"`
	CustomerID    uuid.UUID  `gorm:"type:uuid;index"`
	AddressID     *uuid.UUID `gorm:"type:uuid"`
	OrderDate     time.Time
	ScheduledDate *time.Time `gorm:"index"`
	DeliveredDate *time.Time
	CreatedBy     uuid.UUID  `gorm:"type:uuid"`
	AssigneeID    *uuid.UUID `gorm:"type:uuid;index"`
	Notes         string
	DeliveryNotes string
	Status        string `gorm:"type:varchar(20);index"`
	IsActive      bool
	Version       int64
	Items         []ItemDTO `gorm:"foreignKey:OrderID"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO represents one line item row. Items retired by a wholesale
// replacement keep their row with is_active set to false.
type ItemDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID           uuid.UUID `gorm:"type:uuid;index"`
	ProductID         uuid.UUID `gorm:"type:uuid"`
	Quantity          int
	DeliveredQuantity *int
	Notes             *string
	IsActive          bool
}

// TableName specifies the database table name for line items.
func (ItemDTO) TableName() string {
	return "order_items"
}

// StatusHistoryDTO represents one row of the append-only status ledger.
// Rows are only ever inserted.
type StatusHistoryDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID `gorm:"type:uuid;index"`
	Status      string    `gorm:"type:varchar(20)"`
	Description *string
	OccurredAt  time.Time `gorm:"index"`
	ActorID     uuid.UUID `gorm:"type:uuid"`
}

// TableName specifies the database table name for ledger entries.
func (StatusHistoryDTO) TableName() string {
	return "order_status_history"
}

// fromDomain converts an order domain aggregate to its database representation,
// including the current line item set.
func fromDomain(aggregate *order.Order) OrderDTO {
	dto := OrderDTO{
		ID:            aggregate.ID().Bytes(),
		TrackingCode:  aggregate.TrackingCode().String(),
		CustomerID:    aggregate.CustomerID().Bytes(),
		OrderDate:     aggregate.OrderDate(),
		ScheduledDate: aggregate.ScheduledDate(),
		DeliveredDate: aggregate.DeliveredDate(),
		CreatedBy:     aggregate.CreatedBy().Bytes(),
		Notes:         aggregate.Notes(),
		DeliveryNotes: aggregate.DeliveryNotes(),
		Status:        aggregate.Status().String(),
		IsActive:      aggregate.IsActive(),
		Version:       aggregate.Version(),
	}

	if id := aggregate.AddressID(); id != nil {
		raw := id.Bytes()
		dto.AddressID = &raw
	}
	if id := aggregate.Assignee(); id != nil {
		raw := id.Bytes()
		dto.AssigneeID = &raw
	}

	for _, item := range aggregate.Items() {
		dto.Items = append(dto.Items, itemFromDomain(aggregate.ID(), item))
	}

	return dto
}

func itemFromDomain(orderID kernel.UUID, item *order.Item) ItemDTO {
	return ItemDTO{
		ID:                item.ID().Bytes(),
		OrderID:           orderID.Bytes(),
		ProductID:         item.ProductID().Bytes(),
		Quantity:          item.Quantity(),
		DeliveredQuantity: item.DeliveredQuantity(),
		Notes:             item.Notes(),
		IsActive:          item.IsActive(),
	}
}

func historyFromDomain(entry *order.StatusHistoryEntry) StatusHistoryDTO {
	return StatusHistoryDTO{
		ID:          entry.ID().Bytes(),
		OrderID:     entry.OrderID().Bytes(),
		Status:      entry.Status().String(),
		Description: entry.Description(),
		OccurredAt:  entry.OccurredAt(),
		ActorID:     entry.ActorID().Bytes(),
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including the cached status, assignment
// and line items using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	createdBy, err := kernel.UUIDFromBytes(dto.CreatedBy[:])
	if err != nil {
		return nil, err
	}

	trackingCode, err := kernel.ParseTrackingCode(dto.TrackingCode)
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromName(dto.Status)
	if err != nil {
		return nil, err
	}

	var addressID *kernel.UUID
	if dto.AddressID != nil {
		a, addrErr := kernel.UUIDFromBytes((*dto.AddressID)[:])
		if addrErr != nil {
			return nil, addrErr
		}
		addressID = &a
	}

	var assigneeID *kernel.UUID
	if dto.AssigneeID != nil {
		a, assigneeErr := kernel.UUIDFromBytes((*dto.AssigneeID)[:])
		if assigneeErr != nil {
			return nil, assigneeErr
		}
		assigneeID = &a
	}

	items := make([]*order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(
		id,
		trackingCode,
		customerID,
		addressID,
		dto.OrderDate,
		dto.ScheduledDate,
		dto.DeliveredDate,
		createdBy,
		assigneeID,
		dto.Notes,
		dto.DeliveryNotes,
		status,
		dto.IsActive,
		dto.Version,
		items,
	)
}

func itemToDomain(dto ItemDTO) (*order.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return nil, err
	}

	return order.RestoreItem(id, productID, dto.Quantity, dto.DeliveredQuantity, dto.Notes, dto.IsActive)
}

func historyToDomain(dto StatusHistoryDTO) (*order.StatusHistoryEntry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	actorID, err := kernel.UUIDFromBytes(dto.ActorID[:])
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromName(dto.Status)
	if err != nil {
		return nil, err
	}

	return order.RestoreStatusHistoryEntry(id, orderID, status, actorID, dto.OccurredAt, dto.Description)
}
