package orderrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// orderColumns are the columns every update writes. Updating through an
// explicit column list lets nullable fields (assignee, scheduled date) be
// cleared, which Updates with a struct would silently skip.
var orderColumns = []string{
	"tracking_code", "customer_id", "address_id", "order_date",
	"scheduled_date", "delivered_date", "created_by", "assignee_id",
	"notes", "delivery_notes", "status", "is_active", "version",
}

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order and its line items to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order using an optimistic concurrency check.
// The row is only written when the stored version still equals the version
// the aggregate was loaded with; the write bumps the version so any
// concurrent writer holding the old token is rejected. Line items are
// managed separately via ReplaceItems.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version++

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Omit(clause.Associations).
		Select(orderColumns).
		Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&OrderDTO{}).
			Where("id = ?", dto.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("order", aggregate.ID().String())
		}
		return errs.NewVersionIsInvalidErrorWithCause("order version")
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// AppendHistory inserts one ledger entry. Entries are never updated or deleted.
func (r *GormOrderRepository) AppendHistory(ctx context.Context, entry *order.StatusHistoryEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := historyFromDomain(entry)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// ReplaceItems retires the order's current line item rows and inserts the
// aggregate's item set as the new active one.
func (r *GormOrderRepository) ReplaceItems(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	err := r.db.WithContext(ctx).
		Model(&ItemDTO{}).
		Where("order_id = ? AND is_active = ?", aggregate.ID().Bytes(), true).
		Update("is_active", false).Error
	if err != nil {
		return err
	}

	for _, item := range aggregate.Items() {
		dto := itemFromDomain(aggregate.ID(), item)
		if err = r.db.WithContext(ctx).Create(&dto).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID together with its active line items. The
// cached status column is cross-checked against the ledger before the
// aggregate is handed out; a divergent cache means a write path skipped the
// matching ledger append and must not be built upon.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items", "is_active = ?", true).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	aggregate, err := toDomain(dto)
	if err != nil {
		return nil, err
	}

	if err = r.checkStatusAgainstLedger(ctx, aggregate); err != nil {
		return nil, err
	}

	return aggregate, nil
}

// checkStatusAgainstLedger verifies the cached status column against the most
// recent ledger entry. An empty ledger passes unchecked: creation always seeds
// an entry, so only partially seeded fixtures ever hit that branch.
func (r *GormOrderRepository) checkStatusAgainstLedger(ctx context.Context, aggregate *order.Order) error {
	var dtos []StatusHistoryDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ?", aggregate.ID().Bytes()).
		Order("occurred_at DESC").
		Limit(1).
		Find(&dtos).Error
	if err != nil {
		return err
	}
	if len(dtos) == 0 {
		return nil
	}

	entry, err := historyToDomain(dtos[0])
	if err != nil {
		return err
	}

	ledgerStatus, err := order.CurrentStatus([]*order.StatusHistoryEntry{entry})
	if err != nil {
		return err
	}
	if ledgerStatus != aggregate.Status() {
		return errs.NewStateConflictError(fmt.Sprintf(
			"order %s status cache %s disagrees with ledger %s",
			aggregate.ID(), aggregate.Status(), ledgerStatus,
		))
	}

	return nil
}

// GetByTrackingCode retrieves an active order by its tracking code.
// The code is expected to be checksum-verified already; a miss here is a
// plain not-found, never a format error.
func (r *GormOrderRepository) GetByTrackingCode(ctx context.Context, code kernel.TrackingCode) (*order.Order, error) {
	if err := code.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items", "is_active = ?", true).
		First(&dto, "tracking_code = ? AND is_active = ?", code.String(), true).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("trackingCode", code.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// TrackingCodeExists reports whether any order, active or not, carries the code.
func (r *GormOrderRepository) TrackingCodeExists(ctx context.Context, code kernel.TrackingCode) (bool, error) {
	if err := code.Validate(); err != nil {
		return false, err
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("tracking_code = ?", code.String()).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// GetHistory retrieves the order's status ledger ordered from oldest to newest.
func (r *GormOrderRepository) GetHistory(ctx context.Context, orderID kernel.UUID) ([]*order.StatusHistoryEntry, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []StatusHistoryDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("occurred_at ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	entries := make([]*order.StatusHistoryEntry, 0, len(dtos))
	for _, dto := range dtos {
		entry, entryErr := historyToDomain(dto)
		if entryErr != nil {
			return nil, entryErr
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// GetAllOverdue retrieves all active orders whose scheduled date has passed
// without the order reaching ENTREGADO or CANCELADO.
func (r *GormOrderRepository) GetAllOverdue(ctx context.Context, now time.Time) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items", "is_active = ?", true).
		Where("is_active = ? AND scheduled_date IS NOT NULL AND scheduled_date < ? AND status NOT IN ?",
			true, now, []string{order.Delivered.String(), order.Cancelled.String()}).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, toErr := toDomain(dto)
		if toErr != nil {
			return nil, toErr
		}
		orders = append(orders, o)
	}

	return orders, nil
}
