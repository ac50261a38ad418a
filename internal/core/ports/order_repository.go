package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates and
// their append-only status ledger.
//
// Write methods participate in the unit of work's transaction. Update performs
// an optimistic concurrency check against the aggregate's version token and
// fails with a version error when a concurrent writer got there first.
type OrderRepository interface {
	// Add persists a new order aggregate together with its line items.
	// The caller seeds the initial ledger entry via AppendHistory in the
	// same transaction.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate, comparing the
	// stored version token with the aggregate's. A mismatch means a
	// concurrent writer committed first and the whole operation must be
	// rejected, not merged.
	Update(ctx context.Context, aggregate *order.Order) error

	// AppendHistory appends one entry to the order's status ledger.
	// Entries are never updated or deleted.
	AppendHistory(ctx context.Context, entry *order.StatusHistoryEntry) error

	// ReplaceItems retires the order's current line item set and inserts the
	// replacement. Retired items stay stored for the record.
	ReplaceItems(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier, with its
	// active line items.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByTrackingCode retrieves an order aggregate by its tracking code.
	// The code is assumed to be already checksum-verified.
	GetByTrackingCode(ctx context.Context, code kernel.TrackingCode) (*order.Order, error)

	// TrackingCodeExists reports whether any order already carries the code.
	// Used by the creation flow to detect generation collisions.
	TrackingCodeExists(ctx context.Context, code kernel.TrackingCode) (bool, error)

	// GetHistory retrieves the order's complete status ledger ordered from
	// oldest to newest.
	GetHistory(ctx context.Context, orderID kernel.UUID) ([]*order.StatusHistoryEntry, error)

	// GetAllOverdue retrieves all active orders whose scheduled date has
	// passed without delivery or cancellation, as of the given instant.
	GetAllOverdue(ctx context.Context, now time.Time) ([]*order.Order, error)
}
