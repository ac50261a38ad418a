package queries

import (
	"context"
	"database/sql"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderHistoryQueryHandler reads the append-only status ledger.
type GetOrderHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderHistoryQueryHandler creates a handler for status ledger queries.
func NewGetOrderHistoryQueryHandler(db *gorm.DB) GetOrderHistoryQueryHandler {
	return GetOrderHistoryQueryHandler{db: db}
}

// Handle executes the query to retrieve the order's ledger entries in
// chronological order. Returns ObjectNotFoundError when the order itself
// does not exist, so callers can distinguish "no order" from "no entries".
func (h GetOrderHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetOrderHistoryQuery,
) ([]GetOrderHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var orderCount int64
	err := h.db.WithContext(ctx).
		Raw(`SELECT COUNT(*) FROM orders WHERE id = ?`, query.OrderID().Bytes()).
		Scan(&orderCount).Error
	if err != nil {
		return nil, err
	}
	if orderCount == 0 {
		return nil, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}

	entries := make([]GetOrderHistoryQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			description,
			occurred_at,
			actor_id
		FROM order_status_history
		WHERE order_id = ?
		ORDER BY occurred_at ASC
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			entry       GetOrderHistoryQueryResponse
			id, actorID uuid.UUID
			description sql.NullString
		)

		err = rows.Scan(&id, &entry.Status, &description, &entry.OccurredAt, &actorID)
		if err != nil {
			return nil, err
		}

		if entry.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if entry.ActorID, err = kernel.UUIDFromBytes(actorID[:]); err != nil {
			return nil, err
		}
		if description.Valid {
			d := description.String
			entry.Description = &d
		}

		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
