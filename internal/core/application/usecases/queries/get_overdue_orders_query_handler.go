package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOverdueOrdersQueryHandler retrieves orders past their scheduled date.
//
// Example:
//
//	handler := NewGetOverdueOrdersQueryHandler(db)
//	query, err := NewGetOverdueOrdersQuery(time.Now())
//	if err != nil {
//	    return err
//	}
//
//	overdue, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to get overdue orders: %v", err)
//	    return err
//	}
//
//	if len(overdue) > 0 {
//	    fmt.Printf("%d orders are overdue\n", len(overdue))
//	}
type GetOverdueOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOverdueOrdersQueryHandler creates a handler for overdue order queries.
// Requires a GORM database connection for query execution.
func NewGetOverdueOrdersQueryHandler(db *gorm.DB) GetOverdueOrdersQueryHandler {
	return GetOverdueOrdersQueryHandler{db: db}
}

// Handle executes the query to retrieve all overdue orders, oldest scheduled
// date first. Terminal and deactivated orders are never overdue.
func (h GetOverdueOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetOverdueOrdersQuery,
) ([]GetOverdueOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	overdue := make([]GetOverdueOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			tracking_code,
			status,
			scheduled_date,
			assignee_id
		FROM orders
		WHERE is_active = ?
			AND scheduled_date IS NOT NULL
			AND scheduled_date < ?
			AND status NOT IN (?, ?)
		ORDER BY scheduled_date ASC
	`, true, query.AsOf(), order.Delivered.String(), order.Cancelled.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			resp       GetOverdueOrdersQueryResponse
			id         uuid.UUID
			assigneeID uuid.NullUUID
		)

		err = rows.Scan(&id, &resp.TrackingCode, &resp.Status, &resp.ScheduledDate, &assigneeID)
		if err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if assigneeID.Valid {
			a, assigneeErr := kernel.UUIDFromBytes(assigneeID.UUID[:])
			if assigneeErr != nil {
				return nil, assigneeErr
			}
			resp.AssigneeID = &a
		}

		overdue = append(overdue, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return overdue, nil
}
