package queries

import (
	"context"

	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderByTrackingCodeQueryHandler resolves public tracking codes to orders.
type GetOrderByTrackingCodeQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderByTrackingCodeQueryHandler creates a handler for tracking code lookups.
func NewGetOrderByTrackingCodeQueryHandler(db *gorm.DB) GetOrderByTrackingCodeQueryHandler {
	return GetOrderByTrackingCodeQueryHandler{db: db}
}

// Handle executes the lookup. The code was checksum-verified at query
// construction, so a miss here is a plain not-found.
func (h GetOrderByTrackingCodeQueryHandler) Handle(
	ctx context.Context,
	query GetOrderByTrackingCodeQuery,
) (OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+orderSelectColumns+`
		FROM orders
		WHERE tracking_code = ? AND is_active = ?
	`, query.TrackingCode().String(), true).Rows()
	if err != nil {
		return OrderResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return OrderResponse{}, err
		}
		return OrderResponse{}, errs.NewObjectNotFoundError("trackingCode", query.TrackingCode().String())
	}

	resp, err := scanOrderRow(rows)
	if err != nil {
		return OrderResponse{}, err
	}
	rows.Close()

	resp.Items, err = loadOrderItems(ctx, h.db, resp.ID)
	if err != nil {
		return OrderResponse{}, err
	}

	return resp, nil
}
