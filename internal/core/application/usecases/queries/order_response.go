// Package queries implements the read side of the application: thin handlers
// that run SQL directly against the database and return plain response
// structs, bypassing the aggregates and their invariant checks.
package queries

import (
	"context"
	"database/sql"
	"time"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// orderSelectColumns is the column list shared by every query that returns
// full order rows. Keep it in sync with the scan order in scanOrderRow.
const orderSelectColumns = `
	id,
	tracking_code,
	customer_id,
	address_id,
	order_date,
	scheduled_date,
	delivered_date,
	created_by,
	assignee_id,
	notes,
	delivery_notes,
	status,
	is_active,
	version`

// OrderResponse represents one order as returned by the read side.
// The status carries the ledger wire name (PENDIENTE, DESPACHADO, ...).
type OrderResponse struct {
	ID            kernel.UUID
	TrackingCode  string
	CustomerID    kernel.UUID
	AddressID     *kernel.UUID
	OrderDate     time.Time
	ScheduledDate *time.Time
	DeliveredDate *time.Time
	CreatedBy     kernel.UUID
	AssigneeID    *kernel.UUID
	Notes         string
	DeliveryNotes string
	Status        string
	IsActive      bool
	Version       int64
	Items         []ItemResponse
}

// ItemResponse represents one active line item of an order.
type ItemResponse struct {
	ID                kernel.UUID
	ProductID         kernel.UUID
	Quantity          int
	DeliveredQuantity *int
	Notes             *string
}

// scanOrderRow scans one row produced with orderSelectColumns.
func scanOrderRow(rows *sql.Rows) (OrderResponse, error) {
	var (
		resp                         OrderResponse
		id, customerID, createdBy    uuid.UUID
		addressID, assigneeID        uuid.NullUUID
		scheduledDate, deliveredDate sql.NullTime
	)

	err := rows.Scan(
		&id,
		&resp.TrackingCode,
		&customerID,
		&addressID,
		&resp.OrderDate,
		&scheduledDate,
		&deliveredDate,
		&createdBy,
		&assigneeID,
		&resp.Notes,
		&resp.DeliveryNotes,
		&resp.Status,
		&resp.IsActive,
		&resp.Version,
	)
	if err != nil {
		return OrderResponse{}, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return OrderResponse{}, err
	}
	if resp.CustomerID, err = kernel.UUIDFromBytes(customerID[:]); err != nil {
		return OrderResponse{}, err
	}
	if resp.CreatedBy, err = kernel.UUIDFromBytes(createdBy[:]); err != nil {
		return OrderResponse{}, err
	}

	if addressID.Valid {
		a, addrErr := kernel.UUIDFromBytes(addressID.UUID[:])
		if addrErr != nil {
			return OrderResponse{}, addrErr
		}
		resp.AddressID = &a
	}
	if assigneeID.Valid {
		a, assigneeErr := kernel.UUIDFromBytes(assigneeID.UUID[:])
		if assigneeErr != nil {
			return OrderResponse{}, assigneeErr
		}
		resp.AssigneeID = &a
	}
	if scheduledDate.Valid {
		d := scheduledDate.Time
		resp.ScheduledDate = &d
	}
	if deliveredDate.Valid {
		d := deliveredDate.Time
		resp.DeliveredDate = &d
	}

	return resp, nil
}

// loadOrderItems fetches the active line items of one order.
func loadOrderItems(ctx context.Context, db *gorm.DB, orderID kernel.UUID) ([]ItemResponse, error) {
	items := make([]ItemResponse, 0)

	rows, err := db.WithContext(ctx).Raw(`
		SELECT
			id,
			product_id,
			quantity,
			delivered_quantity,
			notes
		FROM order_items
		WHERE order_id = ? AND is_active = ?
		ORDER BY id
	`, orderID.Bytes(), true).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			item              ItemResponse
			id, productID     uuid.UUID
			deliveredQuantity sql.NullInt64
			notes             sql.NullString
		)

		err = rows.Scan(&id, &productID, &item.Quantity, &deliveredQuantity, &notes)
		if err != nil {
			return nil, err
		}

		if item.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if item.ProductID, err = kernel.UUIDFromBytes(productID[:]); err != nil {
			return nil, err
		}
		if deliveredQuantity.Valid {
			q := int(deliveredQuantity.Int64)
			item.DeliveredQuantity = &q
		}
		if notes.Valid {
			n := notes.String
			item.Notes = &n
		}

		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
