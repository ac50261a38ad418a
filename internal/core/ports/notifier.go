package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
)

// OrderNotifier publishes best-effort notifications about order lifecycle
// events. Notifications are fire-and-forget: they are emitted strictly after
// the owning transaction commits, and a delivery failure never fails or rolls
// back the operation that triggered it. Implementations log failures and move
// on.
type OrderNotifier interface {
	// NotifyOrderUpdated announces that the order changed in a way visible
	// to subscribers (status, assignment, schedule, items).
	NotifyOrderUpdated(ctx context.Context, orderID kernel.UUID)

	// NotifyOrderAssigned announces that the order was assigned to the
	// employee linked to the given user identity.
	NotifyOrderAssigned(ctx context.Context, orderID kernel.UUID, userID kernel.UUID)
}
