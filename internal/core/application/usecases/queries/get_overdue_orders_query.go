package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrGetOverdueOrdersQueryIsNotConstructed = errors.New(
	"GetOverdueOrdersQuery must be created via NewGetOverdueOrdersQuery constructor",
)

// GetOverdueOrdersQuery retrieves all active orders whose scheduled date has
// passed without the order reaching ENTREGADO or CANCELADO. The hourly
// overdue check and the operations dashboard both run this query.
type GetOverdueOrdersQuery struct {
	asOf  time.Time
	guard guard.ConstructorGuard
}

// NewGetOverdueOrdersQuery creates an overdue query evaluated against the
// given reference time.
func NewGetOverdueOrdersQuery(asOf time.Time) (GetOverdueOrdersQuery, error) {
	if asOf.IsZero() {
		return GetOverdueOrdersQuery{}, errs.NewValueIsRequiredError("asOf")
	}

	return GetOverdueOrdersQuery{
		asOf:  asOf,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// AsOf returns the reference time overdue status is evaluated against.
func (q GetOverdueOrdersQuery) AsOf() time.Time {
	return q.asOf
}

// Validate ensures the query was created through the constructor.
func (q GetOverdueOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOverdueOrdersQueryIsNotConstructed)
}

// GetOverdueOrdersQueryResponse represents one overdue order.
type GetOverdueOrdersQueryResponse struct {
	ID            kernel.UUID
	TrackingCode  string
	Status        string
	ScheduledDate time.Time
	AssigneeID    *kernel.UUID
}
