package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetOrderByTrackingCodeQueryIsNotConstructed = errors.New(
	"GetOrderByTrackingCodeQuery must be created via NewGetOrderByTrackingCodeQuery constructor",
)

// GetOrderByTrackingCodeQuery retrieves an active order by its public
// tracking code. This is the customer-facing lookup: deactivated orders are
// invisible to it.
type GetOrderByTrackingCodeQuery struct {
	trackingCode kernel.TrackingCode
	guard        guard.ConstructorGuard
}

// NewGetOrderByTrackingCodeQuery creates a query from a raw tracking code
// string. The code is parsed and checksum-verified here so malformed input
// fails before touching the database; format and checksum failures surface
// as distinct errors (kernel.ErrTrackingCodeFormat, kernel.ErrTrackingCodeChecksum).
func NewGetOrderByTrackingCodeQuery(rawCode string) (GetOrderByTrackingCodeQuery, error) {
	code, err := kernel.ParseTrackingCode(rawCode)
	if err != nil {
		return GetOrderByTrackingCodeQuery{}, err
	}

	return GetOrderByTrackingCodeQuery{
		trackingCode: code,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// TrackingCode returns the parsed tracking code.
func (q GetOrderByTrackingCodeQuery) TrackingCode() kernel.TrackingCode {
	return q.trackingCode
}

// Validate ensures the query was created through the constructor.
func (q GetOrderByTrackingCodeQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderByTrackingCodeQueryIsNotConstructed)
}
