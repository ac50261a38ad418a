package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of an order as recorded in the status
// ledger. The ledger is the authoritative source: the status carried by an
// Order is a cached copy of its most recent ledger entry, and every change
// flows through the transition matrix below.
//
// State transitions:
//
//	PENDIENTE <──> PREPARANDO ──> DESPACHADO ──> ENTREGADO
//	     │              │               │
//	     └──────────────┴───────────────┴──> CANCELADO / DEVUELTO
//
// ENTREGADO and CANCELADO are terminal. The wire names keep the Spanish codes
// of the originating system because issued data and downstream consumers
// depend on them.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending (PENDIENTE) is the initial status of every order.
	Pending

	// Preparing (PREPARANDO) indicates the order is being prepared for dispatch.
	Preparing

	// Dispatched (DESPACHADO) indicates the order has left with its assignee.
	Dispatched

	// Delivered (ENTREGADO) is a terminal status: the order reached the customer.
	Delivered

	// Cancelled (CANCELADO) is a terminal status recorded purely via the ledger.
	Cancelled

	// Returned (DEVUELTO) indicates the order came back undelivered.
	Returned
)

// getStatusNames maps every Status to its ledger wire name.
func getStatusNames() map[Status]string {
	return map[Status]string{
		Unknown:    "UNKNOWN",
		Pending:    "PENDIENTE",
		Preparing:  "PREPARANDO",
		Dispatched: "DESPACHADO",
		Delivered:  "ENTREGADO",
		Cancelled:  "CANCELADO",
		Returned:   "DEVUELTO",
	}
}

// getValidStatusNames maps only valid Status values to their wire names.
func getValidStatusNames() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:    "PENDIENTE",
		Preparing:  "PREPARANDO",
		Dispatched: "DESPACHADO",
		Delivered:  "ENTREGADO",
		Cancelled:  "CANCELADO",
		Returned:   "DEVUELTO",
	}
}

// StatusFromName parses a ledger wire name ("PENDIENTE", "DESPACHADO", ...)
// into a Status. Returns an error for any unrecognized name.
func StatusFromName(name string) (Status, error) {
	for status, n := range getValidStatusNames() {
		if n == name {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status name", name))
}

// Validate checks if the Status value is valid.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusNames()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the ledger wire name of the status, or "UNKNOWN" for invalid values.
func (s Status) String() string {
	if name, ok := getStatusNames()[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// TransitionTo validates the transition matrix and returns the next status.
//
// Rules:
//   - The new status must differ from the current one.
//   - No transition leaves ENTREGADO or CANCELADO.
//   - ENTREGADO requires the current status to be DESPACHADO.
//   - PREPARANDO requires PENDIENTE; PENDIENTE requires PREPARANDO.
//   - CANCELADO and DEVUELTO are reachable from any non-terminal status.
//   - DESPACHADO carries an additional aggregate-level precondition (an
//     assignee must be set) that the matrix alone cannot see; Order.ChangeStatus
//     enforces it.
//
// Matrix violations return a StateConflictError for same-status and terminal
// cases, and a TransitionForbiddenError for violated status-specific
// preconditions.
func (s Status) TransitionTo(next Status) (Status, error) {
	if err := next.Validate(); err != nil {
		return Unknown, err
	}

	if next == s {
		return Unknown, errs.NewStateConflictErrorWithCause(
			"status is unchanged",
			fmt.Errorf("order is already in status %s", s),
		)
	}

	if s.IsTerminal() {
		return Unknown, errs.NewStateConflictErrorWithCause(
			"status is terminal",
			fmt.Errorf("no transitions are allowed from %s", s),
		)
	}

	switch next {
	case Delivered:
		if s != Dispatched {
			return Unknown, errs.NewTransitionForbiddenErrorWithCause(
				s.String(), next.String(),
				fmt.Errorf("only a %s order can be marked %s", Dispatched, Delivered),
			)
		}
	case Preparing:
		if s != Pending {
			return Unknown, errs.NewTransitionForbiddenErrorWithCause(
				s.String(), next.String(),
				fmt.Errorf("only a %s order can move to %s", Pending, Preparing),
			)
		}
	case Pending:
		if s != Preparing {
			return Unknown, errs.NewTransitionForbiddenErrorWithCause(
				s.String(), next.String(),
				fmt.Errorf("only a %s order can move back to %s", Preparing, Pending),
			)
		}
	case Dispatched, Cancelled, Returned:
		// allowed from any non-terminal status; DESPACHADO additionally
		// requires an assignee, checked by the aggregate
	}

	return next, nil
}

// RequiresDescription reports whether a ledger entry for this status must
// carry a description. Cancellations and returns always record their reason.
func (s Status) RequiresDescription() bool {
	return s == Cancelled || s == Returned
}
