package order

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// maxDescriptionLength is the upper bound for a ledger entry description after trimming.
const maxDescriptionLength = 1000

var (
	// ErrStatusHistoryEntryIsNotConstructed is returned when an entry was not
	// created through NewStatusHistoryEntry or RestoreStatusHistoryEntry.
	ErrStatusHistoryEntryIsNotConstructed = errors.New(
		"StatusHistoryEntry must be created via NewStatusHistoryEntry or RestoreStatusHistoryEntry",
	)

	// ErrNoHistory is returned when an order has no ledger entries at all.
	// Unreachable through the normal creation path, which always seeds one.
	ErrNoHistory = errors.New("order has no status history")
)

// StatusHistoryEntry is one record of the append-only status ledger.
// The ledger is the system of record for an order's current status: the most
// recent entry by timestamp is authoritative. Entries are never edited or
// removed; corrections are represented as new entries.
//
// A description is required for CANCELADO and DEVUELTO entries (the reason for
// the cancellation or return) and rejected for every other status.
type StatusHistoryEntry struct {
	// id is the unique identifier of the ledger entry
	id kernel.UUID
	// orderID references the order this entry belongs to
	orderID kernel.UUID
	// status is the status recorded by this entry
	status Status
	// description is the reason text carried by cancellation/return entries
	description *string
	// occurredAt is when the status change happened
	occurredAt time.Time
	// actorID references the user who caused the change
	actorID kernel.UUID
	// guard ensures the entry was created via a constructor
	guard guard.ConstructorGuard
}

// NewStatusHistoryEntry creates a validated ledger entry.
//
// Description rules:
//   - required for CANCELADO and DEVUELTO entries
//   - rejected for any other status
//   - at most 1000 characters after trimming; blank-after-trim is rejected
func NewStatusHistoryEntry(
	id kernel.UUID,
	orderID kernel.UUID,
	status Status,
	actorID kernel.UUID,
	occurredAt time.Time,
	description *string,
) (*StatusHistoryEntry, error) {
	entry := &StatusHistoryEntry{
		occurredAt: occurredAt,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		entry.setID(id),
		entry.setOrderID(orderID),
		entry.setStatus(status),
		entry.setActorID(actorID),
	); err != nil {
		return nil, err
	}

	if err := entry.setDescription(description); err != nil {
		return nil, err
	}

	return entry, nil
}

// RestoreStatusHistoryEntry reconstructs a ledger entry from persistent
// storage without re-running the description/status cross-checks, so that
// historical data written under earlier rules always loads.
func RestoreStatusHistoryEntry(
	id kernel.UUID,
	orderID kernel.UUID,
	status Status,
	actorID kernel.UUID,
	occurredAt time.Time,
	description *string,
) (*StatusHistoryEntry, error) {
	entry := &StatusHistoryEntry{
		status:      status,
		description: description,
		occurredAt:  occurredAt,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		entry.setID(id),
		entry.setOrderID(orderID),
		entry.setActorID(actorID),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	return entry, nil
}

// Validate ensures the entry was created via a constructor.
func (e *StatusHistoryEntry) Validate() error {
	if e == nil {
		return ErrStatusHistoryEntryIsNotConstructed
	}
	return e.guard.Validate(ErrStatusHistoryEntryIsNotConstructed)
}

// ID returns the entry's unique identifier.
func (e *StatusHistoryEntry) ID() kernel.UUID {
	return e.id
}

// OrderID returns the order this entry belongs to.
func (e *StatusHistoryEntry) OrderID() kernel.UUID {
	return e.orderID
}

// Status returns the status recorded by this entry.
func (e *StatusHistoryEntry) Status() Status {
	return e.status
}

// Description returns the reason text, or nil for entries without one.
func (e *StatusHistoryEntry) Description() *string {
	return e.description
}

// OccurredAt returns when the status change happened.
func (e *StatusHistoryEntry) OccurredAt() time.Time {
	return e.occurredAt
}

// ActorID returns the user who caused the change.
func (e *StatusHistoryEntry) ActorID() kernel.UUID {
	return e.actorID
}

// CurrentStatus returns the status of the most recent entry in a timeline.
// Returns ErrNoHistory for an empty timeline. Entries are compared by their
// occurredAt timestamps; input order does not matter.
func CurrentStatus(entries []*StatusHistoryEntry) (Status, error) {
	if len(entries) == 0 {
		return Unknown, ErrNoHistory
	}

	sorted := make([]*StatusHistoryEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].occurredAt.Before(sorted[j].occurredAt)
	})

	return sorted[len(sorted)-1].status, nil
}

func (e *StatusHistoryEntry) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	e.id = id
	return nil
}

func (e *StatusHistoryEntry) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderID", err)
	}
	e.orderID = orderID
	return nil
}

func (e *StatusHistoryEntry) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	e.status = status
	return nil
}

func (e *StatusHistoryEntry) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("actorID", err)
	}
	e.actorID = actorID
	return nil
}

func (e *StatusHistoryEntry) setDescription(description *string) error {
	if description == nil {
		if e.status.RequiresDescription() {
			return errs.NewValueIsRequiredErrorWithCause(
				"description",
				fmt.Errorf("a description is required for %s entries", e.status),
			)
		}
		return nil
	}

	if !e.status.RequiresDescription() {
		return errs.NewValueIsInvalidErrorWithCause(
			"description",
			fmt.Errorf("a description is only allowed for %s and %s entries", Cancelled, Returned),
		)
	}

	trimmed := strings.TrimSpace(*description)
	if trimmed == "" {
		return errs.NewValueIsRequiredErrorWithCause(
			"description",
			errors.New("description is blank"),
		)
	}
	// limits are in characters, not bytes
	if length := utf8.RuneCountInString(trimmed); length > maxDescriptionLength {
		return errs.NewValueIsOutOfRangeError("description length", length, 1, maxDescriptionLength)
	}

	e.description = &trimmed
	return nil
}
