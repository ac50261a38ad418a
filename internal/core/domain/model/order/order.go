package order

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// urgentPendingAge is how long an order may stay PENDIENTE before it requires
// urgent attention even without a missed schedule.
const urgentPendingAge = 3 * 24 * time.Hour

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through NewOrder or RestoreOrder. This ensures all orders are properly validated.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

// Order represents a fulfillment order in the system. It is the aggregate root
// that manages the order lifecycle from creation through assignment, dispatch
// and delivery, including cancellation and soft deletion.
//
// The status ledger is the authoritative source of the order's state: the
// status field here is a cached copy of the most recent ledger entry, updated
// in the same transaction that appends the entry. Every status predicate reads
// that cached status; the assignee, scheduled date and delivered date are
// orthogonal facts that the lifecycle guards cross-check.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and a checksum-valid tracking code
//   - Must reference a customer and a creator
//   - Must carry at least one line item
//   - Status transitions follow the matrix enforced by Status.TransitionTo
//   - A delivered date can only be set from the DESPACHADO status
//   - Orders are never physically deleted; Deactivate clears the active flag
//
// The version field is an optimistic concurrency token: the repository
// compares it on every write and rejects stale writers, which closes the
// guard-then-write race between concurrent operations on the same order.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// trackingCode is the human-shareable, checksum-verified identifier
	trackingCode kernel.TrackingCode

	// customerID references the ordering customer
	customerID kernel.UUID

	// addressID references the delivery address (nil when not specified)
	addressID *kernel.UUID

	// orderDate is when the order was placed
	orderDate time.Time

	// scheduledDate is the planned delivery date (nil if unscheduled)
	scheduledDate *time.Time

	// deliveredDate is when the order was delivered (nil until then)
	deliveredDate *time.Time

	// createdBy references the user who created the order
	createdBy kernel.UUID

	// assigneeID is the assigned employee's ID (nil if unassigned)
	assigneeID *kernel.UUID

	// notes is free-text general remarks
	notes string

	// deliveryNotes is free-text instructions for the delivery
	deliveryNotes string

	// status is the cached copy of the latest ledger entry's status
	status Status

	// items is the order's current line item set
	items []*Item

	// isActive is false once the order has been soft-deleted
	isActive bool

	// version is the optimistic concurrency token
	version int64

	// guard ensures the order was created via a constructor
	guard guard.ConstructorGuard
}

// NewOrder creates a new Order in the PENDIENTE status with validation.
// This is the only way to create a fresh order; RestoreOrder reconstructs
// persisted ones.
//
// Parameters:
//   - id: unique identifier (must be a valid UUID)
//   - trackingCode: generated, checksum-valid tracking code
//   - customerID: ordering customer (required)
//   - addressID: delivery address (optional)
//   - createdBy: creating user (required)
//   - orderDate: when the order was placed
//   - scheduledDate: planned delivery date (optional; future-date enforcement
//     belongs to input validation, not this aggregate)
//   - notes, deliveryNotes: free-text remarks
//   - items: at least one validated line item
//
// The caller is responsible for seeding the matching PENDIENTE ledger entry in
// the same transaction that persists the order.
func NewOrder(
	id kernel.UUID,
	trackingCode kernel.TrackingCode,
	customerID kernel.UUID,
	addressID *kernel.UUID,
	createdBy kernel.UUID,
	orderDate time.Time,
	scheduledDate *time.Time,
	notes string,
	deliveryNotes string,
	items []*Item,
) (*Order, error) {
	order := &Order{
		orderDate:     orderDate,
		notes:         notes,
		deliveryNotes: deliveryNotes,
		status:        Pending,
		isActive:      true,
		version:       1,
		guard:         guard.NewConstructorGuard(),
	}

	if scheduledDate != nil {
		d := *scheduledDate
		order.scheduledDate = &d
	}

	if err := errors.Join(
		order.setID(id),
		order.setTrackingCode(trackingCode),
		order.setCustomerID(customerID),
		order.setAddressID(addressID),
		order.setCreatedBy(createdBy),
		order.setItems(items),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// RestoreOrder reconstructs an Order aggregate from persistent storage.
// The status must be the one cached from the latest ledger entry.
func RestoreOrder(
	id kernel.UUID,
	trackingCode kernel.TrackingCode,
	customerID kernel.UUID,
	addressID *kernel.UUID,
	orderDate time.Time,
	scheduledDate *time.Time,
	deliveredDate *time.Time,
	createdBy kernel.UUID,
	assigneeID *kernel.UUID,
	notes string,
	deliveryNotes string,
	status Status,
	isActive bool,
	version int64,
	items []*Item,
) (*Order, error) {
	order, err := NewOrder(id, trackingCode, customerID, addressID, createdBy, orderDate, scheduledDate, notes, deliveryNotes, items)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}
	if assigneeID != nil {
		if err = assigneeID.Validate(); err != nil {
			return nil, err
		}
		a := *assigneeID
		order.assigneeID = &a
	}
	if deliveredDate != nil {
		d := *deliveredDate
		order.deliveredDate = &d
	}
	if version < 1 {
		return nil, errs.NewVersionIsInvalidError("order version", fmt.Errorf("%d is not a positive version", version))
	}

	order.status = status
	order.isActive = isActive
	order.version = version
	return order, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || o.guard.Validate(ErrOrderIsNotConstructed) != nil {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// TrackingCode returns the order's tracking code.
func (o *Order) TrackingCode() kernel.TrackingCode {
	return o.trackingCode
}

// CustomerID returns the ordering customer's identifier.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// AddressID returns the delivery address reference, or nil.
func (o *Order) AddressID() *kernel.UUID {
	return o.addressID
}

// OrderDate returns when the order was placed.
func (o *Order) OrderDate() time.Time {
	return o.orderDate
}

// ScheduledDate returns the planned delivery date, or nil.
func (o *Order) ScheduledDate() *time.Time {
	return o.scheduledDate
}

// DeliveredDate returns when the order was delivered, or nil.
func (o *Order) DeliveredDate() *time.Time {
	return o.deliveredDate
}

// CreatedBy returns the creating user's identifier.
func (o *Order) CreatedBy() kernel.UUID {
	return o.createdBy
}

// Assignee returns the assigned employee's ID, or nil if unassigned.
func (o *Order) Assignee() *kernel.UUID {
	return o.assigneeID
}

// Notes returns the general remarks.
func (o *Order) Notes() string {
	return o.notes
}

// DeliveryNotes returns the delivery instructions.
func (o *Order) DeliveryNotes() string {
	return o.deliveryNotes
}

// Status returns the cached current status (the latest ledger entry's status).
func (o *Order) Status() Status {
	return o.status
}

// Items returns the order's current line item set.
func (o *Order) Items() []*Item {
	return o.items
}

// IsActive reports whether the order has not been soft-deleted.
func (o *Order) IsActive() bool {
	return o.isActive
}

// Version returns the optimistic concurrency token.
func (o *Order) Version() int64 {
	return o.version
}

// IsPending reports whether the current status is PENDIENTE.
func (o *Order) IsPending() bool {
	return o.status == Pending
}

// IsPreparing reports whether the current status is PREPARANDO.
func (o *Order) IsPreparing() bool {
	return o.status == Preparing
}

// IsDispatched reports whether the current status is DESPACHADO.
// The ledger is authoritative: having an assignee does not by itself make an
// order dispatched.
func (o *Order) IsDispatched() bool {
	return o.status == Dispatched
}

// IsDelivered reports whether the current status is ENTREGADO.
func (o *Order) IsDelivered() bool {
	return o.status == Delivered
}

// IsCancelled reports whether the current status is CANCELADO.
func (o *Order) IsCancelled() bool {
	return o.status == Cancelled
}

// IsReturned reports whether the current status is DEVUELTO.
func (o *Order) IsReturned() bool {
	return o.status == Returned
}

// IsScheduled reports whether a delivery date has been planned.
func (o *Order) IsScheduled() bool {
	return o.scheduledDate != nil
}

// IsAssigned reports whether an employee is assigned.
func (o *Order) IsAssigned() bool {
	return o.assigneeID != nil
}

// IsOverdue reports whether the planned delivery date has passed without the
// order being delivered or cancelled.
func (o *Order) IsOverdue(now time.Time) bool {
	return o.IsScheduled() && !o.IsDelivered() && !o.IsCancelled() && now.After(*o.scheduledDate)
}

// RequiresUrgentAttention reports whether the order is overdue, or has sat in
// PENDIENTE for more than three days since it was placed.
func (o *Order) RequiresUrgentAttention(now time.Time) bool {
	return o.IsOverdue(now) || (o.IsPending() && now.Sub(o.orderDate) > urgentPendingAge)
}

// Assign assigns the order to an employee.
//
// Guard: the order must be active, not cancelled, not delivered, and not
// already assigned. Assignment itself appends no ledger entry; only a status
// change does.
func (o *Order) Assign(employeeID kernel.UUID) error {
	if err := employeeID.Validate(); err != nil {
		return err
	}

	if !o.isActive {
		return errs.NewStateConflictError("order is deactivated")
	}
	if o.IsCancelled() {
		return errs.NewStateConflictError("order is cancelled")
	}
	if o.IsDelivered() {
		return errs.NewStateConflictError("order is already delivered")
	}
	if o.IsAssigned() {
		return errs.NewStateConflictError("order is already assigned")
	}

	o.assigneeID = &employeeID
	return nil
}

// Unassign removes the current assignee.
//
// Guard: the order must be assigned and in PENDIENTE, PREPARANDO or
// DESPACHADO. Delivered and cancelled orders keep their assignee for the
// record.
func (o *Order) Unassign() error {
	if !o.IsAssigned() {
		return errs.NewStateConflictError("order is not assigned")
	}
	if !o.IsPending() && !o.IsPreparing() && !o.IsDispatched() {
		return errs.NewStateConflictErrorWithCause(
			"order cannot be unassigned",
			fmt.Errorf("status %s does not allow unassignment", o.status),
		)
	}

	o.assigneeID = nil
	return nil
}

// Schedule sets the planned delivery date.
//
// Guard: the order must not be cancelled or delivered. This layer deliberately
// performs no future-date check; that is input validation's job.
func (o *Order) Schedule(date time.Time) error {
	if o.IsCancelled() {
		return errs.NewStateConflictError("order is cancelled")
	}
	if o.IsDelivered() {
		return errs.NewStateConflictError("order is already delivered")
	}

	o.scheduledDate = &date
	return nil
}

// MarkDelivered records the delivery timestamp.
//
// Guard: only a DESPACHADO order can be marked delivered. The status change to
// ENTREGADO is a separate ChangeStatus call sequenced by the orchestrator.
func (o *Order) MarkDelivered(now time.Time) error {
	if o.status != Dispatched {
		return errs.NewTransitionForbiddenErrorWithCause(
			o.status.String(), Delivered.String(),
			errors.New("order is not dispatched"),
		)
	}

	o.deliveredDate = &now
	return nil
}

// ValidateCancel vetoes illegal cancellation. Cancellation mutates no order
// fields beyond the cached status; it is recorded via a new ledger entry.
func (o *Order) ValidateCancel() error {
	if o.IsDelivered() {
		return errs.NewStateConflictError("order is already delivered")
	}
	return nil
}

// ChangeStatus moves the cached status through the transition matrix.
// DESPACHADO additionally requires an assignee, cross-checking the
// ledger-derived state against the orthogonal assignment fact.
//
// ChangeStatus does not flip the assignee or delivered date; those are
// separate operations the orchestrator sequences around the matching ledger
// append.
func (o *Order) ChangeStatus(next Status) error {
	if next == Dispatched && !o.IsAssigned() {
		return errs.NewTransitionForbiddenErrorWithCause(
			o.status.String(), next.String(),
			errors.New("order has no assignee"),
		)
	}

	newStatus, err := o.status.TransitionTo(next)
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// UpdateNotes replaces the general and delivery notes. A nil argument keeps
// the current value.
func (o *Order) UpdateNotes(notes *string, deliveryNotes *string) {
	if notes != nil {
		o.notes = *notes
	}
	if deliveryNotes != nil {
		o.deliveryNotes = *deliveryNotes
	}
}

// ReplaceItems swaps the entire line item set. Replacement is wholesale by
// design: the previous set is retired and the new set inserted, with no
// per-item merge.
//
// Guard: the order must not be delivered or cancelled.
func (o *Order) ReplaceItems(items []*Item) error {
	if o.IsDelivered() {
		return errs.NewStateConflictError("order is already delivered")
	}
	if o.IsCancelled() {
		return errs.NewStateConflictError("order is cancelled")
	}

	return o.setItems(items)
}

// Deactivate soft-deletes the order. The record and its ledger stay queryable.
func (o *Order) Deactivate() error {
	if !o.isActive {
		return errs.NewStateConflictError("order is already deactivated")
	}

	o.isActive = false
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setTrackingCode(code kernel.TrackingCode) error {
	if err := code.Validate(); err != nil {
		return err
	}
	o.trackingCode = code
	return nil
}

func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customerID", err)
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setAddressID(addressID *kernel.UUID) error {
	if addressID == nil {
		return nil
	}
	if err := addressID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("addressID", err)
	}
	a := *addressID
	o.addressID = &a
	return nil
}

func (o *Order) setCreatedBy(createdBy kernel.UUID) error {
	if err := createdBy.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("createdBy", err)
	}
	o.createdBy = createdBy
	return nil
}

func (o *Order) setItems(items []*Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("order items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.items = items
	return nil
}
