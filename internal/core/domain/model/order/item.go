package order

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

const (
	// maxItemQuantity is the upper bound for a single line item's requested quantity.
	maxItemQuantity = 10000
	// maxItemNotesLength is the upper bound for line item notes after trimming.
	maxItemNotesLength = 500
)

// ErrItemIsNotConstructed is returned when an Item instance was not created
// through NewItem or RestoreItem.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem or RestoreItem")

// Item is a line item belonging to an Order: a product reference with a
// requested quantity and, once delivery progresses, a delivered quantity.
// Items are created together with their order and replaced wholesale on
// update; there is no per-item diff or merge.
//
// Invariants:
//   - product reference must be set
//   - quantity is a positive integer not exceeding 10 000
//   - notes, when present, are at most 500 characters after trimming; an
//     empty trimmed string normalizes to absent
type Item struct {
	// id is the unique identifier of the line item
	id kernel.UUID
	// productID references the ordered product
	productID kernel.UUID
	// quantity is the requested quantity
	quantity int
	// deliveredQuantity is the quantity actually delivered (nil until recorded)
	deliveredQuantity *int
	// notes is an optional free-text remark for this line
	notes *string
	// isActive is false once the item has been retired by a wholesale replacement
	isActive bool
	// guard ensures the item was created via a constructor
	guard guard.ConstructorGuard
}

// NewItem creates a validated line item.
//
// Validation rules:
//   - id and productID must be valid UUIDs
//   - quantity must be in [1, 10 000]
//   - notes longer than 500 characters after trimming are rejected; an empty
//     trimmed string is stored as absent
func NewItem(id kernel.UUID, productID kernel.UUID, quantity int, notes *string) (*Item, error) {
	item := &Item{
		isActive: true,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setID(id),
		item.setProductID(productID),
		item.setQuantity(quantity),
		item.setNotes(notes),
	); err != nil {
		return nil, err
	}

	return item, nil
}

// RestoreItem reconstructs a line item from persistent storage, including the
// delivered quantity and active flag that NewItem never sets.
func RestoreItem(
	id kernel.UUID,
	productID kernel.UUID,
	quantity int,
	deliveredQuantity *int,
	notes *string,
	isActive bool,
) (*Item, error) {
	item, err := NewItem(id, productID, quantity, notes)
	if err != nil {
		return nil, err
	}

	if deliveredQuantity != nil && *deliveredQuantity < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"deliveredQuantity",
			fmt.Errorf("%d is negative", *deliveredQuantity),
		)
	}

	item.deliveredQuantity = deliveredQuantity
	item.isActive = isActive
	return item, nil
}

// Validate ensures the Item was created via a constructor.
func (i *Item) Validate() error {
	if i == nil {
		return ErrItemIsNotConstructed
	}
	return i.guard.Validate(ErrItemIsNotConstructed)
}

// ID returns the line item's unique identifier.
func (i *Item) ID() kernel.UUID {
	return i.id
}

// ProductID returns the referenced product.
func (i *Item) ProductID() kernel.UUID {
	return i.productID
}

// Quantity returns the requested quantity.
func (i *Item) Quantity() int {
	return i.quantity
}

// DeliveredQuantity returns the delivered quantity, or nil if none was recorded.
func (i *Item) DeliveredQuantity() *int {
	return i.deliveredQuantity
}

// Notes returns the optional line notes, or nil when absent.
func (i *Item) Notes() *string {
	return i.notes
}

// IsActive reports whether the item belongs to the order's current item set.
func (i *Item) IsActive() bool {
	return i.isActive
}

// RecordDeliveredQuantity sets the quantity actually delivered for this line.
// The value must be positive; delivering more than requested is allowed and
// simply marks the line fully delivered.
func (i *Item) RecordDeliveredQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"deliveredQuantity",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}

	i.deliveredQuantity = &quantity
	return nil
}

// IsFullyDelivered reports whether the delivered quantity covers the requested one.
func (i *Item) IsFullyDelivered() bool {
	return i.deliveredQuantity != nil && *i.deliveredQuantity >= i.quantity
}

// HasNotes reports whether the line carries notes.
func (i *Item) HasNotes() bool {
	return i.notes != nil
}

// CanBeModified reports whether the line may still change: fully delivered
// lines are frozen.
func (i *Item) CanBeModified() bool {
	return !i.IsFullyDelivered()
}

func (i *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Item) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("productID", err)
	}
	i.productID = productID
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity <= 0 || quantity > maxItemQuantity {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, maxItemQuantity)
	}
	i.quantity = quantity
	return nil
}

func (i *Item) setNotes(notes *string) error {
	if notes == nil {
		return nil
	}

	trimmed := strings.TrimSpace(*notes)
	if trimmed == "" {
		// empty notes normalize to absent
		return nil
	}
	// limits are in characters, not bytes
	if length := utf8.RuneCountInString(trimmed); length > maxItemNotesLength {
		return errs.NewValueIsOutOfRangeError("notes length", length, 0, maxItemNotesLength)
	}

	i.notes = &trimmed
	return nil
}
