package order_test

import (
	"strings"
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEntryAt(t *testing.T, orderID kernel.UUID, status order.Status, occurredAt time.Time) *order.StatusHistoryEntry {
	t.Helper()
	var description *string
	if status.RequiresDescription() {
		d := "reason"
		description = &d
	}

	entry, err := order.NewStatusHistoryEntry(kernel.NewUUID(), orderID, status, kernel.NewUUID(), occurredAt, description)
	require.NoError(t, err)
	return entry
}

func TestNewStatusHistoryEntry(t *testing.T) {
	orderID := kernel.NewUUID()
	actorID := kernel.NewUUID()
	now := time.Now()

	t.Run("should create an entry without description", func(t *testing.T) {
		entry, err := order.NewStatusHistoryEntry(kernel.NewUUID(), orderID, order.Preparing, actorID, now, nil)

		require.NoError(t, err)
		require.NoError(t, entry.Validate())
		assert.True(t, entry.OrderID().IsEqual(orderID))
		assert.Equal(t, order.Preparing, entry.Status())
		assert.True(t, entry.ActorID().IsEqual(actorID))
		assert.True(t, entry.OccurredAt().Equal(now))
		assert.Nil(t, entry.Description())
	})

	t.Run("cancellation and return require a description", func(t *testing.T) {
		for _, status := range []order.Status{order.Cancelled, order.Returned} {
			_, err := order.NewStatusHistoryEntry(kernel.NewUUID(), orderID, status, actorID, now, nil)
			require.ErrorIs(t, err, errs.ErrValueIsRequired, "status %s", status)

			description := "  customer refused the package  "
			entry, err := order.NewStatusHistoryEntry(kernel.NewUUID(), orderID, status, actorID, now, &description)
			require.NoError(t, err, "status %s", status)
			require.NotNil(t, entry.Description())
			assert.Equal(t, "customer refused the package", *entry.Description())
		}
	})

	t.Run("a description is rejected for every other status", func(t *testing.T) {
		description := "should not be here"
		for _, status := range []order.Status{order.Pending, order.Preparing, order.Dispatched, order.Delivered} {
			_, err := order.NewStatusHistoryEntry(kernel.NewUUID(), orderID, status, actorID, now, &description)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid, "status %s", status)
		}
	})

	t.Run("blank and oversized descriptions are rejected", func(t *testing.T) {
		blank := "   "
		_, err := order.NewStatusHistoryEntry(kernel.NewUUID(), orderID, order.Cancelled, actorID, now, &blank)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		oversized := strings.Repeat("x", 1001)
		_, err = order.NewStatusHistoryEntry(kernel.NewUUID(), orderID, order.Cancelled, actorID, now, &oversized)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("description limit counts characters, not bytes", func(t *testing.T) {
		description := strings.Repeat("ó", 1000)
		entry, err := order.NewStatusHistoryEntry(kernel.NewUUID(), orderID, order.Cancelled, actorID, now, &description)
		require.NoError(t, err)
		assert.Equal(t, description, *entry.Description())

		oversized := strings.Repeat("ó", 1001)
		_, err = order.NewStatusHistoryEntry(kernel.NewUUID(), orderID, order.Cancelled, actorID, now, &oversized)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should reject an invalid status", func(t *testing.T) {
		_, err := order.NewStatusHistoryEntry(kernel.NewUUID(), orderID, order.Unknown, actorID, now, nil)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject missing references", func(t *testing.T) {
		var invalid kernel.UUID

		_, err := order.NewStatusHistoryEntry(kernel.NewUUID(), invalid, order.Pending, actorID, now, nil)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, err = order.NewStatusHistoryEntry(kernel.NewUUID(), orderID, order.Pending, invalid, now, nil)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestRestoreStatusHistoryEntry(t *testing.T) {
	t.Run("restores without re-running description cross-checks", func(t *testing.T) {
		// historical entries may carry descriptions written under earlier rules
		description := "imported remark"

		entry, err := order.RestoreStatusHistoryEntry(
			kernel.NewUUID(), kernel.NewUUID(), order.Preparing, kernel.NewUUID(), time.Now(), &description,
		)

		require.NoError(t, err)
		require.NotNil(t, entry.Description())
		assert.Equal(t, "imported remark", *entry.Description())
	})

	t.Run("still rejects an invalid status", func(t *testing.T) {
		_, err := order.RestoreStatusHistoryEntry(
			kernel.NewUUID(), kernel.NewUUID(), order.Unknown, kernel.NewUUID(), time.Now(), nil,
		)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestCurrentStatus(t *testing.T) {
	orderID := kernel.NewUUID()
	base := time.Now()

	t.Run("latest entry by timestamp wins regardless of input order", func(t *testing.T) {
		entries := []*order.StatusHistoryEntry{
			newEntryAt(t, orderID, order.Dispatched, base.Add(2*time.Hour)),
			newEntryAt(t, orderID, order.Pending, base),
			newEntryAt(t, orderID, order.Preparing, base.Add(time.Hour)),
		}

		status, err := order.CurrentStatus(entries)

		require.NoError(t, err)
		assert.Equal(t, order.Dispatched, status)
	})

	t.Run("single entry is authoritative", func(t *testing.T) {
		status, err := order.CurrentStatus([]*order.StatusHistoryEntry{
			newEntryAt(t, orderID, order.Pending, base),
		})

		require.NoError(t, err)
		assert.Equal(t, order.Pending, status)
	})

	t.Run("empty timeline fails", func(t *testing.T) {
		_, err := order.CurrentStatus(nil)

		require.ErrorIs(t, err, order.ErrNoHistory)
	})
}
