package commands_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateOrderCommand(t *testing.T) {
	orderID := kernel.NewUUID()
	customerID := kernel.NewUUID()
	actorID := kernel.NewUUID()

	t.Run("should create a valid command", func(t *testing.T) {
		scheduled := time.Now().Add(48 * time.Hour)

		cmd, err := commands.NewCreateOrderCommand(
			orderID, customerID, nil, actorID, &scheduled, "notes", "ring twice", testItemSpecs(),
		)

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.True(t, cmd.OrderID().IsEqual(orderID))
		assert.True(t, cmd.CustomerID().IsEqual(customerID))
		assert.True(t, cmd.CreatedBy().IsEqual(actorID))
		require.NotNil(t, cmd.ScheduledDate())
		assert.Equal(t, "notes", cmd.Notes())
		assert.Equal(t, "ring twice", cmd.DeliveryNotes())
		assert.Len(t, cmd.Items(), 1)
	})

	t.Run("should fail without a customer", func(t *testing.T) {
		var invalid kernel.UUID

		_, err := commands.NewCreateOrderCommand(orderID, invalid, nil, actorID, nil, "", "", testItemSpecs())

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should fail without items", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(orderID, customerID, nil, actorID, nil, "", "", nil)

		require.ErrorIs(t, err, commands.ErrItemsAreRequired)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var cmd commands.CreateOrderCommand

		require.ErrorIs(t, cmd.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
	})
}
