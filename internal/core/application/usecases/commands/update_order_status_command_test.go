package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUpdateOrderStatusCommand(t *testing.T) {
	t.Run("should create a valid command", func(t *testing.T) {
		orderID := kernel.NewUUID()
		actorID := kernel.NewUUID()

		cmd, err := commands.NewUpdateOrderStatusCommand(orderID, actorID, order.Preparing, nil)

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.Equal(t, order.Preparing, cmd.NewStatus())
		assert.Nil(t, cmd.Description())
	})

	t.Run("should carry the description for return entries", func(t *testing.T) {
		description := "damaged in transit"

		cmd, err := commands.NewUpdateOrderStatusCommand(
			kernel.NewUUID(), kernel.NewUUID(), order.Returned, &description,
		)

		require.NoError(t, err)
		require.NotNil(t, cmd.Description())
		assert.Equal(t, "damaged in transit", *cmd.Description())
	})

	t.Run("should reject an invalid target status", func(t *testing.T) {
		_, err := commands.NewUpdateOrderStatusCommand(kernel.NewUUID(), kernel.NewUUID(), order.Unknown, nil)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var cmd commands.UpdateOrderStatusCommand

		require.ErrorIs(t, cmd.Validate(), commands.ErrUpdateOrderStatusCommandIsNotConstructed)
	})
}
