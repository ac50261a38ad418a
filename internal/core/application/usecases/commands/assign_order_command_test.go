package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAssignOrderCommand(t *testing.T) {
	t.Run("should create a valid command", func(t *testing.T) {
		orderID := kernel.NewUUID()
		employeeID := kernel.NewUUID()

		cmd, err := commands.NewAssignOrderCommand(orderID, employeeID)

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.True(t, cmd.OrderID().IsEqual(orderID))
		assert.True(t, cmd.EmployeeID().IsEqual(employeeID))
	})

	t.Run("should fail with invalid identifiers", func(t *testing.T) {
		var invalid kernel.UUID

		_, err := commands.NewAssignOrderCommand(invalid, kernel.NewUUID())
		require.Error(t, err)

		_, err = commands.NewAssignOrderCommand(kernel.NewUUID(), invalid)
		require.Error(t, err)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var cmd commands.AssignOrderCommand

		require.ErrorIs(t, cmd.Validate(), commands.ErrAssignOrderCommandIsNotConstructed)
	})
}
