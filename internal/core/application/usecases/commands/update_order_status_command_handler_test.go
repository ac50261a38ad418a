package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUpdateOrderStatusCommandHandler_Handle_ToPreparing(t *testing.T) {
	ctx := t.Context()
	testOrder := testOrderInStatus(t, order.Pending, nil)

	cmd, err := commands.NewUpdateOrderStatusCommand(testOrder.ID(), kernel.NewUUID(), order.Preparing, nil)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	notifier := new(MockNotifier)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		orderRepo.On("AppendHistory", ctx, mock.AnythingOfType("*order.StatusHistoryEntry")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		notifier.On("NotifyOrderUpdated", ctx, testOrder.ID()).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewUpdateOrderStatusCommandHandler(factory, notifier)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Preparing, testOrder.Status())

	entry := orderRepo.Calls[2].Arguments[1].(*order.StatusHistoryEntry)
	assert.Equal(t, order.Preparing, entry.Status())
	assert.True(t, entry.OrderID().IsEqual(testOrder.ID()))

	orderRepo.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestUpdateOrderStatusCommandHandler_Handle_ToDelivered(t *testing.T) {
	ctx := t.Context()
	assigneeID := kernel.NewUUID()
	testOrder := testOrderInStatus(t, order.Dispatched, &assigneeID)

	cmd, err := commands.NewUpdateOrderStatusCommand(testOrder.ID(), kernel.NewUUID(), order.Delivered, nil)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	notifier := new(MockNotifier)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		orderRepo.On("AppendHistory", ctx, mock.AnythingOfType("*order.StatusHistoryEntry")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		notifier.On("NotifyOrderUpdated", ctx, testOrder.ID()).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewUpdateOrderStatusCommandHandler(factory, notifier)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, testOrder.IsDelivered())
	require.NotNil(t, testOrder.DeliveredDate())
}

func TestUpdateOrderStatusCommandHandler_Handle_DeliveredRequiresDispatch(t *testing.T) {
	ctx := t.Context()
	testOrder := testOrderInStatus(t, order.Pending, nil)

	cmd, err := commands.NewUpdateOrderStatusCommand(testOrder.ID(), kernel.NewUUID(), order.Delivered, nil)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewUpdateOrderStatusCommandHandler(factory, silentNotifier{})
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrTransitionForbidden)
	assert.True(t, testOrder.IsPending())
	assert.Nil(t, testOrder.DeliveredDate())
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	orderRepo.AssertNotCalled(t, "AppendHistory", mock.Anything, mock.Anything)
}

func TestUpdateOrderStatusCommandHandler_Handle_DispatchRequiresAssignee(t *testing.T) {
	ctx := t.Context()
	testOrder := testOrderInStatus(t, order.Preparing, nil)

	cmd, err := commands.NewUpdateOrderStatusCommand(testOrder.ID(), kernel.NewUUID(), order.Dispatched, nil)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewUpdateOrderStatusCommandHandler(factory, silentNotifier{})
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrTransitionForbidden)
	assert.True(t, testOrder.IsPreparing())
}

func TestUpdateOrderStatusCommandHandler_Handle_ReturnRequiresDescription(t *testing.T) {
	ctx := t.Context()
	assigneeID := kernel.NewUUID()
	testOrder := testOrderInStatus(t, order.Dispatched, &assigneeID)

	cmd, err := commands.NewUpdateOrderStatusCommand(testOrder.ID(), kernel.NewUUID(), order.Returned, nil)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewUpdateOrderStatusCommandHandler(factory, silentNotifier{})
	err = handler.Handle(ctx, cmd)

	// the ledger entry constructor vetoes the missing reason before any write
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateOrderStatusCommandHandler_Handle_VersionConflict(t *testing.T) {
	ctx := t.Context()
	testOrder := testOrderInStatus(t, order.Pending, nil)

	cmd, err := commands.NewUpdateOrderStatusCommand(testOrder.ID(), kernel.NewUUID(), order.Preparing, nil)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).
			Return(errs.NewVersionIsInvalidErrorWithCause("order version")).
			Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewUpdateOrderStatusCommandHandler(factory, silentNotifier{})
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrVersionIsInvalid)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}
