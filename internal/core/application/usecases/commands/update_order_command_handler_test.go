package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUpdateOrderCommandHandler_Handle_NotesOnly(t *testing.T) {
	ctx := t.Context()
	testOrder := testOrderInStatus(t, order.Pending, nil)
	notes := "call before arriving"

	cmd, err := commands.NewUpdateOrderCommand(testOrder.ID(), &notes, nil, nil)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	notifier := new(MockNotifier)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		notifier.On("NotifyOrderUpdated", ctx, testOrder.ID()).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewUpdateOrderCommandHandler(factory, notifier)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, "call before arriving", testOrder.Notes())
	orderRepo.AssertNotCalled(t, "ReplaceItems", mock.Anything, mock.Anything)
}

func TestUpdateOrderCommandHandler_Handle_ReplacesItems(t *testing.T) {
	ctx := t.Context()
	testOrder := testOrderInStatus(t, order.Preparing, nil)
	replacement := testItemSpecs()

	cmd, err := commands.NewUpdateOrderCommand(testOrder.ID(), nil, nil, replacement)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	notifier := new(MockNotifier)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		orderRepo.On("ReplaceItems", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		notifier.On("NotifyOrderUpdated", ctx, testOrder.ID()).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewUpdateOrderCommandHandler(factory, notifier)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.Len(t, testOrder.Items(), 1)
	assert.True(t, testOrder.Items()[0].ProductID().IsEqual(replacement[0].ProductID))
	orderRepo.AssertExpectations(t)
}

func TestUpdateOrderCommandHandler_Handle_DeliveredOrderRejectsItems(t *testing.T) {
	ctx := t.Context()
	testOrder := testOrderInStatus(t, order.Delivered, nil)

	cmd, err := commands.NewUpdateOrderCommand(testOrder.ID(), nil, nil, testItemSpecs())
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

	handler := commands.NewUpdateOrderCommandHandler(factory, silentNotifier{})
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrStateConflict)
	orderRepo.AssertNotCalled(t, "ReplaceItems", mock.Anything, mock.Anything)
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
