package commands_test

import (
	"errors"
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCreateOrderCommand(t *testing.T) commands.CreateOrderCommand {
	t.Helper()
	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), kernel.NewUUID(), nil, kernel.NewUUID(), nil, "", "", testItemSpecs(),
	)
	require.NoError(t, err)
	return cmd
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateOrderCommand(t)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("TrackingCodeExists", ctx, mock.AnythingOfType("kernel.TrackingCode")).Return(false, nil).Once(),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		orderRepo.On("AppendHistory", ctx, mock.AnythingOfType("*order.StatusHistoryEntry")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateOrderCommandHandler(factory)
	created, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.True(t, created.ID().IsEqual(cmd.OrderID()))
	assert.Equal(t, order.Pending, created.Status())
	require.NoError(t, created.TrackingCode().Validate())

	// the seeded ledger entry matches the created order
	entry := orderRepo.Calls[2].Arguments[1].(*order.StatusHistoryEntry)
	assert.True(t, entry.OrderID().IsEqual(created.ID()))
	assert.Equal(t, order.Pending, entry.Status())

	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_RetriesOnCollision(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateOrderCommand(t)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("TrackingCodeExists", ctx, mock.AnythingOfType("kernel.TrackingCode")).Return(true, nil).Twice(),
		orderRepo.On("TrackingCodeExists", ctx, mock.AnythingOfType("kernel.TrackingCode")).Return(false, nil).Once(),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		orderRepo.On("AppendHistory", ctx, mock.AnythingOfType("*order.StatusHistoryEntry")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateOrderCommandHandler(factory)
	created, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, created)
	orderRepo.AssertNumberOfCalls(t, "TrackingCodeExists", 3)
}

func TestCreateOrderCommandHandler_Handle_CollisionsExhausted(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateOrderCommand(t)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("TrackingCodeExists", ctx, mock.AnythingOfType("kernel.TrackingCode")).Return(true, nil).Times(5),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateOrderCommandHandler(factory)
	created, err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrTrackingCodeExhausted)
	assert.Nil(t, created)
	orderRepo.AssertNotCalled(t, "Add")
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CreateOrderCommand{} // not constructed properly

	factory := new(MockOrderUoWFactory)
	handler := commands.NewCreateOrderCommandHandler(factory)
	created, err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
	assert.Nil(t, created)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateOrderCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateOrderCommand(t)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("TrackingCodeExists", ctx, mock.AnythingOfType("kernel.TrackingCode")).Return(false, nil).Once(),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(errors.New("insert error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateOrderCommandHandler(factory)
	created, err := handler.Handle(ctx, cmd)

	require.EqualError(t, err, "insert error")
	assert.Nil(t, created)
	orderRepo.AssertNotCalled(t, "AppendHistory")
}
