package commands_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/employee"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) AppendHistory(ctx context.Context, entry *order.StatusHistoryEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockOrderRepository) ReplaceItems(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByTrackingCode(ctx context.Context, code kernel.TrackingCode) (*order.Order, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) TrackingCodeExists(ctx context.Context, code kernel.TrackingCode) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) GetHistory(ctx context.Context, orderID kernel.UUID) ([]*order.StatusHistoryEntry, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.StatusHistoryEntry), args.Error(1)
}

func (m *MockOrderRepository) GetAllOverdue(ctx context.Context, now time.Time) ([]*order.Order, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockEmployeeRepository struct{ mock.Mock }

func (m *MockEmployeeRepository) Add(ctx context.Context, e *employee.Employee) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockEmployeeRepository) Update(ctx context.Context, e *employee.Employee) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockEmployeeRepository) Get(ctx context.Context, id kernel.UUID) (*employee.Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*employee.Employee), args.Error(1)
}

// MockUoW implements every unit-of-work shape the command handlers consume.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) EmployeeRepository() ports.EmployeeRepository {
	args := m.Called()
	return args.Get(0).(ports.EmployeeRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockEmployeeUoWFactory struct{ mock.Mock }

func (m *MockEmployeeUoWFactory) Create() commands.EmployeeUoW {
	args := m.Called()
	return args.Get(0).(commands.EmployeeUoW)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) NotifyOrderUpdated(ctx context.Context, orderID kernel.UUID) {
	m.Called(ctx, orderID)
}

func (m *MockNotifier) NotifyOrderAssigned(ctx context.Context, orderID kernel.UUID, userID kernel.UUID) {
	m.Called(ctx, orderID, userID)
}

// silentNotifier is used by tests that do not care about notifications.
type silentNotifier struct{}

func (silentNotifier) NotifyOrderUpdated(context.Context, kernel.UUID)               {}
func (silentNotifier) NotifyOrderAssigned(context.Context, kernel.UUID, kernel.UUID) {}

func testItems(t *testing.T) []*order.Item {
	t.Helper()
	item, err := order.NewItem(kernel.NewUUID(), kernel.NewUUID(), 2, nil)
	require.NoError(t, err)
	return []*order.Item{item}
}

func testItemSpecs() []commands.ItemSpec {
	return []commands.ItemSpec{{ProductID: kernel.NewUUID(), Quantity: 2}}
}

// testOrderInStatus builds a restored aggregate in the given status.
func testOrderInStatus(t *testing.T, status order.Status, assigneeID *kernel.UUID) *order.Order {
	t.Helper()
	code, err := kernel.GenerateTrackingCode(time.Now().Year())
	require.NoError(t, err)

	var deliveredDate *time.Time
	if status == order.Delivered {
		d := time.Now()
		deliveredDate = &d
	}

	aggregate, err := order.RestoreOrder(
		kernel.NewUUID(), code, kernel.NewUUID(), nil,
		time.Now().Add(-time.Hour), nil, deliveredDate,
		kernel.NewUUID(), assigneeID, "", "", status, true, 1, testItems(t),
	)
	require.NoError(t, err)
	return aggregate
}

func testDriver(t *testing.T, userID *kernel.UUID) *employee.Employee {
	t.Helper()
	driver, err := employee.NewEmployee(kernel.NewUUID(), "Ana Diaz", employee.RoleDriver, userID)
	require.NoError(t, err)
	return driver
}
