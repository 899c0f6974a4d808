package commands_test

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/Shmhzr/ai-voice/internal/core/application/usecases/commands"
	"github.com/Shmhzr/ai-voice/internal/core/domain/model/kernel"
	"github.com/Shmhzr/ai-voice/internal/core/domain/model/menu"
	"github.com/Shmhzr/ai-voice/internal/core/domain/model/order"
	"github.com/Shmhzr/ai-voice/internal/core/ports"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, number string, status order.Status) error {
	args := m.Called(ctx, number, status)
	return args.Error(0)
}

func (m *MockOrderRepository) GetByNumber(ctx context.Context, number string) (*order.Order, error) {
	args := m.Called(ctx, number)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetLatestByPhone(ctx context.Context, phone kernel.Phone) (*order.Order, error) {
	args := m.Called(ctx, phone)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) ListInProgress(ctx context.Context, limit int) ([]*order.Order, error) {
	args := m.Called(ctx, limit)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

func (m *MockOrderRepository) CountActiveByPhone(ctx context.Context, phone kernel.Phone) (int, error) {
	args := m.Called(ctx, phone)
	return args.Int(0), args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(name string, payload map[string]any) {
	m.Called(name, payload)
}

type MockOrderPersister struct{ mock.Mock }

func (m *MockOrderPersister) Handle(ctx context.Context, cmd commands.PersistOrderCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

type staticMenu struct {
	m menu.Menu
}

func (s staticMenu) Get(context.Context, bool) menu.Menu {
	return s.m
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

var testNow = time.Date(2025, 3, 14, 18, 30, 0, 0, time.UTC)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func price(v float64) *float64 {
	return &v
}

// pizzeria is the menu most handler tests run against.
func pizzeria() menu.Menu {
	return menu.Normalize(map[string]any{
		"flavors":  []any{"Margherita", "Pepperoni", "Cheezy 7"},
		"toppings": []any{"Olives", "Paneer", "Jalapeño", "Onion"},
		"addons":   []any{"Garlic Bread", "Coke"},
		"sizes":    []any{"Small", "Medium", "Large"},
		"prices": map[string]any{
			"Margherita":   map[string]any{"Small": 8.0, "Medium": 10.0, "Large": 12.0},
			"Pepperoni":    map[string]any{"Small": 9.0, "Medium": 11.5, "Large": 14.0},
			"Cheezy 7":     map[string]any{"Small": 7.0, "Medium": 9.0, "Large": 11.0},
			"Veggie Feast": map[string]any{"Small": 9.5, "Medium": 12.0, "Large": 15.0},
			"Garlic Bread": map[string]any{"default": 4.5},
			"Coke":         map[string]any{"default": 2.0},
		},
	})
}

func menus() staticMenu {
	return staticMenu{m: pizzeria()}
}

func intPtr(v int) *int {
	return &v
}

func strPtr(v string) *string {
	return &v
}
