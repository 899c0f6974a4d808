package queries_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Shmhzr/ai-voice/internal/core/domain/model/cart"
	"github.com/Shmhzr/ai-voice/internal/core/domain/model/kernel"
	"github.com/Shmhzr/ai-voice/internal/core/domain/model/menu"
	"github.com/Shmhzr/ai-voice/internal/core/domain/model/order"
	"github.com/Shmhzr/ai-voice/internal/core/domain/model/pricing"
)

type MockOrderReader struct{ mock.Mock }

func (m *MockOrderReader) GetByNumber(ctx context.Context, number string) (*order.Order, error) {
	args := m.Called(ctx, number)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderReader) GetLatestByPhone(ctx context.Context, phone kernel.Phone) (*order.Order, error) {
	args := m.Called(ctx, phone)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderReader) ListInProgress(ctx context.Context, limit int) ([]*order.Order, error) {
	args := m.Called(ctx, limit)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(name string, payload map[string]any) {
	m.Called(name, payload)
}

type MockMenuProvider struct{ mock.Mock }

func (m *MockMenuProvider) Get(ctx context.Context, forceRefresh bool) menu.Menu {
	args := m.Called(ctx, forceRefresh)
	return args.Get(0).(menu.Menu)
}

var storedAt = time.Date(2025, 3, 14, 18, 30, 0, 0, time.UTC)

func storedOrder(t require.TestingT, number string, status order.Status) *order.Order {
	phone, _ := kernel.NormalizePhone("+14155550100")
	o, err := order.RestoreOrder(
		kernel.NewUUID(),
		number,
		[]cart.Item{{Item: "Margherita", Size: "Large", Quantity: 1}},
		phone,
		"",
		kernel.Pickup,
		status,
		storedAt,
		storedAt,
		pricing.Breakdown{Subtotal: 12, Total: 12},
		nil,
	)
	require.NoError(t, err)
	return o
}
