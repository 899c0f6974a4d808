package dispatcher_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/Shmhzr/ai-voice/internal/core/application/dispatcher"
	"github.com/Shmhzr/ai-voice/internal/core/application/session"
	"github.com/Shmhzr/ai-voice/internal/core/application/usecases/commands"
	"github.com/Shmhzr/ai-voice/internal/core/application/usecases/queries"
	"github.com/Shmhzr/ai-voice/internal/core/domain/model/kernel"
	"github.com/Shmhzr/ai-voice/internal/core/domain/model/menu"
	"github.com/Shmhzr/ai-voice/internal/core/domain/model/order"
	"github.com/Shmhzr/ai-voice/internal/core/domain/services"
)

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(name string, payload map[string]any) {
	m.Called(name, payload)
}

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

type MockActiveOrderCounter struct{ mock.Mock }

func (m *MockActiveOrderCounter) CountActiveByPhone(ctx context.Context, phone kernel.Phone) (int, error) {
	args := m.Called(ctx, phone)
	return args.Int(0), args.Error(1)
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

type fixedClock struct{}

func (fixedClock) Now() time.Time {
	return time.Date(2025, 3, 14, 18, 30, 0, 0, time.UTC)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func pizzeria() menu.Menu {
	return menu.Normalize(map[string]any{
		"summary":  "Wood-fired pizzas.",
		"flavors":  []any{"Margherita", "Pepperoni"},
		"toppings": []any{"Olives", "Paneer"},
		"addons":   []any{"Coke"},
		"sizes":    []any{"Small", "Large"},
		"prices": map[string]any{
			"Margherita": map[string]any{"Small": 8.0, "Large": 12.0},
			"Pepperoni":  map[string]any{"Small": 9.0, "Large": 14.0},
			"Coke":       map[string]any{"default": 2.0},
		},
	})
}

// agent is a dispatcher wired to real use cases over an in-memory session
// registry; only storage and events are mocked.
type agent struct {
	dispatcher *dispatcher.Dispatcher
	registry   *session.Registry
	calls      *session.Directory
	events     *MockEventPublisher
	orders     *MockOrderReader
	counter    *MockActiveOrderCounter
	persister  *MockOrderPersister
}

func newAgent(t *testing.T, extra ...dispatcher.Operation) *agent {
	t.Helper()
	a := &agent{
		registry:  session.NewRegistry(),
		calls:     session.NewDirectory(),
		events:    new(MockEventPublisher),
		orders:    new(MockOrderReader),
		counter:   new(MockActiveOrderCounter),
		persister: new(MockOrderPersister),
	}

	menus := staticMenu{m: pizzeria()}
	rules := commands.NewItemRules(nil, nil)
	engine := services.NewPricingEngine(services.PricingPolicy{})
	clock := fixedClock{}
	orderTypes := commands.NewSaveOrderTypeCommandHandler(a.registry, clock)
	finalize := commands.NewFinalizeOrderCommandHandler(
		menus, a.registry, engine, a.persister, a.events, clock, quietLogger(),
	)

	h := dispatcher.Handlers{
		AddItem:         commands.NewAddItemCommandHandler(menus, a.registry, rules),
		RemoveItem:      commands.NewRemoveItemCommandHandler(a.registry),
		ModifyItem:      commands.NewModifyItemCommandHandler(menus, a.registry, rules),
		SetSizeQuantity: commands.NewSetSizeQuantityCommandHandler(menus, a.registry, rules),
		SaveOrderType:   orderTypes,
		Contact:         commands.NewContactCommandHandler(a.registry),
		Checkout: commands.NewCheckoutOrderCommandHandler(
			menus,
			a.registry,
			a.counter,
			kernel.OrderNumberFunc(func() string { return "0427" }),
			engine,
			orderTypes,
			finalize,
			a.events,
			clock,
			quietLogger(),
		),
		Finalize:    finalize,
		Discard:     commands.NewDiscardOrderCommandHandler(a.registry, a.events),
		Session:     queries.NewSessionQueryHandler(a.registry),
		OrderStatus: queries.NewOrderStatusQueryHandler(a.orders, a.events),
		MenuSummary: queries.NewMenuSummaryQueryHandler(menus),
	}

	d, err := dispatcher.New(a.calls, a.events, quietLogger(), append(dispatcher.Operations(h), extra...)...)
	if err != nil {
		t.Fatalf("dispatcher.New: %v", err)
	}
	a.dispatcher = d
	return a
}

func (a *agent) call(t *testing.T, name string, args any) dispatcher.Result {
	t.Helper()
	return a.dispatcher.Dispatch(t.Context(), name, args, "")
}
