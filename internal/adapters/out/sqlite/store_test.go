package sqlite_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shmhzr/ai-voice/internal/adapters/out/sqlite"
	"github.com/Shmhzr/ai-voice/internal/core/domain/model/cart"
	"github.com/Shmhzr/ai-voice/internal/core/domain/model/kernel"
	"github.com/Shmhzr/ai-voice/internal/core/domain/model/order"
	"github.com/Shmhzr/ai-voice/internal/core/domain/model/pricing"
	"github.com/Shmhzr/ai-voice/internal/pkg/errs"
)

var base = time.Date(2025, 3, 14, 18, 0, 0, 0, time.UTC)

func openStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "orders.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func storedOrder(t *testing.T, number, rawPhone string, status order.Status, offset time.Duration, charges *pricing.Charges) *order.Order {
	t.Helper()
	items := []cart.Item{
		{Item: "Margherita", Toppings: []string{"Olives"}, Addons: []string{"Coke"}, Size: "Large", Quantity: 2, CustomerName: "Sam"},
	}
	breakdown := pricing.Breakdown{
		Subtotal: 28,
		Total:    28,
		Items: []pricing.Line{{
			Index: 0, Item: "Margherita", Size: "Large", Qty: 2, UnitPrice: 12,
			Addons:    []pricing.AddonPrice{{Name: "Coke", UnitPrice: 2}},
			UnitTotal: 14, LineTotal: 28, RawItem: items[0],
		}},
	}
	phone, ok := kernel.NormalizePhone(rawPhone)
	require.True(t, ok)

	o, err := order.RestoreOrder(kernel.NewUUID(), number, items, phone, "12 Baker St", kernel.Delivery, status,
		base.Add(offset), base.Add(offset+time.Second), breakdown, charges)
	require.NoError(t, err)
	return o
}

func TestOpen_IsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.db")

	first, err := sqlite.Open(path)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := sqlite.Open(path)
	require.NoError(t, err)
	defer second.Close()

	assert.NoError(t, second.Ping(t.Context()))
}

func TestOrderRepository_RoundTrip(t *testing.T) {
	ctx := t.Context()
	repo := openStore(t).UnitOfWorkFactory().Create().OrderRepository()
	charges := pricing.Charges{Subtotal: 28, Tax: 2.24, DeliveryFee: 3, Discount: 2.8, Total: 30.44, PromoCode: "TENOFF"}
	want := storedOrder(t, "0427", "+14155550100", order.Received, 0, &charges)

	require.NoError(t, repo.Add(ctx, want))

	got, err := repo.GetByNumber(ctx, "0427")
	require.NoError(t, err)
	assert.Equal(t, want.View(), got.View())
	assert.Equal(t, "TENOFF", got.PromoCode())
}

func TestOrderRepository_WithoutCharges(t *testing.T) {
	ctx := t.Context()
	repo := openStore(t).UnitOfWorkFactory().Create().OrderRepository()
	require.NoError(t, repo.Add(ctx, storedOrder(t, "0427", "+14155550100", order.Received, 0, nil)))

	got, err := repo.GetByNumber(ctx, "0427")
	require.NoError(t, err)

	_, ok := got.Charges()
	assert.False(t, ok)
}

func TestOrderRepository_Lookups(t *testing.T) {
	ctx := t.Context()
	repo := openStore(t).UnitOfWorkFactory().Create().OrderRepository()
	orders := []*order.Order{
		storedOrder(t, "0427", "+14155550100", order.Ready, 0, nil),
		storedOrder(t, "1111", "+14155550100", order.Preparing, time.Minute, nil),
		storedOrder(t, "0427", "+14155550199", order.Received, 2*time.Minute, nil),
		storedOrder(t, "2222", "+14155550100", order.Received, 3*time.Minute, nil),
	}
	for _, o := range orders {
		require.NoError(t, repo.Add(ctx, o))
	}
	phone, _ := kernel.NormalizePhone("+14155550100")

	t.Run("latest by number", func(t *testing.T) {
		got, err := repo.GetByNumber(ctx, "0427")
		require.NoError(t, err)
		assert.Equal(t, orders[2].RecordID(), got.RecordID())
	})

	t.Run("unknown number", func(t *testing.T) {
		_, err := repo.GetByNumber(ctx, "9999")
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("latest by phone", func(t *testing.T) {
		got, err := repo.GetLatestByPhone(ctx, phone)
		require.NoError(t, err)
		assert.Equal(t, "2222", got.Number())
	})

	t.Run("blank phone", func(t *testing.T) {
		_, err := repo.GetLatestByPhone(ctx, kernel.Phone{})
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("active count skips ready", func(t *testing.T) {
		n, err := repo.CountActiveByPhone(ctx, phone)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})

	t.Run("in progress newest first", func(t *testing.T) {
		got, err := repo.ListInProgress(ctx, 10)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "2222", got[0].Number())
		assert.Equal(t, "0427", got[1].Number())
		assert.Equal(t, "1111", got[2].Number())
	})

	t.Run("in progress limit", func(t *testing.T) {
		got, err := repo.ListInProgress(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})
}

func TestOrderRepository_UpdateStatus(t *testing.T) {
	ctx := t.Context()
	repo := openStore(t).UnitOfWorkFactory().Create().OrderRepository()
	older := storedOrder(t, "0427", "+14155550100", order.Received, 0, nil)
	newer := storedOrder(t, "0427", "+14155550199", order.Received, time.Hour, nil)
	require.NoError(t, repo.Add(ctx, older))
	require.NoError(t, repo.Add(ctx, newer))

	require.NoError(t, repo.UpdateStatus(ctx, "0427", order.Ready))

	got, err := repo.GetByNumber(ctx, "0427")
	require.NoError(t, err)
	assert.Equal(t, order.Ready, got.Status())

	stillActive, err := repo.GetLatestByPhone(ctx, older.Phone())
	require.NoError(t, err)
	assert.Equal(t, order.Received, stillActive.Status())

	assert.ErrorIs(t, repo.UpdateStatus(ctx, "9999", order.Ready), errs.ErrObjectNotFound)
	assert.ErrorIs(t, repo.UpdateStatus(ctx, "0427", order.Status("lost")), errs.ErrValueIsInvalid)
}

func TestUnitOfWork_CommitAndRollback(t *testing.T) {
	ctx := t.Context()
	factory := openStore(t).UnitOfWorkFactory()

	rolledBack := factory.Create()
	require.NoError(t, rolledBack.Begin(ctx))
	require.NoError(t, rolledBack.OrderRepository().Add(ctx, storedOrder(t, "0001", "+14155550100", order.Received, 0, nil)))
	require.NoError(t, rolledBack.Rollback(ctx))

	committed := factory.Create()
	require.NoError(t, committed.Begin(ctx))
	require.NoError(t, committed.Begin(ctx))
	require.NoError(t, committed.OrderRepository().Add(ctx, storedOrder(t, "0002", "+14155550100", order.Received, 0, nil)))
	require.NoError(t, committed.Commit(ctx))

	reader := factory.Create().OrderRepository()
	_, err := reader.GetByNumber(ctx, "0001")
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	_, err = reader.GetByNumber(ctx, "0002")
	assert.NoError(t, err)

	assert.ErrorIs(t, committed.Commit(ctx), sqlite.ErrNoTransaction)
	assert.ErrorIs(t, committed.Rollback(ctx), sqlite.ErrNoTransaction)
}

func TestOrderRepository_RejectsOrderWithoutRecordID(t *testing.T) {
	repo := openStore(t).UnitOfWorkFactory().Create().OrderRepository()
	phone, _ := kernel.NormalizePhone("+14155550100")
	items := []cart.Item{{Item: "Margherita", Size: "Large", Quantity: 1}}
	pending, err := order.NewOrder("0427", items, phone, "", kernel.Pickup, base, pricing.Empty())
	require.NoError(t, err)

	assert.ErrorIs(t, repo.Add(t.Context(), pending), kernel.ErrUUIDIsNotConstructed)
}
