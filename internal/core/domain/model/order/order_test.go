package order_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/Shmhzr/ai-voice/internal/core/domain/model/cart"
	"github.com/Shmhzr/ai-voice/internal/core/domain/model/kernel"
	"github.com/Shmhzr/ai-voice/internal/core/domain/model/order"
	"github.com/Shmhzr/ai-voice/internal/core/domain/model/pricing"
	"github.com/Shmhzr/ai-voice/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var createdAt = time.Date(2026, 3, 14, 18, 30, 0, 0, time.UTC)

func items() []cart.Item {
	return []cart.Item{{Item: "Margherita", Toppings: []string{}, Addons: []string{"Coke"}, Size: "Large", Quantity: 2}}
}

func newPendingOrder(t *testing.T) *order.Order {
	t.Helper()
	phone, _ := kernel.NormalizePhone("+1 415 555 2671")
	o, err := order.NewOrder("0427", items(), phone, "  12 Baker St ", kernel.Delivery, createdAt,
		pricing.Breakdown{Subtotal: 24, Items: []pricing.Line{}, Total: 24})
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("valid order starts pending and received", func(t *testing.T) {
		o := newPendingOrder(t)

		require.NoError(t, o.Validate())
		assert.Equal(t, "0427", o.Number())
		assert.Equal(t, "12 Baker St", o.Address())
		assert.Equal(t, order.Pending, o.Stage())
		assert.Equal(t, order.Received, o.Status())
		assert.False(t, o.IsCommitted())
		assert.Equal(t, 2, o.Quantity())
		assert.InDelta(t, 24.0, o.Total(), 0.0001)
	})

	t.Run("invalid number and missing items are both reported", func(t *testing.T) {
		_, err := order.NewOrder("42", nil, kernel.Phone{}, "", "", createdAt, pricing.Empty())

		require.ErrorIs(t, err, order.ErrOrderNumberIsInvalid)
		require.ErrorIs(t, err, order.ErrItemsAreRequired)
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var o order.Order
		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)

		var nilOrder *order.Order
		require.ErrorIs(t, nilOrder.Validate(), order.ErrOrderIsNotConstructed)
	})

	t.Run("snapshot is isolated from caller", func(t *testing.T) {
		src := items()
		o, err := order.NewOrder("1000", src, kernel.Phone{}, "", "", createdAt, pricing.Empty())
		require.NoError(t, err)

		src[0].Addons[0] = "Garlic Bread"
		got := o.Items()
		got[0].Quantity = 9

		assert.Equal(t, []string{"Coke"}, o.Items()[0].Addons)
		assert.Equal(t, 2, o.Items()[0].Quantity)
	})
}

func TestOrder_Lifecycle(t *testing.T) {
	t.Run("commit", func(t *testing.T) {
		o := newPendingOrder(t)
		savedAt := createdAt.Add(time.Second)

		require.NoError(t, o.Commit(pricing.Charges{Subtotal: 24, Total: 24}, savedAt))

		assert.True(t, o.IsCommitted())
		assert.Equal(t, savedAt, o.SavedAt())
		charges, ok := o.Charges()
		require.True(t, ok)
		assert.InDelta(t, 24.0, charges.Total, 0.0001)

		require.ErrorIs(t, o.Commit(pricing.Charges{}, savedAt), errs.ErrValueIsInvalid)
		require.ErrorIs(t, o.Discard(), errs.ErrValueIsInvalid)
	})

	t.Run("discard", func(t *testing.T) {
		o := newPendingOrder(t)

		require.NoError(t, o.Discard())

		assert.Equal(t, order.Discarded, o.Stage())
		require.Error(t, o.Commit(pricing.Charges{}, createdAt))
	})

	t.Run("status changes only after commit", func(t *testing.T) {
		o := newPendingOrder(t)
		require.Error(t, o.ChangeStatus(order.Ready))

		require.NoError(t, o.Commit(pricing.Charges{}, createdAt))
		require.NoError(t, o.ChangeStatus(order.Ready))
		assert.False(t, o.Status().IsActive())

		require.ErrorIs(t, o.ChangeStatus("lost"), errs.ErrValueIsInvalid)
	})

	t.Run("reprice keeps snapshot when cart is empty", func(t *testing.T) {
		o := newPendingOrder(t)

		o.Reprice(nil, pricing.Breakdown{Subtotal: 30, Items: []pricing.Line{}, Total: 30})
		assert.Equal(t, "Margherita", o.Items()[0].Item)
		assert.InDelta(t, 30.0, o.Total(), 0.0001)

		o.Reprice([]cart.Item{{Item: "Farmhouse", Size: "Small", Quantity: 1}}, pricing.Empty())
		assert.Equal(t, "Farmhouse", o.Items()[0].Item)
	})
}

func TestRestoreOrder(t *testing.T) {
	id := kernel.NewUUID()
	charges := &pricing.Charges{Subtotal: 24, Tax: 1.2, Total: 25.2, PromoCode: "WELCOME"}

	o, err := order.RestoreOrder(id, "0427", items(), kernel.Phone{}, "", kernel.Pickup, order.Preparing,
		createdAt, createdAt.Add(time.Minute), pricing.Empty(), charges)

	require.NoError(t, err)
	assert.True(t, o.IsCommitted())
	assert.True(t, id.IsEqual(o.RecordID()))
	assert.Equal(t, "WELCOME", o.PromoCode())

	_, err = order.RestoreOrder(kernel.UUID{}, "0427", items(), kernel.Phone{}, "", "", "lost",
		createdAt, createdAt, pricing.Empty(), nil)
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestOrder_View(t *testing.T) {
	o := newPendingOrder(t)
	o.SetWarning("Failed to persist order: timeout")

	data, err := json.Marshal(o.View())
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "0427", got["order_number"])
	assert.Equal(t, "+14155552671", got["phone"])
	assert.Equal(t, "delivery", got["order_type"])
	assert.Equal(t, "received", got["status"])
	assert.Equal(t, float64(createdAt.Unix()), got["created_at"])
	assert.Equal(t, int64(1773513000), o.View().CreatedAt)
	assert.Equal(t, false, got["committed"])
	assert.InDelta(t, 24.0, got["total"], 0.0001)
	assert.Equal(t, "Failed to persist order: timeout", got["warning"])
	assert.NotContains(t, got, "saved_at")
	assert.NotContains(t, got, "record_id")

	bare, err := order.NewOrder("0001", items(), kernel.Phone{}, "", "", createdAt, pricing.Breakdown{})
	require.NoError(t, err)
	v := bare.View()
	assert.Nil(t, v.Phone)
	assert.Nil(t, v.Address)
	assert.Nil(t, v.OrderType)
	assert.NotNil(t, v.Pricing.Items)
}

func TestParseStatus(t *testing.T) {
	s, err := order.ParseStatus(" READY ")
	require.NoError(t, err)
	assert.Equal(t, order.Ready, s)

	_, err = order.ParseStatus("shipped")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	assert.True(t, order.Received.IsActive())
	assert.True(t, order.Preparing.IsActive())
}
