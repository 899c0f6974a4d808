package queries_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Shmhzr/ai-voice/internal/core/application/session"
	"github.com/Shmhzr/ai-voice/internal/core/application/usecases/queries"
	"github.com/Shmhzr/ai-voice/internal/core/domain/model/cart"
	"github.com/Shmhzr/ai-voice/internal/core/domain/model/kernel"
	"github.com/Shmhzr/ai-voice/internal/core/domain/model/menu"
	"github.com/Shmhzr/ai-voice/internal/core/domain/model/order"
	"github.com/Shmhzr/ai-voice/internal/core/ports"
	"github.com/Shmhzr/ai-voice/internal/pkg/errs"
)

func TestNewOrderStatusQuery_RequiresPhoneOrNumber(t *testing.T) {
	_, err := queries.NewOrderStatusQuery(" ", "")
	rej, ok := errs.AsRejection(err)
	require.True(t, ok)
	assert.Equal(t, "phone or order_number required", rej.Reason)
}

func TestOrderStatusQueryHandler_Handle_ByNumber(t *testing.T) {
	ctx := t.Context()
	reader := new(MockOrderReader)
	reader.On("GetByNumber", ctx, "0427").Return(storedOrder(t, "0427", order.Preparing), nil).Once()

	query, err := queries.NewOrderStatusQuery("+14155550100", "0427")
	require.NoError(t, err)
	resp, err := queries.NewOrderStatusQueryHandler(reader, nil).Handle(ctx, query)

	require.NoError(t, err)
	assert.Equal(t, queries.OrderStatusQueryResponse{Found: true, OrderNumber: "0427", Status: "preparing"}, resp)
	reader.AssertExpectations(t)
}

func TestOrderStatusQueryHandler_Handle_ByPhoneNormalizes(t *testing.T) {
	ctx := t.Context()
	phone, _ := kernel.NormalizePhone("+14155550100")
	reader := new(MockOrderReader)
	reader.On("GetLatestByPhone", ctx, phone).Return(storedOrder(t, "0815", order.Received), nil).Once()

	query, err := queries.NewOrderStatusQuery("+1 (415) 555-0100", "")
	require.NoError(t, err)
	resp, err := queries.NewOrderStatusQueryHandler(reader, nil).Handle(ctx, query)

	require.NoError(t, err)
	assert.True(t, resp.Found)
	assert.Equal(t, "0815", resp.OrderNumber)
	reader.AssertExpectations(t)
}

func TestOrderStatusQueryHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	reader := new(MockOrderReader)
	reader.On("GetByNumber", ctx, "9999").Return(nil, errs.NewObjectNotFoundError("order", "9999")).Once()

	query, _ := queries.NewOrderStatusQuery("", "9999")
	resp, err := queries.NewOrderStatusQueryHandler(reader, nil).Handle(ctx, query)

	require.NoError(t, err)
	assert.False(t, resp.Found)
}

func TestOrderStatusQueryHandler_Handle_UnparseablePhoneIsNotFound(t *testing.T) {
	reader := new(MockOrderReader)

	query, _ := queries.NewOrderStatusQuery("twelve", "")
	resp, err := queries.NewOrderStatusQueryHandler(reader, nil).Handle(t.Context(), query)

	require.NoError(t, err)
	assert.False(t, resp.Found)
	reader.AssertNotCalled(t, "GetLatestByPhone", mock.Anything, mock.Anything)
}

func TestOrderStatusQueryHandler_Handle_ReaderFailure(t *testing.T) {
	ctx := t.Context()
	reader := new(MockOrderReader)
	events := new(MockEventPublisher)
	reader.On("GetByNumber", ctx, "0427").Return(nil, errors.New("connection refused")).Once()
	events.On("Publish", ports.EventFunctionError, map[string]any{
		"name":  "order_status",
		"error": "connection refused",
	}).Once()

	query, _ := queries.NewOrderStatusQuery("", "0427")
	_, err := queries.NewOrderStatusQueryHandler(reader, events).Handle(ctx, query)

	rej, ok := errs.AsRejection(err)
	require.True(t, ok)
	assert.Equal(t, "Failed to read orders: connection refused", rej.Reason)
	events.AssertExpectations(t)
}

func TestOrderReadQueryHandler_ListInProgress(t *testing.T) {
	ctx := t.Context()
	reader := new(MockOrderReader)
	reader.On("ListInProgress", ctx, queries.DefaultInProgressLimit).Return([]*order.Order{
		storedOrder(t, "0815", order.Preparing),
		storedOrder(t, "0427", order.Received),
	}, nil).Once()

	views, err := queries.NewOrderReadQueryHandler(reader).ListInProgress(ctx, queries.NewListInProgressOrdersQuery(0))

	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "0815", views[0].OrderNumber)
	assert.Equal(t, "received", views[1].Status)
}

func TestNewListInProgressOrdersQuery_ClampsLimit(t *testing.T) {
	assert.Equal(t, queries.DefaultInProgressLimit, queries.NewListInProgressOrdersQuery(-3).Limit())
	assert.Equal(t, 7, queries.NewListInProgressOrdersQuery(7).Limit())
	assert.Equal(t, queries.MaxInProgressLimit, queries.NewListInProgressOrdersQuery(100000).Limit())
}

func TestOrderReadQueryHandler_GetOrder(t *testing.T) {
	ctx := t.Context()
	reader := new(MockOrderReader)
	reader.On("GetByNumber", ctx, "0427").Return(storedOrder(t, "0427", order.Ready), nil).Once()

	query, err := queries.NewGetOrderQuery("0427")
	require.NoError(t, err)
	view, err := queries.NewOrderReadQueryHandler(reader).GetOrder(ctx, query)

	require.NoError(t, err)
	assert.Equal(t, "ready", view.Status)
	assert.True(t, view.Committed)
}

func TestNewGetOrderQuery_InvalidNumber(t *testing.T) {
	_, err := queries.NewGetOrderQuery("12345")
	require.ErrorIs(t, err, order.ErrOrderNumberIsInvalid)
}

func TestSessionQueryHandler_GetCartIsACopy(t *testing.T) {
	registry := session.NewRegistry()
	_ = registry.Get("s1").Exec(func(st *session.State) error {
		return st.Cart.Add(cart.Item{Item: "Margherita", Toppings: []string{"Olives"}, Size: "Small", Quantity: 2})
	})
	h := queries.NewSessionQueryHandler(registry)

	resp, err := h.GetCart(t.Context(), queries.NewGetCartQuery("s1"))
	require.NoError(t, err)
	resp.Items[0].Toppings[0] = "Anchovy"

	again, err := h.GetCart(t.Context(), queries.NewGetCartQuery("s1"))
	require.NoError(t, err)
	assert.Equal(t, 1, again.Count)
	assert.Equal(t, 2, again.TotalQuantity)
	assert.Equal(t, []string{"Olives"}, again.Items[0].Toppings)
}

func TestSessionQueryHandler_OrderTypeAndPlaced(t *testing.T) {
	registry := session.NewRegistry()
	h := queries.NewSessionQueryHandler(registry)

	placed, err := h.OrderIsPlaced(t.Context(), queries.NewOrderIsPlacedQuery("s1"))
	require.NoError(t, err)
	assert.False(t, placed.Placed)

	_ = registry.Get("s1").Exec(func(st *session.State) error {
		st.OrderType = kernel.Pickup
		st.OrderNumber = "0427"
		return nil
	})

	placed, err = h.OrderIsPlaced(t.Context(), queries.NewOrderIsPlacedQuery("s1"))
	require.NoError(t, err)
	assert.Equal(t, queries.OrderIsPlacedQueryResponse{Placed: true, OrderNumber: "0427"}, placed)

	orderType, err := h.GetOrderType(t.Context(), queries.NewGetOrderTypeQuery("s1"))
	require.NoError(t, err)
	assert.Equal(t, kernel.Pickup, orderType.OrderType)
}

func TestSessionQueryHandler_NotConstructed(t *testing.T) {
	h := queries.NewSessionQueryHandler(session.NewRegistry())
	_, err := h.GetCart(t.Context(), queries.GetCartQuery{})
	require.ErrorIs(t, err, queries.ErrGetCartQueryIsNotConstructed)
}

func TestMenuSummaryQueryHandler_Handle(t *testing.T) {
	ctx := t.Context()
	m := menu.Normalize(map[string]any{
		"summary": "Wood-fired pizzas.",
		"flavors": []any{"Margherita"},
		"sizes":   []any{"Small"},
		"prices":  map[string]any{"Margherita": map[string]any{"Small": 8.0}},
	})
	menus := new(MockMenuProvider)
	menus.On("Get", ctx, true).Return(m).Once()

	resp, err := queries.NewMenuSummaryQueryHandler(menus).Handle(ctx, queries.NewMenuSummaryQuery(true))

	require.NoError(t, err)
	assert.Equal(t, "Wood-fired pizzas.", resp.Summary)
	assert.Equal(t, []string{"Margherita"}, resp.Flavors)
	assert.Equal(t, []string{}, resp.Toppings)
	assert.Contains(t, resp.Prices, "Margherita")
	assert.NotContains(t, resp.Prices, "margherita")
	assert.NotEmpty(t, resp.Description)
	menus.AssertExpectations(t)
}

func TestExtractPhoneAndOrderQuery_Handle(t *testing.T) {
	c := queries.NewExtractPhoneAndOrderQuery("my number is 415-555-0100 and order 0427").Handle()

	assert.Equal(t, "+4155550100", c.Phone.String())
	assert.Equal(t, "0427", c.OrderNumber)
}
