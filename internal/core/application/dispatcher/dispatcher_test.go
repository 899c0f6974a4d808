package dispatcher_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Shmhzr/ai-voice/internal/core/application/dispatcher"
	"github.com/Shmhzr/ai-voice/internal/core/domain/model/cart"
	"github.com/Shmhzr/ai-voice/internal/core/ports"
	"github.com/Shmhzr/ai-voice/internal/pkg/errs"
)

func TestDispatcher_UnknownFunction(t *testing.T) {
	a := newAgent(t)

	res := a.call(t, "order_pizza", map[string]any{})

	assert.Equal(t, dispatcher.Result{"ok": false, "error": "Unknown function: order_pizza"}, res)
	a.events.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestDispatcher_InvalidJSONArguments(t *testing.T) {
	a := newAgent(t)
	a.events.On("Publish", ports.EventFunctionError, mock.Anything).Once()

	res := a.call(t, "get_cart", `{"call_sid":`)

	assert.Equal(t, dispatcher.Result{"ok": false, "error": "Invalid JSON arguments."}, res)
	a.events.AssertExpectations(t)
}

func TestDispatcher_ArgumentsMustBeAnObject(t *testing.T) {
	a := newAgent(t)
	a.events.On("Publish", ports.EventFunctionError, mock.Anything).Maybe()

	for _, args := range []any{`[1,2]`, []byte(`"margherita"`), json.RawMessage(`42`), []string{"x"}} {
		res := a.call(t, "get_cart", args)
		assert.Equal(t, "Arguments must be an object/dict.", res["error"])
		assert.False(t, res.OK())
	}
}

func TestDispatcher_NilArgumentsAreEmptyObject(t *testing.T) {
	a := newAgent(t)

	res := a.call(t, "get_cart", nil)

	assert.True(t, res.OK())
	assert.Equal(t, 0, res["count"])
}

func TestDispatcher_AddToCartAcceptsFlavorAlias(t *testing.T) {
	a := newAgent(t)

	res := a.call(t, "add_to_cart", `{"flavor":"margherita","size":"large","call_sid":"CA1"}`)

	require.True(t, res.OK(), res)
	assert.Equal(t, 1, res["cart_count"])
	item := res["item"].(cart.Item)
	assert.Equal(t, "Margherita", item.Item)
	assert.Equal(t, "Large", item.Size)
	assert.Equal(t, 1, item.Quantity)
}

func TestDispatcher_ItemWinsOverFlavor(t *testing.T) {
	a := newAgent(t)

	res := a.call(t, "add_to_cart", map[string]any{"item": "Pepperoni", "flavor": "Margherita", "call_sid": "CA1"})

	require.True(t, res.OK(), res)
	assert.Equal(t, "Pepperoni", res["item"].(cart.Item).Item)
}

func TestDispatcher_ScalarBecomesList(t *testing.T) {
	a := newAgent(t)

	res := a.call(t, "add_to_cart", map[string]any{"item": "Margherita", "toppings": "olives", "call_sid": "CA1"})

	require.True(t, res.OK(), res)
	assert.Equal(t, []string{"Olives"}, res["item"].(cart.Item).Toppings)
}

func TestDispatcher_NullArgumentsAreAbsent(t *testing.T) {
	a := newAgent(t)

	res := a.call(t, "add_to_cart", `{"item":"Margherita","size":null,"quantity":null,"call_sid":"CA1"}`)

	require.True(t, res.OK(), res)
	assert.Equal(t, "Small", res["item"].(cart.Item).Size)
}

func TestDispatcher_SchemaValidation(t *testing.T) {
	a := newAgent(t)

	tests := []struct {
		name string
		fn   string
		args any
	}{
		{"missing required", "remove_from_cart", map[string]any{}},
		{"below minimum", "remove_from_cart", map[string]any{"index": -1}},
		{"wrong type", "confirm_phone_number", map[string]any{"confirmed": "yes"}},
		{"unknown key", "get_cart", map[string]any{"coupon": "FREE"}},
		{"zero quantity on resize", "set_size_quantity", map[string]any{"quantity": 0}},
		{"fractional quantity", "add_to_cart", map[string]any{"item": "Margherita", "quantity": 1.5}},
		{"non-numeric quantity", "add_to_cart", map[string]any{"item": "Margherita", "quantity": "two"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := a.call(t, tt.fn, tt.args)

			assert.False(t, res.OK())
			assert.Contains(t, res["error"], "Invalid arguments: ")
		})
	}
}

func TestDispatcher_CallSIDFromConnection(t *testing.T) {
	a := newAgent(t)
	a.calls.Bind("ws-1", "CA9")

	res := a.dispatcher.Dispatch(t.Context(), "add_to_cart", map[string]any{"item": "Pepperoni"}, "ws-1")
	require.True(t, res.OK(), res)

	cartRes := a.call(t, "get_cart", map[string]any{"call_sid": "CA9"})
	assert.Equal(t, 1, cartRes["count"])

	legacy := a.call(t, "get_cart", nil)
	assert.Equal(t, 0, legacy["count"])
}

func TestDispatcher_ExplicitCallSIDWinsOverConnection(t *testing.T) {
	a := newAgent(t)
	a.calls.Bind("ws-1", "CA9")

	res := a.dispatcher.Dispatch(t.Context(), "add_to_cart", map[string]any{"item": "Pepperoni", "call_sid": "CA1"}, "ws-1")
	require.True(t, res.OK(), res)

	assert.Equal(t, 1, a.call(t, "get_cart", map[string]any{"call_sid": "CA1"})["count"])
	assert.Equal(t, 0, a.call(t, "get_cart", map[string]any{"call_sid": "CA9"})["count"])
}

func TestDispatcher_NoCallSIDUsesLegacySession(t *testing.T) {
	a := newAgent(t)

	a.call(t, "add_to_cart", map[string]any{"item": "Pepperoni"})
	a.call(t, "add_to_cart", map[string]any{"item": "Margherita"})

	assert.Equal(t, 2, a.call(t, "get_cart", nil)["count"])
}

func TestDispatcher_RejectionCarriesFieldsWithoutEvent(t *testing.T) {
	a := newAgent(t)
	a.call(t, "add_to_cart", map[string]any{"item": "Margherita", "quantity": 4, "call_sid": "CA1"})

	res := a.call(t, "add_to_cart", map[string]any{"item": "Margherita", "quantity": 2, "call_sid": "CA1"})

	assert.Equal(t, dispatcher.Result{
		"ok":          false,
		"error":       "Max 5 pizzas per order.",
		"max_pizzas":  cart.MaxPizzas,
		"cart_pizzas": 4,
	}, res)
	a.events.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestDispatcher_UnexpectedErrorIsPublished(t *testing.T) {
	a := newAgent(t, dispatcher.Operation{
		Name:          "flaky",
		SessionScoped: true,
		Handler: func(context.Context, string, dispatcher.Args) (dispatcher.Result, error) {
			return nil, errors.New("disk on fire")
		},
	})
	a.events.On("Publish", ports.EventFunctionError, map[string]any{
		"name":     "flaky",
		"error":    "disk on fire",
		"call_sid": "CA1",
	}).Once()

	res := a.call(t, "flaky", map[string]any{"call_sid": "CA1"})

	assert.Equal(t, dispatcher.Result{"ok": false, "error": "Function flaky raised: disk on fire"}, res)
	a.events.AssertExpectations(t)
}

func TestDispatcher_PanicIsRecovered(t *testing.T) {
	a := newAgent(t, dispatcher.Operation{
		Name: "explode",
		Handler: func(context.Context, string, dispatcher.Args) (dispatcher.Result, error) {
			panic("boom")
		},
	})
	a.events.On("Publish", ports.EventFunctionError, mock.Anything).Once()

	res := a.call(t, "explode", nil)

	assert.Equal(t, "Function explode raised: boom", res["error"])
	a.events.AssertExpectations(t)
}

func TestDispatcher_ValidationSentinelIsNotPublished(t *testing.T) {
	a := newAgent(t, dispatcher.Operation{
		Name: "strict",
		Handler: func(context.Context, string, dispatcher.Args) (dispatcher.Result, error) {
			return nil, errs.NewValueIsRequiredError("phone")
		},
	})

	res := a.call(t, "strict", nil)

	assert.False(t, res.OK())
	assert.Contains(t, res["error"], "phone")
	a.events.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestDispatcher_SessionIDOnlyForSessionScopedOperations(t *testing.T) {
	var seen []string
	record := func(_ context.Context, sid string, _ dispatcher.Args) (dispatcher.Result, error) {
		seen = append(seen, sid)
		return nil, nil
	}
	a := newAgent(t,
		dispatcher.Operation{Name: "scoped", SessionScoped: true, Handler: record},
		dispatcher.Operation{Name: "global", Handler: record},
	)

	scoped := a.call(t, "scoped", map[string]any{"call_sid": "CA1"})
	global := a.call(t, "global", map[string]any{"call_sid": "CA1"})

	assert.Equal(t, []string{"CA1", ""}, seen)
	assert.Equal(t, dispatcher.Result{"ok": true}, scoped)
	assert.Equal(t, dispatcher.Result{"ok": true}, global)
}

func TestNew_RejectsDuplicatesAndMissingHandlers(t *testing.T) {
	noop := func(context.Context, string, dispatcher.Args) (dispatcher.Result, error) { return nil, nil }

	_, err := dispatcher.New(nil, nil, nil,
		dispatcher.Operation{Name: "a", Handler: noop},
		dispatcher.Operation{Name: "a", Handler: noop},
	)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = dispatcher.New(nil, nil, nil, dispatcher.Operation{Name: "a"})
	require.ErrorIs(t, err, dispatcher.ErrHandlerIsRequired)

	_, err = dispatcher.New(nil, nil, nil, dispatcher.Operation{Handler: noop})
	require.ErrorIs(t, err, dispatcher.ErrOperationNameIsRequired)
}

func TestDispatcher_Definitions(t *testing.T) {
	a := newAgent(t)

	defs := a.dispatcher.Definitions()

	names := make([]string, 0, len(defs))
	for _, d := range defs {
		names = append(names, d.Name)
		assert.NotEmpty(t, d.Description, d.Name)
		require.NotNil(t, d.Parameters, d.Name)
		assert.True(t, d.Parameters.Type.Is("object"), d.Name)
	}
	assert.Equal(t, []string{
		"menu_summary", "add_to_cart", "remove_from_cart", "modify_cart_item",
		"set_size_quantity", "get_cart", "save_order_type", "get_order_type",
		"checkout_order", "finalize_order", "discard_pending_order", "order_status",
		"order_is_placed", "save_address", "save_phone_number", "confirm_phone_number",
		"extract_phone_and_order", "confirm_pending_to_cart", "clear_pending_item",
	}, names)

	raw, err := json.Marshal(defs)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"required":["item"]`)
}
