package commands

import (
	"context"

	"github.com/Shmhzr/ai-voice/internal/core/application/session"
	"github.com/Shmhzr/ai-voice/internal/core/domain/model/cart"
)

// CartItemResult is the line a cart command produced and the cart size after it.
type CartItemResult struct {
	Item      cart.Item
	CartCount int
}

// AddItemCommandHandler validates a new line against the menu and appends it.
//
// Checks run in this order, each rejecting with a caller-facing message:
// cart capacity, flavor, toppings, add-ons.
type AddItemCommandHandler struct {
	menus    MenuProvider
	sessions SessionProvider
	rules    ItemRules
}

func NewAddItemCommandHandler(menus MenuProvider, sessions SessionProvider, rules ItemRules) AddItemCommandHandler {
	return AddItemCommandHandler{
		menus:    menus,
		sessions: sessions,
		rules:    rules,
	}
}

func (h AddItemCommandHandler) Handle(ctx context.Context, cmd AddItemCommand) (CartItemResult, error) {
	if err := cmd.Validate(); err != nil {
		return CartItemResult{}, err
	}

	m := h.menus.Get(ctx, false)

	var result CartItemResult
	err := h.sessions.Get(cmd.SessionID()).Exec(func(st *session.State) error {
		if err := st.Cart.CheckCapacity(cmd.Quantity(), 0); err != nil {
			return err
		}

		flavor, err := h.rules.Flavor(m, cmd.Flavor())
		if err != nil {
			return err
		}
		toppings, err := h.rules.Toppings(m, cmd.Toppings())
		if err != nil {
			return err
		}
		addons, err := h.rules.Addons(m, cmd.Addons())
		if err != nil {
			return err
		}

		item := cart.Item{
			Item:         flavor,
			Toppings:     toppings,
			Addons:       addons,
			Size:         h.rules.Size(m, cmd.Size()),
			Quantity:     cmd.Quantity(),
			CustomerName: cmd.CustomerName(),
			Address:      cmd.Address(),
		}
		if err := st.Cart.Add(item); err != nil {
			return err
		}

		result = CartItemResult{Item: item.Clone(), CartCount: st.Cart.Len()}
		return nil
	})
	if err != nil {
		return CartItemResult{}, err
	}
	return result, nil
}
