package commands

import (
	"context"

	"github.com/Shmhzr/ai-voice/internal/core/application/session"
	"github.com/Shmhzr/ai-voice/internal/core/domain/model/cart"
)

type SetSizeQuantityCommandHandler struct {
	menus    MenuProvider
	sessions SessionProvider
	rules    ItemRules
}

func NewSetSizeQuantityCommandHandler(
	menus MenuProvider,
	sessions SessionProvider,
	rules ItemRules,
) SetSizeQuantityCommandHandler {
	return SetSizeQuantityCommandHandler{
		menus:    menus,
		sessions: sessions,
		rules:    rules,
	}
}

// Handle rejects with "Cart is empty." or "Index out of range." and honours
// the per-order pizza cap when the quantity grows.
func (h SetSizeQuantityCommandHandler) Handle(ctx context.Context, cmd SetSizeQuantityCommand) (CartItemResult, error) {
	if err := cmd.Validate(); err != nil {
		return CartItemResult{}, err
	}

	m := h.menus.Get(ctx, false)

	var result CartItemResult
	err := h.sessions.Get(cmd.SessionID()).Exec(func(st *session.State) error {
		if st.Cart.IsEmpty() {
			return cart.ErrCartIsEmpty
		}

		index, ok := cmd.Index()
		if !ok {
			index = st.Cart.Len() - 1
		}
		item, err := st.Cart.At(index)
		if err != nil {
			return err
		}

		if size, ok := cmd.Size(); ok {
			item.Size = h.rules.Size(m, size)
		}
		if qty, ok := cmd.Quantity(); ok {
			item.Quantity = qty
		}

		if err := st.Cart.Replace(index, item); err != nil {
			return err
		}
		result = CartItemResult{Item: item, CartCount: st.Cart.Len()}
		return nil
	})
	if err != nil {
		return CartItemResult{}, err
	}
	return result, nil
}
