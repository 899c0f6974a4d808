package commands

import (
	"context"

	"github.com/Shmhzr/ai-voice/internal/core/application/session"
)

// ModifyItemCommandHandler applies ItemChanges with the same rules as adding
// a line. Nothing is written unless every provided field is valid.
type ModifyItemCommandHandler struct {
	menus    MenuProvider
	sessions SessionProvider
	rules    ItemRules
}

func NewModifyItemCommandHandler(menus MenuProvider, sessions SessionProvider, rules ItemRules) ModifyItemCommandHandler {
	return ModifyItemCommandHandler{
		menus:    menus,
		sessions: sessions,
		rules:    rules,
	}
}

func (h ModifyItemCommandHandler) Handle(ctx context.Context, cmd ModifyItemCommand) (CartItemResult, error) {
	if err := cmd.Validate(); err != nil {
		return CartItemResult{}, err
	}

	m := h.menus.Get(ctx, false)
	changes := cmd.Changes()

	var result CartItemResult
	err := h.sessions.Get(cmd.SessionID()).Exec(func(st *session.State) error {
		item, err := st.Cart.At(cmd.Index())
		if err != nil {
			return err
		}

		if changes.Flavor != nil {
			if item.Item, err = h.rules.Flavor(m, *changes.Flavor); err != nil {
				return err
			}
		}
		if changes.Toppings != nil {
			if item.Toppings, err = h.rules.Toppings(m, changes.Toppings); err != nil {
				return err
			}
		}
		if changes.Addons != nil {
			if item.Addons, err = h.rules.Addons(m, changes.Addons); err != nil {
				return err
			}
		}
		if changes.Size != nil {
			item.Size = h.rules.Size(m, *changes.Size)
		}
		if changes.Quantity != nil {
			item.Quantity = *changes.Quantity
		}

		if err := st.Cart.Replace(cmd.Index(), item); err != nil {
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
