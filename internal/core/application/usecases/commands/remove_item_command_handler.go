package commands

import (
	"context"

	"github.com/Shmhzr/ai-voice/internal/core/application/session"
)

type RemoveItemCommandHandler struct {
	sessions SessionProvider
}

func NewRemoveItemCommandHandler(sessions SessionProvider) RemoveItemCommandHandler {
	return RemoveItemCommandHandler{sessions: sessions}
}

// Handle returns the removed line. An index outside the cart is rejected
// with "Index out of range.".
func (h RemoveItemCommandHandler) Handle(_ context.Context, cmd RemoveItemCommand) (CartItemResult, error) {
	if err := cmd.Validate(); err != nil {
		return CartItemResult{}, err
	}

	var result CartItemResult
	err := h.sessions.Get(cmd.SessionID()).Exec(func(st *session.State) error {
		removed, err := st.Cart.Remove(cmd.Index())
		if err != nil {
			return err
		}
		result = CartItemResult{Item: removed, CartCount: st.Cart.Len()}
		return nil
	})
	if err != nil {
		return CartItemResult{}, err
	}
	return result, nil
}
