package commands

import (
	"context"

	"github.com/Shmhzr/ai-voice/internal/core/application/session"
	"github.com/Shmhzr/ai-voice/internal/core/ports"
)

type DiscardOrderCommandHandler struct {
	sessions SessionProvider
	events   ports.EventPublisher
}

func NewDiscardOrderCommandHandler(sessions SessionProvider, events ports.EventPublisher) DiscardOrderCommandHandler {
	return DiscardOrderCommandHandler{sessions: sessions, events: events}
}

// Handle drops a pending order and clears the cart. Committed orders cannot
// be discarded; they are "Pending order not found." like unknown numbers.
func (h DiscardOrderCommandHandler) Handle(_ context.Context, cmd DiscardOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	sess := h.sessions.Get(cmd.SessionID())
	err := sess.Exec(func(st *session.State) error {
		o, ok := st.Pending[cmd.OrderNumber()]
		if !ok {
			return ErrPendingOrderNotFound
		}
		if err := o.Discard(); err != nil {
			return err
		}
		delete(st.Pending, cmd.OrderNumber())
		st.Cart.Clear()
		return nil
	})
	if err != nil {
		return err
	}

	if h.events != nil {
		h.events.Publish(ports.EventOrders, map[string]any{
			"type":         "order_discarded",
			"session_id":   sess.ID(),
			"order_number": cmd.OrderNumber(),
		})
	}
	return nil
}
