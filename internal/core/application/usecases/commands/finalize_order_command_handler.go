package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/Shmhzr/ai-voice/internal/core/application/session"
	"github.com/Shmhzr/ai-voice/internal/core/domain/model/kernel"
	"github.com/Shmhzr/ai-voice/internal/core/domain/model/order"
	"github.com/Shmhzr/ai-voice/internal/core/domain/services"
	"github.com/Shmhzr/ai-voice/internal/core/ports"
)

// OrderPersister stores a committed order.
type OrderPersister interface {
	Handle(ctx context.Context, cmd PersistOrderCommand) error
}

// FinalizeOrderCommandHandler commits pending orders and writes them out.
//
// The commit happens under the session lock and is final: if storage fails
// afterwards the order stays committed in the session and carries a warning.
type FinalizeOrderCommandHandler struct {
	menus    MenuProvider
	sessions SessionProvider
	pricing  services.PricingEngine
	persist  OrderPersister
	events   ports.EventPublisher
	clock    Clock
	logger   *slog.Logger
}

func NewFinalizeOrderCommandHandler(
	menus MenuProvider,
	sessions SessionProvider,
	pricing services.PricingEngine,
	persist OrderPersister,
	events ports.EventPublisher,
	clock Clock,
	logger *slog.Logger,
) FinalizeOrderCommandHandler {
	return FinalizeOrderCommandHandler{
		menus:    menus,
		sessions: sessions,
		pricing:  pricing,
		persist:  persist,
		events:   events,
		clock:    clock,
		logger:   logger.With("component", "FinalizeOrderCommandHandler"),
	}
}

func (h FinalizeOrderCommandHandler) Handle(ctx context.Context, cmd FinalizeOrderCommand) (order.View, error) {
	if err := cmd.Validate(); err != nil {
		return order.View{}, err
	}

	m := h.menus.Get(ctx, false)
	sess := h.sessions.Get(cmd.SessionID())

	var committed *order.Order
	err := sess.Exec(func(st *session.State) error {
		o, ok := st.Pending[cmd.OrderNumber()]
		if !ok {
			return ErrPendingOrderNotFound
		}
		delete(st.Pending, cmd.OrderNumber())

		// The caller may have changed the cart since checkout; the live cart wins.
		items := o.Items()
		if !st.Cart.IsEmpty() {
			items = st.Cart.Items()
		}
		breakdown := h.pricing.PriceCart(items, m)
		o.Reprice(items, breakdown)

		charges := h.pricing.ApplyAdjustments(breakdown.Subtotal, o.OrderType(), o.PromoCode())
		if err := o.Commit(charges, h.clock.Now()); err != nil {
			return err
		}
		if err := o.AssignRecordID(kernel.NewUUID()); err != nil {
			return err
		}

		st.Orders[o.Number()] = o
		st.Cart.Clear()
		committed = o
		return nil
	})
	if err != nil {
		return order.View{}, err
	}

	warning := h.store(ctx, committed)

	var view order.View
	_ = sess.Exec(func(st *session.State) error {
		if warning != "" {
			committed.SetWarning(warning)
		}
		st.OrderType = ""
		st.OrderTypeSavedAt = time.Time{}
		view = committed.View()
		return nil
	})

	if h.events != nil {
		h.events.Publish(ports.EventOrders, map[string]any{
			"type":         "order_committed",
			"session_id":   sess.ID(),
			"order_number": view.OrderNumber,
			"total":        view.Total,
			"persisted":    warning == "",
		})
	}
	return view, nil
}

// store runs outside the session lock and returns a warning on failure.
func (h FinalizeOrderCommandHandler) store(ctx context.Context, o *order.Order) string {
	cmd, err := NewPersistOrderCommand(o)
	if err == nil {
		err = h.persist.Handle(ctx, cmd)
	}
	if err != nil {
		h.logger.Error("failed to persist order", "order_number", o.Number(), "error", err)
		return "Failed to persist order: " + err.Error()
	}
	return ""
}
