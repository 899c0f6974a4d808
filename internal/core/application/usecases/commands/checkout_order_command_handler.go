package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Shmhzr/ai-voice/internal/core/application/session"
	"github.com/Shmhzr/ai-voice/internal/core/domain/model/cart"
	"github.com/Shmhzr/ai-voice/internal/core/domain/model/kernel"
	"github.com/Shmhzr/ai-voice/internal/core/domain/model/order"
	"github.com/Shmhzr/ai-voice/internal/core/domain/services"
	"github.com/Shmhzr/ai-voice/internal/core/ports"
	"github.com/Shmhzr/ai-voice/internal/pkg/errs"
)

const orderNumberAttempts = 10

type (
	// OrderTypeSaver stores the order type ahead of checkout.
	OrderTypeSaver interface {
		Handle(ctx context.Context, cmd SaveOrderTypeCommand) (kernel.OrderType, error)
	}

	// OrderFinalizer commits a pending order.
	OrderFinalizer interface {
		Handle(ctx context.Context, cmd FinalizeOrderCommand) (order.View, error)
	}
)

// CheckoutOrderCommandHandler turns the cart into a pending order and hands
// it straight to finalization.
//
// The active-order count is read with the session unlocked; the cart is
// re-read once the lock is taken again, so the count is checked against
// the cart that is actually ordered.
type CheckoutOrderCommandHandler struct {
	menus      MenuProvider
	sessions   SessionProvider
	counter    ports.ActiveOrderCounter
	numbers    kernel.OrderNumberGenerator
	pricing    services.PricingEngine
	orderTypes OrderTypeSaver
	finalizer  OrderFinalizer
	events     ports.EventPublisher
	clock      Clock
	logger     *slog.Logger
}

func NewCheckoutOrderCommandHandler(
	menus MenuProvider,
	sessions SessionProvider,
	counter ports.ActiveOrderCounter,
	numbers kernel.OrderNumberGenerator,
	pricing services.PricingEngine,
	orderTypes OrderTypeSaver,
	finalizer OrderFinalizer,
	events ports.EventPublisher,
	clock Clock,
	logger *slog.Logger,
) CheckoutOrderCommandHandler {
	return CheckoutOrderCommandHandler{
		menus:      menus,
		sessions:   sessions,
		counter:    counter,
		numbers:    numbers,
		pricing:    pricing,
		orderTypes: orderTypes,
		finalizer:  finalizer,
		events:     events,
		clock:      clock,
		logger:     logger.With("component", "CheckoutOrderCommandHandler"),
	}
}

func (h CheckoutOrderCommandHandler) Handle(ctx context.Context, cmd CheckoutOrderCommand) (order.View, error) {
	if err := cmd.Validate(); err != nil {
		return order.View{}, err
	}

	if raw := cmd.OrderType(); raw != "" {
		// An order type that does not parse is ignored here; the saved one stays.
		if typeCmd, err := NewSaveOrderTypeCommand(cmd.SessionID(), raw); err == nil {
			if _, err := h.orderTypes.Handle(ctx, typeCmd); err != nil {
				return order.View{}, err
			}
		}
	}

	m := h.menus.Get(ctx, false)
	sess := h.sessions.Get(cmd.SessionID())

	var phone kernel.Phone
	err := sess.Exec(func(st *session.State) error {
		if st.Cart.IsEmpty() {
			return cart.ErrCartIsEmpty
		}
		if raw := cmd.Phone(); raw != "" {
			p, ok := kernel.NormalizePhone(raw)
			if !ok {
				return PhoneIsInvalid(raw)
			}
			phone = p
			return nil
		}
		phone = st.Phone
		return nil
	})
	if err != nil {
		return order.View{}, err
	}

	active := h.countActive(ctx, phone)

	var pending order.View
	err = sess.Exec(func(st *session.State) error {
		if st.Cart.IsEmpty() {
			return cart.ErrCartIsEmpty
		}
		quantity := st.Cart.TotalQuantity()
		if !phone.IsZero() && active+quantity > MaxActiveOrdersPerPhone {
			return activeLimitReached(active, quantity)
		}

		address := cmd.Address()
		if address == "" {
			address = st.Address
		}

		items := st.Cart.Items()
		o, err := order.NewOrder(
			h.nextNumber(st),
			items,
			phone,
			address,
			st.OrderType,
			h.clock.Now(),
			h.pricing.PriceCart(items, m),
		)
		if err != nil {
			return err
		}
		o.SetPromoCode(cmd.PromoCode())
		st.Pending[o.Number()] = o

		// The voice flow reads the contact details back after checkout.
		if !phone.IsZero() {
			st.Phone = phone
			st.PhoneConfirmed = false
		}
		if address != "" {
			st.Address = address
			st.AddressConfirmed = false
		}
		st.OrderNumber = o.Number()

		pending = o.View()
		return nil
	})
	if err != nil {
		return order.View{}, err
	}

	if h.events != nil {
		h.events.Publish(ports.EventOrders, map[string]any{
			"type":         "order_locked",
			"session_id":   sess.ID(),
			"order_number": pending.OrderNumber,
			"total":        pending.Total,
		})
	}

	return h.finalizer.Handle(ctx, NewFinalizeOrderCommand(cmd.SessionID(), pending.OrderNumber))
}

// countActive treats a failing counter as zero active orders.
func (h CheckoutOrderCommandHandler) countActive(ctx context.Context, phone kernel.Phone) int {
	if phone.IsZero() || h.counter == nil {
		return 0
	}
	n, err := h.counter.CountActiveByPhone(ctx, phone)
	if err != nil {
		h.logger.Warn("failed to count active orders", "error", err)
		return 0
	}
	return n
}

// nextNumber avoids numbers already used in this call. Numbers are not
// checked against other calls or storage.
func (h CheckoutOrderCommandHandler) nextNumber(st *session.State) string {
	var number string
	for range orderNumberAttempts {
		number = h.numbers.Next()
		_, pending := st.Pending[number]
		_, placed := st.Orders[number]
		if !pending && !placed {
			break
		}
	}
	return number
}

func activeLimitReached(active, quantity int) *errs.RejectionError {
	return errs.NewRejectionErrorWithFields(
		fmt.Sprintf(
			"You currently have %d active order(s). Adding %d more would exceed the limit of %d "+
				"active orders per phone number. Please wait for your current orders to be ready.",
			active, quantity, MaxActiveOrdersPerPhone,
		),
		map[string]any{
			"limit_reached": true,
			"active_orders": active,
			"cart_pizzas":   quantity,
			"max_allowed":   MaxActiveOrdersPerPhone,
		},
	)
}
