package commands

import (
	"errors"
	"strings"

	"github.com/Shmhzr/ai-voice/internal/pkg/guard"
)

// MaxActiveOrdersPerPhone caps the pizzas a phone number may have in orders
// that are not yet ready, counting the cart being checked out.
const MaxActiveOrdersPerPhone = 5

var ErrCheckoutOrderCommandIsNotConstructed = errors.New(
	"CheckoutOrderCommand must be created via NewCheckoutOrderCommand constructor",
)

// CheckoutOrderCommand locks the cart into an order and finalizes it.
// Every field is optional; the session's saved phone and address fill gaps.
// The phone is normalized by the handler, after the cart is known to be
// non-empty.
//
// Example:
//
//	cmd, err := NewCheckoutOrderCommand(callSID, "+1 415 555 0100", "", "pickup", "")
//	if err != nil {
//	    return err
//	}
//	view, err := handler.Handle(ctx, cmd) // "Cart is empty.", "Phone number '...' is not valid.", ...
type CheckoutOrderCommand struct { //nolint:recvcheck //using for validation
	sessionID string
	phone     string
	address   string
	orderType string
	promoCode string

	guard guard.ConstructorGuard
}

func NewCheckoutOrderCommand(
	sessionID string,
	phone string,
	address string,
	orderType string,
	promoCode string,
) (CheckoutOrderCommand, error) {
	return CheckoutOrderCommand{
		sessionID: sessionID,
		phone:     strings.TrimSpace(phone),
		address:   strings.TrimSpace(address),
		orderType: strings.TrimSpace(orderType),
		promoCode: strings.TrimSpace(promoCode),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c CheckoutOrderCommand) Validate() error {
	return c.guard.Validate(ErrCheckoutOrderCommandIsNotConstructed)
}

func (c CheckoutOrderCommand) SessionID() string {
	return c.sessionID
}

// Phone is the phone number as spoken, empty when none was given.
func (c CheckoutOrderCommand) Phone() string {
	return c.phone
}

func (c CheckoutOrderCommand) Address() string {
	return c.address
}

// OrderType is the raw spoken order type, if any.
func (c CheckoutOrderCommand) OrderType() string {
	return c.orderType
}

func (c CheckoutOrderCommand) PromoCode() string {
	return c.promoCode
}
