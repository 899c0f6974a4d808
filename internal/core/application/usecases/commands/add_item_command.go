package commands

import (
	"errors"
	"strings"

	"github.com/Shmhzr/ai-voice/internal/core/domain/model/cart"
	"github.com/Shmhzr/ai-voice/internal/pkg/guard"
)

var ErrAddItemCommandIsNotConstructed = errors.New(
	"AddItemCommand must be created via NewAddItemCommand constructor",
)

// AddItemCommand asks for one more line in the caller's cart.
//
// Example:
//
//	cmd, err := NewAddItemCommand(callSID, "Margherita", []string{"olives"}, nil, "Large", 2, "", "")
//	if err != nil {
//	    return err // "No item specified." when the flavor is blank
//	}
//	res, err := handler.Handle(ctx, cmd)
type AddItemCommand struct { //nolint:recvcheck //using for validation
	sessionID    string
	flavor       string
	toppings     []string
	addons       []string
	size         string
	quantity     int
	customerName string
	address      string

	guard guard.ConstructorGuard
}

// NewAddItemCommand validates the request. A quantity below one is read as
// one; a blank size is resolved later against the menu.
func NewAddItemCommand(
	sessionID string,
	flavor string,
	toppings []string,
	addons []string,
	size string,
	quantity int,
	customerName string,
	address string,
) (AddItemCommand, error) {
	flavor = strings.TrimSpace(flavor)
	if flavor == "" {
		return AddItemCommand{}, cart.ErrNoItemSpecified
	}
	if quantity < 1 {
		quantity = 1
	}

	return AddItemCommand{
		sessionID:    sessionID,
		flavor:       flavor,
		toppings:     toppings,
		addons:       addons,
		size:         strings.TrimSpace(size),
		quantity:     quantity,
		customerName: strings.TrimSpace(customerName),
		address:      strings.TrimSpace(address),
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c AddItemCommand) Validate() error {
	return c.guard.Validate(ErrAddItemCommandIsNotConstructed)
}

func (c AddItemCommand) SessionID() string {
	return c.sessionID
}

func (c AddItemCommand) Flavor() string {
	return c.flavor
}

func (c AddItemCommand) Toppings() []string {
	return c.toppings
}

func (c AddItemCommand) Addons() []string {
	return c.addons
}

func (c AddItemCommand) Size() string {
	return c.size
}

func (c AddItemCommand) Quantity() int {
	return c.quantity
}

func (c AddItemCommand) CustomerName() string {
	return c.customerName
}

func (c AddItemCommand) Address() string {
	return c.address
}
