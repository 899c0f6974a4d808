package commands

import (
	"errors"
	"strings"

	"github.com/Shmhzr/ai-voice/internal/pkg/errs"
	"github.com/Shmhzr/ai-voice/internal/pkg/guard"
)

var (
	ErrFinalizeOrderCommandIsNotConstructed = errors.New(
		"FinalizeOrderCommand must be created via NewFinalizeOrderCommand constructor",
	)
	ErrDiscardOrderCommandIsNotConstructed = errors.New(
		"DiscardOrderCommand must be created via NewDiscardOrderCommand constructor",
	)

	ErrPendingOrderNotFound = errs.NewRejectionError("Pending order not found.")
)

// FinalizeOrderCommand commits a pending order of the call.
type FinalizeOrderCommand struct { //nolint:recvcheck //using for validation
	sessionID   string
	orderNumber string

	guard guard.ConstructorGuard
}

func NewFinalizeOrderCommand(sessionID, orderNumber string) FinalizeOrderCommand {
	return FinalizeOrderCommand{
		sessionID:   sessionID,
		orderNumber: strings.TrimSpace(orderNumber),
		guard:       guard.NewConstructorGuard(),
	}
}

func (c FinalizeOrderCommand) Validate() error {
	return c.guard.Validate(ErrFinalizeOrderCommandIsNotConstructed)
}

func (c FinalizeOrderCommand) SessionID() string {
	return c.sessionID
}

func (c FinalizeOrderCommand) OrderNumber() string {
	return c.orderNumber
}

// DiscardOrderCommand abandons a pending order of the call and empties the cart.
type DiscardOrderCommand struct { //nolint:recvcheck //using for validation
	sessionID   string
	orderNumber string

	guard guard.ConstructorGuard
}

func NewDiscardOrderCommand(sessionID, orderNumber string) DiscardOrderCommand {
	return DiscardOrderCommand{
		sessionID:   sessionID,
		orderNumber: strings.TrimSpace(orderNumber),
		guard:       guard.NewConstructorGuard(),
	}
}

func (c DiscardOrderCommand) Validate() error {
	return c.guard.Validate(ErrDiscardOrderCommandIsNotConstructed)
}

func (c DiscardOrderCommand) SessionID() string {
	return c.sessionID
}

func (c DiscardOrderCommand) OrderNumber() string {
	return c.orderNumber
}
