package commands

import (
	"errors"

	"github.com/Shmhzr/ai-voice/internal/core/domain/model/kernel"
	"github.com/Shmhzr/ai-voice/internal/pkg/errs"
	"github.com/Shmhzr/ai-voice/internal/pkg/guard"
)

var (
	ErrSaveOrderTypeCommandIsNotConstructed = errors.New(
		"SaveOrderTypeCommand must be created via NewSaveOrderTypeCommand constructor",
	)
	ErrOrderTypeIsInvalid = errs.NewRejectionError("Order type must be pickup or delivery.")
)

// SaveOrderTypeCommand records whether the caller picks up or wants delivery.
type SaveOrderTypeCommand struct { //nolint:recvcheck //using for validation
	sessionID string
	orderType kernel.OrderType

	guard guard.ConstructorGuard
}

// NewSaveOrderTypeCommand parses raw with kernel.ParseOrderType and rejects
// anything it does not recognize.
func NewSaveOrderTypeCommand(sessionID, raw string) (SaveOrderTypeCommand, error) {
	orderType, ok := kernel.ParseOrderType(raw)
	if !ok {
		return SaveOrderTypeCommand{}, ErrOrderTypeIsInvalid
	}
	return SaveOrderTypeCommand{
		sessionID: sessionID,
		orderType: orderType,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c SaveOrderTypeCommand) Validate() error {
	return c.guard.Validate(ErrSaveOrderTypeCommandIsNotConstructed)
}

func (c SaveOrderTypeCommand) SessionID() string {
	return c.sessionID
}

func (c SaveOrderTypeCommand) OrderType() kernel.OrderType {
	return c.orderType
}
