package commands

import (
	"errors"
	"strings"

	"github.com/Shmhzr/ai-voice/internal/pkg/guard"
)

var ErrSetSizeQuantityCommandIsNotConstructed = errors.New(
	"SetSizeQuantityCommand must be created via NewSetSizeQuantityCommand constructor",
)

// SetSizeQuantityCommand changes the size and/or quantity of a cart line.
// Without an index the most recently added line is changed.
type SetSizeQuantityCommand struct { //nolint:recvcheck //using for validation
	sessionID string
	index     *int
	size      *string
	quantity  *int

	guard guard.ConstructorGuard
}

func NewSetSizeQuantityCommand(sessionID string, index *int, size *string, quantity *int) SetSizeQuantityCommand {
	if size != nil && strings.TrimSpace(*size) == "" {
		size = nil
	}
	if quantity != nil && *quantity < 1 {
		one := 1
		quantity = &one
	}

	return SetSizeQuantityCommand{
		sessionID: sessionID,
		index:     index,
		size:      size,
		quantity:  quantity,
		guard:     guard.NewConstructorGuard(),
	}
}

func (c SetSizeQuantityCommand) Validate() error {
	return c.guard.Validate(ErrSetSizeQuantityCommandIsNotConstructed)
}

func (c SetSizeQuantityCommand) SessionID() string {
	return c.sessionID
}

// Index returns the requested line, if any.
func (c SetSizeQuantityCommand) Index() (int, bool) {
	if c.index == nil {
		return 0, false
	}
	return *c.index, true
}

func (c SetSizeQuantityCommand) Size() (string, bool) {
	if c.size == nil {
		return "", false
	}
	return *c.size, true
}

func (c SetSizeQuantityCommand) Quantity() (int, bool) {
	if c.quantity == nil {
		return 0, false
	}
	return *c.quantity, true
}
