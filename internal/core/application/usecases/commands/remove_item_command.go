package commands

import (
	"errors"

	"github.com/Shmhzr/ai-voice/internal/pkg/guard"
)

var ErrRemoveItemCommandIsNotConstructed = errors.New(
	"RemoveItemCommand must be created via NewRemoveItemCommand constructor",
)

// RemoveItemCommand drops the cart line at a zero-based index.
type RemoveItemCommand struct { //nolint:recvcheck //using for validation
	sessionID string
	index     int

	guard guard.ConstructorGuard
}

// NewRemoveItemCommand never fails; range is checked against the cart.
func NewRemoveItemCommand(sessionID string, index int) RemoveItemCommand {
	return RemoveItemCommand{
		sessionID: sessionID,
		index:     index,
		guard:     guard.NewConstructorGuard(),
	}
}

func (c RemoveItemCommand) Validate() error {
	return c.guard.Validate(ErrRemoveItemCommandIsNotConstructed)
}

func (c RemoveItemCommand) SessionID() string {
	return c.sessionID
}

func (c RemoveItemCommand) Index() int {
	return c.index
}
