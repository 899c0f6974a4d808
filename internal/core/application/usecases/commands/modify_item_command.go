package commands

import (
	"errors"
	"strings"

	"github.com/Shmhzr/ai-voice/internal/pkg/guard"
)

var ErrModifyItemCommandIsNotConstructed = errors.New(
	"ModifyItemCommand must be created via NewModifyItemCommand constructor",
)

// ItemChanges lists the fields of a cart line to rewrite. Nil fields stay as
// they are; a non-nil empty list clears toppings or add-ons.
type ItemChanges struct {
	Flavor   *string
	Toppings []string
	Addons   []string
	Size     *string
	Quantity *int
}

// ModifyItemCommand rewrites selected fields of one cart line.
//
// Example:
//
//	size := "Large"
//	cmd := NewModifyItemCommand(callSID, 0, ItemChanges{Size: &size})
//	res, err := handler.Handle(ctx, cmd)
type ModifyItemCommand struct { //nolint:recvcheck //using for validation
	sessionID string
	index     int
	changes   ItemChanges

	guard guard.ConstructorGuard
}

func NewModifyItemCommand(sessionID string, index int, changes ItemChanges) ModifyItemCommand {
	if changes.Flavor != nil && strings.TrimSpace(*changes.Flavor) == "" {
		changes.Flavor = nil
	}
	if changes.Size != nil && strings.TrimSpace(*changes.Size) == "" {
		changes.Size = nil
	}
	if changes.Quantity != nil && *changes.Quantity < 1 {
		one := 1
		changes.Quantity = &one
	}

	return ModifyItemCommand{
		sessionID: sessionID,
		index:     index,
		changes:   changes,
		guard:     guard.NewConstructorGuard(),
	}
}

func (c ModifyItemCommand) Validate() error {
	return c.guard.Validate(ErrModifyItemCommandIsNotConstructed)
}

func (c ModifyItemCommand) SessionID() string {
	return c.sessionID
}

func (c ModifyItemCommand) Index() int {
	return c.index
}

func (c ModifyItemCommand) Changes() ItemChanges {
	return c.changes
}
