package commands

import (
	"errors"

	"github.com/Shmhzr/ai-voice/internal/core/domain/model/order"
	"github.com/Shmhzr/ai-voice/internal/pkg/errs"
	"github.com/Shmhzr/ai-voice/internal/pkg/guard"
)

var (
	ErrPersistOrderCommandIsNotConstructed = errors.New(
		"PersistOrderCommand must be created via NewPersistOrderCommand constructor",
	)
	ErrOrderIsRequired     = errs.NewValueIsRequiredError("order")
	ErrOrderIsNotCommitted = errors.New("only committed orders can be persisted")
)

// PersistOrderCommand writes a committed order to durable storage.
// Encapsulates the order aggregate produced by finalization.
//
// Example:
//
//	cmd, err := NewPersistOrderCommand(o)
//	if err != nil {
//	    return fmt.Errorf("invalid order: %w", err)
//	}
//
//	handler := NewPersistOrderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    o.SetWarning("Failed to persist order: " + err.Error())
//	}
type PersistOrderCommand struct { //nolint:recvcheck //using for validation
	order *order.Order

	guard guard.ConstructorGuard
}

// NewPersistOrderCommand accepts only committed orders that carry a record ID.
func NewPersistOrderCommand(o *order.Order) (PersistOrderCommand, error) {
	cmd := PersistOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrder(o); err != nil {
		return PersistOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrPersistOrderCommandIsNotConstructed if validation fails.
func (c PersistOrderCommand) Validate() error {
	return c.guard.Validate(ErrPersistOrderCommandIsNotConstructed)
}

func (c PersistOrderCommand) Order() *order.Order {
	return c.order
}

func (c *PersistOrderCommand) setOrder(o *order.Order) error {
	if o == nil {
		return ErrOrderIsRequired
	}
	if err := o.Validate(); err != nil {
		return err
	}
	if !o.IsCommitted() {
		return ErrOrderIsNotCommitted
	}
	if err := o.RecordID().Validate(); err != nil {
		return err
	}

	c.order = o
	return nil
}
