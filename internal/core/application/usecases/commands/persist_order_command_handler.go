package commands

import (
	"context"
)

// PersistOrderCommandHandler stores committed orders inside a unit of work.
//
// Example:
//
//	handler := NewPersistOrderCommandHandler(uowFactory)
//	cmd, _ := NewPersistOrderCommand(committed)
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("order persistence failed: %w", err)
//	}
type PersistOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewPersistOrderCommandHandler requires an OrderUoWFactory for transactional persistence.
func NewPersistOrderCommandHandler(uowFactory OrderUoWFactory) PersistOrderCommandHandler {
	return PersistOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle adds the order and commits. The transaction is rolled back on any
// error; the rollback after a successful commit is a no-op.
func (h PersistOrderCommandHandler) Handle(ctx context.Context, cmd PersistOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.OrderRepository().Add(ctx, cmd.Order()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
