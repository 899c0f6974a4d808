package commands

import (
	"context"

	"github.com/Shmhzr/ai-voice/internal/core/domain/model/order"
	"github.com/Shmhzr/ai-voice/internal/core/ports"
)

// UpdateOrderStatusCommandHandler changes the stored status of an order and
// announces the change.
type UpdateOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	events     ports.EventPublisher
}

func NewUpdateOrderStatusCommandHandler(uowFactory OrderUoWFactory, events ports.EventPublisher) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		events:     events,
	}
}

// Handle returns the order as stored after the change. An unknown number
// yields errs.ObjectNotFoundError.
func (h UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) (order.View, error) {
	if err := cmd.Validate(); err != nil {
		return order.View{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return order.View{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	if err := repo.UpdateStatus(ctx, cmd.OrderNumber(), cmd.Status()); err != nil {
		return order.View{}, err
	}

	updated, err := repo.GetByNumber(ctx, cmd.OrderNumber())
	if err != nil {
		return order.View{}, err
	}

	if err := uow.Commit(ctx); err != nil {
		return order.View{}, err
	}

	if h.events != nil {
		h.events.Publish(ports.EventOrderStatusChanged, map[string]any{
			"order_number": updated.Number(),
			"status":       updated.Status().String(),
		})
	}
	return updated.View(), nil
}
