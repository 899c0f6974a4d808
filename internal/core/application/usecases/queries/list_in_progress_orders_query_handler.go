package queries

import (
	"context"

	"github.com/Shmhzr/ai-voice/internal/core/domain/model/order"
	"github.com/Shmhzr/ai-voice/internal/core/ports"
)

// OrderReadQueryHandler serves the operator's read-only views of stored orders.
type OrderReadQueryHandler struct {
	orders ports.OrderReader
}

func NewOrderReadQueryHandler(orders ports.OrderReader) OrderReadQueryHandler {
	return OrderReadQueryHandler{orders: orders}
}

func (h OrderReadQueryHandler) ListInProgress(ctx context.Context, query ListInProgressOrdersQuery) ([]order.View, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	found, err := h.orders.ListInProgress(ctx, query.Limit())
	if err != nil {
		return nil, err
	}

	views := make([]order.View, 0, len(found))
	for _, o := range found {
		views = append(views, o.View())
	}
	return views, nil
}

// GetOrder returns errs.ObjectNotFoundError for unknown numbers.
func (h OrderReadQueryHandler) GetOrder(ctx context.Context, query GetOrderQuery) (order.View, error) {
	if err := query.Validate(); err != nil {
		return order.View{}, err
	}

	found, err := h.orders.GetByNumber(ctx, query.OrderNumber())
	if err != nil {
		return order.View{}, err
	}
	return found.View(), nil
}
