package queries

import (
	"context"
	"errors"

	"github.com/Shmhzr/ai-voice/internal/core/domain/model/kernel"
	"github.com/Shmhzr/ai-voice/internal/core/domain/model/order"
	"github.com/Shmhzr/ai-voice/internal/core/ports"
	"github.com/Shmhzr/ai-voice/internal/pkg/errs"
)

// OrderStatusQueryHandler reads stored orders for callers asking after them.
type OrderStatusQueryHandler struct {
	orders ports.OrderReader
	events ports.EventPublisher
}

func NewOrderStatusQueryHandler(orders ports.OrderReader, events ports.EventPublisher) OrderStatusQueryHandler {
	return OrderStatusQueryHandler{orders: orders, events: events}
}

// Handle prefers the order number when both are given. A storage failure is
// reported to the caller as "Failed to read orders: ..." and published as a
// diagnostic event.
func (h OrderStatusQueryHandler) Handle(ctx context.Context, query OrderStatusQuery) (OrderStatusQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderStatusQueryResponse{}, err
	}

	var (
		found *order.Order
		err   error
	)
	switch {
	case query.OrderNumber() != "":
		found, err = h.orders.GetByNumber(ctx, query.OrderNumber())
	default:
		phone, ok := kernel.NormalizePhone(query.Phone())
		if !ok {
			return OrderStatusQueryResponse{Found: false}, nil
		}
		found, err = h.orders.GetLatestByPhone(ctx, phone)
	}

	if errors.Is(err, errs.ErrObjectNotFound) {
		return OrderStatusQueryResponse{Found: false}, nil
	}
	if err != nil {
		if h.events != nil {
			h.events.Publish(ports.EventFunctionError, map[string]any{
				"name":  "order_status",
				"error": err.Error(),
			})
		}
		return OrderStatusQueryResponse{}, errs.NewRejectionErrorWithCause("Failed to read orders: "+err.Error(), err)
	}

	return OrderStatusQueryResponse{
		Found:       true,
		OrderNumber: found.Number(),
		Status:      found.Status().String(),
	}, nil
}
