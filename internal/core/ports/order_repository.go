// Package ports defines the contracts between the ordering core and the
// infrastructure around it: menu sources, order storage, event sinks and the
// voice bridge's connection directory.
package ports

import (
	"context"

	"github.com/Shmhzr/ai-voice/internal/core/domain/model/kernel"
	"github.com/Shmhzr/ai-voice/internal/core/domain/model/order"
)

// OrderReader is the read side of durable order storage.
type OrderReader interface {
	// GetByNumber returns the most recent order carrying number.
	// Returns errs.ObjectNotFoundError when there is none.
	GetByNumber(ctx context.Context, number string) (*order.Order, error)

	// GetLatestByPhone returns the most recent order placed from phone.
	// Returns errs.ObjectNotFoundError when there is none.
	GetLatestByPhone(ctx context.Context, phone kernel.Phone) (*order.Order, error)

	// ListInProgress returns up to limit orders not yet ready, newest first.
	ListInProgress(ctx context.Context, limit int) ([]*order.Order, error)
}

// ActiveOrderCounter counts orders that still occupy a phone's order allowance.
type ActiveOrderCounter interface {
	// CountActiveByPhone counts orders from phone whose status is not ready.
	CountActiveByPhone(ctx context.Context, phone kernel.Phone) (int, error)
}

// OrderRepository is the full persistence contract for committed orders.
type OrderRepository interface {
	OrderReader
	ActiveOrderCounter

	// Add persists a committed order. The order's record ID must be set.
	Add(ctx context.Context, aggregate *order.Order) error

	// UpdateStatus changes the status of the most recent order with number.
	UpdateStatus(ctx context.Context, number string, status order.Status) error
}
