package queries

import (
	"errors"
	"strings"

	"github.com/Shmhzr/ai-voice/internal/core/domain/model/kernel"
	"github.com/Shmhzr/ai-voice/internal/core/domain/model/order"
	"github.com/Shmhzr/ai-voice/internal/pkg/guard"
)

const (
	DefaultInProgressLimit = 50
	MaxInProgressLimit     = 500
)

var (
	ErrListInProgressOrdersQueryIsNotConstructed = errors.New(
		"ListInProgressOrdersQuery must be created via NewListInProgressOrdersQuery constructor",
	)
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery constructor",
	)
)

// ListInProgressOrdersQuery feeds the kitchen board: orders not yet ready,
// newest first.
//
// Example:
//
//	query := NewListInProgressOrdersQuery(20)
//	handler := NewOrderReadQueryHandler(orders)
//
//	views, err := handler.ListInProgress(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list orders: %w", err)
//	}
//	for _, v := range views {
//	    fmt.Printf("%s %s\n", v.OrderNumber, v.Status)
//	}
type ListInProgressOrdersQuery struct {
	limit int

	guard guard.ConstructorGuard
}

// NewListInProgressOrdersQuery clamps limit into [1, MaxInProgressLimit];
// zero or negative means DefaultInProgressLimit.
func NewListInProgressOrdersQuery(limit int) ListInProgressOrdersQuery {
	switch {
	case limit <= 0:
		limit = DefaultInProgressLimit
	case limit > MaxInProgressLimit:
		limit = MaxInProgressLimit
	}
	return ListInProgressOrdersQuery{limit: limit, guard: guard.NewConstructorGuard()}
}

func (q ListInProgressOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListInProgressOrdersQueryIsNotConstructed)
}

func (q ListInProgressOrdersQuery) Limit() int {
	return q.limit
}

// GetOrderQuery fetches one stored order by number.
type GetOrderQuery struct {
	orderNumber string

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(orderNumber string) (GetOrderQuery, error) {
	orderNumber = strings.TrimSpace(orderNumber)
	if !kernel.IsOrderNumber(orderNumber) {
		return GetOrderQuery{}, order.ErrOrderNumberIsInvalid
	}
	return GetOrderQuery{orderNumber: orderNumber, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderNumber() string {
	return q.orderNumber
}
