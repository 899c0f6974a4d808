package queries

import (
	"errors"
	"strings"

	"github.com/Shmhzr/ai-voice/internal/pkg/errs"
	"github.com/Shmhzr/ai-voice/internal/pkg/guard"
)

var (
	ErrOrderStatusQueryIsNotConstructed = errors.New(
		"OrderStatusQuery must be created via NewOrderStatusQuery constructor",
	)
	ErrPhoneOrOrderNumberRequired = errs.NewRejectionError("phone or order_number required")
)

// OrderStatusQuery looks a stored order up by number or, failing that, by the
// phone it was placed from.
//
// Example:
//
//	query, err := NewOrderStatusQuery("", "0427")
//	if err != nil {
//	    return err
//	}
//	resp, err := handler.Handle(ctx, query)
//	if resp.Found {
//	    fmt.Printf("Order %s is %s\n", resp.OrderNumber, resp.Status)
//	}
type OrderStatusQuery struct {
	phone       string
	orderNumber string

	guard guard.ConstructorGuard
}

// NewOrderStatusQuery needs at least one of phone and orderNumber.
func NewOrderStatusQuery(phone, orderNumber string) (OrderStatusQuery, error) {
	q := OrderStatusQuery{
		phone:       strings.TrimSpace(phone),
		orderNumber: strings.TrimSpace(orderNumber),
		guard:       guard.NewConstructorGuard(),
	}
	if q.phone == "" && q.orderNumber == "" {
		return OrderStatusQuery{}, ErrPhoneOrOrderNumberRequired
	}
	return q, nil
}

func (q OrderStatusQuery) Validate() error {
	return q.guard.Validate(ErrOrderStatusQueryIsNotConstructed)
}

func (q OrderStatusQuery) Phone() string {
	return q.phone
}

func (q OrderStatusQuery) OrderNumber() string {
	return q.orderNumber
}

// OrderStatusQueryResponse reports Found=false for unknown orders; that is an
// answer, not an error.
type OrderStatusQueryResponse struct {
	Found       bool
	OrderNumber string
	Status      string
}
