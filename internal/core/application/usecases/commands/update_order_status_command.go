package commands

import (
	"errors"
	"strings"

	"github.com/Shmhzr/ai-voice/internal/core/domain/model/kernel"
	"github.com/Shmhzr/ai-voice/internal/core/domain/model/order"
	"github.com/Shmhzr/ai-voice/internal/pkg/guard"
)

var ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
	"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
)

// UpdateOrderStatusCommand is the kitchen moving a stored order along.
//
// Example:
//
//	cmd, err := NewUpdateOrderStatusCommand("0427", "ready")
//	if err != nil {
//	    return err
//	}
//	view, err := handler.Handle(ctx, cmd)
type UpdateOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderNumber string
	status      order.Status

	guard guard.ConstructorGuard
}

func NewUpdateOrderStatusCommand(orderNumber, status string) (UpdateOrderStatusCommand, error) {
	cmd := UpdateOrderStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderNumber(orderNumber),
		cmd.setStatus(status),
	); err != nil {
		return UpdateOrderStatusCommand{}, err
	}

	return cmd, nil
}

func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

func (c UpdateOrderStatusCommand) OrderNumber() string {
	return c.orderNumber
}

func (c UpdateOrderStatusCommand) Status() order.Status {
	return c.status
}

func (c *UpdateOrderStatusCommand) setOrderNumber(number string) error {
	number = strings.TrimSpace(number)
	if !kernel.IsOrderNumber(number) {
		return order.ErrOrderNumberIsInvalid
	}

	c.orderNumber = number
	return nil
}

func (c *UpdateOrderStatusCommand) setStatus(raw string) error {
	status, err := order.ParseStatus(raw)
	if err != nil {
		return err
	}

	c.status = status
	return nil
}
