// Package http exposes the function-call boundary for the voice bridge and a
// small operator API over echo.
package http

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Shmhzr/ai-voice/internal/core/application/dispatcher"
	"github.com/Shmhzr/ai-voice/internal/core/application/usecases/commands"
	"github.com/Shmhzr/ai-voice/internal/core/application/usecases/queries"
	"github.com/Shmhzr/ai-voice/internal/core/domain/model/order"
	"github.com/Shmhzr/ai-voice/internal/core/ports"
	"github.com/Shmhzr/ai-voice/internal/pkg/errs"
)

// ConnectionHeader names the voice bridge connection a function call arrives on.
const ConnectionHeader = "X-Connection-Id"

const maxArgumentBytes = 1 << 20

// Server implements ServerInterface on top of the dispatcher and the
// operator use cases.
type Server struct {
	dispatcher *dispatcher.Dispatcher
	calls      ports.CallDirectory

	// Command handlers
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler

	// Query handlers
	menuSummaryHandler queries.MenuSummaryQueryHandler
	orderReadHandler   queries.OrderReadQueryHandler
}

func NewServer(
	d *dispatcher.Dispatcher,
	calls ports.CallDirectory,
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler,
	menuSummaryHandler queries.MenuSummaryQueryHandler,
	orderReadHandler queries.OrderReadQueryHandler,
) *Server {
	return &Server{
		dispatcher:               d,
		calls:                    calls,
		updateOrderStatusHandler: updateOrderStatusHandler,
		menuSummaryHandler:       menuSummaryHandler,
		orderReadHandler:         orderReadHandler,
	}
}

// ListFunctions godoc
//
//	@Summary	List the functions the voice agent may call
//	@Tags		functions
//	@Produce	json
//	@Success	200	{object}	FunctionList
//	@Router		/functions [get]
func (s *Server) ListFunctions(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, FunctionList{Functions: s.dispatcher.Definitions()})
}

// CallFunction godoc
//
//	@Summary		Call a function
//	@Description	The body is the argument object. Failures are reported in the result with ok=false.
//	@Tags			functions
//	@Accept			json
//	@Produce		json
//	@Param			name			path		string	true	"Function name"
//	@Param			X-Connection-Id	header		string	false	"Voice bridge connection"
//	@Success		200				{object}	map[string]interface{}
//	@Router			/functions/{name} [post]
func (s *Server) CallFunction(ctx echo.Context, name string) error {
	body, err := io.ReadAll(io.LimitReader(ctx.Request().Body, maxArgumentBytes))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Failed to read request body",
		})
	}

	connectionID := ctx.Request().Header.Get(ConnectionHeader)
	result := s.dispatcher.Dispatch(ctx.Request().Context(), name, body, connectionID)
	return ctx.JSON(http.StatusOK, result)
}

// BindConnection godoc
//
//	@Summary	Associate a bridge connection with a call
//	@Tags		connections
//	@Accept		json
//	@Param		connection_id	path	string					true	"Connection ID"
//	@Param		body			body	BindConnectionRequest	true	"Call"
//	@Success	204
//	@Failure	400	{object}	Error
//	@Router		/connections/{connection_id} [put]
func (s *Server) BindConnection(ctx echo.Context, connectionID string) error {
	var req BindConnectionRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if strings.TrimSpace(req.CallSID) == "" {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "call_sid is required",
		})
	}

	s.calls.Bind(connectionID, strings.TrimSpace(req.CallSID))
	return ctx.NoContent(http.StatusNoContent)
}

// UnbindConnection godoc
//
//	@Summary	Forget a bridge connection
//	@Tags		connections
//	@Param		connection_id	path	string	true	"Connection ID"
//	@Success	204
//	@Router		/connections/{connection_id} [delete]
func (s *Server) UnbindConnection(ctx echo.Context, connectionID string) error {
	s.calls.Unbind(connectionID)
	return ctx.NoContent(http.StatusNoContent)
}

// GetMenu godoc
//
//	@Summary	Current menu
//	@Tags		menu
//	@Produce	json
//	@Param		refresh	query		bool	false	"Refetch from the source"
//	@Success	200		{object}	Menu
//	@Router		/menu [get]
func (s *Server) GetMenu(ctx echo.Context, params GetMenuParams) error {
	refresh := params.Refresh != nil && *params.Refresh

	res, err := s.menuSummaryHandler.Handle(ctx.Request().Context(), queries.NewMenuSummaryQuery(refresh))
	if err != nil {
		return s.fail(ctx, err, "Failed to read menu")
	}

	return ctx.JSON(http.StatusOK, Menu{
		Summary:     res.Summary,
		Flavors:     res.Flavors,
		Toppings:    res.Toppings,
		Addons:      res.Addons,
		Sizes:       res.Sizes,
		Prices:      res.Prices,
		Description: res.Description,
	})
}

// ListInProgressOrders godoc
//
//	@Summary	Orders not yet ready, newest first
//	@Tags		orders
//	@Produce	json
//	@Param		limit	query		int	false	"Maximum number of orders"
//	@Success	200		{array}		order.View
//	@Failure	500		{object}	Error
//	@Router		/orders/in-progress [get]
func (s *Server) ListInProgressOrders(ctx echo.Context, params ListInProgressOrdersParams) error {
	limit := 0
	if params.Limit != nil {
		limit = *params.Limit
	}

	views, err := s.orderReadHandler.ListInProgress(ctx.Request().Context(), queries.NewListInProgressOrdersQuery(limit))
	if err != nil {
		return s.fail(ctx, err, "Failed to retrieve orders")
	}
	if views == nil {
		views = []order.View{}
	}
	return ctx.JSON(http.StatusOK, views)
}

// GetOrder godoc
//
//	@Summary	Most recent order with a number
//	@Tags		orders
//	@Produce	json
//	@Param		order_number	path		string	true	"Four-digit order number"
//	@Success	200				{object}	order.View
//	@Failure	400				{object}	Error
//	@Failure	404				{object}	Error
//	@Router		/orders/{order_number} [get]
func (s *Server) GetOrder(ctx echo.Context, orderNumber string) error {
	query, err := queries.NewGetOrderQuery(orderNumber)
	if err != nil {
		return s.fail(ctx, err, "Invalid order number")
	}

	view, err := s.orderReadHandler.GetOrder(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err, "Failed to retrieve order")
	}
	return ctx.JSON(http.StatusOK, view)
}

// UpdateOrderStatus godoc
//
//	@Summary	Move an order to a new kitchen status
//	@Tags		orders
//	@Accept		json
//	@Produce	json
//	@Param		order_number	path		string						true	"Four-digit order number"
//	@Param		body			body		UpdateOrderStatusRequest	true	"New status"
//	@Success	200				{object}	order.View
//	@Failure	400				{object}	Error
//	@Failure	404				{object}	Error
//	@Router		/orders/{order_number}/status [put]
func (s *Server) UpdateOrderStatus(ctx echo.Context, orderNumber string) error {
	var req UpdateOrderStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(orderNumber, req.Status)
	if err != nil {
		return s.fail(ctx, err, "Invalid status update")
	}

	view, err := s.updateOrderStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err, "Failed to update order")
	}
	return ctx.JSON(http.StatusOK, view)
}

// fail maps use case errors onto status codes. Validation and lookup errors
// carry their own message; anything else gets the generic one.
func (s *Server) fail(ctx echo.Context, err error, generic string) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, Error{Code: http.StatusNotFound, Message: err.Error()})
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: generic + ": " + err.Error()})
	default:
		ctx.Logger().Errorf("%s: %v", generic, err)
		return ctx.JSON(http.StatusInternalServerError, Error{Code: http.StatusInternalServerError, Message: generic})
	}
}
