package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"

	"github.com/Shmhzr/ai-voice/internal/core/application/dispatcher"
	"github.com/Shmhzr/ai-voice/internal/core/domain/model/menu"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// BindConnectionRequest is the body of PUT /api/v1/connections/{connection_id}.
type BindConnectionRequest struct {
	CallSID string `json:"call_sid"`
}

// UpdateOrderStatusRequest is the body of PUT /api/v1/orders/{order_number}/status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// Menu is the body of GET /api/v1/menu.
type Menu struct {
	Summary     string                     `json:"summary"`
	Flavors     []string                   `json:"flavors"`
	Toppings    []string                   `json:"toppings"`
	Addons      []string                   `json:"addons"`
	Sizes       []string                   `json:"sizes"`
	Prices      map[string]menu.SizePrices `json:"prices"`
	Description string                     `json:"description"`
}

type GetMenuParams struct {
	Refresh *bool `form:"refresh,omitempty" json:"refresh,omitempty"`
}

type ListInProgressOrdersParams struct {
	Limit *int `form:"limit,omitempty" json:"limit,omitempty"`
}

// ServerInterface lists the operations served under /api/v1.
type ServerInterface interface {
	ListFunctions(ctx echo.Context) error
	CallFunction(ctx echo.Context, name string) error
	BindConnection(ctx echo.Context, connectionID string) error
	UnbindConnection(ctx echo.Context, connectionID string) error
	GetMenu(ctx echo.Context, params GetMenuParams) error
	ListInProgressOrders(ctx echo.Context, params ListInProgressOrdersParams) error
	GetOrder(ctx echo.Context, orderNumber string) error
	UpdateOrderStatus(ctx echo.Context, orderNumber string) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) ListFunctions(ctx echo.Context) error {
	return w.Handler.ListFunctions(ctx)
}

func (w *ServerInterfaceWrapper) CallFunction(ctx echo.Context) error {
	var name string
	if err := bindPath(ctx, "name", &name); err != nil {
		return err
	}
	return w.Handler.CallFunction(ctx, name)
}

func (w *ServerInterfaceWrapper) BindConnection(ctx echo.Context) error {
	var connectionID string
	if err := bindPath(ctx, "connection_id", &connectionID); err != nil {
		return err
	}
	return w.Handler.BindConnection(ctx, connectionID)
}

func (w *ServerInterfaceWrapper) UnbindConnection(ctx echo.Context) error {
	var connectionID string
	if err := bindPath(ctx, "connection_id", &connectionID); err != nil {
		return err
	}
	return w.Handler.UnbindConnection(ctx, connectionID)
}

func (w *ServerInterfaceWrapper) GetMenu(ctx echo.Context) error {
	var params GetMenuParams
	if err := runtime.BindQueryParameter("form", true, false, "refresh", ctx.QueryParams(), &params.Refresh); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter refresh: %s", err))
	}
	return w.Handler.GetMenu(ctx, params)
}

func (w *ServerInterfaceWrapper) ListInProgressOrders(ctx echo.Context) error {
	var params ListInProgressOrdersParams
	if err := runtime.BindQueryParameter("form", true, false, "limit", ctx.QueryParams(), &params.Limit); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter limit: %s", err))
	}
	return w.Handler.ListInProgressOrders(ctx, params)
}

func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	var orderNumber string
	if err := bindPath(ctx, "order_number", &orderNumber); err != nil {
		return err
	}
	return w.Handler.GetOrder(ctx, orderNumber)
}

func (w *ServerInterfaceWrapper) UpdateOrderStatus(ctx echo.Context) error {
	var orderNumber string
	if err := bindPath(ctx, "order_number", &orderNumber); err != nil {
		return err
	}
	return w.Handler.UpdateOrderStatus(ctx, orderNumber)
}

func bindPath(ctx echo.Context, name string, dest *string) error {
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), dest,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return nil
}

// EchoRouter is the subset of echo used for registration; both *echo.Echo and
// *echo.Group satisfy it.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlersWithBaseURL adds every operation to router under baseURL.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	w := ServerInterfaceWrapper{Handler: si}

	router.GET(baseURL+"/api/v1/functions", w.ListFunctions)
	router.POST(baseURL+"/api/v1/functions/:name", w.CallFunction)
	router.PUT(baseURL+"/api/v1/connections/:connection_id", w.BindConnection)
	router.DELETE(baseURL+"/api/v1/connections/:connection_id", w.UnbindConnection)
	router.GET(baseURL+"/api/v1/menu", w.GetMenu)
	router.GET(baseURL+"/api/v1/orders/in-progress", w.ListInProgressOrders)
	router.GET(baseURL+"/api/v1/orders/:order_number", w.GetOrder)
	router.PUT(baseURL+"/api/v1/orders/:order_number/status", w.UpdateOrderStatus)
}

func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// FunctionList is the body of GET /api/v1/functions.
type FunctionList struct {
	Functions []dispatcher.Definition `json:"functions"`
}
