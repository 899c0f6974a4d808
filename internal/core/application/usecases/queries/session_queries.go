package queries

import (
	"context"
	"errors"
	"time"

	"github.com/Shmhzr/ai-voice/internal/core/application/session"
	"github.com/Shmhzr/ai-voice/internal/core/domain/model/cart"
	"github.com/Shmhzr/ai-voice/internal/core/domain/model/kernel"
	"github.com/Shmhzr/ai-voice/internal/pkg/guard"
)

var (
	ErrGetCartQueryIsNotConstructed = errors.New(
		"GetCartQuery must be created via NewGetCartQuery constructor",
	)
	ErrGetOrderTypeQueryIsNotConstructed = errors.New(
		"GetOrderTypeQuery must be created via NewGetOrderTypeQuery constructor",
	)
	ErrOrderIsPlacedQueryIsNotConstructed = errors.New(
		"OrderIsPlacedQuery must be created via NewOrderIsPlacedQuery constructor",
	)
)

// GetCartQuery reads back the caller's cart.
type GetCartQuery struct {
	sessionID string

	guard guard.ConstructorGuard
}

func NewGetCartQuery(sessionID string) GetCartQuery {
	return GetCartQuery{sessionID: sessionID, guard: guard.NewConstructorGuard()}
}

func (q GetCartQuery) Validate() error {
	return q.guard.Validate(ErrGetCartQueryIsNotConstructed)
}

func (q GetCartQuery) SessionID() string {
	return q.sessionID
}

// GetCartQueryResponse is a deep copy; changing it never changes the cart.
type GetCartQueryResponse struct {
	Items         []cart.Item
	Count         int
	TotalQuantity int
}

// GetOrderTypeQuery reads the saved pickup/delivery choice.
type GetOrderTypeQuery struct {
	sessionID string

	guard guard.ConstructorGuard
}

func NewGetOrderTypeQuery(sessionID string) GetOrderTypeQuery {
	return GetOrderTypeQuery{sessionID: sessionID, guard: guard.NewConstructorGuard()}
}

func (q GetOrderTypeQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderTypeQueryIsNotConstructed)
}

func (q GetOrderTypeQuery) SessionID() string {
	return q.sessionID
}

// GetOrderTypeQueryResponse has a zero OrderType when none is saved.
type GetOrderTypeQueryResponse struct {
	OrderType kernel.OrderType
	SavedAt   time.Time
}

// OrderIsPlacedQuery asks whether this call already got an order number.
type OrderIsPlacedQuery struct {
	sessionID string

	guard guard.ConstructorGuard
}

func NewOrderIsPlacedQuery(sessionID string) OrderIsPlacedQuery {
	return OrderIsPlacedQuery{sessionID: sessionID, guard: guard.NewConstructorGuard()}
}

func (q OrderIsPlacedQuery) Validate() error {
	return q.guard.Validate(ErrOrderIsPlacedQueryIsNotConstructed)
}

func (q OrderIsPlacedQuery) SessionID() string {
	return q.sessionID
}

type OrderIsPlacedQueryResponse struct {
	Placed      bool
	OrderNumber string
}

// SessionQueryHandler answers the queries that only read session state.
type SessionQueryHandler struct {
	sessions SessionProvider
}

func NewSessionQueryHandler(sessions SessionProvider) SessionQueryHandler {
	return SessionQueryHandler{sessions: sessions}
}

func (h SessionQueryHandler) GetCart(_ context.Context, query GetCartQuery) (GetCartQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCartQueryResponse{}, err
	}

	var resp GetCartQueryResponse
	err := h.sessions.Get(query.SessionID()).Exec(func(st *session.State) error {
		resp = GetCartQueryResponse{
			Items:         st.Cart.Items(),
			Count:         st.Cart.Len(),
			TotalQuantity: st.Cart.TotalQuantity(),
		}
		return nil
	})
	return resp, err
}

func (h SessionQueryHandler) GetOrderType(_ context.Context, query GetOrderTypeQuery) (GetOrderTypeQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderTypeQueryResponse{}, err
	}

	var resp GetOrderTypeQueryResponse
	err := h.sessions.Get(query.SessionID()).Exec(func(st *session.State) error {
		resp = GetOrderTypeQueryResponse{OrderType: st.OrderType, SavedAt: st.OrderTypeSavedAt}
		return nil
	})
	return resp, err
}

func (h SessionQueryHandler) OrderIsPlaced(_ context.Context, query OrderIsPlacedQuery) (OrderIsPlacedQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderIsPlacedQueryResponse{}, err
	}

	var resp OrderIsPlacedQueryResponse
	err := h.sessions.Get(query.SessionID()).Exec(func(st *session.State) error {
		resp = OrderIsPlacedQueryResponse{Placed: st.OrderNumber != "", OrderNumber: st.OrderNumber}
		return nil
	})
	return resp, err
}
