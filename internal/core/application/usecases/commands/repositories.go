// Package commands contains the operations that change a call's cart, its
// orders or the stored orders.
// Every command follows the same pattern: a constructor that validates input,
// a handler that takes the session lock for in-memory state and a unit of
// work for durable state.
package commands

import (
	"context"
	"time"

	"github.com/Shmhzr/ai-voice/internal/core/application/session"
	"github.com/Shmhzr/ai-voice/internal/core/domain/model/menu"
	"github.com/Shmhzr/ai-voice/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// OrderUoW manages transactions for order operations.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   err = uow.OrderRepository().Add(ctx, o)
	//   err = uow.Commit(ctx)
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}
)

// Collaborators shared by the session-scoped handlers.
type (
	// MenuProvider returns the current menu. It never fails; an unreachable
	// source yields a cached, fallback or empty menu.
	MenuProvider interface {
		Get(ctx context.Context, forceRefresh bool) menu.Menu
	}

	// SessionProvider hands out the session of a call, creating it if needed.
	SessionProvider interface {
		Get(callSID string) *session.Session
	}

	// Clock tells handlers what time it is.
	Clock interface {
		Now() time.Time
	}
)

// SystemClock reads the wall clock in UTC.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
