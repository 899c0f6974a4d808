// Package queries contains read operations for retrieving system state.
// Queries never change a session or a stored order; they return read models
// shaped for the voice agent and the operator API.
package queries

import (
	"context"

	"github.com/Shmhzr/ai-voice/internal/core/application/session"
	"github.com/Shmhzr/ai-voice/internal/core/domain/model/menu"
)

type (
	// MenuProvider returns the current menu.
	MenuProvider interface {
		Get(ctx context.Context, forceRefresh bool) menu.Menu
	}

	// SessionProvider hands out the session of a call.
	SessionProvider interface {
		Get(callSID string) *session.Session
	}
)
