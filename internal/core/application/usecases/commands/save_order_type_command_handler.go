package commands

import (
	"context"

	"github.com/Shmhzr/ai-voice/internal/core/application/session"
	"github.com/Shmhzr/ai-voice/internal/core/domain/model/kernel"
)

type SaveOrderTypeCommandHandler struct {
	sessions SessionProvider
	clock    Clock
}

func NewSaveOrderTypeCommandHandler(sessions SessionProvider, clock Clock) SaveOrderTypeCommandHandler {
	return SaveOrderTypeCommandHandler{sessions: sessions, clock: clock}
}

func (h SaveOrderTypeCommandHandler) Handle(_ context.Context, cmd SaveOrderTypeCommand) (kernel.OrderType, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}

	err := h.sessions.Get(cmd.SessionID()).Exec(func(st *session.State) error {
		st.OrderType = cmd.OrderType()
		st.OrderTypeSavedAt = h.clock.Now()
		return nil
	})
	if err != nil {
		return "", err
	}
	return cmd.OrderType(), nil
}
