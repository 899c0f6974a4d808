package order

import (
	"fmt"

	"github.com/Shmhzr/ai-voice/internal/pkg/errs"
)

// Stage is the checkout lifecycle of an order.
//
//	Pending ──┬──> Committed
//	          └──> Discarded
//
// Committed and Discarded are final.
type Stage int

const (
	UnknownStage Stage = iota
	Pending
	Committed
	Discarded
)

func (s Stage) String() string {
	switch s {
	case Pending:
		return "Pending"
	case Committed:
		return "Committed"
	case Discarded:
		return "Discarded"
	case UnknownStage:
	}
	return "Unknown"
}

// Commit transitions Pending to Committed.
func (s Stage) Commit() (Stage, error) {
	if s != Pending {
		return UnknownStage, errs.NewValueIsInvalidErrorWithCause(
			"stage", fmt.Errorf("%s is not a valid stage to commit", s))
	}
	return Committed, nil
}

// Discard transitions Pending to Discarded.
func (s Stage) Discard() (Stage, error) {
	if s != Pending {
		return UnknownStage, errs.NewValueIsInvalidErrorWithCause(
			"stage", fmt.Errorf("%s is not a valid stage to discard", s))
	}
	return Discarded, nil
}
