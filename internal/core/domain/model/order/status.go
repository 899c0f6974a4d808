package order

import (
	"fmt"
	"strings"

	"github.com/Shmhzr/ai-voice/internal/pkg/errs"
)

// Status is kitchen progress as seen by the operator and by callers asking
// "where is my order".
type Status string

const (
	Received  Status = "received"
	Preparing Status = "preparing"
	Ready     Status = "ready"
)

// ParseStatus accepts the known statuses case-insensitively.
func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	if err := s.Validate(); err != nil {
		return "", err
	}
	return s, nil
}

func (s Status) Validate() error {
	switch s {
	case Received, Preparing, Ready:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", string(s)))
}

// IsActive reports whether the order still counts toward the per-phone limit.
func (s Status) IsActive() bool {
	return s != Ready
}

func (s Status) String() string {
	return string(s)
}
