package errs

import (
	"errors"
	"maps"
)

// ErrRejected marks a request refused for a reason the caller is expected to
// relay back to the customer as-is.
var ErrRejected = errors.New("request rejected")

// RejectionError carries a customer-facing reason and optional structured
// fields that travel with it to the function-call result.
type RejectionError struct {
	Reason string
	Fields map[string]any
	Cause  error
}

func NewRejectionError(reason string) *RejectionError {
	return &RejectionError{Reason: reason}
}

func NewRejectionErrorWithFields(reason string, fields map[string]any) *RejectionError {
	return &RejectionError{Reason: reason, Fields: maps.Clone(fields)}
}

func NewRejectionErrorWithCause(reason string, cause error) *RejectionError {
	return &RejectionError{Reason: reason, Cause: cause}
}

func (e *RejectionError) Error() string {
	return e.Reason
}

func (e *RejectionError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrRejected, e.Cause}
	}
	return []error{ErrRejected}
}

// AsRejection returns the first RejectionError in err's chain.
func AsRejection(err error) (*RejectionError, bool) {
	var rej *RejectionError
	if errors.As(err, &rej) {
		return rej, true
	}
	return nil, false
}
