// Package errs provides the error types shared by the ordering backend.
//
// Validation failures follow one pattern:
//   - a sentinel error variable (e.g., ErrValueIsRequired)
//   - a struct type with fields for error details
//   - constructor functions with and without cause
//   - Error() for formatting and Unwrap() for errors.Is support
//
// RejectionError is different: its message is meant for the caller on the
// other end of the phone line, so Error() returns the reason verbatim and any
// structured Fields are merged into the function-call result.
package errs
