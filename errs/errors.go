// Package errs carries the service-wide failure taxonomy and the explicit
// per-operation store-failure policy. Handlers map errors to HTTP statuses
// through Status instead of picking codes ad hoc.
package errs

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnauthorized means no resolvable identity where one is required.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFoundOrForbidden covers both an absent record and a record owned
	// by someone else; the message is identical on purpose so existence never
	// leaks.
	ErrNotFoundOrForbidden = errors.New("history record not found")
	// ErrCatalogUnavailable means the catalog collaborator is unreachable or
	// timed out. It is never masked with empty results.
	ErrCatalogUnavailable = errors.New("catalog unavailable")
	// ErrStoreFailure means a persistence collaborator is unreachable.
	ErrStoreFailure = errors.New("store failure")
)

// ValidationError reports a malformed or out-of-range input field. Requests
// failing validation are never retried.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Validation builds a ValidationError naming the offending field.
func Validation(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Status maps an error onto the taxonomy's HTTP status. Anything outside the
// taxonomy is a 500.
func Status(err error) int {
	switch {
	case IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotFoundOrForbidden):
		return http.StatusNotFound
	case errors.Is(err, ErrCatalogUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// FailureMode says how an operation reacts when a store call fails.
type FailureMode int

const (
	// Fail surfaces the failure to the caller. Explicit CRUD operations fail
	// loud: nobody wants a delete that silently didn't happen.
	Fail FailureMode = iota
	// Degrade logs and keeps serving. Side-effect writes on the search path
	// must not cost the shopper their results.
	Degrade
	// Retry leaves state untouched so the next sweep interval tries again.
	Retry
)

// storeFailureModes is the per-operation policy table: every swallowed error
// is a decision recorded here, not one handler's accident. Unlisted
// operations fail loud.
var storeFailureModes = map[string]FailureMode{
	"query.append":    Degrade,
	"history.append":  Degrade,
	"suggest.history": Degrade,
	"history.list":    Fail,
	"history.delete":  Fail,
	"history.clear":   Fail,
	"click.append":    Fail,
	"click.list":      Fail,
	"session.cascade": Retry,
}

// ModeFor returns the failure mode for a named store operation.
func ModeFor(operation string) FailureMode {
	if m, ok := storeFailureModes[operation]; ok {
		return m
	}
	return Fail
}
