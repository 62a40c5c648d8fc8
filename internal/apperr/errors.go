// Package apperr defines the error taxonomy shared by all entity services.
// Every failure is terminal: handlers map these to HTTP statuses and nothing
// in the service layer retries.
package apperr

import "errors"

// Error is a classified application error.
type Error struct {
	Kind    Kind
	Message string
}

// Kind enumerates the failure classes.
type Kind int

const (
	// KindNotFound fires when an entity is missing or outside the caller's
	// tenant scope. Existence is checked before authorization, so a
	// cross-tenant id probe is indistinguishable from a missing row.
	KindNotFound Kind = iota
	// KindForbidden fires when the entity exists and is visible but the
	// principal's role does not permit the operation.
	KindForbidden
	// KindValidation fires on malformed input or candidate-data schema
	// conformance failures.
	KindValidation
	// KindConflict fires on duplicate unique names (roles, permissions,
	// tenants, user emails).
	KindConflict
)

func (e *Error) Error() string {
	return e.Message
}

// NotFound returns a not-found error with the given message.
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Forbidden returns a forbidden error with the given message.
func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

// Validation returns a validation error with the given message.
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// Conflict returns a conflict error with the given message.
func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// KindOf extracts the failure class from err, with ok=false for errors that
// did not originate from this taxonomy.
func KindOf(err error) (Kind, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind, true
	}
	return 0, false
}

// IsNotFound reports whether err is a not-found error.
func IsNotFound(err error) bool {
	kind, ok := KindOf(err)
	return ok && kind == KindNotFound
}

// IsForbidden reports whether err is a forbidden error.
func IsForbidden(err error) bool {
	kind, ok := KindOf(err)
	return ok && kind == KindForbidden
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool {
	kind, ok := KindOf(err)
	return ok && kind == KindValidation
}

// IsConflict reports whether err is a conflict error.
func IsConflict(err error) bool {
	kind, ok := KindOf(err)
	return ok && kind == KindConflict
}
