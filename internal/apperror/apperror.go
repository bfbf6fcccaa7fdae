// Package apperror defines the error taxonomy shared by every service.
// All errors surfaced to callers go through this package so that a caller
// can branch on the kind without parsing messages, and so internal details
// (SQL errors, driver state) never leak out of the service layer.
package apperror

import "errors"

// Kind classifies an error for the caller.
type Kind string

const (
	// KindNotFound: a referenced sale, account, or session does not exist.
	KindNotFound Kind = "not_found"
	// KindInvalidState: register lifecycle misuse (already open / not open).
	KindInvalidState Kind = "invalid_state"
	// KindValidation: malformed input, rejected before any mutation begins.
	KindValidation Kind = "validation"
	// KindInternal: anything else; the underlying cause stays server-side.
	KindInternal Kind = "internal"
)

// Error is the canonical tagged error for all service operations.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func NotFound(msg string) *Error     { return &Error{Kind: KindNotFound, Message: msg} }
func InvalidState(msg string) *Error { return &Error{Kind: KindInvalidState, Message: msg} }
func Validation(msg string) *Error   { return &Error{Kind: KindValidation, Message: msg} }
func Internal(msg string) *Error     { return &Error{Kind: KindInternal, Message: msg} }

// KindOf extracts the kind from err, unwrapping as needed.
// Plain errors map to KindInternal.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

func IsNotFound(err error) bool     { return KindOf(err) == KindNotFound }
func IsInvalidState(err error) bool { return KindOf(err) == KindInvalidState }
func IsValidation(err error) bool   { return KindOf(err) == KindValidation }
