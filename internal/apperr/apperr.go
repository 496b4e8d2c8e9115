// Package apperr is the service-layer error taxonomy. Every failure a service
// returns carries an explicit kind; handlers pick HTTP status codes by
// switching on the kind, never by inspecting message text.
package apperr

import "errors"

type Kind int

const (
	// KindInternal is the zero value so an unwrapped error defaults to 500.
	KindInternal Kind = iota
	// KindValidation covers missing/blank required fields, malformed dates
	// and invalid date ordering.
	KindValidation
	// KindNotFound deliberately conflates "absent" and "not owned by the
	// caller" so responses leak nothing about other users' resources.
	KindNotFound
	// KindUnauthorized covers bad credentials and missing tokens.
	KindUnauthorized
	// KindForbidden covers tokens that fail verification.
	KindForbidden
	// KindConflict covers duplicate-email registration.
	KindConflict
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "internal error"
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// KindOf reports the kind of err, unwrapping as needed. Errors that never
// passed through this package count as internal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
