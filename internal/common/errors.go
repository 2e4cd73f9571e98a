package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound    = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrValidation     = errors.New("validation error")

	// Thumbnail job payload errors.
	ErrMissingField = errors.New("missing field")

	// Session token errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// Error carries a client-facing message together with one of the sentinel
// kinds above. errors.Is(err, kind) matches, so callers can branch on the
// category while keeping the specific message.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func NewValidationError(msg string) error {
	return &Error{Kind: ErrValidation, Message: msg}
}

func NewNotFoundError(msg string) error {
	return &Error{Kind: ErrorNotFound, Message: msg}
}

func NewMissingFieldError(field string) error {
	return &Error{Kind: ErrMissingField, Message: "missing " + field}
}

// Message returns the client-facing message of err, or fallback when err
// does not carry one.
func Message(err error, fallback string) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return fallback
}
