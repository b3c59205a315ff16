package domain

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrForbidden          = errors.New("forbidden")
	ErrTooManyAttempts    = errors.New("too many login attempts")

	ErrUserNotFound   = errors.New("user not found")
	ErrEmailExists    = errors.New("email already exists")
	ErrUsernameExists = errors.New("username already exists")

	ErrEventNotFound   = errors.New("event not found")
	ErrEventNameExists = errors.New("event name already exists")
)

// InputError is a validation failure with a client-facing detail. It matches
// ErrInvalidInput under errors.Is.
type InputError struct {
	Detail string
}

func (e *InputError) Error() string { return e.Detail }

func (e *InputError) Unwrap() error { return ErrInvalidInput }

// InvalidInput returns an InputError carrying detail.
func InvalidInput(detail string) error {
	return &InputError{Detail: detail}
}
