package service

import "github.com/go-faster/errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotFound           = errors.New("not found")
	ErrCatalogUnavailable = errors.New("failed to load menu items")
	ErrAuthUnavailable    = errors.New("auth not configured")
	ErrUnauthenticated    = errors.New("not signed in")
)

// ValidationError carries a message meant for the person filling the form.
// It matches ErrInvalidInput.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

func invalid(msg string) error { return &ValidationError{Msg: msg} }
