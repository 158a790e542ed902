package errors

import (
	"errors"
	"strings"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidOption   = errors.New("invalid option")
	ErrInvalidQuantity = errors.New("invalid quantity")
	ErrInvalidPrice    = errors.New("invalid price")
	ErrSessionClosed   = errors.New("session closed")
	ErrDuplicateSubmit = errors.New("duplicate submit")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrBackendFailure  = errors.New("backend failure")
	ErrMissingOptions  = errors.New("missing required options")
)

// MissingOptionsError lists the required option categories still unselected.
type MissingOptionsError struct {
	Categories []string
}

func (e *MissingOptionsError) Error() string {
	return "missing required options: " + strings.Join(e.Categories, ", ")
}

func (e *MissingOptionsError) Unwrap() error {
	return ErrMissingOptions
}
