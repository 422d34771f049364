package domain

import (
	"errors"
	"fmt"
)

// Error kinds returned by repositories, providers and use cases.
// Callers match them with errors.Is; messages carry the details.
var (
	ErrBadRequest         = errors.New("bad request")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnexpectedHashFormat is not a caller mistake: a stored hash could not be decoded.
	ErrUnexpectedHashFormat = errors.New("unexpected hash format")
)

func wrap(kind error, msg string) error {
	return fmt.Errorf("%w: %s", kind, msg)
}
