package apperr

import (
	"errors"
	"fmt"
)

// Sentinel kinds for the catalog error taxonomy. Usecases and repositories
// wrap these with %w; handlers map them to transport codes with errors.Is.
var (
	// ErrNotFound means a slug or id does not resolve to a row the caller is
	// allowed to see.
	ErrNotFound = errors.New("not found")

	// ErrValidation means the request itself is malformed: a missing required
	// query parameter, a non-numeric price bound, an unknown sort field.
	ErrValidation = errors.New("validation error")

	// ErrUniqueness means a write collided with a unique constraint
	// (slug or natural key).
	ErrUniqueness = errors.New("uniqueness violation")

	// ErrStorage means the underlying store is unreachable or failing.
	// Never swallowed, always propagated.
	ErrStorage = errors.New("storage unavailable")
)

func NotFound(what string) error {
	return fmt.Errorf("%s: %w", what, ErrNotFound)
}

func Validation(msg string) error {
	return fmt.Errorf("%s: %w", msg, ErrValidation)
}

func Validationf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrValidation)...)
}

func Uniqueness(what string) error {
	return fmt.Errorf("%s: %w", what, ErrUniqueness)
}

func Storage(err error) error {
	return fmt.Errorf("%w: %v", ErrStorage, err)
}
