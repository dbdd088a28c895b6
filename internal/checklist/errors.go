package checklist

import (
	"errors"
	"fmt"
)

// Error kinds shared by the engine, the session log and storage. Concrete
// errors wrap one of these so callers can branch with errors.Is.
var (
	// ErrConfiguration means a roster or checklist required to start a
	// session is missing or unusable.
	ErrConfiguration = errors.New("configuration error")

	// ErrPersistence means the underlying store failed to read or write.
	ErrPersistence = errors.New("persistence error")

	// ErrNotFound means a referenced session, category, item or soldier does
	// not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation means user-entered data failed basic constraints.
	ErrValidation = errors.New("validation error")
)

// ValidationError describes a rejected field with a user-facing message.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Is reports ValidationError as an ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func notFound(kind, id string) error {
	return fmt.Errorf("%w: %s %q", ErrNotFound, kind, id)
}
