package cli

import (
	"errors"
	"fmt"

	"github.com/mesh-intelligence/phonebook/pkg/types"
)

// directoryError wraps a Directory error with the exit code it maps to.
// Caller mistakes exit 1; anything else is a system error.
func directoryError(action string, err error) error {
	wrapped := fmt.Errorf("%s: %w", action, err)
	switch {
	case errors.Is(err, types.ErrNotFound),
		errors.Is(err, types.ErrInvalidID),
		errors.Is(err, types.ErrInvalidData),
		errors.Is(err, types.ErrDuplicateID),
		errors.Is(err, types.ErrPermissionDenied):
		return &cliError{code: exitUserError, err: wrapped}
	default:
		return &cliError{code: exitSysError, err: wrapped}
	}
}
