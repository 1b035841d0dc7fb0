// Package workflow contains the pure business rules for the complaint
// lifecycle: status ordering, the role-based authorization matrix,
// visibility resolution, and the promotion request state machine.
// No I/O happens here; services apply these rules against the store.
package workflow

import (
	"errors"
	"fmt"
)

// Business-rule error kinds. Handlers translate these to HTTP statuses;
// everything else propagates as ErrRemote.
var (
	ErrUnauthorized      = errors.New("unauthorized")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrAlreadyEscalated  = errors.New("already escalated")
	ErrAlreadyResolved   = errors.New("already resolved")
	ErrToggleInProgress  = errors.New("toggle already in progress")
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("not found")
	ErrRemote            = errors.New("remote store failure")
)

// Validationf wraps ErrValidation with a caller-facing message.
func Validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// Remote wraps a store-level failure so callers can distinguish it from
// business-rule violations with errors.Is.
func Remote(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrRemote, op, err)
}
