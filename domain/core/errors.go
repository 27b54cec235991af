package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound           = errors.New("resource not found")
	ErrProductNotFound    = fmt.Errorf("%w: product", ErrNotFound)
	ErrDealNotFound       = fmt.Errorf("%w: deal", ErrNotFound)
	ErrSupplementNotFound = fmt.Errorf("%w: supplement", ErrNotFound)
	ErrReminderNotFound   = fmt.Errorf("%w: reminder", ErrNotFound)
	ErrUserNotFound       = fmt.Errorf("%w: user", ErrNotFound)
	ErrSnapshotNotFound   = fmt.Errorf("%w: snapshot", ErrNotFound)

	// Validation errors
	ErrEmptyTitle      = errors.New("title is empty")
	ErrInvalidLayout   = errors.New("invalid section layout")
	ErrDuplicateSlug   = errors.New("duplicate section slug")
	ErrInvalidWindow   = errors.New("deal window is invalid")
	ErrInvalidSchedule = errors.New("reminder schedule is invalid")
)

// Error constructors with context
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

func NewValidationError(field string, reason string) error {
	return fmt.Errorf("validation failed for %s: %s", field, reason)
}

func NewLayoutError(slug string, reason string) error {
	return fmt.Errorf("%w: section %q: %s", ErrInvalidLayout, slug, reason)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsLayoutError(err error) bool {
	return errors.Is(err, ErrInvalidLayout) || errors.Is(err, ErrDuplicateSlug)
}
