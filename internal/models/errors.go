package models

import (
	"errors"
	"fmt"
)

var (
	// ErrAlreadyEnded is returned when ending an assignment that already has an end date
	ErrAlreadyEnded = errors.New("assignment already ended")

	// ErrUnknownShiftType is returned when a label has no registered timing
	ErrUnknownShiftType = errors.New("unknown shift type")
)

// ValidationError reports malformed input. It is always raised before any
// mutation takes place.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Invalid builds a ValidationError from a format string.
func Invalid(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// NotFoundError identifies a missing entity by kind and key. Lookups never
// treat a missing id as a silent no-op.
type NotFoundError struct {
	Entity string
	Key    any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %v not found", e.Entity, e.Key)
}

// NotFound builds a NotFoundError.
func NotFound(entity string, key any) error {
	return &NotFoundError{Entity: entity, Key: key}
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// ConflictError reports an operation blocked by an existing reference, e.g.
// deleting a shift-type label still used by a pattern or a timing rule. Ref
// names the specific conflicting pattern or rule so the caller can report it.
type ConflictError struct {
	Label string
	Ref   string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("shift type %q is still in use by %s", e.Label, e.Ref)
}

// IsConflict reports whether err is a ConflictError.
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}
