package domain

import (
	"errors"
	"fmt"
)

// Sentinels matched with errors.Is. The typed errors below unwrap to one of
// them; adapters translate them into transport status codes.
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrValidation  = errors.New("validation failed")
	ErrUnavailable = errors.New("unavailable")
	ErrLoad        = errors.New("store load failed")
)

// NotFoundError reports a missing record, or a missing entity when ID is
// empty.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return e.Entity + " not found"
	}

	return fmt.Sprintf("%s with id %q not found", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// NewNotFoundError reports that (entity, id) does not exist.
func NewNotFoundError(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// ConflictError reports a uniqueness violation or an operation that clashes
// with current state.
type ConflictError struct {
	Entity  string
	Reason  string
	Details string
}

func (e *ConflictError) Error() string {
	msg := e.Entity + " conflict: " + e.Reason
	if e.Details != "" {
		msg += " (" + e.Details + ")"
	}

	return msg
}

func (e *ConflictError) Unwrap() error { return ErrConflict }

// NewConflictError reports a conflict on entity.
func NewConflictError(entity, reason string) error {
	return &ConflictError{Entity: entity, Reason: reason}
}

// NewDuplicateError reports an insert whose (entity, id) is already taken.
func NewDuplicateError(entity, id string) error {
	return &ConflictError{Entity: entity, Reason: "duplicate id", Details: id}
}

// ValidationError reports a record or description rejected before it reached
// a store.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Message
	}

	return "validation failed for " + e.Field + ": " + e.Message
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError reports that field is invalid.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// UnavailableError reports a store that cannot serve requests: not loaded,
// closed, or unreachable.
type UnavailableError struct {
	Store  string
	Reason string
}

func (e *UnavailableError) Error() string {
	msg := fmt.Sprintf("store %q unavailable", e.Store)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}

	return msg
}

func (e *UnavailableError) Unwrap() error { return ErrUnavailable }

// NewUnavailableError reports store as unavailable for reason.
func NewUnavailableError(store, reason string) error {
	return &UnavailableError{Store: store, Reason: reason}
}

// LoadError is what a load completion receives for a store that failed to
// open. It matches both ErrLoad and its cause.
type LoadError struct {
	Store string
	Cause error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading store %q: %v", e.Store, e.Cause)
}

func (e *LoadError) Unwrap() []error { return []error{ErrLoad, e.Cause} }

// NewLoadError wraps cause for store.
func NewLoadError(store string, cause error) error {
	return &LoadError{Store: store, Cause: cause}
}

// PartialCommitError reports a batch that spanned several stores where some
// stores committed their share and could not undo it. Committed lists the
// changes that are now durable; every other change of the batch is not.
type PartialCommitError struct {
	Committed []Change
	Cause     error
}

func (e *PartialCommitError) Error() string {
	return fmt.Sprintf("%d of the batch's changes stayed committed: %v", len(e.Committed), e.Cause)
}

func (e *PartialCommitError) Unwrap() error { return e.Cause }

// IsNotFound reports whether err matches ErrNotFound.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsConflict reports whether err matches ErrConflict.
func IsConflict(err error) bool { return errors.Is(err, ErrConflict) }

// IsValidation reports whether err matches ErrValidation.
func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }

// IsUnavailable reports whether err matches ErrUnavailable.
func IsUnavailable(err error) bool { return errors.Is(err, ErrUnavailable) }

// IsLoad reports whether err matches ErrLoad.
func IsLoad(err error) bool { return errors.Is(err, ErrLoad) }
