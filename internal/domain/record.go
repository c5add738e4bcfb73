// Package domain holds the record model persisted by the container and the
// errors its persistence layer reports. Errors describe storage outcomes;
// adapters decide how they surface to clients.
package domain

import (
	"maps"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Record is the unit persisted by every store: an attribute bag addressed by
// (Entity, ID).
type Record struct {
	Entity     string         `json:"entity"     validate:"required,max=128"`
	ID         string         `json:"id"         validate:"required,max=256"`
	Attributes map[string]any `json:"attributes"`
}

// RecordKey addresses a record across every store. Entity and ID are kept
// apart so no pair of values can collide.
type RecordKey struct {
	Entity string
	ID     string
}

// String renders the key for logs and error messages only.
func (k RecordKey) String() string {
	return k.Entity + "/" + k.ID
}

// Key returns the store-wide address of the record.
func (r *Record) Key() RecordKey {
	return RecordKey{Entity: r.Entity, ID: r.ID}
}

// Clone returns a copy whose attribute map can be mutated independently.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}

	return &Record{
		Entity:     r.Entity,
		ID:         r.ID,
		Attributes: maps.Clone(r.Attributes),
	}
}

// ChangeOp identifies what a staged change does.
type ChangeOp string

const (
	OpInsert ChangeOp = "insert"
	OpUpdate ChangeOp = "update"
	OpDelete ChangeOp = "delete"
)

// Change is one staged mutation waiting for a save.
type Change struct {
	Op     ChangeOp `validate:"required,oneof=insert update delete"`
	Record *Record  `validate:"required"`
}

var recordValidator = validator.New(validator.WithRequiredStructEnabled())

// ValidateChanges checks every change before it reaches a store.
// The first offending field is reported as a ValidationError.
func ValidateChanges(changes []Change) error {
	for i := range changes {
		if err := recordValidator.Struct(&changes[i]); err != nil {
			return toValidationError(err)
		}
	}

	return nil
}

func toValidationError(err error) error {
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok || len(fieldErrs) == 0 {
		return NewValidationError("", err.Error())
	}

	fe := fieldErrs[0]
	field := strings.ToLower(fe.Field())

	switch fe.Tag() {
	case "required":
		return NewValidationError(field, "is required")
	case "max":
		return NewValidationError(field, "must be at most "+fe.Param()+" characters")
	case "oneof":
		return NewValidationError(field, "must be one of: "+fe.Param())
	default:
		return NewValidationError(field, "failed validation: "+fe.Tag())
	}
}
