// internal/models/errors.go
package models

import (
	"errors"
	"fmt"
)

// ErrAlreadyRegistered is returned when tables are attached to a product that
// already has its table list registered.
var ErrAlreadyRegistered = errors.New("tables are already registered for this product")

// MissingRequiredFieldError reports an empty or blank required metadata field.
type MissingRequiredFieldError struct {
	Field string
}

func (e *MissingRequiredFieldError) Error() string {
	return fmt.Sprintf("required field %q is missing or blank", e.Field)
}

// InvalidSchemaVersionError reports a non-positive product schema version.
type InvalidSchemaVersionError struct {
	Version int
}

func (e *InvalidSchemaVersionError) Error() string {
	return fmt.Sprintf("schema version must be a positive integer, got %d", e.Version)
}

// InvalidRestrictionTypeError reports a restriction type outside private|public.
type InvalidRestrictionTypeError struct {
	Value RestrictionType
}

func (e *InvalidRestrictionTypeError) Error() string {
	return fmt.Sprintf("restriction type %q is not valid, must be %q or %q",
		e.Value, RestrictionTypePrivate, RestrictionTypePublic)
}
