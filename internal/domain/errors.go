package domain

import (
	"errors"
	"fmt"
)

// ErrProductExists is returned when a product with the same (name, brand)
// pair already exists. Surfaced to clients as a 409.
var ErrProductExists = errors.New("product with this name and brand already exists")

// NotFoundError reports that an entity of a given kind does not exist.
// It is used both for primary resources (GET/DELETE by id) and for
// foreign key references that fail validation.
type NotFoundError struct {
	Kind Kind
	ID   int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %d not found", e.Kind, e.ID)
}

// NewNotFound builds a NotFoundError for the given kind and id.
func NewNotFound(kind Kind, id int64) *NotFoundError {
	return &NotFoundError{Kind: kind, ID: id}
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// MissingReferenceError reports that a required foreign key was absent
// from a write payload. Distinct from NotFoundError: a present id that
// fails lookup is "not found", a missing required id is a caller error.
type MissingReferenceError struct {
	Kind Kind
}

func (e *MissingReferenceError) Error() string {
	return fmt.Sprintf("%s id is required", e.Kind)
}
