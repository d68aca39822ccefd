package model

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by stores when the requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ConstraintError reports a violated unique constraint on an identity field.
type ConstraintError struct {
	Field IdentityField
	Err   error
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("unique constraint violated on %s", e.Field)
}

func (e *ConstraintError) Unwrap() error {
	return e.Err
}
