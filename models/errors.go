package models

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyDataset        = errors.New("dataset has no line samples")
	ErrNoAxisColumn        = errors.New("dataset has no axis column")
	ErrMultipleAxisColumns = errors.New("dataset has more than one axis column")
	ErrLengthMismatch      = errors.New("column sample count differs from the axis column")
	ErrDuplicateColumn     = errors.New("column name is not unique")
	ErrMissingColor        = errors.New("line column has no color")
)

// ValidationError reports which column broke a dataset invariant.
type ValidationError struct {
	Column string
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("invalid dataset: %s", e.Err)
	}
	return fmt.Sprintf("invalid dataset: column %q: %s", e.Column, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
