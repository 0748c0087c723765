package services

import (
	"errors"
	"fmt"
)

// ErrHeaderMismatch indicates the input does not start with the four
// identifier columns.
var ErrHeaderMismatch = errors.New("header mismatch")

// ErrNoYearColumns indicates the input has no column after the identifiers.
var ErrNoYearColumns = errors.New("no year columns")

// LoadError reports a fatal failure to read the input table.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %q: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
