package render

import (
	"errors"
	"fmt"
)

// ErrNoObservations is returned when a chart is requested for a country with
// no observations.
var ErrNoObservations = errors.New("no observations to plot")

// WriteError reports a failure to create the output directory or a chart file.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %q: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
