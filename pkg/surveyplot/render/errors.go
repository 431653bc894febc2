package render

import (
	"errors"
	"fmt"
)

// ErrInvalidSize is returned for non-positive or unusable figure sizes.
var ErrInvalidSize = errors.New("invalid figure size")

// ExportError reports a figure that could not be produced. Path is empty when
// the failure happened before an output path was involved.
type ExportError struct {
	Path string
	Err  error
}

func (e *ExportError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("export: %v", e.Err)
	}
	return fmt.Sprintf("export %s: %v", e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}
