package dataset

import (
	"errors"
	"fmt"
)

var (
	// ErrNoHeader indicates the input has no header row.
	ErrNoHeader = errors.New("no header row")
	// ErrMissingColumn indicates a required column is absent.
	ErrMissingColumn = errors.New("missing required column")
	// ErrNotNumeric indicates a non-numeric value in a numeric column.
	ErrNotNumeric = errors.New("non-numeric value in numeric column")
	// ErrDuplicateColumn indicates two header cells share a name.
	ErrDuplicateColumn = errors.New("duplicate column")
)

// LoadError is returned for any failure turning a file into a Dataset.
type LoadError struct {
	Path string
	Op   string
	Err  error
}

func (e *LoadError) Error() string {
	if e == nil {
		return "load error"
	}
	if e.Path == "" {
		return fmt.Sprintf("load dataset: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("load dataset %s: %s: %v", e.Path, e.Op, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }
