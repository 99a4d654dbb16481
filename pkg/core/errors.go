package core

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	// ErrMissingField is returned when a required key is absent from a raw cell or notebook.
	ErrMissingField = errors.New("missing required field")
	// ErrInvalidField is returned when a key is present but holds a value of the wrong type.
	ErrInvalidField = errors.New("invalid field value")
	// ErrMalformedVersion is returned when a format version is not "<major>.<minor>".
	ErrMalformedVersion = errors.New("malformed format version")
	// ErrUnknownCellType is returned in strict mode for cell types other than code and markdown.
	ErrUnknownCellType = errors.New("unknown cell type")
	// ErrDecode wraps failures to decode an interchange document.
	ErrDecode = errors.New("decode failed")
)

// FieldError reports which field of which cell failed to parse.
// Index is -1 for top-level notebook fields.
type FieldError struct {
	Field string
	Index int
	Err   error
}

func (e *FieldError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("notebook field %q: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("cell %d field %q: %v", e.Index, e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
