package repository

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel kinds for dataset errors.
var (
	ErrDatasetNotFound  = errors.New("dataset not found")
	ErrSchema           = errors.New("dataset schema error")
	ErrEmptyDataset     = errors.New("dataset has no usable rows")
	ErrInvalidDelimiter = errors.New("invalid delimiter")
)

// SchemaError lists the required columns a dataset header lacks.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: missing columns: %s", ErrSchema, strings.Join(e.Missing, ", "))
}

// Unwrap lets errors.Is match ErrSchema.
func (e *SchemaError) Unwrap() error { return ErrSchema }
