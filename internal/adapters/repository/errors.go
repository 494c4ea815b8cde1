package repository

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel kinds for record store errors.
var (
	ErrNotFound = errors.New("input file not found")
	ErrSchema   = errors.New("required column missing")
)

// NotFoundError reports a source file that does not exist.
type NotFoundError struct {
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %s", ErrNotFound, e.Path)
}

// Is matches ErrNotFound.
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

func (e *NotFoundError) Unwrap() error { return e.Err }

// SchemaError reports required columns absent from a table header.
type SchemaError struct {
	Table   string
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: table %s lacks %s", ErrSchema, e.Table, strings.Join(e.Missing, ", "))
}

// Is matches ErrSchema.
func (e *SchemaError) Is(target error) bool { return target == ErrSchema }
