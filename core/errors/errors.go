// Package errors provides standardized error types and helpers for the TileVault codebase.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	// ErrSourceNotFound indicates the source archive does not exist or is unreadable
	ErrSourceNotFound = errors.New("source not found")
	// ErrUnsupportedSchema indicates the source archive uses an unknown MBTiles layout
	ErrUnsupportedSchema = errors.New("unsupported schema")
	// ErrEmptyArchive indicates the source archive contains no zoom levels
	ErrEmptyArchive = errors.New("empty archive")
	// ErrWriteFailed indicates an output archive could not be populated or compacted
	ErrWriteFailed = errors.New("write failed")
	// ErrInvalidInput indicates invalid input or validation failure
	ErrInvalidInput = errors.New("invalid input")
)

// SchemaError represents an unsupported or malformed archive schema with context
type SchemaError struct {
	Path   string // Source archive path
	Detail string // What was expected vs. found
	Err    error  // Underlying error, if any
}

func (e *SchemaError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("unsupported schema in %s: %s", e.Path, e.Detail)
	}
	return fmt.Sprintf("unsupported schema: %s", e.Detail)
}

func (e *SchemaError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrUnsupportedSchema
}

// WriteError represents a failure while writing one output archive.
// It records the zoom range of the group that failed so callers can
// report which output is affected; earlier outputs stay on disk.
type WriteError struct {
	Path    string // Destination archive path
	MinZoom int    // Lowest zoom level in the failed group
	MaxZoom int    // Highest zoom level in the failed group
	Err     error  // Underlying error
}

func (e *WriteError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to write %s (zooms %d-%d): %v", e.Path, e.MinZoom, e.MaxZoom, e.Err)
	}
	return fmt.Sprintf("failed to write group (zooms %d-%d): %v", e.MinZoom, e.MaxZoom, e.Err)
}

func (e *WriteError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrWriteFailed
}

// IOError represents an I/O operation error with context
type IOError struct {
	Operation string // Operation being performed (e.g., "read", "write", "open")
	Path      string // File/resource path involved
	Err       error  // Underlying error
}

func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to %s %s: %v", e.Operation, e.Path, e.Err)
	}
	return fmt.Sprintf("failed to %s: %v", e.Operation, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// ValidationError represents an input validation error with context
type ValidationError struct {
	Field   string // Field name that failed validation
	Message string // Human-readable error message
	Err     error  // Underlying error, if any
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidInput
}

// Helper functions for creating common errors

// NewSchema creates a SchemaError
func NewSchema(path, detail string) *SchemaError {
	return &SchemaError{
		Path:   path,
		Detail: detail,
	}
}

// NewWrite creates a WriteError
func NewWrite(path string, minZoom, maxZoom int, err error) *WriteError {
	return &WriteError{
		Path:    path,
		MinZoom: minZoom,
		MaxZoom: maxZoom,
		Err:     err,
	}
}

// NewIO creates an IOError
func NewIO(operation, path string, err error) *IOError {
	return &IOError{
		Operation: operation,
		Path:      path,
		Err:       err,
	}
}

// NewValidation creates a ValidationError
func NewValidation(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// Wrap adds context to an error. If err is nil, returns nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf adds formatted context to an error. If err is nil, returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// Is wraps errors.Is for convenience
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
