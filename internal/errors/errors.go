package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions
var (
	// ErrFileNotFound is returned when the input file does not exist or cannot be opened
	ErrFileNotFound = errors.New("file not found")

	// ErrIO is returned for read/write failures on the input or output file
	ErrIO = errors.New("i/o error")

	// ErrInvalidArgument is returned when configuration or request input is malformed
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrJobNotFound is returned when a job is not found
	ErrJobNotFound = errors.New("job not found")
)

// FileNotFoundError reports an input file that could not be opened
type FileNotFoundError struct {
	Path string
	Err  error
}

func (e *FileNotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("input file '%s' not found: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("input file '%s' not found", e.Path)
}

func (e *FileNotFoundError) Is(target error) bool {
	return target == ErrFileNotFound
}

func (e *FileNotFoundError) Unwrap() error {
	return e.Err
}

// NewFileNotFoundError creates a new FileNotFoundError
func NewFileNotFoundError(path string, cause error) *FileNotFoundError {
	return &FileNotFoundError{Path: path, Err: cause}
}

// IOError represents a failed operation (open, read, write, close) on a file
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to %s '%s': %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("failed to %s '%s'", e.Op, e.Path)
}

func (e *IOError) Is(target error) bool {
	return target == ErrIO
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(op, path string, cause error) *IOError {
	return &IOError{Op: op, Path: path, Err: cause}
}

// JobNotFoundError represents a job not found error with context
type JobNotFoundError struct {
	JobID string
}

func (e *JobNotFoundError) Error() string {
	return fmt.Sprintf("job with ID '%s' not found", e.JobID)
}

func (e *JobNotFoundError) Is(target error) bool {
	return target == ErrJobNotFound
}

// NewJobNotFoundError creates a new JobNotFoundError
func NewJobNotFoundError(jobID string) *JobNotFoundError {
	return &JobNotFoundError{JobID: jobID}
}

// ValidationError represents an invalid argument with field context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
