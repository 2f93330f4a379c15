// Package api provides the HTTP surface for submitting scans and polling their jobs.
package api

import (
	"errors"
	"strings"

	"github.com/gcbaptista/go-textscan/config"
	scanerrors "github.com/gcbaptista/go-textscan/internal/errors"
	"github.com/gcbaptista/go-textscan/model"
)

// maxTerms bounds how many terms a single request may alternate over
const maxTerms = 256

// ValidationError represents a validation error with field context
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult holds the result of validation operations
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// AddError adds a validation error to the result
func (vr *ValidationResult) AddError(field, message string) {
	vr.Valid = false
	vr.Errors = append(vr.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors
func (vr *ValidationResult) HasErrors() bool {
	return len(vr.Errors) > 0
}

// ValidateScanRequest checks request fields before they are resolved into a config
func ValidateScanRequest(req *config.RawArgs) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if req == nil {
		result.AddError("request_body", "Scan request is required")
		return result
	}

	if mode := strings.ToLower(strings.TrimSpace(req.Mode)); mode != "" && !model.ScanMode(mode).Valid() {
		result.AddError("mode", "Mode must be 'lines' or 'words'")
	}

	if strings.ContainsRune(req.InFile, 0) {
		result.AddError("infile", "Path cannot contain NUL bytes")
	}
	if strings.ContainsRune(req.OutFile, 0) {
		result.AddError("outfile", "Path cannot contain NUL bytes")
	}

	if n := len(strings.Fields(req.Terms)) + len(req.TermList); n > maxTerms {
		result.AddError("terms", "Too many search terms")
	}

	return result
}

// ValidateJobStatus validates a ?status= filter value
func ValidateJobStatus(status string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	switch model.JobStatus(status) {
	case model.JobStatusPending, model.JobStatusRunning, model.JobStatusCompleted,
		model.JobStatusFailed, model.JobStatusCancelled:
	default:
		result.AddError("status", "Unknown job status '"+status+"'")
	}

	return result
}

// ValidationResultFromError converts the errors returned by config.Resolve into a ValidationResult
func ValidationResultFromError(err error) *ValidationResult {
	result := &ValidationResult{Valid: true}
	if err == nil {
		return result
	}

	var causes []error
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		causes = joined.Unwrap()
	} else {
		causes = []error{err}
	}

	for _, cause := range causes {
		var vErr *scanerrors.ValidationError
		if errors.As(cause, &vErr) {
			result.AddError(vErr.Field, vErr.Message)
		} else {
			result.AddError("", cause.Error())
		}
	}
	return result
}
