// Package errors provides standardized error handling for the sizing engine.
package errors

import (
	goerrors "errors"
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeEmptyChart        ErrorCode = "EMPTY_CHART"
	ErrCodeExtractionFailed  ErrorCode = "EXTRACTION_FAILED"
	ErrCodeExtractionTimeout ErrorCode = "EXTRACTION_TIMEOUT"
	ErrCodeImageUnreadable   ErrorCode = "IMAGE_UNREADABLE"
	ErrCodeInvalidExtraction ErrorCode = "INVALID_EXTRACTION"
	ErrCodeJobNotFound       ErrorCode = "JOB_NOT_FOUND"
	ErrCodeDuplicateJob      ErrorCode = "DUPLICATE_JOB"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Retryable bool      `json:"retryable"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// NewEmptyChartError reports a size chart with no usable measurement data.
// This is the only hard failure in the scoring path.
func NewEmptyChartError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeEmptyChart,
		Message:   "Size chart contains no comparable measurements",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewExtractionFailedError wraps an error from the vision extraction service.
func NewExtractionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeExtractionFailed,
		Message:   "Size chart extraction failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewExtractionTimeoutError creates a retryable timeout error for the extraction call.
func NewExtractionTimeoutError(service string) *StandardError {
	return &StandardError{
		Code:      ErrCodeExtractionTimeout,
		Message:   fmt.Sprintf("Service '%s' timeout during size chart extraction", service),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewImageUnreadableError reports that the vision model could not read the image.
func NewImageUnreadableError(reason string) *StandardError {
	return &StandardError{
		Code:      ErrCodeImageUnreadable,
		Message:   "Size chart image could not be processed",
		Details:   reason,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidExtractionError reports a malformed extraction response.
func NewInvalidExtractionError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidExtraction,
		Message:   "Extraction response is not a valid size chart",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewJobNotFoundError reports a lookup for an unknown or evicted job id.
func NewJobNotFoundError(jobID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeJobNotFound,
		Message:   "Analysis job not found",
		Details:   fmt.Sprintf("jobId: %s", jobID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDuplicateJobError reports a second submission for an already registered job id.
func NewDuplicateJobError(jobID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeDuplicateJob,
		Message:   "Analysis job already exists",
		Details:   fmt.Sprintf("jobId: %s", jobID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// IsCode reports whether err is a StandardError carrying the given code.
func IsCode(err error, code ErrorCode) bool {
	var stdErr *StandardError
	if goerrors.As(err, &stdErr) {
		return stdErr.Code == code
	}
	return false
}

// IsRetryable reports whether err is a StandardError marked retryable.
func IsRetryable(err error) bool {
	var stdErr *StandardError
	if goerrors.As(err, &stdErr) {
		return stdErr.Retryable
	}
	return false
}
