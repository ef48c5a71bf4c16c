// internal/common/errors/errors.go

// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeInputParseFailed           ErrorCode = "INPUT_PARSE_FAILED"
	ErrCodeAssessmentValidationFailed ErrorCode = "ASSESSMENT_VALIDATION_FAILED"

	ErrCodeBenchmarkProfileNotFound ErrorCode = "BENCHMARK_PROFILE_NOT_FOUND"
	ErrCodeBenchmarkInvalid         ErrorCode = "BENCHMARK_INVALID"
	ErrCodeBenchmarkLoadFailed      ErrorCode = "BENCHMARK_LOAD_FAILED"

	ErrCodeFollowUpRoutingFailed ErrorCode = "FOLLOWUP_ROUTING_FAILED"

	ErrCodeQueryTimeout ErrorCode = "QUERY_TIMEOUT"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("StandardError[%s]: %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// WithMetadata attaches a key to the error's metadata and returns the error.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// AsStandardError unwraps err looking for a *StandardError.
func AsStandardError(err error) (*StandardError, bool) {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr, true
	}
	return nil, false
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

func newError(code ErrorCode, message, details string, retryable bool) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
	}
}

// NewInputParseFailedError is raised when job variables cannot be decoded.
func NewInputParseFailedError(err error) *StandardError {
	return newError(ErrCodeInputParseFailed, "Job variables could not be parsed", err.Error(), false)
}

// NewAssessmentValidationFailedError carries every field violation in details.
func NewAssessmentValidationFailedError(details string) *StandardError {
	return newError(ErrCodeAssessmentValidationFailed, "Assessment answers failed validation", details, false)
}

func NewBenchmarkProfileNotFoundError(profileID string) *StandardError {
	return newError(ErrCodeBenchmarkProfileNotFound, "Benchmark profile not found",
		fmt.Sprintf("benchmarkProfile: %s", profileID), false).
		WithMetadata("benchmarkProfile", profileID)
}

func NewBenchmarkInvalidError(profileID string, err error) *StandardError {
	return newError(ErrCodeBenchmarkInvalid, "Benchmark profile is invalid",
		fmt.Sprintf("benchmarkProfile: %s, error: %s", profileID, err.Error()), false).
		WithMetadata("benchmarkProfile", profileID)
}

// NewBenchmarkLoadFailedError is retryable: the profile stores may recover.
func NewBenchmarkLoadFailedError(source string, err error) *StandardError {
	return newError(ErrCodeBenchmarkLoadFailed, "Benchmark profiles could not be loaded",
		fmt.Sprintf("source: %s, error: %s", source, err.Error()), true)
}

func NewFollowUpRoutingFailedError(details string) *StandardError {
	return newError(ErrCodeFollowUpRoutingFailed, "Follow-up action could not be determined", details, false)
}

// NewQueryTimeoutError creates a retryable query timeout error.
func NewQueryTimeoutError(queryType string) *StandardError {
	return newError(ErrCodeQueryTimeout, "Database query timeout", fmt.Sprintf("queryType: %s", queryType), true)
}

// Generic constructors

func NewInternalError(err error) *StandardError {
	return newError(ErrCodeInternal, "Unexpected error", err.Error(), false)
}

func NewExternalServiceError(service string, err error) *StandardError {
	return newError("EXTERNAL_SERVICE_ERROR", fmt.Sprintf("External service '%s' error", service), err.Error(), true)
}

func NewTimeoutError(service string, err error) *StandardError {
	return newError("TIMEOUT_ERROR", fmt.Sprintf("Service '%s' timeout", service), err.Error(), true)
}

func NewResourceNotFoundError(service, details string) *StandardError {
	return newError("RESOURCE_NOT_FOUND", fmt.Sprintf("Resource not found in %s", service), details, false)
}

func NewAuthenticationError(details string) *StandardError {
	return newError("AUTHENTICATION_ERROR", "Authentication failed", details, false)
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// BPMNErrorMapping maps internal error codes to the error codes caught by
// boundary events in the assessment process. They are identical today.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeInputParseFailed:           "INPUT_PARSE_FAILED",
	ErrCodeAssessmentValidationFailed: "ASSESSMENT_VALIDATION_FAILED",
	ErrCodeBenchmarkProfileNotFound:   "BENCHMARK_PROFILE_NOT_FOUND",
	ErrCodeBenchmarkInvalid:           "BENCHMARK_INVALID",
	ErrCodeBenchmarkLoadFailed:        "BENCHMARK_LOAD_FAILED",
	ErrCodeFollowUpRoutingFailed:      "FOLLOWUP_ROUTING_FAILED",
	ErrCodeQueryTimeout:               "QUERY_TIMEOUT",
	ErrCodeInternal:                   "INTERNAL_ERROR",
}

// GetRetryCount returns the recommended retry count for an error code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeBenchmarkLoadFailed, "EXTERNAL_SERVICE_ERROR":
		return 3

	case ErrCodeQueryTimeout, "TIMEOUT_ERROR":
		return 2

	default:
		return 0 // business errors
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	vars := map[string]interface{}{
		"originalErrorCode": string(stdErr.Code),
		"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
	}
	for k, v := range stdErr.Metadata {
		vars[k] = v
	}

	return &BPMNError{
		Code:           bpmnCode,
		Message:        stdErr.Message,
		Details:        stdErr.Details,
		Retryable:      stdErr.Retryable,
		Retries:        retries,
		ErrorVariables: vars,
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "BENCHMARK"):
		return "BENCHMARK"
	case strings.Contains(codeStr, "QUERY"):
		return "DATABASE"
	case strings.Contains(codeStr, "FOLLOWUP"):
		return "ROUTING"
	case strings.Contains(codeStr, "PARSE") || strings.Contains(codeStr, "VALIDATION"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
