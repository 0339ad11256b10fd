// Package errors provides standardized error handling for the careerpilot service.
package errors

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeArchiveWriteTimeout    ErrorCode = "ARCHIVE_WRITE_TIMEOUT"
	ErrCodeRecordNotFound         ErrorCode = "RECORD_NOT_FOUND"
	ErrCodeStoreWriteFailed       ErrorCode = "STORE_WRITE_FAILED"
	ErrCodeStoreReadFailed        ErrorCode = "STORE_READ_FAILED"
	ErrCodeValidationFailed       ErrorCode = "VALIDATION_FAILED"
	ErrCodeQuotaExceeded          ErrorCode = "QUOTA_EXCEEDED"
	ErrCodeAdvisorUnavailable     ErrorCode = "ADVISOR_UNAVAILABLE"
	ErrCodeAdvisorResponseInvalid ErrorCode = "ADVISOR_RESPONSE_INVALID"
	ErrCodeAuthenticationFailed   ErrorCode = "AUTHENTICATION_FAILED"
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
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewArchiveWriteTimeoutError creates a retryable transient archive failure.
// The message is the exact string surfaced on the affected record.
func NewArchiveWriteTimeoutError(recordID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeArchiveWriteTimeout,
		Message:   "Database timeout. Try again.",
		Details:   fmt.Sprintf("recordId: %s", recordID),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewRecordNotFoundError creates a non-retryable missing record error.
func NewRecordNotFoundError(recordID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRecordNotFound,
		Message:   "Application record not found",
		Details:   fmt.Sprintf("recordId: %s", recordID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewStoreWriteFailedError creates a retryable snapshot persistence error.
func NewStoreWriteFailedError(key string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStoreWriteFailed,
		Message:   "Snapshot write failed",
		Details:   fmt.Sprintf("key: %s, error: %s", key, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewStoreReadFailedError creates a retryable snapshot load error.
func NewStoreReadFailedError(key string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStoreReadFailed,
		Message:   "Snapshot read failed",
		Details:   fmt.Sprintf("key: %s, error: %s", key, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewValidationFailedError creates a non-retryable input validation error.
func NewValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "Request validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewQuotaExceededError creates a non-retryable daily quota error.
func NewQuotaExceededError(used, limit int) *StandardError {
	return &StandardError{
		Code:      ErrCodeQuotaExceeded,
		Message:   "AI Rate Limit: Daily quota exceeded.",
		Details:   fmt.Sprintf("used: %d, limit: %d", used, limit),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewAdvisorUnavailableError creates a retryable advisor transport error.
func NewAdvisorUnavailableError(action string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeAdvisorUnavailable,
		Message:   "Advisory service error",
		Details:   fmt.Sprintf("action: %s, error: %s", action, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewAdvisorResponseInvalidError creates a non-retryable schema mismatch error.
func NewAdvisorResponseInvalidError(action, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeAdvisorResponseInvalid,
		Message:   "Advisory response failed validation",
		Details:   fmt.Sprintf("action: %s, %s", action, details),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewAuthenticationError creates a non-retryable authentication error.
func NewAuthenticationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeAuthenticationFailed,
		Message:   "Authentication failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. HTTP Mapping
// ==========================

// HTTPStatusMapping maps internal error codes to HTTP status codes at the
// handler boundary.
var HTTPStatusMapping = map[ErrorCode]int{
	ErrCodeArchiveWriteTimeout:    http.StatusConflict,
	ErrCodeRecordNotFound:         http.StatusNotFound,
	ErrCodeStoreWriteFailed:       http.StatusInternalServerError,
	ErrCodeStoreReadFailed:        http.StatusInternalServerError,
	ErrCodeValidationFailed:       http.StatusBadRequest,
	ErrCodeQuotaExceeded:          http.StatusTooManyRequests,
	ErrCodeAdvisorUnavailable:     http.StatusBadGateway,
	ErrCodeAdvisorResponseInvalid: http.StatusBadGateway,
	ErrCodeAuthenticationFailed:   http.StatusUnauthorized,
}

// HTTPStatus returns the HTTP status for an error code, defaulting to 500.
func HTTPStatus(code ErrorCode) int {
	if status, exists := HTTPStatusMapping[code]; exists {
		return status
	}
	return http.StatusInternalServerError
}

// ==========================
// 4. Utility Functions
// ==========================

// GetRetryCount returns the recommended retry count per error code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeStoreWriteFailed,
		ErrCodeStoreReadFailed,
		ErrCodeAdvisorUnavailable:
		return 3 // Retryable technical errors

	case ErrCodeArchiveWriteTimeout:
		return 1 // Caller re-issues the archive explicitly

	default:
		return 0 // Business errors: no retry
	}
}

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "ADVISOR") || strings.Contains(codeStr, "QUOTA"):
		return "ADVISOR"
	case strings.Contains(codeStr, "STORE") || strings.Contains(codeStr, "ARCHIVE"):
		return "PERSISTENCE"
	case strings.Contains(codeStr, "AUTH"):
		return "AUTH"
	case strings.Contains(codeStr, "VALIDATION"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
