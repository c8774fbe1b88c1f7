// Package errors provides standardized error handling for the lease
// recommendation pipeline and its supporting HTTP API.
package errors

import (
	"fmt"
	"net/http"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Recommendation pipeline errors
	ErrCodeRecommendationTimeout       ErrorCode = "RECOMMENDATION_TIMEOUT"
	ErrCodeRecommendationFailed        ErrorCode = "RECOMMENDATION_FAILED"
	ErrCodeNoValidJSON                 ErrorCode = "NO_VALID_JSON"
	ErrCodeInsufficientRecommendations ErrorCode = "INSUFFICIENT_RECOMMENDATIONS"
	ErrCodeMissingEssentialData        ErrorCode = "MISSING_ESSENTIAL_DATA"
	ErrCodeAnalysisFailed              ErrorCode = "ANALYSIS_FAILED"

	// Request validation errors
	ErrCodeValidationFailed   ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidBudgetRange ErrorCode = "INVALID_BUDGET_RANGE"

	// Persistence errors
	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeQueryExecutionFailed     ErrorCode = "QUERY_EXECUTION_FAILED"
	ErrCodeDatabaseInsertFailed     ErrorCode = "DATABASE_INSERT_FAILED"
	ErrCodeRecordNotFound           ErrorCode = "RECORD_NOT_FOUND"

	// Notification errors
	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"
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
// 2. HTTP Integration
// ==========================

// HTTPStatus maps an error code to the status the API layer should emit.
// Unknown codes map to 500 so the structured envelope is still produced.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeValidationFailed, ErrCodeInvalidBudgetRange:
		return http.StatusBadRequest
	case ErrCodeRecordNotFound:
		return http.StatusNotFound
	case ErrCodeRecommendationTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// GetErrorCategory groups codes for logging and metrics labels.
func GetErrorCategory(code ErrorCode) string {
	switch code {
	case ErrCodeRecommendationTimeout, ErrCodeRecommendationFailed,
		ErrCodeNoValidJSON, ErrCodeInsufficientRecommendations:
		return "recommendation"
	case ErrCodeMissingEssentialData, ErrCodeAnalysisFailed:
		return "analysis"
	case ErrCodeValidationFailed, ErrCodeInvalidBudgetRange:
		return "validation"
	case ErrCodeDatabaseConnectionFailed, ErrCodeQueryExecutionFailed,
		ErrCodeDatabaseInsertFailed, ErrCodeRecordNotFound:
		return "database"
	case ErrCodeNotificationSendFailed:
		return "notification"
	default:
		return "internal"
	}
}

// ==========================
// 3. Error Constructors
// ==========================

// NewRecommendationTimeoutError creates a retryable external-source timeout error.
func NewRecommendationTimeoutError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRecommendationTimeout,
		Message:   "Recommendation source timed out",
		Details:   details,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewRecommendationFailedError creates a retryable external-source transport error.
func NewRecommendationFailedError(attempts int, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeRecommendationFailed,
		Message:   "Recommendation source call failed",
		Details:   err.Error(),
		Retryable: true,
		Metadata:  map[string]interface{}{"attempts": attempts},
		Timestamp: time.Now().UTC(),
	}
}

// NewNoValidJSONError creates a non-retryable content error: the source
// answered but never produced a parseable recommendation document.
func NewNoValidJSONError(attempts int) *StandardError {
	return &StandardError{
		Code:      ErrCodeNoValidJSON,
		Message:   "No parseable recommendation document in any response",
		Details:   fmt.Sprintf("attempts: %d", attempts),
		Retryable: false,
		Metadata:  map[string]interface{}{"attempts": attempts},
		Timestamp: time.Now().UTC(),
	}
}

// NewMissingEssentialDataError flags a single vehicle whose lease terms are
// unusable (zero MSRP or zero lease months). The batch continues without it.
func NewMissingEssentialDataError(carInfo string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMissingEssentialData,
		Message:   "Missing essential data (MSRP or lease months)",
		Details:   fmt.Sprintf("vehicle: %s", carInfo),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewAnalysisFailedError creates a non-retryable coordinator-level error.
func NewAnalysisFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeAnalysisFailed,
		Message:   "Recommendation analysis failed",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewValidationFailedError creates a non-retryable request validation error.
func NewValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "Request validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidBudgetRangeError creates a non-retryable budget range error.
func NewInvalidBudgetRangeError(min, max float64) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidBudgetRange,
		Message:   "Budget minimum exceeds maximum",
		Details:   fmt.Sprintf("min: %.2f, max: %.2f", min, max),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseConnectionFailedError creates a retryable database connection error.
func NewDatabaseConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseConnectionFailed,
		Message:   "Database connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewQueryExecutionFailedError creates a retryable query execution error.
func NewQueryExecutionFailedError(entity string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryExecutionFailed,
		Message:   "Database query execution error",
		Details:   fmt.Sprintf("entity: %s, error: %s", entity, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseInsertFailedError creates a retryable insert error.
func NewDatabaseInsertFailedError(entity string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseInsertFailed,
		Message:   "Database insert error",
		Details:   fmt.Sprintf("entity: %s, error: %s", entity, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewRecordNotFoundError creates a non-retryable lookup error.
func NewRecordNotFoundError(entity, id string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRecordNotFound,
		Message:   "Record not found",
		Details:   fmt.Sprintf("entity: %s, id: %s", entity, id),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotificationSendFailedError creates a retryable notification error.
func NewNotificationSendFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationSendFailed,
		Message:   "Notification send failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}
