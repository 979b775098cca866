package errors

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrorCode is the stable identifier carried into BPMN error events.
type ErrorCode string

const (
	// Lookups
	ErrCodeRecruiterNotFound ErrorCode = "RECRUITER_NOT_FOUND"
	ErrCodeProfileNotFound   ErrorCode = "PROFILE_NOT_FOUND"

	// Job input
	ErrCodeInvalidJobVariables   ErrorCode = "INVALID_JOB_VARIABLES"
	ErrCodeInputValidationFailed ErrorCode = "INPUT_VALIDATION_FAILED"

	// Postgres
	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeQueryExecutionFailed     ErrorCode = "QUERY_EXECUTION_FAILED"
	ErrCodeQueryTimeout             ErrorCode = "QUERY_TIMEOUT"
	ErrCodeDatabaseUpdateFailed     ErrorCode = "DATABASE_UPDATE_FAILED"

	// Redis
	ErrCodeCacheUnavailable  ErrorCode = "CACHE_UNAVAILABLE"
	ErrCodeRefreshInProgress ErrorCode = "REFRESH_IN_PROGRESS"

	// Outbound
	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"
	ErrCodeScoreIndexFailed       ErrorCode = "SCORE_INDEX_FAILED"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

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

// WithMetadata attaches a key to the error and returns it for chaining.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

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

func newError(code ErrorCode, message, details string, retryable bool) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
	}
}

func errDetails(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func NewRecruiterNotFoundError(recruiterID string) *StandardError {
	return newError(ErrCodeRecruiterNotFound, "Recruiter not found",
		fmt.Sprintf("recruiterId: %s", recruiterID), false)
}

func NewProfileNotFoundError(userID string) *StandardError {
	return newError(ErrCodeProfileNotFound, "Seeker profile not found",
		fmt.Sprintf("userId: %s", userID), false)
}

func NewInvalidJobVariablesError(err error) *StandardError {
	return newError(ErrCodeInvalidJobVariables, "Job variables could not be decoded", errDetails(err), false)
}

func NewInputValidationError(details string) *StandardError {
	return newError(ErrCodeInputValidationFailed, "Job variables failed schema validation", details, false)
}

func NewDatabaseConnectionFailedError(err error) *StandardError {
	return newError(ErrCodeDatabaseConnectionFailed, "Failed to connect to database", errDetails(err), true)
}

func NewQueryExecutionFailedError(err error) *StandardError {
	return newError(ErrCodeQueryExecutionFailed, "Database query failed", errDetails(err), true)
}

func NewQueryTimeoutError(err error) *StandardError {
	return newError(ErrCodeQueryTimeout, "Database query timed out", errDetails(err), true)
}

func NewDatabaseUpdateFailedError(err error) *StandardError {
	return newError(ErrCodeDatabaseUpdateFailed, "Failed to persist score", errDetails(err), true)
}

func NewCacheUnavailableError(err error) *StandardError {
	return newError(ErrCodeCacheUnavailable, "Score cache unavailable", errDetails(err), true)
}

func NewRefreshInProgressError(userID string) *StandardError {
	return newError(ErrCodeRefreshInProgress, "Priority refresh already running for user",
		fmt.Sprintf("userId: %s", userID), true)
}

func NewNotificationSendFailedError(channel string, err error) *StandardError {
	return newError(ErrCodeNotificationSendFailed,
		fmt.Sprintf("Failed to send %s notification", channel), errDetails(err), true)
}

func NewScoreIndexFailedError(err error) *StandardError {
	return newError(ErrCodeScoreIndexFailed, "Failed to index score document", errDetails(err), true)
}

func NewInternalError(err error) *StandardError {
	return newError(ErrCodeInternal, "Unexpected error", errDetails(err), false)
}

var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeRecruiterNotFound:        "RECRUITER_NOT_FOUND",
	ErrCodeProfileNotFound:          "PROFILE_NOT_FOUND",
	ErrCodeInvalidJobVariables:      "INVALID_INPUT",
	ErrCodeInputValidationFailed:    "INVALID_INPUT",
	ErrCodeDatabaseConnectionFailed: "DATABASE_ERROR",
	ErrCodeQueryExecutionFailed:     "DATABASE_ERROR",
	ErrCodeQueryTimeout:             "DATABASE_ERROR",
	ErrCodeDatabaseUpdateFailed:     "SCORE_PERSIST_FAILED",
	ErrCodeCacheUnavailable:         "CACHE_UNAVAILABLE",
	ErrCodeRefreshInProgress:        "REFRESH_IN_PROGRESS",
	ErrCodeNotificationSendFailed:   "NOTIFICATION_SEND_FAILED",
	ErrCodeScoreIndexFailed:         "SCORE_INDEX_FAILED",
}

func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeDatabaseConnectionFailed,
		ErrCodeQueryExecutionFailed,
		ErrCodeDatabaseUpdateFailed,
		ErrCodeNotificationSendFailed,
		ErrCodeScoreIndexFailed:
		return 3

	case ErrCodeQueryTimeout,
		ErrCodeCacheUnavailable:
		return 2

	case ErrCodeRefreshInProgress:
		return 1

	default:
		return 0 // business errors
	}
}

func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, ok := BPMNErrorMapping[stdErr.Code]
	if !ok {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	return &BPMNError{
		Code:      bpmnCode,
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   retries,
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
	}
}

func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// AsStandardError unwraps err looking for a *StandardError.
func AsStandardError(err error) (*StandardError, bool) {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr, true
	}
	return nil, false
}

func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.HasSuffix(codeStr, "NOT_FOUND"):
		return "LOOKUP"
	case strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "QUERY"):
		return "DATABASE"
	case strings.Contains(codeStr, "CACHE") || strings.Contains(codeStr, "REFRESH"):
		return "CACHE"
	case strings.Contains(codeStr, "NOTIFICATION"):
		return "NOTIFICATION"
	case strings.Contains(codeStr, "INDEX"):
		return "SEARCH"
	case strings.Contains(codeStr, "INVALID") || strings.Contains(codeStr, "VALIDATION"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
