package errors

import (
	"fmt"
	"time"
)

// ErrorCode identifies an application error class.
type ErrorCode string

const (
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
	ErrCodeValidation   ErrorCode = "VALIDATION_ERROR"
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeConflict     ErrorCode = "CONFLICT"

	// Giveaway lifecycle errors. These map to 400-class responses: the caller
	// can correct the situation and retry.
	ErrCodeNoActiveGiveaway      ErrorCode = "NO_ACTIVE_GIVEAWAY"
	ErrCodeNoParticipants        ErrorCode = "NO_PARTICIPANTS"
	ErrCodeGiveawayAlreadyActive ErrorCode = "GIVEAWAY_ALREADY_ACTIVE"

	// The persistence store is unreachable or misconfigured. Never surfaced
	// past the giveaway manager: the live giveaway keeps running in memory.
	ErrCodePersistenceUnavailable ErrorCode = "PERSISTENCE_UNAVAILABLE"

	ErrCodeChatTransport ErrorCode = "CHAT_TRANSPORT_ERROR"
)

// AppError is the typed application error carried across layers.
type AppError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Cause     error                  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) IsValidation() bool {
	return e.Code == ErrCodeValidation
}

func (e *AppError) IsInternal() bool {
	return e.Code == ErrCodeInternal || e.Code == ErrCodePersistenceUnavailable
}

// WithDetail attaches a structured detail to the error.
func (e *AppError) WithDetail(key string, value interface{}) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// New creates a new application error.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// Wrap wraps an existing error with an application code.
func Wrap(err error, code ErrorCode, message string) *AppError {
	appErr := New(code, message)
	appErr.Cause = err
	return appErr
}

// Wrapf wraps an existing error with a formatted message.
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *AppError {
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// Constructors for the errors the giveaway core raises.

func NewValidationError(field, reason string) *AppError {
	return New(ErrCodeValidation, fmt.Sprintf("Validation failed for field '%s': %s", field, reason)).
		WithDetail("field", field).
		WithDetail("reason", reason)
}

func NewNoActiveGiveawayError(channel string) *AppError {
	return New(ErrCodeNoActiveGiveaway, fmt.Sprintf("No active giveaway for channel %s", channel)).
		WithDetail("channel", channel)
}

func NewNoParticipantsError(channel string) *AppError {
	return New(ErrCodeNoParticipants, "No participants to select a winner from").
		WithDetail("channel", channel)
}

func NewUnauthorizedError(reason string) *AppError {
	return New(ErrCodeUnauthorized, fmt.Sprintf("Unauthorized: %s", reason)).
		WithDetail("reason", reason)
}

func NewPersistenceError(operation string, err error) *AppError {
	return Wrap(err, ErrCodePersistenceUnavailable, fmt.Sprintf("Store operation failed: %s", operation)).
		WithDetail("operation", operation)
}

// AsAppError casts err to *AppError when possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if err != nil {
		appErr, _ = err.(*AppError)
	}
	return appErr, appErr != nil
}
