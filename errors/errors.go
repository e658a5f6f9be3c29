package errors

import (
	"fmt"
	"net/http"
)

// AppError is the unified SDK error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried by the caller.
	Retryable bool `json:"retryable"`
	// StatusCode is the HTTP status returned by the remote API (0 when no
	// response was received or the error is not request related).
	StatusCode int `json:"status_code,omitempty"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Retryable: IsRetryableCode(code),
	}
}

// --- Common Error Constructors ---

// Configuration creates an error for provider configuration that cannot be used.
func Configuration(reason string) *AppError {
	return &AppError{
		Code: ErrCodeConfiguration, Message: reason, Retryable: false,
	}
}

// MissingField creates an error for a required configuration field that is empty.
func MissingField(field string) *AppError {
	return &AppError{
		Code: ErrCodeMissingField, Message: fmt.Sprintf("missing %s", field),
		Retryable: false, Details: map[string]any{"field": field},
	}
}

// InvalidToken creates an error for a token that failed verification.
func InvalidToken(reason string) *AppError {
	if reason == "" {
		reason = "token could not be verified"
	}
	return &AppError{
		Code: ErrCodeInvalidToken, Message: reason, Retryable: false,
	}
}

// InvalidInput creates an error for an outbound payload that cannot be encoded.
func InvalidInput(reason string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidInput, Message: fmt.Sprintf("invalid input: %s", reason),
		Retryable: false,
	}
}

// FailedRequest creates an error for a remote call answered with an error status.
func FailedRequest(statusCode int, message string) *AppError {
	return &AppError{
		Code: ErrCodeFailedRequest, Message: message, StatusCode: statusCode,
		Retryable: statusCode >= http.StatusInternalServerError || statusCode == http.StatusTooManyRequests,
		Details:   map[string]any{"status_code": statusCode},
	}
}

// ConnectionFailed creates an error for a remote API that could not be reached.
func ConnectionFailed(service string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeConnectionFailed, Message: fmt.Sprintf("unable to connect to %s", service),
		Retryable: true, Details: map[string]any{"service": service}, Cause: cause,
	}
}

// Timeout creates an error for a request that exceeded its deadline.
func Timeout(operation string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeTimeout, Message: fmt.Sprintf("%s timed out", operation),
		Retryable: true, Details: map[string]any{"operation": operation}, Cause: cause,
	}
}

// PaymentRequired creates an error for a visitor without entitlement to an item.
func PaymentRequired(itemID string) *AppError {
	return &AppError{
		Code: ErrCodePaymentRequired, Message: "access to this item requires a purchase or subscription",
		StatusCode: http.StatusPaymentRequired, Retryable: false,
		Details: map[string]any{"item_id": itemID},
	}
}
