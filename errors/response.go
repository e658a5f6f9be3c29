package errors

import (
	stderrors "errors"
)

// ErrorResponse is the JSON structure returned to clients following RFC 7807.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody contains the error details sent to clients.
type ErrorBody struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Retryable bool                   `json:"retryable"`
	Details   map[string]interface{} `json:"details,omitempty"`
}

// ToResponse converts an AppError to an ErrorResponse for JSON serialization.
func (e *AppError) ToResponse() ErrorResponse {
	return ErrorResponse{
		Error: ErrorBody{
			Code:      e.Code,
			Message:   e.Message,
			Retryable: e.Retryable,
			Details:   e.Details,
		},
	}
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether err is an AppError with the given code.
func HasCode(err error, code ErrorCode) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}

// IsConfiguration reports whether err is a configuration error.
func IsConfiguration(err error) bool {
	appErr, ok := AsAppError(err)
	return ok && (appErr.Code == ErrCodeConfiguration || appErr.Code == ErrCodeMissingField)
}

// IsInvalidToken reports whether err is a token verification error.
func IsInvalidToken(err error) bool {
	return HasCode(err, ErrCodeInvalidToken)
}

// IsInvalidInput reports whether err is an outbound payload encoding error.
func IsInvalidInput(err error) bool {
	return HasCode(err, ErrCodeInvalidInput)
}

// IsFailedRequest reports whether err is a failed remote request, including
// connection failures and timeouts.
func IsFailedRequest(err error) bool {
	appErr, ok := AsAppError(err)
	return ok && failedRequestCodes[appErr.Code]
}

// IsRetryable reports whether err is marked retryable.
func IsRetryable(err error) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Retryable
}
