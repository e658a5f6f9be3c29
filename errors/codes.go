package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Setup errors
const (
	// ErrCodeConfiguration indicates missing or unusable provider configuration.
	ErrCodeConfiguration ErrorCode = "CONFIGURATION"
	// ErrCodeMissingField indicates a required configuration field is empty.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
)

// Token errors
const (
	// ErrCodeInvalidToken indicates a token failed signature, algorithm,
	// structure or time validation.
	ErrCodeInvalidToken ErrorCode = "INVALID_TOKEN"
)

// Request errors
const (
	// ErrCodeInvalidInput indicates an outbound payload could not be encoded.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeFailedRequest indicates the remote API answered with an error status
	// or a payload that does not match the expected schema.
	ErrCodeFailedRequest ErrorCode = "FAILED_REQUEST"
	// ErrCodeConnectionFailed indicates the remote API could not be reached.
	ErrCodeConnectionFailed ErrorCode = "CONNECTION_FAILED"
	// ErrCodeTimeout indicates the request exceeded its deadline.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
)

// Entitlement errors
const (
	// ErrCodePaymentRequired indicates the visitor is not entitled to the item.
	ErrCodePaymentRequired ErrorCode = "PAYMENT_REQUIRED"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeConnectionFailed: true,
	ErrCodeTimeout:          true,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
// The SDK itself never retries; the hint is for callers.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}

// failedRequestCodes are the codes that count as a failed request.
var failedRequestCodes = map[ErrorCode]bool{
	ErrCodeFailedRequest:    true,
	ErrCodeConnectionFailed: true,
	ErrCodeTimeout:          true,
}
