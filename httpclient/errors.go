package httpclient

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/kbukum/paygate/errors"
)

// Kind classifies an error status for logs and metrics.
type Kind string

const (
	KindAuth       Kind = "auth"
	KindNotFound   Kind = "not_found"
	KindRateLimit  Kind = "rate_limit"
	KindValidation Kind = "validation"
	KindServer     Kind = "server"
)

// KindOf returns the classification of an error status code.
func KindOf(statusCode int) Kind {
	switch {
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		return KindAuth
	case statusCode == http.StatusNotFound:
		return KindNotFound
	case statusCode == http.StatusTooManyRequests:
		return KindRateLimit
	case statusCode >= 400 && statusCode < 500:
		return KindValidation
	default:
		return KindServer
	}
}

// ClassifyStatusCode converts an HTTP status code into a FAILED_REQUEST
// error. Returns nil for status codes below 400.
func ClassifyStatusCode(statusCode int) *errors.AppError {
	if statusCode < http.StatusBadRequest {
		return nil
	}
	return errors.FailedRequest(statusCode, fmt.Sprintf("status code: %d", statusCode)).
		WithDetail("kind", string(KindOf(statusCode)))
}

// classifyTransportError maps a failed round trip to TIMEOUT or
// CONNECTION_FAILED.
func classifyTransportError(ctx context.Context, host string, err error) *errors.AppError {
	if stderrors.Is(ctx.Err(), context.DeadlineExceeded) || stderrors.Is(err, context.DeadlineExceeded) {
		return errors.Timeout("request to "+host, err)
	}
	return errors.ConnectionFailed(host, err)
}
