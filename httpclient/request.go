package httpclient

import (
	"bytes"
	"time"
)

// Content types used by the pay API.
const (
	ContentTypeJSON = "application/json"
	ContentTypeJWT  = "application/jwt"
)

// Request describes an outbound HTTP request.
type Request struct {
	// Method is the HTTP method.
	Method string
	// Path is appended to the adapter's BaseURL unless it is an absolute URL.
	Path string
	// Headers are request-specific headers (merged with adapter defaults).
	Headers map[string]string
	// Body is the request body. []byte and string are sent as-is, any other
	// non-nil value is JSON-encoded.
	Body any
	// ContentType overrides the content type derived from Body.
	ContentType string
	// Accept sets the Accept header.
	Accept string
	// Timeout overrides the adapter's default deadline for this request.
	Timeout time.Duration
}

// Response is the result of an HTTP request.
type Response struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Headers are the response headers.
	Headers map[string]string
	// Body is the raw response body.
	Body []byte
}

// IsSuccess returns true if the status code is 2xx.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// IsError returns true if the status code is 4xx or 5xx.
func (r *Response) IsError() bool {
	return r.StatusCode >= 400
}

// IsEmpty reports whether the body is empty or whitespace only.
func (r *Response) IsEmpty() bool {
	return len(bytes.TrimSpace(r.Body)) == 0
}
