package httpclient

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/kbukum/paygate/errors"
)

// TypedResponse wraps a response with a decoded body of type T.
type TypedResponse[T any] struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Headers are the response headers.
	Headers map[string]string
	// Data is the decoded response body.
	Data T
	// Raw is the undecoded response body.
	Raw []byte
}

// RequestOption configures a single request.
type RequestOption func(*Request)

// WithTimeout overrides the deadline for the request.
func WithTimeout(d time.Duration) RequestOption {
	return func(r *Request) {
		r.Timeout = d
	}
}

// Post sends body as JSON and decodes the JSON response into type T.
// On an error status the returned response carries the raw body and no
// decoded data.
func Post[T any](a *Adapter, ctx context.Context, path string, body any, opts ...RequestOption) (*TypedResponse[T], error) {
	req := Request{
		Method:      http.MethodPost,
		Path:        path,
		Body:        body,
		ContentType: ContentTypeJSON,
		Accept:      ContentTypeJSON,
	}
	for _, opt := range opts {
		opt(&req)
	}

	resp, err := a.Do(ctx, req)
	if err != nil {
		if resp != nil {
			return &TypedResponse[T]{
				StatusCode: resp.StatusCode,
				Headers:    resp.Headers,
				Raw:        resp.Body,
			}, err
		}
		return nil, err
	}

	out := &TypedResponse[T]{
		StatusCode: resp.StatusCode,
		Headers:    resp.Headers,
		Raw:        resp.Body,
	}
	if resp.IsEmpty() {
		return out, nil
	}
	if err := json.Unmarshal(resp.Body, &out.Data); err != nil {
		return out, errors.FailedRequest(resp.StatusCode, "response is not valid JSON").WithCause(err)
	}
	return out, nil
}
