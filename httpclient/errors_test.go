package httpclient

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/kbukum/paygate/errors"
)

func TestClassifyStatusCode(t *testing.T) {
	tests := []struct {
		code    int
		wantNil bool
		kind    Kind
		retry   bool
	}{
		{200, true, "", false},
		{201, true, "", false},
		{204, true, "", false},
		{302, true, "", false},
		{400, false, KindValidation, false},
		{401, false, KindAuth, false},
		{403, false, KindAuth, false},
		{404, false, KindNotFound, false},
		{422, false, KindValidation, false},
		{429, false, KindRateLimit, true},
		{500, false, KindServer, true},
		{503, false, KindServer, true},
	}
	for _, tt := range tests {
		e := ClassifyStatusCode(tt.code)
		if tt.wantNil {
			if e != nil {
				t.Errorf("ClassifyStatusCode(%d): expected nil, got %v", tt.code, e)
			}
			continue
		}
		if e == nil {
			t.Errorf("ClassifyStatusCode(%d): expected error, got nil", tt.code)
			continue
		}
		if e.Code != errors.ErrCodeFailedRequest {
			t.Errorf("ClassifyStatusCode(%d): code = %s", tt.code, e.Code)
		}
		if e.StatusCode != tt.code {
			t.Errorf("ClassifyStatusCode(%d): status = %d", tt.code, e.StatusCode)
		}
		if e.Details["kind"] != string(tt.kind) {
			t.Errorf("ClassifyStatusCode(%d): kind = %v, want %s", tt.code, e.Details["kind"], tt.kind)
		}
		if e.Retryable != tt.retry {
			t.Errorf("ClassifyStatusCode(%d): retryable = %v, want %v", tt.code, e.Retryable, tt.retry)
		}
	}
}

func TestClassifyTransportError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if e := classifyTransportError(ctx, "api", stderrors.New("refused")); e.Code != errors.ErrCodeConnectionFailed {
		t.Errorf("expected CONNECTION_FAILED, got %s", e.Code)
	}
	if e := classifyTransportError(context.Background(), "api", context.DeadlineExceeded); e.Code != errors.ErrCodeTimeout {
		t.Errorf("expected TIMEOUT, got %s", e.Code)
	}
}
