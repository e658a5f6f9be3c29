package httpclient

import (
	"net/http"
	"testing"
)

func TestTokenAuth(t *testing.T) {
	req, _ := http.NewRequest("POST", "http://example.com", nil)
	TokenAuth("s3cret").apply(req)
	if got := req.Header.Get("Authorization"); got != "Token s3cret" {
		t.Errorf("got %q, want %q", got, "Token s3cret")
	}
}

func TestTokenAuthEmptyAndNil(t *testing.T) {
	req, _ := http.NewRequest("POST", "http://example.com", nil)
	TokenAuth("").apply(req)
	var nilAuth *AuthConfig
	nilAuth.apply(req)
	if got := req.Header.Get("Authorization"); got != "" {
		t.Errorf("expected no Authorization header, got %q", got)
	}
}
