package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	gojwt "github.com/golang-jwt/jwt/v5"

	"github.com/kbukum/paygate/entitlement"
	"github.com/kbukum/paygate/logger"
	"github.com/kbukum/paygate/middleware"
	"github.com/kbukum/paygate/provider"
	"github.com/kbukum/paygate/testutil"
	"github.com/kbukum/paygate/token"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newChecker(t *testing.T) (*entitlement.Checker, *testutil.Keys) {
	t.Helper()
	keys := testutil.NewKeys(t)
	cfg, err := provider.New("acme", keys.PublicPEM, "s3cret", false)
	if err != nil {
		t.Fatalf("provider.New: %v", err)
	}
	checker, err := entitlement.NewChecker(cfg, entitlement.WithLogger(logger.NewNop()))
	if err != nil {
		t.Fatalf("NewChecker: %v", err)
	}
	return checker, keys
}

func acquiredToken(t *testing.T, keys *testutil.Keys, itemID string) string {
	return keys.Sign(t, &token.Claims{
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:  token.SubjectItem,
			IssuedAt: gojwt.NewNumericDate(time.Now()),
		},
		Data: token.Data{token.KeyAcquired: true, token.KeyForeignUID: itemID},
	})
}

func itemFromParam(c *gin.Context) (entitlement.Item, bool) {
	id := c.Param("id")
	return entitlement.Item{ID: id, Gated: id != "free"}, true
}

// newRouter serves the decision stored by mw as JSON.
func newRouter(mw gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.GET("/posts/:id", mw, func(c *gin.Context) {
		d, _ := middleware.DecisionFrom(c)
		c.JSON(http.StatusOK, gin.H{"entitled": middleware.IsEntitled(c), "reason": d.Reason})
	})
	return r
}

type result struct {
	Entitled bool   `json:"entitled"`
	Reason   string `json:"reason"`
}

func get(t *testing.T, r http.Handler, path, tok string) (*httptest.ResponseRecorder, result) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, http.NoBody)
	if tok != "" {
		req.Header.Set(middleware.TokenHeader, tok)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	var res result
	_ = json.Unmarshal(rr.Body.Bytes(), &res)
	return rr, res
}

func TestEntitlement(t *testing.T) {
	checker, keys := newChecker(t)
	r := newRouter(middleware.Entitlement(checker, itemFromParam))

	tests := []struct {
		name     string
		path     string
		tok      string
		entitled bool
		reason   entitlement.Reason
	}{
		{"free item", "/posts/free", "", true, entitlement.ReasonNotGated},
		{"no token", "/posts/42", "", false, entitlement.ReasonNoToken},
		{"acquired", "/posts/42", acquiredToken(t, keys, "42"), true, entitlement.ReasonAcquired},
		{"acquired other item", "/posts/43", acquiredToken(t, keys, "42"), false, entitlement.ReasonNotEntitled},
		{"garbage", "/posts/42", "not-a-token", false, entitlement.ReasonInvalidToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr, res := get(t, r, tt.path, tt.tok)
			if rr.Code != http.StatusOK {
				t.Fatalf("Entitlement must not abort, got %d", rr.Code)
			}
			if res.Entitled != tt.entitled || res.Reason != string(tt.reason) {
				t.Errorf("got %+v, want entitled=%v reason=%s", res, tt.entitled, tt.reason)
			}
		})
	}
}

func TestRequireEntitlement(t *testing.T) {
	checker, keys := newChecker(t)
	r := newRouter(middleware.RequireEntitlement(checker, itemFromParam))

	rr, _ := get(t, r, "/posts/42", "")
	if rr.Code != http.StatusPaymentRequired {
		t.Fatalf("expected 402, got %d", rr.Code)
	}
	var body struct {
		Error struct {
			Code    string         `json:"code"`
			Details map[string]any `json:"details"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if body.Error.Code != "PAYMENT_REQUIRED" || body.Error.Details["item_id"] != "42" || body.Error.Details["reason"] != "no_token" {
		t.Errorf("unexpected body %s", rr.Body.String())
	}

	rr, res := get(t, r, "/posts/42", acquiredToken(t, keys, "42"))
	if rr.Code != http.StatusOK || !res.Entitled {
		t.Errorf("expected access, got %d %+v", rr.Code, res)
	}
}

func TestEntitlement_UngatedWhenItemUnresolved(t *testing.T) {
	r := newRouter(middleware.Entitlement(nil, func(*gin.Context) (entitlement.Item, bool) {
		return entitlement.Item{}, false
	}))
	if _, res := get(t, r, "/posts/1", ""); !res.Entitled || res.Reason != string(entitlement.ReasonNotGated) {
		t.Errorf("expected ungated access, got %+v", res)
	}
}

func TestEntitlement_FailsClosed(t *testing.T) {
	panicking := entitlement.DeciderFunc(func(entitlement.Item, string) bool { panic("boom") })
	tests := []struct {
		name    string
		decider entitlement.Decider
	}{
		{"nil decider", nil},
		{"panicking decider", panicking},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRouter(middleware.Entitlement(tt.decider, itemFromParam))
			rr, res := get(t, r, "/posts/42", "tok")
			if rr.Code != http.StatusOK {
				t.Fatalf("expected handler to run, got %d", rr.Code)
			}
			if res.Entitled || res.Reason != string(entitlement.ReasonInternalError) {
				t.Errorf("expected closed internal_error, got %+v", res)
			}
		})
	}
}

func TestEntitlement_PlainDecider(t *testing.T) {
	var seen string
	decider := entitlement.DeciderFunc(func(item entitlement.Item, tok string) bool {
		seen = tok
		return tok == "ok"
	})
	r := newRouter(middleware.Entitlement(decider, itemFromParam))

	if _, res := get(t, r, "/posts/42", "  ok  "); !res.Entitled {
		t.Errorf("expected entitled, got %+v", res)
	}
	if seen != "ok" {
		t.Errorf("expected trimmed token, got %q", seen)
	}
	if _, res := get(t, r, "/posts/42", "nope"); res.Entitled || res.Reason != string(entitlement.ReasonNotEntitled) {
		t.Errorf("expected not_entitled, got %+v", res)
	}
}

func TestIsEntitled_WithoutMiddleware(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if middleware.IsEntitled(c) {
		t.Error("unevaluated requests are not entitled")
	}
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(middleware.Recovery(logger.NewNop()))
	r.GET("/boom", func(*gin.Context) { panic("test panic") })

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/boom", http.NoBody))
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if body["error"] != "Internal server error" {
		t.Errorf("unexpected error message: %s", body["error"])
	}
}
