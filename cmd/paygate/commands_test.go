package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"

	"github.com/kbukum/paygate/testutil"
	"github.com/kbukum/paygate/token"
)

type env struct {
	keys       *testutil.Keys
	fake       *testutil.FakeAPI
	configFile string
	envFile    string
}

func newEnv(t *testing.T, extra string) *env {
	t.Helper()
	keys := testutil.NewKeys(t)
	fake := testutil.NewFakeAPI(t)
	dir := t.TempDir()

	var b strings.Builder
	b.WriteString("pay:\n")
	b.WriteString("  provider_uid: acme\n")
	b.WriteString("  staging_token: s3cret\n")
	b.WriteString("  api_url: " + fake.URL() + "\n")
	b.WriteString("  staging_key: |\n")
	for _, line := range strings.Split(strings.TrimSpace(keys.PublicPEM), "\n") {
		b.WriteString("    " + line + "\n")
	}
	b.WriteString(extra)
	b.WriteString("logging:\n  level: error\n  format: json\n")

	path := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(path, []byte(b.String()), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return &env{keys: keys, fake: fake, configFile: path, envFile: filepath.Join(dir, "missing.env")}
}

func (e *env) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(append([]string{"--config", e.configFile, "--env-file", e.envFile}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestItemTokenCmd(t *testing.T) {
	e := newEnv(t, "")
	out, err := e.run(t, "item-token", "42", "--title", "Story", "--words", "120")
	if err != nil {
		t.Fatalf("item-token: %v", err)
	}
	claims, err := token.NewCodec("acme").Decode(strings.TrimSpace(out), "s3cret", token.HS256)
	if err != nil {
		t.Fatalf("printed token does not verify: %v", err)
	}
	if id, _ := claims.Data.ID(token.KeyForeignUID); id != "42" {
		t.Errorf("expected foreign_uid 42, got %v", claims.Data)
	}
	if title, _ := claims.Data.GetString(token.KeyTitle); title != "Story" {
		t.Errorf("expected title, got %v", claims.Data)
	}
}

func TestVerifyCmd(t *testing.T) {
	e := newEnv(t, "")
	tok := e.keys.Sign(t, &token.Claims{
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:  token.SubjectSubscription,
			Audience: gojwt.ClaimStrings{"acme"},
			IssuedAt: gojwt.NewNumericDate(time.Now()),
		},
		Data: token.Data{token.KeySubscription: true, token.KeyProviderUID: "acme"},
	})

	out, err := e.run(t, "verify", tok, "--item", "42")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	var res verifyResult
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, out)
	}
	if !res.Subscription || res.AcquiredItem != "" {
		t.Errorf("unexpected result %+v", res)
	}
	if res.Decision == nil || !res.Decision.Granted || res.Decision.Reason != "subscription" {
		t.Errorf("unexpected decision %+v", res.Decision)
	}

	out, err = e.run(t, "verify", "garbage")
	if err != nil {
		t.Fatalf("verify garbage: %v", err)
	}
	res = verifyResult{}
	_ = json.Unmarshal([]byte(out), &res)
	if res.Subscription || res.AcquiredItem != "" || res.Decision != nil {
		t.Errorf("garbage must prove nothing, got %+v", res)
	}
}

func TestRegisterCmd(t *testing.T) {
	e := newEnv(t, "")
	e.fake.Handle("POST /provider/acme/items", testutil.JSON(http.StatusCreated, `{"uid":"abc123"}`))

	out, err := e.run(t, "register", "https://blog.example.com/42", "--title", "Story", "--attr", "words=7,section=news")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if strings.TrimSpace(out) != "abc123" {
		t.Errorf("expected uid, got %q", out)
	}
	var body map[string]any
	_ = json.Unmarshal(e.fake.LastRequest().Body, &body)
	if body["url"] != "https://blog.example.com/42" || body["title"] != "Story" || body["words"] != float64(7) || body["section"] != "news" {
		t.Errorf("unexpected body %v", body)
	}
	if auth := e.fake.LastRequest().Header.Get("Authorization"); auth != "Token s3cret" {
		t.Errorf("unexpected Authorization %q", auth)
	}
}

func TestRegisterCmd_RemoteError(t *testing.T) {
	e := newEnv(t, "")
	e.fake.Handle("POST /provider/acme/items",
		testutil.JSON(http.StatusUnprocessableEntity, `{"_errors":[{"id":"invalid_url","message":"bad url"}]}`))

	_, err := e.run(t, "register", "nope")
	if err == nil || !strings.Contains(err.Error(), "invalid_url") || !strings.Contains(err.Error(), "bad url") {
		t.Errorf("expected remote error, got %v", err)
	}
}

func TestUpdateCmd(t *testing.T) {
	e := newEnv(t, "")
	e.fake.Handle("POST /item/abc123/metadata", testutil.JSON(http.StatusOK, `{"uid":"abc123"}`))

	out, err := e.run(t, "update", "abc123", "--description", "New summary")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !strings.Contains(out, `"updated": true`) {
		t.Errorf("unexpected output %q", out)
	}
}

func probe(keys *testutil.Keys, rewrite func(string) string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		in := &token.Claims{}
		if _, err := gojwt.ParseWithClaims(string(raw), in, func(*gojwt.Token) (any, error) {
			return []byte("s3cret"), nil
		}); err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		nonce, _ := in.Data.GetString(token.KeyNonce)
		out := &token.Claims{
			RegisteredClaims: gojwt.RegisteredClaims{IssuedAt: gojwt.NewNumericDate(time.Now())},
			Data:             token.Data{token.KeyNonce: rewrite(nonce)},
		}
		signed, _ := gojwt.NewWithClaims(gojwt.SigningMethodRS256, out).SignedString(keys.Private)
		_, _ = io.WriteString(w, signed)
	}
}

func TestCheckCredentialsCmd(t *testing.T) {
	e := newEnv(t, "")
	e.fake.Handle("POST /provider/acme/check_credentials", probe(e.keys, func(n string) string { return n }))

	out, err := e.run(t, "check-credentials")
	if err != nil {
		t.Fatalf("check-credentials: %v (%s)", err, out)
	}
	if !strings.Contains(out, `"status": "valid"`) || !strings.Contains(out, `"environment": "staging"`) {
		t.Errorf("unexpected output %q", out)
	}

	e.fake.Handle("POST /provider/acme/check_credentials", probe(e.keys, func(string) string { return "other" }))
	out, err = e.run(t, "check-credentials")
	if err == nil || !strings.Contains(out, `"status": "invalid"`) {
		t.Errorf("expected invalid credentials to fail, got %v (%s)", err, out)
	}
}

func TestCheckCredentialsCmd_Missing(t *testing.T) {
	e := newEnv(t, "  use_production: true\n")
	out, err := e.run(t, "check-credentials")
	if err == nil {
		t.Fatal("expected an error for missing production credentials")
	}
	if !strings.Contains(out, "production_key") || !strings.Contains(out, "production_token") {
		t.Errorf("expected missing fields in output, got %q", out)
	}
	if n := len(e.fake.Requests()); n != 0 {
		t.Errorf("no request may be sent without credentials, got %d", n)
	}
}

func TestVersionCmd(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})
	if err := root.Execute(); err != nil {
		t.Fatalf("version: %v", err)
	}
	var info map[string]any
	if err := json.Unmarshal(out.Bytes(), &info); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if info["version"] == "" || !strings.HasPrefix(info["user_agent"].(string), "sdk-go; ") {
		t.Errorf("unexpected version info %v", info)
	}
}

func TestArgsValidation(t *testing.T) {
	e := newEnv(t, "")
	if _, err := e.run(t, "item-token"); err == nil {
		t.Error("item-token requires an item id")
	}
	if _, err := e.run(t, "verify", "a", "b"); err == nil {
		t.Error("verify takes exactly one token")
	}
}
