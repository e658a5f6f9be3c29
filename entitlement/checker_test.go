package entitlement_test

import (
	"context"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"

	"github.com/kbukum/paygate/entitlement"
	"github.com/kbukum/paygate/errors"
	"github.com/kbukum/paygate/logger"
	"github.com/kbukum/paygate/provider"
	"github.com/kbukum/paygate/testutil"
	"github.com/kbukum/paygate/token"
)

const providerID = "acme"

type fixture struct {
	keys    *testutil.Keys
	cfg     *provider.Config
	checker *entitlement.Checker
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	keys := testutil.NewKeys(t)
	cfg, err := provider.New(providerID, keys.PublicPEM, "secret", false)
	if err != nil {
		t.Fatalf("provider.New: %v", err)
	}
	checker, err := entitlement.NewChecker(cfg, entitlement.WithLogger(logger.NewNop()))
	if err != nil {
		t.Fatalf("NewChecker: %v", err)
	}
	return &fixture{keys: keys, cfg: cfg, checker: checker}
}

func claims(sub string, data token.Data, aud ...string) *token.Claims {
	c := &token.Claims{
		RegisteredClaims: gojwt.RegisteredClaims{
			Issuer:    "pay",
			Subject:   sub,
			IssuedAt:  gojwt.NewNumericDate(time.Now()),
			ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Data: data,
	}
	if len(aud) > 0 {
		c.Audience = aud
	}
	return c
}

func subscriptionClaims() *token.Claims {
	return claims(token.SubjectSubscription, token.Data{
		token.KeySubscription: true,
		token.KeyProviderUID:  providerID,
	}, providerID)
}

func TestNewChecker_NilConfig(t *testing.T) {
	if _, err := entitlement.NewChecker(nil); !errors.IsConfiguration(err) {
		t.Errorf("expected configuration error, got %v", err)
	}
}

func TestAcquiredItemID(t *testing.T) {
	f := newFixture(t)
	other := testutil.NewKeys(t)

	tests := []struct {
		name   string
		token  string
		wantID string
		wantOK bool
	}{
		{
			"foreign uid",
			f.keys.Sign(t, claims(token.SubjectItem, token.Data{token.KeyAcquired: true, token.KeyForeignUID: "42", token.KeyItemUID: "remote-1"})),
			"42", true,
		},
		{
			"falls back to item uid",
			f.keys.Sign(t, claims(token.SubjectItem, token.Data{token.KeyAcquired: true, token.KeyItemUID: "remote-1"})),
			"remote-1", true,
		},
		{
			"numeric id",
			f.keys.Sign(t, claims(token.SubjectItem, token.Data{token.KeyAcquired: true, token.KeyForeignUID: 42})),
			"42", true,
		},
		{
			"not acquired",
			f.keys.Sign(t, claims(token.SubjectItem, token.Data{token.KeyAcquired: false, token.KeyForeignUID: "42"})),
			"", false,
		},
		{
			"acquired as string",
			f.keys.Sign(t, claims(token.SubjectItem, token.Data{token.KeyAcquired: "true", token.KeyForeignUID: "42"})),
			"", false,
		},
		{
			"wrong key",
			other.Sign(t, claims(token.SubjectItem, token.Data{token.KeyAcquired: true, token.KeyForeignUID: "42"})),
			"", false,
		},
		{
			"wrong algorithm",
			testutil.SignHS256(t, "secret", claims(token.SubjectItem, token.Data{token.KeyAcquired: true, token.KeyForeignUID: "42"})),
			"", false,
		},
		{
			"expired beyond leeway",
			f.keys.Sign(t, &token.Claims{
				RegisteredClaims: gojwt.RegisteredClaims{ExpiresAt: gojwt.NewNumericDate(time.Now().Add(-20 * time.Minute))},
				Data:             token.Data{token.KeyAcquired: true, token.KeyForeignUID: "42"},
			}),
			"", false,
		},
		{
			"id beyond exact integer range",
			f.keys.Sign(t, claims(token.SubjectItem, token.Data{token.KeyAcquired: true, token.KeyForeignUID: 1e20})),
			"", false,
		},
		{"garbage", "garbage", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := f.checker.AcquiredItemID(tt.token)
			if ok != tt.wantOK || id != tt.wantID {
				t.Errorf("AcquiredItemID() = (%q, %v), want (%q, %v)", id, ok, tt.wantID, tt.wantOK)
			}
		})
	}
}

func TestAcquiredItemID_ExpiredWithinLeeway(t *testing.T) {
	f := newFixture(t)
	tok := f.keys.Sign(t, &token.Claims{
		RegisteredClaims: gojwt.RegisteredClaims{ExpiresAt: gojwt.NewNumericDate(time.Now().Add(-10 * time.Minute))},
		Data:             token.Data{token.KeyAcquired: true, token.KeyForeignUID: "42"},
	})
	if id, ok := f.checker.AcquiredItemID(tok); !ok || id != "42" {
		t.Errorf("expected token within leeway to verify, got (%q, %v)", id, ok)
	}
}

func TestHasSubscription(t *testing.T) {
	f := newFixture(t)

	if !f.checker.HasSubscription(f.keys.Sign(t, subscriptionClaims())) {
		t.Fatal("expected subscription with all four conditions met")
	}

	tests := []struct {
		name   string
		mutate func(c *token.Claims)
	}{
		{"subscription flag false", func(c *token.Claims) { c.Data[token.KeySubscription] = false }},
		{"subscription flag missing", func(c *token.Claims) { delete(c.Data, token.KeySubscription) }},
		{"other audience", func(c *token.Claims) { c.Audience = gojwt.ClaimStrings{"other"} }},
		{"extra audience", func(c *token.Claims) { c.Audience = gojwt.ClaimStrings{providerID, "other"} }},
		{"no audience", func(c *token.Claims) { c.Audience = nil }},
		{"item subject", func(c *token.Claims) { c.Subject = token.SubjectItem }},
		{"other provider uid", func(c *token.Claims) { c.Data[token.KeyProviderUID] = "other" }},
		{"missing provider uid", func(c *token.Claims) { delete(c.Data, token.KeyProviderUID) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := subscriptionClaims()
			tt.mutate(c)
			if f.checker.HasSubscription(f.keys.Sign(t, c)) {
				t.Error("expected no subscription")
			}
		})
	}

	other := testutil.NewKeys(t)
	if f.checker.HasSubscription(other.Sign(t, subscriptionClaims())) {
		t.Error("token signed with another key must not prove a subscription")
	}
}

func TestHasSubscription_NumericProviderUID(t *testing.T) {
	keys := testutil.NewKeys(t)
	cfg, err := provider.New("1234", keys.PublicPEM, "secret", false)
	if err != nil {
		t.Fatalf("provider.New: %v", err)
	}
	checker, err := entitlement.NewChecker(cfg, entitlement.WithLogger(logger.NewNop()))
	if err != nil {
		t.Fatalf("NewChecker: %v", err)
	}

	numeric := claims(token.SubjectSubscription, token.Data{
		token.KeySubscription: true,
		token.KeyProviderUID:  1234,
	}, "1234")
	if !checker.HasSubscription(keys.Sign(t, numeric)) {
		t.Error("numeric provider_uid equal to the provider id should match")
	}

	other := claims(token.SubjectSubscription, token.Data{
		token.KeySubscription: true,
		token.KeyProviderUID:  1235,
	}, "1234")
	if checker.HasSubscription(keys.Sign(t, other)) {
		t.Error("numeric provider_uid of another provider must not match")
	}
}

func TestIsEntitled(t *testing.T) {
	f := newFixture(t)
	acquired42 := f.keys.Sign(t, claims(token.SubjectItem, token.Data{token.KeyAcquired: true, token.KeyForeignUID: "42"}))
	subscription := f.keys.Sign(t, subscriptionClaims())

	tests := []struct {
		name   string
		item   entitlement.Item
		token  string
		want   bool
		reason entitlement.Reason
	}{
		{"not gated, no token", entitlement.Item{ID: "42"}, "", true, entitlement.ReasonNotGated},
		{"not gated, garbage token", entitlement.Item{ID: "42"}, "garbage", true, entitlement.ReasonNotGated},
		{"gated, no token", entitlement.Item{ID: "42", Gated: true}, "", false, entitlement.ReasonNoToken},
		{"gated, blank token", entitlement.Item{ID: "42", Gated: true}, "  ", false, entitlement.ReasonNoToken},
		{"acquired this item", entitlement.Item{ID: "42", Gated: true}, acquired42, true, entitlement.ReasonAcquired},
		{"acquired another item", entitlement.Item{ID: "7", Gated: true}, acquired42, false, entitlement.ReasonNotEntitled},
		{"subscription", entitlement.Item{ID: "7", Gated: true}, subscription, true, entitlement.ReasonSubscription},
		{"invalid token", entitlement.Item{ID: "42", Gated: true}, "garbage", false, entitlement.ReasonInvalidToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.checker.IsEntitled(tt.item, tt.token); got != tt.want {
				t.Errorf("IsEntitled() = %v, want %v", got, tt.want)
			}
			d := f.checker.Evaluate(context.Background(), tt.item, tt.token)
			if d.Reason != tt.reason {
				t.Errorf("Evaluate().Reason = %q, want %q", d.Reason, tt.reason)
			}
		})
	}
}

func TestIsEntitled_UnparseableKeyFailsClosed(t *testing.T) {
	keys := testutil.NewKeys(t)
	cfg, err := provider.New(providerID, "not a pem", "secret", false)
	if err != nil {
		t.Fatalf("provider.New: %v", err)
	}
	checker, _ := entitlement.NewChecker(cfg, entitlement.WithLogger(logger.NewNop()))
	tok := keys.Sign(t, claims(token.SubjectItem, token.Data{token.KeyAcquired: true, token.KeyForeignUID: "42"}))
	if checker.IsEntitled(entitlement.Item{ID: "42", Gated: true}, tok) {
		t.Error("expected denial with an unusable public key")
	}
}

func TestIsEntitled_PanicFailsClosed(t *testing.T) {
	f := newFixture(t)
	panicking := token.NewCodec(providerID, token.WithClock(func() time.Time { panic("clock broke") }))
	checker, _ := entitlement.NewChecker(f.cfg,
		entitlement.WithCodec(panicking),
		entitlement.WithLogger(logger.NewNop()))

	tok := f.keys.Sign(t, claims(token.SubjectItem, token.Data{token.KeyAcquired: true, token.KeyForeignUID: "42"}))
	if checker.IsEntitled(entitlement.Item{ID: "42", Gated: true}, tok) {
		t.Error("expected denial when verification panics")
	}
	if _, ok := checker.AcquiredItemID(tok); ok {
		t.Error("expected no acquired id when verification panics")
	}
}

func TestDeciderFunc(t *testing.T) {
	var d entitlement.Decider = entitlement.DeciderFunc(func(item entitlement.Item, _ string) bool {
		return item.ID == "free"
	})
	if !d.IsEntitled(entitlement.Item{ID: "free"}, "") {
		t.Error("expected adapter to delegate")
	}
}
