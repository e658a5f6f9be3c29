package token

import (
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// Algorithm is a signing algorithm name as it appears in the token header.
type Algorithm string

const (
	// HS256 signs outbound tokens with the shared API secret.
	HS256 Algorithm = "HS256"
	// RS256 verifies inbound tokens with the provider public key.
	RS256 Algorithm = "RS256"
)

// DefaultLeeway is the clock skew tolerated on exp, nbf and iat.
const DefaultLeeway = 900 * time.Second

// CredentialCheckTTL is the lifetime of a credential probe token.
const CredentialCheckTTL = 900 * time.Second

// signingMethod returns the golang-jwt SigningMethod instance.
func (a Algorithm) signingMethod() gojwt.SigningMethod {
	switch a {
	case RS256:
		return gojwt.SigningMethodRS256
	default:
		return gojwt.SigningMethodHS256
	}
}

// CodecOption customizes a Codec.
type CodecOption func(*Codec)

// WithLeeway overrides the clock skew tolerance.
func WithLeeway(d time.Duration) CodecOption {
	return func(c *Codec) {
		if d >= 0 {
			c.leeway = d
		}
	}
}

// WithClock replaces the time source, mostly for tests.
func WithClock(now func() time.Time) CodecOption {
	return func(c *Codec) {
		if now != nil {
			c.now = now
		}
	}
}
