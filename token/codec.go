package token

import (
	stderrors "errors"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"

	"github.com/kbukum/paygate/errors"
)

// Codec signs outbound tokens and verifies inbound ones on behalf of one
// issuer. It holds no mutable state and is safe for concurrent use.
type Codec struct {
	issuer string
	leeway time.Duration
	now    func() time.Time
}

// NewCodec creates a codec stamping issuer on every outbound token.
func NewCodec(issuer string, opts ...CodecOption) *Codec {
	c := &Codec{issuer: issuer, leeway: DefaultLeeway, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Issuer returns the issuer stamped on outbound tokens.
func (c *Codec) Issuer() string { return c.issuer }

// Leeway returns the tolerated clock skew.
func (c *Codec) Leeway() time.Duration { return c.leeway }

// Now returns the codec's current time.
func (c *Codec) Now() time.Time { return c.now() }

// Encode signs claims with HS256 using secret. The issuer and issued-at
// claims are always overwritten; the caller's claims are not modified.
func (c *Codec) Encode(claims *Claims, secret string) (string, error) {
	if claims == nil {
		return "", errors.InvalidInput("claims are required")
	}
	if secret == "" {
		return "", errors.Configuration("api secret is required to sign tokens")
	}

	out := *claims
	out.Issuer = c.issuer
	out.IssuedAt = gojwt.NewNumericDate(c.now())

	token := gojwt.NewWithClaims(HS256.signingMethod(), &out)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", errors.InvalidInput("token claims could not be signed").WithCause(err)
	}
	return signed, nil
}

// EncodeItem signs an item token describing itemUID.
func (c *Codec) EncodeItem(itemUID string, md Metadata, secret string) (string, error) {
	if itemUID == "" {
		return "", errors.InvalidInput("item uid is required")
	}
	data := Data{KeyForeignUID: itemUID}
	md.merge(data)
	return c.Encode(&Claims{
		RegisteredClaims: gojwt.RegisteredClaims{Subject: SubjectItem},
		Data:             data,
	}, secret)
}

// EncodeCredentialCheck signs a short-lived probe token carrying nonce.
func (c *Codec) EncodeCredentialCheck(nonce, secret string) (string, error) {
	return c.Encode(&Claims{
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   SubjectCheckCredentials,
			ExpiresAt: gojwt.NewNumericDate(c.now().Add(CredentialCheckTTL)),
		},
		Data: Data{KeyNonce: nonce},
	}, secret)
}

// Decode verifies token against key and returns its claims. Only the listed
// algorithms are accepted; at least one is required. Expiry, not-before and
// issued-at are checked with the codec leeway. A string key is treated as
// an HMAC secret.
//
// Every failure is an INVALID_TOKEN error.
func (c *Codec) Decode(token string, key any, allowed ...Algorithm) (*Claims, error) {
	if token == "" {
		return nil, errors.InvalidToken("token is empty")
	}
	if len(allowed) == 0 {
		return nil, errors.InvalidToken("no signing algorithm allowed")
	}

	claims := &Claims{}
	parsed, err := gojwt.ParseWithClaims(token, claims, keyFunc(key), c.parserOptions(allowed)...)
	if err != nil {
		return nil, errors.InvalidToken(reason(err)).WithCause(err)
	}
	if !parsed.Valid {
		return nil, errors.InvalidToken("")
	}
	return claims, nil
}

// keyFunc returns the verification key regardless of the token header;
// algorithm pinning is done by the parser's valid methods.
func keyFunc(key any) gojwt.Keyfunc {
	return func(_ *gojwt.Token) (any, error) {
		switch k := key.(type) {
		case nil:
			return nil, fmt.Errorf("token: no verification key")
		case string:
			return []byte(k), nil
		default:
			return k, nil
		}
	}
}

// parserOptions returns jwt.ParserOption for the allowed algorithms.
func (c *Codec) parserOptions(allowed []Algorithm) []gojwt.ParserOption {
	methods := make([]string, len(allowed))
	for i, a := range allowed {
		methods[i] = string(a)
	}
	return []gojwt.ParserOption{
		gojwt.WithValidMethods(methods),
		gojwt.WithLeeway(c.leeway),
		gojwt.WithIssuedAt(),
		gojwt.WithTimeFunc(c.now),
	}
}

// reason maps a golang-jwt error to a short message.
func reason(err error) string {
	switch {
	case stderrors.Is(err, gojwt.ErrTokenMalformed):
		return "token is malformed"
	case stderrors.Is(err, gojwt.ErrTokenExpired):
		return "token is expired"
	case stderrors.Is(err, gojwt.ErrTokenNotValidYet):
		return "token is not valid yet"
	case stderrors.Is(err, gojwt.ErrTokenUsedBeforeIssued):
		return "token is issued in the future"
	case stderrors.Is(err, gojwt.ErrTokenSignatureInvalid):
		return "token signature or algorithm is invalid"
	case stderrors.Is(err, gojwt.ErrTokenUnverifiable):
		return "token cannot be verified"
	default:
		return "token could not be verified"
	}
}
