package testutil

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"testing"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// Keys is an RSA key pair playing the role of the remote token issuer.
type Keys struct {
	Private   *rsa.PrivateKey
	PublicPEM string
}

// NewKeys generates a fresh 2048-bit key pair.
func NewKeys(t testing.TB) *Keys {
	t.Helper()
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate rsa key: %v", err)
	}
	der, err := x509.MarshalPKIXPublicKey(&priv.PublicKey)
	if err != nil {
		t.Fatalf("marshal public key: %v", err)
	}
	block := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})
	return &Keys{Private: priv, PublicPEM: string(block)}
}

// Sign signs claims with RS256 using the private key.
func (k *Keys) Sign(t testing.TB, claims gojwt.Claims) string {
	t.Helper()
	return SignWith(t, gojwt.SigningMethodRS256, k.Private, claims)
}

// SignHS256 signs claims with HS256 using secret.
func SignHS256(t testing.TB, secret string, claims gojwt.Claims) string {
	t.Helper()
	return SignWith(t, gojwt.SigningMethodHS256, []byte(secret), claims)
}

// SignWith signs claims with an arbitrary method and key.
func SignWith(t testing.TB, method gojwt.SigningMethod, key any, claims gojwt.Claims) string {
	t.Helper()
	signed, err := gojwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}
