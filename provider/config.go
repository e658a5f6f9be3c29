package provider

import (
	"crypto/rsa"
	"fmt"
	"net/url"
	"os"
	"strings"

	gojwt "github.com/golang-jwt/jwt/v5"

	"github.com/kbukum/paygate/errors"
	"github.com/kbukum/paygate/validation"
)

const (
	// EnvAPIURL overrides the API base URL regardless of environment.
	EnvAPIURL = "PAY_API_URL"
	// EnvClientJSURL overrides the client script URL regardless of environment.
	EnvClientJSURL = "PAY_CLIENTJS_URL"
)

// identity is the validated part of a Config.
type identity struct {
	ProviderID string `mapstructure:"provider_uid" validate:"notblank"`
	PublicKey  string `mapstructure:"public_key" validate:"notblank"`
	APISecret  string `mapstructure:"api_secret" validate:"notblank"`
}

// Config is the immutable provider identity and environment.
type Config struct {
	id          identity
	production  bool
	apiURL      string
	clientJSURL string

	verifyKey *rsa.PublicKey
	keyErr    error
}

type options struct {
	apiURL      string
	clientJSURL string
}

// Option customizes a Config at construction.
type Option func(*options)

// WithAPIURL overrides the API base URL.
func WithAPIURL(u string) Option {
	return func(o *options) {
		if u != "" {
			o.apiURL = u
		}
	}
}

// WithClientJSURL overrides the client script URL.
func WithClientJSURL(u string) Option {
	return func(o *options) {
		if u != "" {
			o.clientJSURL = u
		}
	}
}

// WithEnvOverrides reads PAY_API_URL and PAY_CLIENTJS_URL. Options are applied
// in order, so a later WithAPIURL still wins over the environment.
func WithEnvOverrides() Option {
	return func(o *options) {
		if v := strings.TrimSpace(os.Getenv(EnvAPIURL)); v != "" {
			o.apiURL = v
		}
		if v := strings.TrimSpace(os.Getenv(EnvClientJSURL)); v != "" {
			o.clientJSURL = v
		}
	}
}

// New validates the identity fields and returns an immutable Config.
// The public key is parsed eagerly; a key that does not parse is not a
// construction error but makes every inbound token verification fail.
func New(providerID, publicKey, apiSecret string, production bool, opts ...Option) (*Config, error) {
	id := identity{
		ProviderID: strings.TrimSpace(providerID),
		PublicKey:  strings.TrimSpace(publicKey),
		APISecret:  strings.TrimSpace(apiSecret),
	}
	if fields := validation.Struct(id); len(fields) > 0 {
		return nil, errors.MissingField(fields[0].Field)
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}
	v := validation.New().
		OptionalURL("api_url", o.apiURL).
		OptionalURL("clientjs_url", o.clientJSURL)
	if appErr := v.Validate(); appErr != nil {
		return nil, appErr
	}

	cfg := &Config{
		id:          id,
		production:  production,
		apiURL:      o.apiURL,
		clientJSURL: o.clientJSURL,
	}
	cfg.verifyKey, cfg.keyErr = gojwt.ParseRSAPublicKeyFromPEM([]byte(id.PublicKey))
	return cfg, nil
}

// ProviderID returns the provider account id.
func (c *Config) ProviderID() string { return c.id.ProviderID }

// PublicKey returns the PEM encoded public key as configured.
func (c *Config) PublicKey() string { return c.id.PublicKey }

// APISecret returns the shared API secret.
func (c *Config) APISecret() string { return c.id.APISecret }

// Production reports whether live endpoints are used.
func (c *Config) Production() bool { return c.production }

// VerifyKey returns the parsed RSA public key used for inbound tokens.
func (c *Config) VerifyKey() (*rsa.PublicKey, error) {
	if c.keyErr != nil {
		return nil, errors.Configuration("public key is not a PEM encoded RSA key").WithCause(c.keyErr)
	}
	return c.verifyKey, nil
}

// APIURL returns the resolved API base URL.
func (c *Config) APIURL() string { return ResolveAPIURL(c.apiURL, c.production) }

// ClientJSURL returns the resolved client script URL.
func (c *Config) ClientJSURL() string { return ResolveClientJSURL(c.clientJSURL, c.production) }

// Endpoint joins path segments onto the API base URL, escaping each segment.
//
//	cfg.Endpoint("provider", cfg.ProviderID(), "items")
func (c *Config) Endpoint(segments ...string) string {
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}
	return strings.TrimRight(c.APIURL(), "/") + "/" + strings.Join(escaped, "/")
}

// Environment returns "production" or "staging".
func (c *Config) Environment() string {
	if c.production {
		return "production"
	}
	return "staging"
}

// String describes the config without exposing the secret.
func (c *Config) String() string {
	return fmt.Sprintf("provider(%s, %s, api=%s)", c.id.ProviderID, c.Environment(), c.APIURL())
}
