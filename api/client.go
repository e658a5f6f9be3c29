package api

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/paygate/errors"
	"github.com/kbukum/paygate/httpclient"
	"github.com/kbukum/paygate/logger"
	"github.com/kbukum/paygate/observability"
	"github.com/kbukum/paygate/provider"
	"github.com/kbukum/paygate/token"
	"github.com/kbukum/paygate/version"
)

const component = "api"

const (
	// ItemTimeout bounds item registration and metadata updates.
	ItemTimeout = 120 * time.Second
	// CredentialCheckTimeout bounds the credential probe.
	CredentialCheckTimeout = 30 * time.Second
)

// Client calls the pay API on behalf of one provider. It holds no
// per-call state and is safe for concurrent use.
type Client struct {
	cfg     *provider.Config
	http    *httpclient.Adapter
	codec   *token.Codec
	log     *logger.Logger
	metrics *observability.Metrics
	nonce   func() string
}

type options struct {
	httpClient *http.Client
	codec      *token.Codec
	log        *logger.Logger
	metrics    *observability.Metrics
	nonce      func() string
}

// Option customizes a Client.
type Option func(*options)

// WithHTTPClient injects the *http.Client used for every call.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) { o.httpClient = hc }
}

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithMetrics records request and probe metrics on m.
func WithMetrics(m *observability.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithCodec replaces the token codec used by the credential probe.
func WithCodec(c *token.Codec) Option {
	return func(o *options) { o.codec = c }
}

// WithNonceSource replaces the probe nonce generator.
func WithNonceSource(fn func() string) Option {
	return func(o *options) { o.nonce = fn }
}

// NewClient creates a Client bound to cfg.
func NewClient(cfg *provider.Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, errors.Configuration("provider config is required")
	}
	o := options{nonce: uuid.NewString}
	for _, opt := range opts {
		opt(&o)
	}

	var adapterOpts []httpclient.Option
	if o.httpClient != nil {
		adapterOpts = append(adapterOpts, httpclient.WithHTTPClient(o.httpClient))
	}
	adapter, err := httpclient.New(httpclient.Config{
		Timeout:   ItemTimeout,
		Auth:      httpclient.TokenAuth(cfg.APISecret()),
		UserAgent: version.UserAgent(),
	}, adapterOpts...)
	if err != nil {
		return nil, err
	}

	c := &Client{
		cfg:     cfg,
		http:    adapter,
		codec:   o.codec,
		log:     o.log,
		metrics: o.metrics,
		nonce:   o.nonce,
	}
	if c.codec == nil {
		c.codec = token.NewCodec(cfg.ProviderID())
	}
	if c.log == nil {
		c.log = logger.WithComponent(component)
	} else {
		c.log = c.log.WithComponent(component)
	}
	c.log = c.log.WithFields(logger.Fields(logger.FieldProviderID, cfg.ProviderID()))
	return c, nil
}

// Config returns the provider config the client is bound to.
func (c *Client) Config() *provider.Config { return c.cfg }

// Close releases idle connections.
func (c *Client) Close() {
	_ = c.http.Close(context.Background())
}
