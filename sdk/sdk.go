package sdk

import (
	"context"
	"net/http"

	"github.com/kbukum/paygate/api"
	"github.com/kbukum/paygate/config"
	"github.com/kbukum/paygate/content"
	"github.com/kbukum/paygate/entitlement"
	"github.com/kbukum/paygate/errors"
	"github.com/kbukum/paygate/logger"
	"github.com/kbukum/paygate/observability"
	"github.com/kbukum/paygate/provider"
	"github.com/kbukum/paygate/token"
)

// SDK is the provider-bound entry point to paygate.
type SDK struct {
	cfg     *provider.Config
	codec   *token.Codec
	checker *entitlement.Checker
	client  *api.Client
	log     *logger.Logger
}

type options struct {
	log        *logger.Logger
	metrics    *observability.Metrics
	httpClient *http.Client
	codecOpts  []token.CodecOption
	apiOpts    []api.Option
}

// Option customizes an SDK.
type Option func(*options)

// WithLogger sets the logger shared by every component.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithMetrics records decisions, API calls and probes on m.
func WithMetrics(m *observability.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithHTTPClient injects the *http.Client used for API calls.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) { o.httpClient = hc }
}

// WithCodecOptions configures the token codec, e.g. token.WithLeeway.
func WithCodecOptions(opts ...token.CodecOption) Option {
	return func(o *options) { o.codecOpts = append(o.codecOpts, opts...) }
}

// WithAPIOptions passes extra options to the API client.
func WithAPIOptions(opts ...api.Option) Option {
	return func(o *options) { o.apiOpts = append(o.apiOpts, opts...) }
}

// New builds an SDK bound to cfg.
func New(cfg *provider.Config, opts ...Option) (*SDK, error) {
	if cfg == nil {
		return nil, errors.Configuration("provider config is required")
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = logger.GetGlobalLogger()
	}

	codec := token.NewCodec(cfg.ProviderID(), o.codecOpts...)

	checker, err := entitlement.NewChecker(cfg,
		entitlement.WithCodec(codec),
		entitlement.WithLogger(o.log),
		entitlement.WithMetrics(o.metrics),
	)
	if err != nil {
		return nil, err
	}

	apiOpts := []api.Option{
		api.WithCodec(codec),
		api.WithLogger(o.log),
		api.WithMetrics(o.metrics),
	}
	if o.httpClient != nil {
		apiOpts = append(apiOpts, api.WithHTTPClient(o.httpClient))
	}
	client, err := api.NewClient(cfg, append(apiOpts, o.apiOpts...)...)
	if err != nil {
		return nil, err
	}

	o.log.Debug("pay sdk ready", logger.Fields(
		logger.FieldProviderID, cfg.ProviderID(),
		"environment", cfg.Environment(),
		"api_url", cfg.APIURL(),
	))
	return &SDK{cfg: cfg, codec: codec, checker: checker, client: client, log: o.log}, nil
}

// FromSettings builds the provider config of the selected environment and an
// SDK bound to it. Missing credentials are a configuration error.
func FromSettings(s config.Settings, opts ...Option) (*SDK, error) {
	s.ApplyDefaults()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	cfg, err := s.ProviderConfig(provider.WithEnvOverrides())
	if err != nil {
		return nil, err
	}
	return New(cfg, opts...)
}

// Config returns the provider config.
func (s *SDK) Config() *provider.Config { return s.cfg }

// Codec returns the token codec.
func (s *SDK) Codec() *token.Codec { return s.codec }

// Checker returns the entitlement checker.
func (s *SDK) Checker() *entitlement.Checker { return s.checker }

// Client returns the API client.
func (s *SDK) Client() *api.Client { return s.client }

// ItemToken mints the outbound item token for itemUID.
func (s *SDK) ItemToken(itemUID string, md token.Metadata) (string, error) {
	return s.codec.EncodeItem(itemUID, md, s.cfg.APISecret())
}

// AcquiredItemID returns the item id an inbound token proves was acquired.
func (s *SDK) AcquiredItemID(tok string) (string, bool) {
	return s.checker.AcquiredItemID(tok)
}

// HasSubscription reports whether an inbound token proves a subscription.
func (s *SDK) HasSubscription(tok string) bool {
	return s.checker.HasSubscription(tok)
}

// IsEntitled reports whether tok grants access to item. It fails closed.
func (s *SDK) IsEntitled(item entitlement.Item, tok string) bool {
	return s.checker.IsEntitled(item, tok)
}

// Evaluate is IsEntitled with the reason for the decision.
func (s *SDK) Evaluate(ctx context.Context, item entitlement.Item, tok string) entitlement.Decision {
	return s.checker.Evaluate(ctx, item, tok)
}

// RegisterItem registers url with the API and returns the item uid.
func (s *SDK) RegisterItem(ctx context.Context, url string, attrs api.Attributes) (string, error) {
	return s.client.RegisterItem(ctx, url, attrs)
}

// RegisterPost registers a post under its permalink with its metadata.
func (s *SDK) RegisterPost(ctx context.Context, p content.Post) (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}
	return s.client.RegisterItem(ctx, p.Permalink, p.Attributes())
}

// UpdateAttributes replaces the metadata of a registered item.
func (s *SDK) UpdateAttributes(ctx context.Context, itemUID string, attrs api.Attributes) (bool, error) {
	return s.client.UpdateAttributes(ctx, itemUID, attrs)
}

// CheckCredentials probes the API with the configured credentials.
func (s *SDK) CheckCredentials(ctx context.Context) api.CredentialCheck {
	return s.client.CheckCredentials(ctx)
}

// CheckHealth implements observability.HealthChecker.
func (s *SDK) CheckHealth(ctx context.Context) observability.Health {
	return s.client.CheckHealth(ctx)
}

// Widget mints the widget bundle for a post.
func (s *SDK) Widget(p content.Post, opts content.WidgetOptions) (content.Widget, error) {
	return content.NewWidget(p, s.codec, s.cfg, opts)
}

// Close releases idle API connections.
func (s *SDK) Close() {
	s.client.Close()
}
