package entitlement

import (
	"context"
	"fmt"
	"strings"

	"github.com/kbukum/paygate/errors"
	"github.com/kbukum/paygate/logger"
	"github.com/kbukum/paygate/observability"
	"github.com/kbukum/paygate/provider"
	"github.com/kbukum/paygate/token"
)

const component = "entitlement"

// Checker verifies inbound tokens for one provider. It holds no mutable
// state and is safe for concurrent use.
type Checker struct {
	cfg     *provider.Config
	codec   *token.Codec
	log     *logger.Logger
	metrics *observability.Metrics
}

// Option customizes a Checker.
type Option func(*Checker)

// WithCodec replaces the token codec, e.g. to control the clock.
func WithCodec(codec *token.Codec) Option {
	return func(c *Checker) {
		if codec != nil {
			c.codec = codec
		}
	}
}

// WithLogger sets the logger used for decision traces.
func WithLogger(l *logger.Logger) Option {
	return func(c *Checker) {
		if l != nil {
			c.log = l.WithComponent(component)
		}
	}
}

// WithMetrics records every decision on m.
func WithMetrics(m *observability.Metrics) Option {
	return func(c *Checker) { c.metrics = m }
}

// NewChecker creates a Checker bound to cfg.
func NewChecker(cfg *provider.Config, opts ...Option) (*Checker, error) {
	if cfg == nil {
		return nil, errors.Configuration("provider config is required")
	}
	c := &Checker{
		cfg:   cfg,
		codec: token.NewCodec(cfg.ProviderID()),
		log:   logger.WithComponent(component),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// AcquiredItemID returns the id of the item the token proves was acquired.
// It returns false for any token that does not verify or is not marked
// acquired.
func (c *Checker) AcquiredItemID(tok string) (string, bool) {
	claims, err := c.decode(tok)
	if err != nil {
		return "", false
	}
	return acquiredItemID(claims)
}

// HasSubscription reports whether the token proves an active subscription
// for this provider.
func (c *Checker) HasSubscription(tok string) bool {
	claims, err := c.decode(tok)
	if err != nil {
		return false
	}
	return c.subscribed(claims)
}

// IsEntitled implements Decider.
func (c *Checker) IsEntitled(item Item, tok string) bool {
	return c.Evaluate(context.Background(), item, tok).Granted
}

// Evaluate makes the gating decision for item and explains it. It never
// panics; an internal failure denies access.
func (c *Checker) Evaluate(ctx context.Context, item Item, tok string) (d Decision) {
	defer func() {
		if r := recover(); r != nil {
			d = deny(ReasonInternalError)
			c.log.Error("entitlement check panicked", logger.Fields(
				logger.FieldItemID, item.ID,
				logger.FieldError, fmt.Sprint(r),
			))
		}
		c.record(ctx, item, d)
	}()

	if !item.Gated {
		return grant(ReasonNotGated)
	}
	tok = strings.TrimSpace(tok)
	if tok == "" {
		return deny(ReasonNoToken)
	}

	claims, err := c.decode(tok)
	if err != nil {
		return deny(ReasonInvalidToken)
	}
	if id, ok := acquiredItemID(claims); ok && id == item.ID {
		return grant(ReasonAcquired)
	}
	if c.subscribed(claims) {
		return grant(ReasonSubscription)
	}
	return deny(ReasonNotEntitled)
}

// decode verifies an inbound token with the provider public key, RS256 only.
// A panic during verification is reported as an invalid token.
func (c *Checker) decode(tok string) (claims *token.Claims, err error) {
	defer func() {
		if r := recover(); r != nil {
			claims = nil
			err = errors.InvalidToken("token verification panicked").WithDetail("panic", fmt.Sprint(r))
			c.log.Error("token verification panicked", logger.Fields(logger.FieldError, fmt.Sprint(r)))
		}
	}()

	key, err := c.cfg.VerifyKey()
	if err != nil {
		c.log.Debug("public key unusable, denying", logger.ErrorFields("decode", err))
		return nil, errors.InvalidToken("public key unusable").WithCause(err)
	}
	claims, err = c.codec.Decode(tok, key, token.RS256)
	if err != nil {
		c.log.Debug("inbound token rejected", logger.ErrorFields("decode", err))
		return nil, err
	}
	return claims, nil
}

func acquiredItemID(claims *token.Claims) (string, bool) {
	if !claims.Data.IsTrue(token.KeyAcquired) {
		return "", false
	}
	if id, ok := claims.Data.ID(token.KeyForeignUID); ok {
		return id, true
	}
	return claims.Data.ID(token.KeyItemUID)
}

// subscribed requires all four of: the subscription flag, an audience of
// exactly this provider, the subscription subject and a matching
// provider_uid in the payload.
func (c *Checker) subscribed(claims *token.Claims) bool {
	pid := c.cfg.ProviderID()
	if !claims.Data.IsTrue(token.KeySubscription) {
		return false
	}
	if len(claims.Audience) != 1 || claims.Audience[0] != pid {
		return false
	}
	if claims.Subject != token.SubjectSubscription {
		return false
	}
	got, ok := claims.Data.ID(token.KeyProviderUID)
	return ok && got == pid
}

func (c *Checker) record(ctx context.Context, item Item, d Decision) {
	c.metrics.RecordDecision(ctx, d.Granted, string(d.Reason))
	c.log.Debug("entitlement decision", logger.Fields(
		logger.FieldItemID, item.ID,
		logger.FieldDecision, d.Granted,
		logger.FieldReason, string(d.Reason),
	))
}
