package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/paygate/entitlement"
	"github.com/kbukum/paygate/errors"
)

// TokenHeader carries the visitor's entitlement token.
const TokenHeader = "X-PWB-Token"

// ContextKeyDecision is the gin context key holding the entitlement.Decision.
const ContextKeyDecision = "pay.decision"

// ItemFunc resolves the item a request serves. Returning false leaves the
// request ungated.
type ItemFunc func(c *gin.Context) (entitlement.Item, bool)

// evaluator is implemented by deciders that explain their decisions,
// such as *entitlement.Checker.
type evaluator interface {
	Evaluate(ctx context.Context, item entitlement.Item, token string) entitlement.Decision
}

// Entitlement evaluates the request token against the item resolved by
// itemFn and stores the decision under ContextKeyDecision. It never aborts.
func Entitlement(decider entitlement.Decider, itemFn ItemFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		decide(c, decider, itemFn)
		c.Next()
	}
}

// RequireEntitlement is Entitlement that aborts with 402 Payment Required
// when access is denied.
func RequireEntitlement(decider entitlement.Decider, itemFn ItemFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		item, d := decide(c, decider, itemFn)
		if !d.Granted {
			appErr := errors.PaymentRequired(item.ID).WithDetail("reason", string(d.Reason))
			c.AbortWithStatusJSON(http.StatusPaymentRequired, appErr.ToResponse())
			return
		}
		c.Next()
	}
}

// IsEntitled reports whether the request was granted access. Requests that
// no entitlement middleware evaluated are not entitled.
func IsEntitled(c *gin.Context) bool {
	d, ok := DecisionFrom(c)
	return ok && d.Granted
}

// DecisionFrom returns the decision stored by the middleware.
func DecisionFrom(c *gin.Context) (entitlement.Decision, bool) {
	v, ok := c.Get(ContextKeyDecision)
	if !ok {
		return entitlement.Decision{}, false
	}
	d, ok := v.(entitlement.Decision)
	return d, ok
}

// Token returns the trimmed entitlement token of the request.
func Token(c *gin.Context) string {
	return strings.TrimSpace(c.GetHeader(TokenHeader))
}

func decide(c *gin.Context, decider entitlement.Decider, itemFn ItemFunc) (item entitlement.Item, d entitlement.Decision) {
	item, ok := itemFn(c)
	switch {
	case !ok:
		d = entitlement.Decision{Granted: true, Reason: entitlement.ReasonNotGated}
	case decider == nil:
		d = entitlement.Decision{Reason: entitlement.ReasonInternalError}
	default:
		d = evaluate(c.Request.Context(), decider, item, Token(c))
	}
	c.Set(ContextKeyDecision, d)
	return item, d
}

// evaluate fails closed if the decider panics.
func evaluate(ctx context.Context, decider entitlement.Decider, item entitlement.Item, tok string) (d entitlement.Decision) {
	defer func() {
		if r := recover(); r != nil {
			d = entitlement.Decision{Reason: entitlement.ReasonInternalError}
		}
	}()
	if e, ok := decider.(evaluator); ok {
		return e.Evaluate(ctx, item, tok)
	}
	if decider.IsEntitled(item, tok) {
		return entitlement.Decision{Granted: true, Reason: entitlement.ReasonAcquired}
	}
	return entitlement.Decision{Reason: entitlement.ReasonNotEntitled}
}
