package entitlement

// Item is the gating view of a content item.
type Item struct {
	// ID is the host's identifier of the item, matched against the token.
	ID string `json:"id"`
	// Gated enables entitlement checking for the item.
	Gated bool `json:"gated"`
}

// Decider is the authorization decision point for gated items.
type Decider interface {
	IsEntitled(item Item, token string) bool
}

// DeciderFunc is an adapter to use ordinary functions as Decider.
type DeciderFunc func(item Item, token string) bool

// IsEntitled implements Decider.
func (f DeciderFunc) IsEntitled(item Item, token string) bool {
	return f(item, token)
}

// Reason explains a decision.
type Reason string

const (
	ReasonNotGated      Reason = "not_gated"
	ReasonNoToken       Reason = "no_token"
	ReasonAcquired      Reason = "acquired"
	ReasonSubscription  Reason = "subscription"
	ReasonInvalidToken  Reason = "invalid_token"
	ReasonNotEntitled   Reason = "not_entitled"
	ReasonInternalError Reason = "internal_error"
)

// Decision is the outcome of one entitlement check.
type Decision struct {
	Granted bool   `json:"granted"`
	Reason  Reason `json:"reason"`
}

func grant(r Reason) Decision { return Decision{Granted: true, Reason: r} }
func deny(r Reason) Decision  { return Decision{Granted: false, Reason: r} }
