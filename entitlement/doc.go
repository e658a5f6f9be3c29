// Package entitlement decides whether a visitor may view a gated item.
//
// The decision is based on an inbound token issued by the remote service
// and verified with the provider public key (RS256 only). A token proves
// entitlement either by marking the item as acquired or by proving an
// active subscription bound to this provider. Every failure denies access.
//
//	checker, err := entitlement.NewChecker(cfg)
//	if checker.IsEntitled(entitlement.Item{ID: "42", Gated: true}, header) {
//	    // render full content
//	}
package entitlement
