// Package content turns host posts into pay items: the metadata sent with
// an item token, the gating view used by the entitlement checker and the
// widget values a page needs to render the pay button.
package content
