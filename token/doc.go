// Package token encodes outbound and verifies inbound signed tokens.
//
// Outbound tokens (item descriptions, credential probes) are signed with the
// provider's shared API secret using HS256. Inbound tokens (acquired item,
// subscription, probe answers) are issued by the remote service and verified
// against the provider public key using RS256 only. The two directions use
// different keys and different algorithms; callers always pin the algorithm
// they accept.
//
//	codec := token.NewCodec(cfg.ProviderID())
//	tok, err := codec.EncodeItem("42", token.Metadata{Title: "Hello"}, cfg.APISecret())
//
//	key, _ := cfg.VerifyKey()
//	claims, err := codec.Decode(inbound, key, token.RS256)
package token
