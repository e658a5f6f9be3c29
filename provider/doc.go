// Package provider holds the immutable identity of a content provider account:
// its provider id, the public key inbound tokens are verified with, the API
// secret outbound tokens and API calls are signed with, and the environment
// (production or staging) that selects the remote endpoints.
//
// A Config is built once by the host integration and shared by reference:
//
//	cfg, err := provider.New(uid, publicKeyPEM, secret, false, provider.WithEnvOverrides())
//
// Construction fails with a configuration error when any identity field is
// empty. After construction a Config never changes and is safe for concurrent use.
package provider
