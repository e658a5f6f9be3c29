// Package api is the client for the remote pay API.
//
// It registers content items, updates their metadata and probes whether the
// configured credentials are accepted. Calls are synchronous, carry a fixed
// deadline (120s for item calls, 30s for the probe) and are never retried.
//
//	client, err := api.NewClient(cfg)
//	uid, err := client.RegisterItem(ctx, "https://example.com/post", api.Attributes{"title": "Hello"})
//	if errors.IsFailedRequest(err) {
//	    // surface as an admin warning
//	}
//
//	if check := client.CheckCredentials(ctx); !check.Valid() {
//	    // show the "credentials could not be confirmed" notice
//	}
package api
