// Package httpclient is the transport used to talk to the remote pay API.
//
// An Adapter sends one request per call with default headers, an
// authentication scheme, a fixed user agent and a per-request deadline. It
// never retries. Failures are reported as *errors.AppError: an unencodable
// body is INVALID_INPUT (nothing is sent), an unreachable host is
// CONNECTION_FAILED, an expired deadline is TIMEOUT and an error status is
// FAILED_REQUEST carrying the status code.
//
//	client, err := httpclient.New(httpclient.Config{
//	    Timeout:   120 * time.Second,
//	    Auth:      httpclient.TokenAuth(cfg.APISecret()),
//	    UserAgent: version.UserAgent(),
//	})
//
//	resp, err := httpclient.Post[Registration](client, ctx, url, body)
package httpclient
