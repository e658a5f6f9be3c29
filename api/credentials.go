package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/kbukum/paygate/errors"
	"github.com/kbukum/paygate/httpclient"
	"github.com/kbukum/paygate/logger"
	"github.com/kbukum/paygate/observability"
	"github.com/kbukum/paygate/token"
)

// CredentialStatus is the outcome of a credential probe.
type CredentialStatus string

const (
	// CredentialsValid means the remote service echoed the nonce in a token
	// signed with the provider key pair.
	CredentialsValid CredentialStatus = "valid"
	// CredentialsInvalid means the service answered but the answer does not
	// confirm the credentials.
	CredentialsInvalid CredentialStatus = "invalid"
	// CredentialsUnknown means validity could not be determined.
	CredentialsUnknown CredentialStatus = "unknown"
)

// CredentialCheck is the advisory result of CheckCredentials.
type CredentialCheck struct {
	Status CredentialStatus `json:"status"`
	// Err explains a non-valid status. It is informational only.
	Err error `json:"-"`
}

// Valid reports whether the credentials were confirmed.
func (c CredentialCheck) Valid() bool { return c.Status == CredentialsValid }

// CheckCredentials round-trips a signed nonce through the API to confirm
// that the API secret and the public key belong to this provider. It never
// returns an error or panics; the result only feeds an advisory notice.
//
// A nonce mismatch or an empty answer is invalid. An unreachable endpoint,
// an error status or an answer that does not verify is unknown.
func (c *Client) CheckCredentials(ctx context.Context) (check CredentialCheck) {
	oc := observability.NewOperationContext(component, "check_credentials", c.cfg.ProviderID(), c.metrics)
	ctx, span := oc.StartSpanForOperation(ctx, observability.SpanCheckCredentials)
	defer func() {
		if r := recover(); r != nil {
			check = CredentialCheck{Status: CredentialsUnknown, Err: fmt.Errorf("credential check panicked: %v", r)}
		}
		status := "ok"
		if !check.Valid() {
			status = string(check.Status)
		}
		observability.SetSpanAttribute(ctx, observability.AttrStatus, string(check.Status))
		oc.EndOperation(ctx, span, status, check.Err)
		c.metrics.RecordCredentialCheck(ctx, string(check.Status))
		c.logCheck(check)
	}()

	nonce := c.nonce()
	probe, err := c.codec.EncodeCredentialCheck(nonce, c.cfg.APISecret())
	if err != nil {
		return unknown(err)
	}

	resp, err := c.http.Do(ctx, httpclient.Request{
		Method:      http.MethodPost,
		Path:        c.cfg.Endpoint("provider", c.cfg.ProviderID(), "check_credentials"),
		Body:        []byte(probe),
		ContentType: httpclient.ContentTypeJWT,
		Accept:      httpclient.ContentTypeJWT,
		Timeout:     CredentialCheckTimeout,
	})
	if err != nil {
		return unknown(foldRemoteError(err, rawBody(resp)))
	}

	answer := strings.Trim(strings.TrimSpace(string(resp.Body)), `"`)
	if answer == "" {
		return CredentialCheck{Status: CredentialsInvalid, Err: errors.InvalidToken("credential check answer is empty")}
	}

	key, err := c.cfg.VerifyKey()
	if err != nil {
		return unknown(err)
	}
	claims, err := c.codec.Decode(answer, key, token.RS256)
	if err != nil {
		return unknown(err)
	}

	if got, _ := claims.Data.GetString(token.KeyNonce); got != nonce {
		return CredentialCheck{Status: CredentialsInvalid, Err: errors.InvalidToken("credential check nonce mismatch")}
	}
	return CredentialCheck{Status: CredentialsValid}
}

func unknown(err error) CredentialCheck {
	return CredentialCheck{Status: CredentialsUnknown, Err: err}
}

func rawBody(resp *httpclient.Response) []byte {
	if resp == nil {
		return nil
	}
	return resp.Body
}

func (c *Client) logCheck(check CredentialCheck) {
	fields := logger.Fields(logger.FieldStatus, string(check.Status))
	switch check.Status {
	case CredentialsValid:
		c.log.Info("credentials confirmed", fields)
	case CredentialsInvalid:
		c.log.WithError(check.Err).Warn("credentials rejected", fields)
	default:
		c.log.WithError(check.Err).Warn("credentials could not be confirmed", fields)
	}
}
