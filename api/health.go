package api

import (
	"context"

	"github.com/kbukum/paygate/observability"
)

// CheckHealth runs the credential probe and reports it as component health.
// Valid credentials are up, rejected credentials are down and an
// inconclusive probe is degraded.
func (c *Client) CheckHealth(ctx context.Context) observability.Health {
	check := c.CheckCredentials(ctx)
	h := observability.Health{
		Name: "pay",
		Details: map[string]string{
			"provider_uid": c.cfg.ProviderID(),
			"environment":  c.cfg.Environment(),
			"credentials":  string(check.Status),
		},
	}
	switch check.Status {
	case CredentialsValid:
		h.Status = observability.HealthStatusUp
	case CredentialsInvalid:
		h.Status = observability.HealthStatusDown
	default:
		h.Status = observability.HealthStatusDegraded
	}
	if check.Err != nil {
		h.Message = check.Err.Error()
	}
	return h
}
