package api

import (
	"bytes"
	"context"
	"encoding/json"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/paygate/errors"
	"github.com/kbukum/paygate/httpclient"
	"github.com/kbukum/paygate/logger"
	"github.com/kbukum/paygate/observability"
	"github.com/kbukum/paygate/validation"
)

// Attributes is item metadata sent to the API (title, description, words,
// url and any other key the API accepts).
type Attributes map[string]any

// ItemRegistration is the response to an item registration.
type ItemRegistration struct {
	UID string `json:"uid" validate:"notblank"`
}

// RegisterItem registers url with the API and returns the remote item uid.
// The body is {"url": url} merged with attrs; a "url" key in attrs wins.
func (c *Client) RegisterItem(ctx context.Context, url string, attrs Attributes) (uid string, err error) {
	oc := observability.NewOperationContext(component, "register_item", c.cfg.ProviderID(), c.metrics)
	ctx, span := oc.StartSpanForOperation(ctx, observability.SpanRegisterItem)
	defer func() { c.endOperation(ctx, oc, span, err) }()

	payload := make(map[string]any, len(attrs)+1)
	payload["url"] = url
	for k, v := range attrs {
		payload[k] = v
	}

	endpoint := c.cfg.Endpoint("provider", c.cfg.ProviderID(), "items")
	resp, err := httpclient.Post[ItemRegistration](c.http, ctx, endpoint, payload,
		httpclient.WithTimeout(ItemTimeout))
	if err != nil {
		return "", c.requestFailed("register item", rawOf(resp), err)
	}

	if fields := validation.Struct(resp.Data); len(fields) > 0 {
		return "", c.requestFailed("register item", nil,
			errors.FailedRequest(resp.StatusCode, "registration response has no uid").WithDetail("fields", fields))
	}

	observability.SetSpanAttribute(ctx, observability.AttrItemID, resp.Data.UID)
	c.log.Info("item registered", logger.Fields(
		logger.FieldItemID, resp.Data.UID,
		logger.FieldURL, url,
	))
	return resp.Data.UID, nil
}

// UpdateAttributes replaces the metadata of a registered item. It reports
// true when the API answered with a non-null JSON document. A 2xx answer
// that is empty, null or not JSON at all is false without an error.
func (c *Client) UpdateAttributes(ctx context.Context, itemUID string, attrs Attributes) (ok bool, err error) {
	oc := observability.NewOperationContext(component, "update_attributes", c.cfg.ProviderID(), c.metrics)
	ctx, span := oc.StartSpanForOperation(ctx, observability.SpanUpdateAttributes)
	defer func() { c.endOperation(ctx, oc, span, err) }()

	if itemUID == "" {
		return false, errors.InvalidInput("item uid is required")
	}
	observability.SetSpanAttribute(ctx, observability.AttrItemID, itemUID)
	if attrs == nil {
		attrs = Attributes{}
	}

	endpoint := c.cfg.Endpoint("item", itemUID, "metadata")
	resp, err := httpclient.Post[json.RawMessage](c.http, ctx, endpoint, attrs,
		httpclient.WithTimeout(ItemTimeout))
	if err != nil {
		if resp != nil && resp.StatusCode >= 200 && resp.StatusCode < 300 {
			c.log.Debug("item attributes answer is not JSON", logger.Fields(
				logger.FieldItemID, itemUID,
				logger.FieldStatusCode, resp.StatusCode,
			))
			return false, nil
		}
		return false, c.requestFailed("update attributes", rawOf(resp), err)
	}

	ok = len(resp.Data) > 0 && !bytes.Equal(bytes.TrimSpace(resp.Data), []byte("null"))
	c.log.Debug("item attributes updated", logger.Fields(
		logger.FieldItemID, itemUID,
		"parsed", ok,
	))
	return ok, nil
}

// requestFailed folds the remote error envelope into err and logs it.
func (c *Client) requestFailed(op string, body []byte, err error) error {
	err = foldRemoteError(err, body)
	fields := logger.ErrorFields(op, err)
	if appErr, ok := errors.AsAppError(err); ok {
		fields[logger.FieldStatusCode] = appErr.StatusCode
		c.metrics.RecordError(context.Background(), string(appErr.Code), component)
	}
	c.log.Warn("pay api request failed", fields)
	return err
}

// endOperation closes the span and records the request outcome.
func (c *Client) endOperation(ctx context.Context, oc *observability.OperationContext, span trace.Span, err error) {
	status := "ok"
	if err != nil {
		status = "error"
		if appErr, ok := errors.AsAppError(err); ok && appErr.StatusCode > 0 {
			span.SetAttributes(attribute.Int(observability.AttrStatusCode, appErr.StatusCode))
		}
	}
	oc.EndOperation(ctx, span, status, err)
}

func rawOf[T any](resp *httpclient.TypedResponse[T]) []byte {
	if resp == nil {
		return nil
	}
	return resp.Raw
}
