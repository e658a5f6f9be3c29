package api

import (
	"encoding/json"
	"fmt"

	"github.com/kbukum/paygate/errors"
)

// RemoteError is one entry of the API's error envelope.
type RemoteError struct {
	ID      string `json:"id"`
	Message string `json:"message"`
	Logref  string `json:"logref,omitempty"`
}

// errorEnvelope is the body of an error response: {"_errors": [...]}.
type errorEnvelope struct {
	Errors []RemoteError `json:"_errors"`
}

// parseRemoteErrors returns the error entries of body, or nil when the body
// is not an error envelope.
func parseRemoteErrors(body []byte) []RemoteError {
	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil
	}
	return env.Errors
}

// foldRemoteError folds the first remote error entry into a FAILED_REQUEST
// error. Other errors are returned unchanged.
func foldRemoteError(err error, body []byte) error {
	appErr, ok := errors.AsAppError(err)
	if !ok || appErr.Code != errors.ErrCodeFailedRequest {
		return err
	}
	remote := parseRemoteErrors(body)
	if len(remote) == 0 {
		return err
	}
	first := remote[0]
	appErr.Message = formatRemoteError(appErr.StatusCode, first)
	appErr.WithDetails(map[string]any{
		"remote_id":      first.ID,
		"remote_message": first.Message,
	})
	if first.Logref != "" {
		appErr.WithDetail("logref", first.Logref)
	}
	return appErr
}

func formatRemoteError(status int, e RemoteError) string {
	msg := fmt.Sprintf("status code: %d, type: %s, message: %s", status, e.ID, e.Message)
	if e.Logref != "" {
		msg += ", logref: " + e.Logref
	}
	return msg
}

// RemoteErrorOf extracts the remote error entry folded into err, if any.
func RemoteErrorOf(err error) (RemoteError, bool) {
	appErr, ok := errors.AsAppError(err)
	if !ok {
		return RemoteError{}, false
	}
	id, _ := appErr.Details["remote_id"].(string)
	if id == "" {
		return RemoteError{}, false
	}
	msg, _ := appErr.Details["remote_message"].(string)
	logref, _ := appErr.Details["logref"].(string)
	return RemoteError{ID: id, Message: msg, Logref: logref}, true
}
