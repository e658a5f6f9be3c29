package httpclient

import "net/http"

// AuthConfig carries the credential sent as "Authorization: Token <secret>".
type AuthConfig struct {
	Token string
}

// TokenAuth creates the pay API's token auth config.
func TokenAuth(secret string) *AuthConfig {
	return &AuthConfig{Token: secret}
}

func (a *AuthConfig) apply(req *http.Request) {
	if a == nil || a.Token == "" {
		return
	}
	req.Header.Set("Authorization", "Token "+a.Token)
}
