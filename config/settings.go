package config

import (
	"strings"

	"github.com/kbukum/paygate/locale"
	"github.com/kbukum/paygate/provider"
	"github.com/kbukum/paygate/validation"
)

// Button types rendered by the widget.
const (
	ButtonItem         = "item"
	ButtonSubscription = "subscription"
)

// Settings holds the pay integration settings. Staging and production each
// carry their own key pair; UseProduction selects one.
type Settings struct {
	ProviderUID     string `yaml:"provider_uid" mapstructure:"provider_uid"`
	UseProduction   bool   `yaml:"use_production" mapstructure:"use_production"`
	StagingKey      string `yaml:"staging_key" mapstructure:"staging_key"`
	ProductionKey   string `yaml:"production_key" mapstructure:"production_key"`
	StagingToken    string `yaml:"staging_token" mapstructure:"staging_token"`
	ProductionToken string `yaml:"production_token" mapstructure:"production_token"`
	APIURL          string `yaml:"api_url" mapstructure:"api_url"`
	ClientJSURL     string `yaml:"clientjs_url" mapstructure:"clientjs_url"`
	Locale          string `yaml:"locale" mapstructure:"locale"`
	ButtonType      string `yaml:"button_type" mapstructure:"button_type"`
}

// ApplyDefaults trims the settings and defaults the button type.
func (s *Settings) ApplyDefaults() {
	for _, f := range []*string{
		&s.ProviderUID, &s.StagingKey, &s.ProductionKey, &s.StagingToken,
		&s.ProductionToken, &s.APIURL, &s.ClientJSURL, &s.Locale, &s.ButtonType,
	} {
		*f = strings.TrimSpace(*f)
	}
	if s.ButtonType == "" {
		s.ButtonType = ButtonItem
	}
}

// Validate checks the optional settings. Missing credentials are not an
// error here; see MissingCredentials.
func (s *Settings) Validate() error {
	v := validation.New()
	v.OptionalURL("api_url", s.APIURL)
	v.OptionalURL("clientjs_url", s.ClientJSURL)
	v.OneOf("button_type", s.ButtonType, []string{ButtonItem, ButtonSubscription})
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// Environment returns "production" or "staging".
func (s *Settings) Environment() string {
	if s.UseProduction {
		return "production"
	}
	return "staging"
}

// PublicKey returns the public key of the selected environment.
func (s *Settings) PublicKey() string {
	if s.UseProduction {
		return s.ProductionKey
	}
	return s.StagingKey
}

// APISecret returns the API secret of the selected environment.
func (s *Settings) APISecret() string {
	if s.UseProduction {
		return s.ProductionToken
	}
	return s.StagingToken
}

// MissingCredentials lists the settings keys a working integration still
// needs. An empty result means every credential is present.
func (s *Settings) MissingCredentials() []string {
	keyName, tokenName := "staging_key", "staging_token"
	if s.UseProduction {
		keyName, tokenName = "production_key", "production_token"
	}
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"provider_uid", s.ProviderUID},
		{keyName, s.PublicKey()},
		{tokenName, s.APISecret()},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// ProviderConfig builds the provider configuration of the selected
// environment. URL overrides in the settings are passed through.
func (s *Settings) ProviderConfig(opts ...provider.Option) (*provider.Config, error) {
	var base []provider.Option
	if s.APIURL != "" {
		base = append(base, provider.WithAPIURL(s.APIURL))
	}
	if s.ClientJSURL != "" {
		base = append(base, provider.WithClientJSURL(s.ClientJSURL))
	}
	return provider.New(s.ProviderUID, s.PublicKey(), s.APISecret(), s.UseProduction, append(base, opts...)...)
}

// WidgetLocale resolves the widget locale against the host's locale.
func (s *Settings) WidgetLocale(hostLocale string) locale.Locale {
	return locale.Resolve(s.Locale, hostLocale)
}
