package content

import (
	"github.com/kbukum/paygate/errors"
	"github.com/kbukum/paygate/locale"
	"github.com/kbukum/paygate/provider"
	"github.com/kbukum/paygate/token"
)

// Widget carries what a page needs to render the pay button for one post.
type Widget struct {
	ElementID   string `json:"element_id"`
	ProviderID  string `json:"provider_uid"`
	ItemToken   string `json:"item_token"`
	ClientJSURL string `json:"client_js_url"`
	Locale      string `json:"locale"`
	ButtonType  string `json:"button_type"`
}

// WidgetOptions selects the presentation of a widget.
type WidgetOptions struct {
	Locale     locale.Locale
	ButtonType string
}

// NewWidget mints the item token for p and bundles it with the widget
// settings. A zero locale falls back to the default locale and an empty
// button type to "item".
func NewWidget(p Post, codec *token.Codec, cfg *provider.Config, opts WidgetOptions) (Widget, error) {
	if codec == nil || cfg == nil {
		return Widget{}, errors.Configuration("widget needs a codec and a provider config")
	}
	if err := p.Validate(); err != nil {
		return Widget{}, err
	}
	tok, err := codec.EncodeItem(p.ID, p.Metadata(), cfg.APISecret())
	if err != nil {
		return Widget{}, err
	}

	loc := opts.Locale
	if loc.Code == "" {
		loc = locale.Default()
	}
	button := opts.ButtonType
	if button == "" {
		button = "item"
	}
	return Widget{
		ElementID:   p.ElementID(),
		ProviderID:  cfg.ProviderID(),
		ItemToken:   tok,
		ClientJSURL: cfg.ClientJSURL(),
		Locale:      loc.Code,
		ButtonType:  button,
	}, nil
}
