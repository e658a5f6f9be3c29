package provider

const (
	ProductionAPIURL      = "https://pay.blendle.com/api/"
	StagingAPIURL         = "https://pay.blendle.io/api/"
	ProductionClientJSURL = "https://pay.blendle.com/client/js/client.js"
	StagingClientJSURL    = "https://pay.blendle.io/client/js/client.js"
)

// ResolveAPIURL returns override when set, otherwise the production or
// staging API base.
func ResolveAPIURL(override string, production bool) string {
	if override != "" {
		return override
	}
	if production {
		return ProductionAPIURL
	}
	return StagingAPIURL
}

// ResolveClientJSURL returns override when set, otherwise the production or
// staging client script URL.
func ResolveClientJSURL(override string, production bool) string {
	if override != "" {
		return override
	}
	if production {
		return ProductionClientJSURL
	}
	return StagingClientJSURL
}
