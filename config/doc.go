// Package config loads paygate configuration.
//
// It uses Viper to load a config.yml and environment variables, with .env
// files read through godotenv. Each pay setting is bound to a PAY_* variable,
// so PAY_API_URL sets pay.api_url and PAY_PROVIDER_UID sets pay.provider_uid.
// LOG_LEVEL and LOG_FORMAT set the logging section.
//
// # Usage
//
//	cfg, err := config.Load("paygate")
//	pc, err := cfg.Pay.ProviderConfig()
package config
