// Package validation provides input validation for paygate configuration and
// outbound payloads.
//
// It supports both struct tag validation (using the validator library) and
// programmatic validation with error collection.
//
// # Struct Tag Validation
//
//	type Settings struct {
//	    ProviderUID string `mapstructure:"provider_uid" validate:"required"`
//	}
//	fields := validation.Struct(settings)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.OptionalURL("api_url", s.APIURL)
//	err := v.Validate()
package validation
