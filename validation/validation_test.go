package validation

import (
	"strings"
	"testing"

	"github.com/kbukum/paygate/errors"
)

type sampleSettings struct {
	ProviderUID string `mapstructure:"provider_uid" validate:"notblank"`
	APIURL      string `mapstructure:"api_url" validate:"omitempty,url"`
	ButtonType  string `mapstructure:"button_type" validate:"omitempty,oneof=item subscription"`
}

func TestValidatorOptionalURL(t *testing.T) {
	tests := []struct {
		value string
		ok    bool
	}{
		{"", true},
		{"https://pay.example.com/api/", true},
		{"http://localhost:8080", true},
		{"ftp://example.com", false},
		{"not a url", false},
		{"/relative/path", false},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			v := New().OptionalURL("api_url", tt.value)
			if v.HasErrors() == tt.ok {
				t.Errorf("OptionalURL(%q) errors=%v, want ok=%v", tt.value, v.Errors(), tt.ok)
			}
		})
	}
}

func TestValidatorOneOf(t *testing.T) {
	if New().OneOf("locale", "nl_NL", []string{"de_DE", "nl_NL"}).HasErrors() {
		t.Error("expected nl_NL to be accepted")
	}
	v := New().OneOf("locale", "fr_FR", []string{"de_DE", "nl_NL"})
	if !v.HasErrors() {
		t.Fatal("expected fr_FR to be rejected")
	}
	if !strings.Contains(v.Errors()[0].Message, "de_DE, nl_NL") {
		t.Errorf("unexpected message %q", v.Errors()[0].Message)
	}
}

func TestValidatorValidate(t *testing.T) {
	if New().Validate() != nil {
		t.Error("expected nil for no errors")
	}

	err := New().OptionalURL("api_url", "localhost").OneOf("button_type", "huge", []string{"item"}).Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Code != errors.ErrCodeConfiguration {
		t.Errorf("expected CONFIGURATION, got %s", err.Code)
	}
	if !strings.Contains(err.Message, "api_url: must be a valid URL; button_type: must be one of: item") {
		t.Errorf("unexpected message %q", err.Message)
	}
	if fields, ok := err.Details["fields"].([]FieldError); !ok || len(fields) != 2 {
		t.Errorf("expected two field errors in details, got %v", err.Details["fields"])
	}
}

func TestStructValid(t *testing.T) {
	s := sampleSettings{ProviderUID: "acme", APIURL: "https://pay.example.com/api/", ButtonType: "item"}
	if fields := Struct(s); fields != nil {
		t.Errorf("expected valid struct, got %v", fields)
	}
	if err := ValidateStruct(s); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestStructInvalid(t *testing.T) {
	fields := Struct(sampleSettings{ProviderUID: "  ", APIURL: "nope", ButtonType: "bundle"})
	if len(fields) != 3 {
		t.Fatalf("expected 3 field errors, got %v", fields)
	}
	want := map[string]string{
		"provider_uid": "is required",
		"api_url":      "must be a valid URL",
		"button_type":  "must be one of: item subscription",
	}
	for _, fe := range fields {
		if want[fe.Field] != fe.Message {
			t.Errorf("field %s: got %q, want %q", fe.Field, fe.Message, want[fe.Field])
		}
	}

	err := ValidateStruct(sampleSettings{})
	if !errors.IsConfiguration(err) {
		t.Errorf("expected configuration error, got %v", err)
	}
}

func TestToSnakeCase(t *testing.T) {
	if got := toSnakeCase("ProviderUID"); got != "provider_u_i_d" {
		t.Errorf("unexpected %q", got)
	}
	if got := toSnakeCase("apiSecret"); got != "api_secret" {
		t.Errorf("unexpected %q", got)
	}
}
