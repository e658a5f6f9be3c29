package token

import (
	"math"
	"strconv"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// Token subjects.
const (
	SubjectItem             = "item"
	SubjectSubscription     = "subscription"
	SubjectCheckCredentials = "check_credentials"
)

// Keys of the data payload.
const (
	KeyForeignUID   = "foreign_uid"
	KeyItemUID      = "item_uid"
	KeyAcquired     = "acquired"
	KeySubscription = "subscription"
	KeyProviderUID  = "provider_uid"
	KeyNonce        = "nonce"
	KeyTitle        = "title"
	KeyDescription  = "description"
	KeyWords        = "words"
	KeyURL          = "url"
)

// Claims are the registered claims plus the subject specific data payload.
type Claims struct {
	gojwt.RegisteredClaims
	Data Data `json:"data,omitempty"`
}

// Data is the free-form payload of a token. Values decoded from JSON keep
// their JSON types: numbers are float64, booleans are bool.
type Data map[string]any

// GetString returns the value at key when it is a non-empty string.
func (d Data) GetString(key string) (string, bool) {
	s, ok := d[key].(string)
	return s, ok && s != ""
}

// IsTrue reports whether the value at key is the boolean true. Truthy strings
// and numbers do not count.
func (d Data) IsTrue(key string) bool {
	b, ok := d[key].(bool)
	return ok && b
}

// maxExactID bounds numeric identifiers to the integers a float64 holds
// exactly.
const maxExactID = 1 << 53

// ID returns the value at key as an identifier. Strings are returned as-is,
// integral numbers up to 2^53 in magnitude are rendered without a fractional
// part.
func (d Data) ID(key string) (string, bool) {
	switch v := d[key].(type) {
	case string:
		return v, v != ""
	case float64:
		if v != math.Trunc(v) || math.Abs(v) > maxExactID {
			return "", false
		}
		return strconv.FormatInt(int64(v), 10), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	default:
		return "", false
	}
}

// Metadata describes an item in an outbound item token. Zero fields are
// left out of the payload.
type Metadata struct {
	Title       string `json:"title,omitempty" mapstructure:"title"`
	Description string `json:"description,omitempty" mapstructure:"description"`
	Words       int    `json:"words,omitempty" mapstructure:"words"`
	URL         string `json:"url,omitempty" mapstructure:"url"`
}

// merge copies the non-zero metadata fields into d.
func (m Metadata) merge(d Data) {
	if m.Title != "" {
		d[KeyTitle] = m.Title
	}
	if m.Description != "" {
		d[KeyDescription] = m.Description
	}
	if m.Words > 0 {
		d[KeyWords] = m.Words
	}
	if m.URL != "" {
		d[KeyURL] = m.URL
	}
}
