package locale

import (
	"strings"

	"golang.org/x/text/language"
)

// Locale is a widget locale.
type Locale struct {
	// Code is the widget's locale code, e.g. "nl_NL".
	Code string `json:"locale"`
	// Title is the human-readable name.
	Title string `json:"title"`
	// Default marks the fallback locale.
	Default bool `json:"default"`
}

// Tag returns the BCP 47 tag of the locale.
func (l Locale) Tag() language.Tag {
	return language.Make(strings.ReplaceAll(l.Code, "_", "-"))
}

var supported = []Locale{
	{Code: "de_DE", Title: "German (Deutsch)"},
	{Code: "nl_NL", Title: "Dutch (Nederlands)", Default: true},
}

// Supported returns the supported locales.
func Supported() []Locale {
	out := make([]Locale, len(supported))
	copy(out, supported)
	return out
}

// Codes returns the codes of the supported locales.
func Codes() []string {
	codes := make([]string, len(supported))
	for i, l := range supported {
		codes[i] = l.Code
	}
	return codes
}

// Default returns the fallback locale.
func Default() Locale {
	for _, l := range supported {
		if l.Default {
			return l
		}
	}
	return supported[0]
}

// Lookup finds the supported locale matching code. The match is exact on
// language and region after normalization; "de" alone does not match "de_DE".
func Lookup(code string) (Locale, bool) {
	want, ok := normalize(code)
	if !ok {
		return Locale{}, false
	}
	for _, l := range supported {
		if have, _ := normalize(l.Code); have == want {
			return l, true
		}
	}
	return Locale{}, false
}

// Resolve picks the widget locale: configured if supported, else host if
// supported, else Default.
func Resolve(configured, host string) Locale {
	if l, ok := Lookup(configured); ok {
		return l
	}
	if l, ok := Lookup(host); ok {
		return l
	}
	return Default()
}

func normalize(code string) (string, bool) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", false
	}
	tag, err := language.Parse(strings.ReplaceAll(code, "_", "-"))
	if err != nil {
		return "", false
	}
	return tag.String(), true
}
