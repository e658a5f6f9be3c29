// Package locale lists the locales the pay widget supports and resolves the
// locale a host should render it in.
//
// Resolution order is the configured locale, then the host's own locale,
// then the default (nl_NL). Codes are normalized through
// golang.org/x/text/language, so "de-DE", "de_de" and "de_DE" are the same
// locale.
package locale
