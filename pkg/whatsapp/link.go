// Package whatsapp builds click-to-chat links. Nothing is sent from the
// server: opening the link is left to whoever receives it.
package whatsapp

import (
	"net/url"
	"strings"
)

// DefaultBaseURL is the public click-to-chat endpoint.
const DefaultBaseURL = "https://wa.me"

// LinkBuilder turns a phone number and a message into a chat URL.
type LinkBuilder struct {
	BaseURL string
	// CountryCode is prefixed to bare 10-digit numbers. Empty disables it.
	CountryCode string
}

// NewLinkBuilder returns a builder for baseURL, falling back to DefaultBaseURL.
func NewLinkBuilder(baseURL, countryCode string) *LinkBuilder {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &LinkBuilder{
		BaseURL:     strings.TrimRight(baseURL, "/"),
		CountryCode: countryCode,
	}
}

// ChatURL returns <base>/<digits>?text=<escaped message>.
func (b *LinkBuilder) ChatURL(phone, message string) string {
	return b.BaseURL + "/" + b.NormalizePhone(phone) + "?text=" + EscapeText(message)
}

// NormalizePhone keeps only digits and applies the country code to
// 10-digit local numbers.
func (b *LinkBuilder) NormalizePhone(phone string) string {
	var sb strings.Builder
	for _, c := range phone {
		if c >= '0' && c <= '9' {
			sb.WriteRune(c)
		}
	}
	cleaned := sb.String()

	if b.CountryCode != "" && len(cleaned) == 10 {
		return b.CountryCode + cleaned
	}
	return cleaned
}

// componentUnescaper undoes url.QueryEscape where encodeURIComponent leaves
// the character alone. Spaces become %20 rather than '+', which some chat
// clients render literally.
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EscapeText percent-encodes s the way encodeURIComponent does.
func EscapeText(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}
