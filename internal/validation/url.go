package validation

import (
	"fmt"
	"net/url"
	"strings"
)

// BaseURLValidator validates API base URLs taken from configuration.
type BaseURLValidator struct {
	// AllowPlainHTTP permits http:// endpoints, useful for local mirrors
	// and tests.
	AllowPlainHTTP bool
	// MaxLength is the maximum allowed URL length
	MaxLength int
}

// NewBaseURLValidator creates a validator with secure defaults.
func NewBaseURLValidator() *BaseURLValidator {
	return &BaseURLValidator{
		AllowPlainHTTP: false,
		MaxLength:      2048,
	}
}

// NewPermissiveBaseURLValidator creates a validator that allows local development.
func NewPermissiveBaseURLValidator() *BaseURLValidator {
	return &BaseURLValidator{
		AllowPlainHTTP: true,
		MaxLength:      2048,
	}
}

// ValidateAndNormalize validates a base URL and returns it without a
// trailing slash.
func (v *BaseURLValidator) ValidateAndNormalize(input string) (string, error) {
	input = strings.TrimSpace(input)

	if input == "" {
		return "", fmt.Errorf("URL cannot be empty")
	}
	if len(input) > v.MaxLength {
		return "", fmt.Errorf("URL too long (max %d characters)", v.MaxLength)
	}

	u, err := url.Parse(input)
	if err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}

	switch u.Scheme {
	case "https":
	case "http":
		if !v.AllowPlainHTTP {
			return "", fmt.Errorf("plain http URLs are not allowed: %s", input)
		}
	default:
		return "", fmt.Errorf("unsupported URL scheme %q", u.Scheme)
	}

	if u.Host == "" {
		return "", fmt.Errorf("URL has no host: %s", input)
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return "", fmt.Errorf("base URL must not carry a query or fragment: %s", input)
	}

	return strings.TrimRight(u.String(), "/"), nil
}
