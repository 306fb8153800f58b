// Package validate holds the input checks that gate a shorten request
// before any network call is made.
package validate

import (
	"net/url"
	"strconv"
	"strings"
)

// DefaultValidityMinutes is used when the validity field is left empty.
const DefaultValidityMinutes = 30

// IsValidHTTPURL reports whether raw parses as an absolute URL with an
// http or https scheme and a non-empty host. Malformed input is a plain
// false, never an error.
func IsValidHTTPURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}

	return u.Host != ""
}

// ResolveValidity parses the validity field. Empty or whitespace-only
// input resolves to DefaultValidityMinutes. Anything else must be a
// whole base-10 integer strictly greater than zero; fractional,
// non-numeric, zero, or negative input reports ok=false.
func ResolveValidity(raw string) (minutes int, ok bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return DefaultValidityMinutes, true
	}

	n, err := strconv.Atoi(trimmed)
	if err != nil || n <= 0 {
		return 0, false
	}

	return n, true
}
