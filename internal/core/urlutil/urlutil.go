// SPDX-License-Identifier: MIT

package urlutil

import (
	"net/url"
	"strings"
)

// SanitizeURL removes user info and query from a URL string for safe logging.
func SanitizeURL(rawURL string) string {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return "invalid-url-redacted"
	}
	parsedURL.User = nil
	parsedURL.RawQuery = ""
	return parsedURL.String()
}

// ResolveAgainst makes ref absolute using base as its manifest URL.
// Relative references resolve against the directory of base, i.e.
// everything up to and including the last '/'. Absolute refs pass
// through unchanged.
func ResolveAgainst(base, ref string) string {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	idx := strings.LastIndex(base, "/")
	if idx == -1 {
		return ref
	}
	return base[:idx+1] + ref
}
