package storage

import (
	"net/url"
	"strings"
)

// NormalizeURL canonicalizes a URL for storage and flag matching
//
// Scheme defaults to http, the host is lowercased, an empty path becomes "/"
// and a trailing slash is dropped except on the root. Unparseable input is
// returned unchanged.
func NormalizeURL(raw string) string {
	if raw == "" {
		return ""
	}

	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	scheme := u.Scheme
	if scheme == "" {
		scheme = "http"
	}

	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	if len(path) > 1 && strings.HasSuffix(path, "/") {
		path = path[:len(path)-1]
	}

	query := ""
	if u.RawQuery != "" {
		query = "?" + u.RawQuery
	}

	return scheme + "://" + strings.ToLower(u.Host) + path + query
}
