package features

import (
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/net/idna"
	"golang.org/x/net/publicsuffix"
)

// ParsedURL holds the structural components of a URL
//
// Valid is false when the input could not be parsed. In that case every other
// field is zero and downstream stages treat the URL as having no hostname,
// path, query or port.
type ParsedURL struct {
	Scheme   string
	Hostname string // lowercased, brackets stripped from IPv6 literals
	Path     string
	Query    string
	Port     int // 0 when absent
	Valid    bool
}

// Decompose parses raw into its components. It never fails: unparseable
// input yields a zero ParsedURL.
func Decompose(raw string) ParsedURL {
	u, err := url.Parse(raw)
	if err != nil {
		return ParsedURL{}
	}

	parsed := ParsedURL{
		Scheme:   strings.ToLower(u.Scheme),
		Hostname: strings.ToLower(u.Hostname()),
		Path:     rawPath(raw, u),
		Query:    u.RawQuery,
		Valid:    true,
	}

	if p := u.Port(); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil || port > 65535 {
			return ParsedURL{}
		}
		parsed.Port = port
	}

	return parsed
}

// rawPath returns the path exactly as it appears in raw, percent-escapes
// included. net/url decodes Path and only keeps RawPath when the decoded form
// would re-encode differently, so neither matches the input text for "%20".
func rawPath(raw string, u *url.URL) string {
	s := raw
	if u.Scheme != "" {
		s = s[len(u.Scheme)+1:]
	}
	if strings.HasPrefix(s, "//") {
		i := strings.IndexAny(s[2:], "/?#")
		if i < 0 {
			return ""
		}
		s = s[2+i:]
	}
	if i := strings.IndexAny(s, "?#"); i >= 0 {
		s = s[:i]
	}
	return s
}

// HostnameSegments splits a hostname into subdomain and registrable parts
type HostnameSegments struct {
	Subdomain         string
	HasSubdomain      bool
	RegistrableDomain string
	SubdomainCount    int
}

// Segment splits hostname on dots. The last two labels form the registrable
// domain and every label before them counts as a subdomain level.
//
// Multi-label public suffixes such as co.uk are counted as subdomain levels
// too; see PublicSuffixDomain for the PSL-aware answer.
func Segment(hostname string) HostnameSegments {
	if hostname == "" {
		return HostnameSegments{}
	}

	parts := strings.Split(hostname, ".")
	if len(parts) <= 2 {
		return HostnameSegments{RegistrableDomain: hostname}
	}

	return HostnameSegments{
		Subdomain:         strings.Join(parts[:len(parts)-2], "."),
		HasSubdomain:      true,
		RegistrableDomain: strings.Join(parts[len(parts)-2:], "."),
		SubdomainCount:    len(parts) - 2,
	}
}

// PublicSuffixDomain returns the eTLD+1 of hostname according to the public
// suffix list, or "" for IP literals and hosts the list cannot classify
func PublicSuffixDomain(hostname string) string {
	if hostname == "" {
		return ""
	}
	host := hostname
	if ascii, err := idna.Lookup.ToASCII(hostname); err == nil && ascii != "" {
		host = ascii
	}
	etld1, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return ""
	}
	return strings.ToLower(etld1)
}
