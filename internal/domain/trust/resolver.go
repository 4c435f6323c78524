package trust

import (
	"strings"
	"unicode"
)

// Resolver answers trust questions against a frozen copy of Tables
//
// A Resolver holds only read-only maps built in NewResolver, so a single
// instance can be shared by any number of goroutines without locking.
type Resolver struct {
	legitimate   map[string]struct{}
	entries      []string // legitimate domains in table order, deduplicated
	trustedSubs  map[string]map[string]struct{}
	eduSuffixes  []string
	govSuffix    string
	shorteners   map[string]struct{}
	suspiciousTL map[string]struct{}
	keywords     []string
	brands       []string
	skeletons    map[string]string // confusables skeleton -> legitimate entry
}

// NewResolver freezes tables into lookup structures
func NewResolver(tables Tables) *Resolver {
	r := &Resolver{
		legitimate:   make(map[string]struct{}, len(tables.LegitimateDomains)),
		entries:      make([]string, 0, len(tables.LegitimateDomains)),
		trustedSubs:  make(map[string]map[string]struct{}, len(tables.TrustedSubdomains)),
		eduSuffixes:  lowerAll(tables.EducationalSuffixes),
		govSuffix:    strings.ToLower(tables.GovernmentSuffix),
		shorteners:   toSet(tables.URLShorteners),
		suspiciousTL: toSet(tables.SuspiciousTLDs),
		keywords:     lowerAll(tables.SuspiciousKeywords),
		brands:       lowerAll(tables.BrandKeywords),
		skeletons:    make(map[string]string, len(tables.LegitimateDomains)),
	}

	for _, entry := range tables.LegitimateDomains {
		entry = strings.ToLower(strings.TrimSpace(entry))
		if entry == "" {
			continue
		}
		if _, seen := r.legitimate[entry]; seen {
			continue
		}
		r.legitimate[entry] = struct{}{}
		r.entries = append(r.entries, entry)

		skeleton := Skeleton(entry)
		if _, taken := r.skeletons[skeleton]; !taken {
			r.skeletons[skeleton] = entry
		}
	}

	for domain, labels := range tables.TrustedSubdomains {
		r.trustedSubs[strings.ToLower(domain)] = toSet(labels)
	}

	return r
}

// LegitimateDomains returns the whitelist in table order. The returned slice
// must not be modified.
func (r *Resolver) LegitimateDomains() []string {
	return r.entries
}

// IsWhitelisted reports whether a registrable domain is trusted
//
// An empty subdomain means "no subdomain". Resolution order:
//  1. exact membership after lowercasing and stripping a leading "www."
//  2. dot-suffix of a whitelist entry; a subdomain must then belong to the
//     entry's trusted-subdomain set. Entries without a registered set accept
//     any subdomain.
//  3. educational suffix
//  4. government suffix, as a dot-suffix or an inner ".gov." label
func (r *Resolver) IsWhitelisted(domain, subdomain string) bool {
	clean := Normalize(domain)
	if clean == "" {
		return false
	}

	if _, ok := r.legitimate[clean]; ok {
		return true
	}

	for _, entry := range r.entries {
		if clean != entry && !strings.HasSuffix(clean, "."+entry) {
			continue
		}
		if subdomain == "" {
			return true
		}
		trusted, registered := r.trustedSubs[entry]
		if !registered {
			return true
		}
		if _, ok := trusted[strings.ToLower(subdomain)]; ok {
			return true
		}
	}

	for _, suffix := range r.eduSuffixes {
		if strings.HasSuffix(clean, suffix) {
			return true
		}
	}

	return r.isGovernmentDomain(clean)
}

// HasTrustedSubdomain reports whether subdomain is registered as trusted for
// domain. This is a strictly stronger signal than IsWhitelisted.
func (r *Resolver) HasTrustedSubdomain(domain, subdomain string) bool {
	if subdomain == "" {
		return false
	}
	trusted, ok := r.trustedSubs[strings.ToLower(domain)]
	if !ok {
		return false
	}
	_, ok = trusted[strings.ToLower(subdomain)]
	return ok
}

// IsURLShortener reports whether domain is a known link shortener
func (r *Resolver) IsURLShortener(domain string) bool {
	_, ok := r.shorteners[Normalize(domain)]
	return ok
}

// IsSuspiciousTLD reports whether tld (without the dot) is on the abuse list
func (r *Resolver) IsSuspiciousTLD(tld string) bool {
	_, ok := r.suspiciousTL[strings.ToLower(tld)]
	return ok
}

// SuspiciousKeywordHits counts how many distinct suspicious keywords occur in text
func (r *Resolver) SuspiciousKeywordHits(text string) int {
	return countContained(strings.ToLower(text), r.keywords)
}

// BrandKeywordHits counts how many distinct brand keywords occur in text
func (r *Resolver) BrandKeywordHits(text string) int {
	return countContained(strings.ToLower(text), r.brands)
}

// HasEducationalSuffix reports whether s ends with an educational suffix
func (r *Resolver) HasEducationalSuffix(s string) bool {
	for _, suffix := range r.eduSuffixes {
		if strings.HasSuffix(s, suffix) {
			return true
		}
	}
	return false
}

// ContainsGovernmentSuffix reports whether domain contains the government suffix anywhere
func (r *Resolver) ContainsGovernmentSuffix(domain string) bool {
	return r.govSuffix != "" && strings.Contains(strings.ToLower(domain), r.govSuffix)
}

// ConfusableWith returns the whitelisted domain that domain impersonates
// through Unicode homoglyphs, or "" when there is none
//
// Only hosts carrying non-ASCII characters are considered; ASCII lookalikes
// such as digit substitutions are the similarity check's job. A domain that
// is itself whitelisted never impersonates anything.
func (r *Resolver) ConfusableWith(domain string) string {
	clean := Normalize(domain)
	if clean == "" {
		return ""
	}
	if _, ok := r.legitimate[clean]; ok {
		return ""
	}
	if !hasNonASCII(clean) {
		return ""
	}
	return r.skeletons[Skeleton(clean)]
}

func (r *Resolver) isGovernmentDomain(clean string) bool {
	if r.govSuffix == "" {
		return false
	}
	bare := strings.TrimPrefix(r.govSuffix, ".")
	return clean == bare ||
		strings.HasSuffix(clean, r.govSuffix) ||
		strings.Contains(clean, r.govSuffix+".")
}

// Normalize lowercases a domain and strips a leading "www."
func Normalize(domain string) string {
	return strings.TrimPrefix(strings.ToLower(domain), "www.")
}

func hasNonASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > unicode.MaxASCII {
			return true
		}
	}
	return false
}

func countContained(text string, keywords []string) int {
	count := 0
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			count++
		}
	}
	return count
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[strings.ToLower(strings.TrimSpace(v))] = struct{}{}
	}
	return set
}

func lowerAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, strings.ToLower(v))
	}
	return out
}
