package features

import (
	"math"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/stoik/url-guard/internal/domain/trust"
)

var (
	specialCharPattern = regexp.MustCompile("[!#$%&*+=?^_`{|}~]")
	ipv4Pattern        = regexp.MustCompile(`\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}`)
)

const (
	consonants = "bcdfghjklmnpqrstvwxyz"
	vowels     = "aeiou"

	extremelyLongURL  = 150
	longPath          = 100
	maxDomainHyphens  = 2
	maxSubdomainLevel = 3
)

// lexicalFeatures computes every feature that depends only on the URL text
// and its parsed components
func lexicalFeatures(raw string, parsed ParsedURL, seg HostnameSegments, resolver *trust.Resolver) map[string]float64 {
	domain := seg.RegistrableDomain
	domainLower := strings.ToLower(domain)
	domainLen := utf8.RuneCountInString(domain)
	pathLen := utf8.RuneCountInString(parsed.Path)
	isIP := ipv4Pattern.MatchString(raw)
	hasPort := parsed.Port != 0

	f := map[string]float64{
		"url_length":                float64(utf8.RuneCountInString(raw)),
		"num_dots":                  float64(strings.Count(raw, ".")),
		"num_hyphens":               float64(strings.Count(raw, "-")),
		"num_at_symbols":            float64(strings.Count(raw, "@")),
		"has_https":                 boolFeature(strings.HasPrefix(raw, "https://")),
		"num_digits":                float64(countDigits(raw)),
		"special_characters_count":  float64(len(specialCharPattern.FindAllStringIndex(raw, -1))),
		"is_ip_in_url":              boolFeature(isIP),
		"num_subdomains":            float64(seg.SubdomainCount),
		"top_level_domain_length":   float64(utf8.RuneCountInString(tldOf(domain))),
		"num_slashes":               float64(strings.Count(raw, "/")),
		"num_underscores":           float64(strings.Count(raw, "_")),
		"num_question_marks":        float64(strings.Count(raw, "?")),
		"num_equals":                float64(strings.Count(raw, "=")),
		"suspicious_keywords_count": float64(resolver.SuspiciousKeywordHits(raw)),
		"domain_length":             float64(domainLen),
		"path_length":               float64(pathLen),
		"has_port":                  boolFeature(hasPort),

		"is_url_shortener":           boolFeature(resolver.IsURLShortener(domain)),
		"domain_entropy":             Entropy(domain),
		"has_suspicious_tld":         boolFeature(tldOf(domain) != "" && resolver.IsSuspiciousTLD(tldOf(domain))),
		"query_length":               float64(utf8.RuneCountInString(parsed.Query)),
		"num_parameters":             float64(parameterCount(parsed.Query)),
		"max_consecutive_consonants": float64(maxConsonantRun(domainLower)),
		"vowel_to_consonant_ratio":   vowelConsonantRatio(domainLower),

		"has_multiple_hyphens_in_domain": boolFeature(strings.Count(domain, "-") > maxDomainHyphens),
		"has_excessive_subdomains":       boolFeature(seg.SubdomainCount > maxSubdomainLevel),
		"url_entropy":                    Entropy(raw),
		"path_entropy":                   Entropy(parsed.Path),
		"has_ip_and_domain":              boolFeature(isIP && domain != ""),
		"has_port_and_ip":                boolFeature(isIP && hasPort),
		"has_at_symbol":                  boolFeature(strings.Contains(raw, "@")),
		"is_educational":                 boolFeature(resolver.HasEducationalSuffix(raw)),
		"is_government":                  boolFeature(resolver.ContainsGovernmentSuffix(domain)),
		"has_brand_keyword":              float64(resolver.BrandKeywordHits(domainLower)),
		"is_extremely_long":              boolFeature(utf8.RuneCountInString(raw) > extremelyLongURL),
		"has_long_path":                  boolFeature(pathLen > longPath),
	}

	if domainLen > 0 {
		f["digit_to_letter_ratio"] = float64(countDigits(domain)) / float64(domainLen)
		f["path_to_domain_ratio"] = float64(pathLen) / float64(domainLen)
	}

	return f
}

// Entropy returns the Shannon entropy of s in bits per character. The empty
// string has entropy 0.
//
// Characters are summed in first-appearance order so the result is
// bit-for-bit reproducible.
func Entropy(s string) float64 {
	if s == "" {
		return 0
	}

	counts := make(map[rune]int)
	order := make([]rune, 0, len(s))
	total := 0
	for _, r := range s {
		if counts[r] == 0 {
			order = append(order, r)
		}
		counts[r]++
		total++
	}

	var entropy float64
	for _, r := range order {
		p := float64(counts[r]) / float64(total)
		entropy -= p * math.Log2(p)
	}
	return entropy
}

// tldOf returns the last label of a dotted domain, or "" when it has no dot
func tldOf(domain string) string {
	i := strings.LastIndex(domain, ".")
	if i < 0 {
		return ""
	}
	return domain[i+1:]
}

func countDigits(s string) int {
	count := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			count++
		}
	}
	return count
}

func parameterCount(query string) int {
	if query == "" {
		return 0
	}
	return strings.Count(query, "&") + 1
}

func maxConsonantRun(s string) int {
	longest, current := 0, 0
	for _, r := range s {
		if strings.ContainsRune(consonants, r) {
			current++
			longest = max(longest, current)
		} else {
			current = 0
		}
	}
	return longest
}

func vowelConsonantRatio(s string) float64 {
	vowelCount, consonantCount := 0, 0
	for _, r := range s {
		switch {
		case strings.ContainsRune(vowels, r):
			vowelCount++
		case strings.ContainsRune(consonants, r):
			consonantCount++
		}
	}
	if consonantCount == 0 {
		return 0
	}
	return float64(vowelCount) / float64(consonantCount)
}
