package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrClassifierUnavailable is returned when no legitimacy probability can
	// be obtained. A verdict is never produced without one.
	ErrClassifierUnavailable = errors.New("classifier unavailable")

	// ErrInvalidProbability is returned when a classifier produces a value
	// outside [0, 1] or NaN.
	ErrInvalidProbability = errors.New("probability outside [0, 1]")
)

// Label is the final classification of a URL
type Label string

const (
	LabelLegitimate Label = "Legitimate"
	LabelPhishing   Label = "Phishing"
)

// OverrideReason records which deterministic rule forced the verdict, if any
type OverrideReason string

const (
	OverrideNone             OverrideReason = ""
	OverrideTrustedSubdomain OverrideReason = "trusted_subdomain"
	OverrideWhitelist        OverrideReason = "whitelist_override"
)

// Describe returns the human-readable line printed for an override
func (r OverrideReason) Describe() string {
	switch r {
	case OverrideTrustedSubdomain:
		return "Trusted subdomain detected (whitelisted)"
	case OverrideWhitelist:
		return "Exact whitelist domain match"
	default:
		return ""
	}
}

// Verdict is the final decision for one URL. It is never modified after
// the decision engine returns it.
type Verdict struct {
	Label       Label          `json:"prediction"`
	Probability float64        `json:"probability_legitimate"` // 0.0 to 1.0
	Confidence  float64        `json:"confidence"`             // 0.0 to 1.0
	Override    OverrideReason `json:"override,omitempty"`
}

// IsPhishing reports whether the verdict label is Phishing
func (v Verdict) IsPhishing() bool {
	return v.Label == LabelPhishing
}

// CertificateStatus is the outcome of a TLS certificate inspection
type CertificateStatus struct {
	Valid           bool `json:"valid"`
	DaysUntilExpiry int  `json:"days_until_expiry"`
}

// Explanation is the subset of raw signals surfaced to a human alongside the
// verdict
//
// The last group of fields is informational only: none of them feed the
// feature vector or the override rules.
type Explanation struct {
	IsWhitelisted          bool    `json:"is_whitelisted"`
	HasTrustedSubdomain    bool    `json:"has_trusted_subdomain"`
	IsSuspiciousSimilarity bool    `json:"is_suspicious_similarity"`
	MinDomainDistance      float64 `json:"min_domain_distance"`
	HasUnicode             bool    `json:"has_unicode"`
	LeetSpeakCount         int     `json:"leet_speak_count"`
	HasHTTPS               bool    `json:"has_https"`
	NumSubdomains          int     `json:"num_subdomains"`
	URLLength              int     `json:"url_length"`

	RegistrableDomain  string `json:"registrable_domain"`
	PublicSuffixDomain string `json:"public_suffix_domain,omitempty"`
	IsPunycode         bool   `json:"is_punycode"`
	UnicodeHostname    string `json:"unicode_hostname,omitempty"`
	ConfusableWith     string `json:"confusable_with,omitempty"`
	UserFlagged        bool   `json:"user_flagged"`
}

// Indicators renders the explanation as short human-readable markers
func (e Explanation) Indicators() []string {
	indicators := make([]string, 0)
	if e.HasTrustedSubdomain {
		indicators = append(indicators, "✓ trusted subdomain")
	}
	if e.IsWhitelisted {
		indicators = append(indicators, "✓ whitelisted domain")
	}
	if e.IsSuspiciousSimilarity {
		indicators = append(indicators, fmt.Sprintf("⚠ typosquat similarity (distance=%.3f)", e.MinDomainDistance))
	}
	if e.LeetSpeakCount > 0 {
		indicators = append(indicators, fmt.Sprintf("⚠ leet speak substitutions (%d)", e.LeetSpeakCount))
	}
	if !e.HasHTTPS {
		indicators = append(indicators, "⚠ missing HTTPS")
	}
	if e.NumSubdomains > 3 {
		indicators = append(indicators, fmt.Sprintf("⚠ many subdomains (%d)", e.NumSubdomains))
	}
	if e.ConfusableWith != "" {
		indicators = append(indicators, fmt.Sprintf("⚠ homoglyph of %s", e.ConfusableWith))
	}
	if e.UserFlagged {
		indicators = append(indicators, "⚠ flagged by user")
	}
	return indicators
}

// ScanResult is what a caller receives for one analysed URL
type ScanResult struct {
	ID          uuid.UUID   `json:"id"`
	URL         string      `json:"url"`
	Verdict     Verdict     `json:"verdict"`
	Explanation Explanation `json:"features"`
	ScannedAt   time.Time   `json:"scanned_at"`
}

// ScanRecord is a persisted scan history row
//
// Simplification: the full feature map is stored as JSON next to the
// verdict. A dedicated table per feature version would allow querying by
// feature, which nothing needs yet.
type ScanRecord struct {
	ID          uuid.UUID          `json:"id"`
	URL         string             `json:"url"` // normalized, see storage.NormalizeURL
	Label       Label              `json:"prediction"`
	Probability float64            `json:"probability"`
	Confidence  float64            `json:"confidence"`
	Override    OverrideReason     `json:"override,omitempty"`
	FeatureSet  string             `json:"feature_set"`
	Features    map[string]float64 `json:"features"`
	ScannedAt   time.Time          `json:"scanned_at"`
}

// FlaggedURL is a URL a user explicitly reported as phishing
type FlaggedURL struct {
	URL       string    `json:"url"`
	Reason    string    `json:"reason,omitempty"`
	FlaggedAt time.Time `json:"flagged_at"`
}
