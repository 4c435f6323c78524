package features

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stoik/url-guard/internal/domain"
	"github.com/stoik/url-guard/internal/domain/trust"
	"github.com/stoik/url-guard/internal/ports"
)

type fakeAgeLookup struct {
	days  int
	calls atomic.Int32
}

func (f *fakeAgeLookup) DomainAgeDays(_ context.Context, _ string) int {
	f.calls.Add(1)
	return f.days
}

type fakeCertChecker struct {
	status domain.CertificateStatus
	calls  atomic.Int32
}

func (f *fakeCertChecker) CheckCertificate(_ context.Context, _ string) domain.CertificateStatus {
	f.calls.Add(1)
	return f.status
}

func newTestExtractor(age ports.DomainAgeLookup, certs ports.CertificateChecker) *Extractor {
	logger, _ := test.NewNullLogger()
	return NewExtractor(trust.NewResolver(trust.DefaultTables()), age, certs, logger)
}

func TestExtractor_EmptyURL(t *testing.T) {
	extractor := newTestExtractor(nil, nil)

	ext := extractor.Extract(context.Background(), "", Options{})

	require.Len(t, ext.Vector, len(FeatureNames))
	nonZero := map[string]float64{"min_domain_distance": 1, "domain_age_days": -1}
	for _, name := range FeatureNames {
		assert.Equal(t, nonZero[name], ext.Vector.Get(name), name)
	}
	assert.False(t, ext.IsWhitelisted)
	assert.False(t, ext.IsSuspiciousSimilarity)
}

func TestExtractor_Deterministic(t *testing.T) {
	extractor := newTestExtractor(nil, nil)
	url := "https://secure-paypa1.com.verify.example.tk/login?user=a&next=%2Fhome"

	first := extractor.Extract(context.Background(), url, Options{})
	for range 10 {
		again := extractor.Extract(context.Background(), url, Options{})
		assert.Equal(t, first.Vector, again.Vector)
	}
}

func TestExtractor_Scenarios(t *testing.T) {
	extractor := newTestExtractor(nil, nil)

	tests := []struct {
		name  string
		url   string
		check func(t *testing.T, ext Extraction)
	}{
		{
			name: "Trusted subdomain of a whitelisted brand",
			url:  "https://accounts.google.com/signin",
			check: func(t *testing.T, ext Extraction) {
				assert.True(t, ext.HasTrustedSubdomain)
				assert.True(t, ext.IsWhitelisted)
				assert.Equal(t, 0.0, ext.MinDistance)
				assert.False(t, ext.IsSuspiciousSimilarity)
				assert.Equal(t, 1.0, ext.Vector.Get("has_https"))
				assert.Equal(t, 1.0, ext.Vector.Get("num_subdomains"))
				assert.Equal(t, 1.0, ext.Vector.Get("allows_long_urls"))
				assert.Equal(t, "google.com", ext.Explanation.RegistrableDomain)
			},
		},
		{
			name: "Typosquatted brand",
			url:  "http://g00gle.com/",
			check: func(t *testing.T, ext Extraction) {
				assert.False(t, ext.IsWhitelisted)
				assert.True(t, ext.IsSuspiciousSimilarity)
				assert.Greater(t, ext.MinDistance, 0.0)
				assert.Less(t, ext.MinDistance, 0.3)
				assert.Equal(t, 2.0, ext.Vector.Get("leet_speak_count"))
				assert.Equal(t, 0.0, ext.Vector.Get("has_https"))
				assert.Equal(t, 2, ext.Explanation.LeetSpeakCount)
			},
		},
		{
			name: "Deeply nested phishing host",
			url:  "http://paypal.com.secure.login.verify-account.update-info.ru/signin",
			check: func(t *testing.T, ext Extraction) {
				assert.Equal(t, "update-info.ru", ext.Segments.RegistrableDomain)
				assert.Equal(t, 5.0, ext.Vector.Get("num_subdomains"))
				assert.Equal(t, 1.0, ext.Vector.Get("has_excessive_subdomains"))
				assert.GreaterOrEqual(t, ext.Vector.Get("suspicious_keywords_count"), 2.0)
				assert.Equal(t, 14.0, ext.Vector.Get("domain_length"))
				assert.False(t, ext.IsWhitelisted)
			},
		},
		{
			name: "Brand buried under an unrelated registrable domain",
			url:  "http://paypal.com.login.verify-session.account-update.ru",
			check: func(t *testing.T, ext Extraction) {
				assert.Equal(t, "account-update.ru", ext.Segments.RegistrableDomain)
				assert.Equal(t, 4.0, ext.Vector.Get("num_subdomains"))
				assert.Equal(t, 1.0, ext.Vector.Get("has_excessive_subdomains"))
				assert.Equal(t, 4.0, ext.Vector.Get("suspicious_keywords_count"))
				assert.InDelta(t, 12.0/17.0, ext.MinDistance, 1e-12)
				assert.False(t, ext.IsWhitelisted)
				assert.False(t, ext.HasTrustedSubdomain)
				assert.False(t, ext.IsSuspiciousSimilarity)
			},
		},
		{
			name: "Cyrillic homograph",
			url:  "http://аpple.com/",
			check: func(t *testing.T, ext Extraction) {
				assert.Equal(t, 1.0, ext.Vector.Get("has_unicode"))
				assert.Equal(t, 1.0, ext.Vector.Get("has_cyrillic"))
				assert.Equal(t, 1.0, ext.Vector.Get("has_mixed_scripts"))
				assert.True(t, ext.Explanation.HasUnicode)
				assert.Equal(t, "apple.com", ext.Explanation.ConfusableWith)
				assert.False(t, ext.IsWhitelisted)
				assert.InDelta(t, 1.0/9.0, ext.MinDistance, 1e-12)
				assert.True(t, ext.IsSuspiciousSimilarity)
			},
		},
		{
			name: "IP literal with port",
			url:  "http://192.168.1.10:8080/admin",
			check: func(t *testing.T, ext Extraction) {
				assert.Equal(t, 1.0, ext.Vector.Get("is_ip_in_url"))
				assert.Equal(t, 1.0, ext.Vector.Get("has_port"))
				assert.Equal(t, 1.0, ext.Vector.Get("has_port_and_ip"))
				assert.Equal(t, 1.0, ext.Vector.Get("has_ip_and_domain"))
			},
		},
		{
			name: "URL shortener",
			url:  "https://bit.ly/abc",
			check: func(t *testing.T, ext Extraction) {
				assert.Equal(t, 1.0, ext.Vector.Get("is_url_shortener"))
				assert.Equal(t, 0.0, ext.Vector.Get("has_suspicious_tld"))
			},
		},
		{
			name: "Suspicious TLD",
			url:  "http://free-prizes.tk",
			check: func(t *testing.T, ext Extraction) {
				assert.Equal(t, 1.0, ext.Vector.Get("has_suspicious_tld"))
				assert.Equal(t, 2.0, ext.Vector.Get("top_level_domain_length"))
			},
		},
		{
			name: "Government and educational domains",
			url:  "https://www.nasa.gov",
			check: func(t *testing.T, ext Extraction) {
				assert.True(t, ext.IsWhitelisted)
				assert.Equal(t, 1.0, ext.Vector.Get("is_government"))
				assert.Equal(t, "nasa.gov", ext.Explanation.PublicSuffixDomain)
			},
		},
		{
			name: "Educational suffix is read from the raw URL",
			url:  "http://mit.edu",
			check: func(t *testing.T, ext Extraction) {
				assert.Equal(t, 1.0, ext.Vector.Get("is_educational"))
				assert.True(t, ext.IsWhitelisted)
			},
		},
		{
			name: "Invalid port fails open",
			url:  "http://example.com:99999/path",
			check: func(t *testing.T, ext Extraction) {
				assert.False(t, ext.Parsed.Valid)
				assert.Equal(t, 0.0, ext.Vector.Get("domain_length"))
				assert.Equal(t, 1.0, ext.Vector.Get("min_domain_distance"))
				assert.Greater(t, ext.Vector.Get("url_length"), 0.0)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ext := extractor.Extract(context.Background(), tt.url, Options{})
			require.Len(t, ext.Vector, len(FeatureNames))
			tt.check(t, ext)
		})
	}
}

func TestExtractor_ExternalSignals(t *testing.T) {
	tests := []struct {
		name          string
		url           string
		opts          Options
		ageDays       int
		cert          domain.CertificateStatus
		expectAgeCall bool
		expectTLSCall bool
		expectAge     float64
		expectNew     float64
		expectVeryNew float64
		expectSSL     float64
		expectSSLDays float64
	}{
		{
			name:      "Disabled by default",
			url:       "https://unknown-shop.com",
			opts:      Options{},
			ageDays:   10,
			cert:      domain.CertificateStatus{Valid: true, DaysUntilExpiry: 60},
			expectAge: -1,
		},
		{
			name:          "Young domain with valid certificate",
			url:           "https://unknown-shop.com",
			opts:          Options{EnableDomainAge: true, EnableTLSCheck: true},
			ageDays:       10,
			cert:          domain.CertificateStatus{Valid: true, DaysUntilExpiry: 60},
			expectAgeCall: true,
			expectTLSCall: true,
			expectAge:     10,
			expectNew:     1,
			expectVeryNew: 1,
			expectSSL:     1,
			expectSSLDays: 60,
		},
		{
			name:          "Established domain",
			url:           "https://unknown-shop.com",
			opts:          Options{EnableDomainAge: true},
			ageDays:       100,
			expectAgeCall: true,
			expectAge:     100,
			expectNew:     1,
		},
		{
			name:          "Lookup failure",
			url:           "http://unknown-shop.com",
			opts:          Options{EnableDomainAge: true},
			ageDays:       -1,
			expectAgeCall: true,
			expectAge:     -1,
		},
		{
			name:          "Whitelisted domain skips age lookup",
			url:           "https://google.com",
			opts:          Options{EnableDomainAge: true, EnableTLSCheck: true},
			ageDays:       10,
			cert:          domain.CertificateStatus{Valid: true, DaysUntilExpiry: 30},
			expectTLSCall: true,
			expectAge:     -1,
			expectSSL:     1,
			expectSSLDays: 30,
		},
		{
			name:      "Plain HTTP skips TLS check",
			url:       "http://unknown-shop.com",
			opts:      Options{EnableTLSCheck: true},
			cert:      domain.CertificateStatus{Valid: true, DaysUntilExpiry: 30},
			expectAge: -1,
		},
		{
			name:          "Invalid certificate reports no expiry",
			url:           "https://unknown-shop.com",
			opts:          Options{EnableTLSCheck: true},
			cert:          domain.CertificateStatus{Valid: false, DaysUntilExpiry: 12},
			expectTLSCall: true,
			expectAge:     -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			age := &fakeAgeLookup{days: tt.ageDays}
			certs := &fakeCertChecker{status: tt.cert}
			extractor := newTestExtractor(age, certs)

			ext := extractor.Extract(context.Background(), tt.url, tt.opts)

			assert.Equal(t, tt.expectAgeCall, age.calls.Load() == 1)
			assert.Equal(t, tt.expectTLSCall, certs.calls.Load() == 1)
			assert.Equal(t, tt.expectAge, ext.Vector.Get("domain_age_days"))
			assert.Equal(t, tt.expectNew, ext.Vector.Get("is_new_domain"))
			assert.Equal(t, tt.expectVeryNew, ext.Vector.Get("is_very_new_domain"))
			assert.Equal(t, tt.expectSSL, ext.Vector.Get("has_valid_ssl"))
			assert.Equal(t, tt.expectSSLDays, ext.Vector.Get("ssl_days_until_expiry"))
		})
	}
}

func TestExtractor_NilAdaptersDisableSignals(t *testing.T) {
	extractor := newTestExtractor(nil, nil)

	ext := extractor.Extract(context.Background(), "https://unknown-shop.com",
		Options{EnableDomainAge: true, EnableTLSCheck: true})

	assert.Equal(t, -1.0, ext.Vector.Get("domain_age_days"))
	assert.Equal(t, 0.0, ext.Vector.Get("has_valid_ssl"))
}
