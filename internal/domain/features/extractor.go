package features

import (
	"context"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/stoik/url-guard/internal/domain"
	"github.com/stoik/url-guard/internal/domain/trust"
	"github.com/stoik/url-guard/internal/ports"
)

const (
	newDomainDays     = 180
	veryNewDomainDays = 30
)

// Options toggles the network-backed signals for a single extraction
type Options struct {
	EnableDomainAge bool
	EnableTLSCheck  bool
}

// Extraction is everything derived from one URL
type Extraction struct {
	URL      string
	Parsed   ParsedURL
	Segments HostnameSegments
	Vector   Vector

	IsWhitelisted          bool
	HasTrustedSubdomain    bool
	IsSuspiciousSimilarity bool
	MinDistance            float64

	Explanation domain.Explanation
}

// Extractor turns a raw URL into a feature vector
//
// An Extractor is immutable after construction and safe for concurrent use.
// Only the domain-age and certificate adapters may block; everything else is
// CPU-bound.
type Extractor struct {
	resolver *trust.Resolver
	age      ports.DomainAgeLookup
	certs    ports.CertificateChecker
	logger   logrus.FieldLogger
}

// NewExtractor creates an extractor. A nil interface value for age or certs
// disables the corresponding signal regardless of Options. A typed nil
// pointer wrapped in the interface is not nil and will be called; pass
// signals.NoopAgeLookup or signals.NoopCertificateChecker instead.
func NewExtractor(
	resolver *trust.Resolver,
	age ports.DomainAgeLookup,
	certs ports.CertificateChecker,
	logger logrus.FieldLogger,
) *Extractor {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Extractor{
		resolver: resolver,
		age:      age,
		certs:    certs,
		logger:   logger,
	}
}

// Resolver returns the trust resolver backing this extractor
func (e *Extractor) Resolver() *trust.Resolver {
	return e.resolver
}

// Extract computes the full feature set for raw. It never fails; malformed
// input produces a vector built from empty components.
func (e *Extractor) Extract(ctx context.Context, raw string, opts Options) Extraction {
	parsed := Decompose(raw)
	if !parsed.Valid && raw != "" {
		e.logger.WithField("url", raw).Debug("URL could not be parsed, extracting from empty components")
	}

	seg := Segment(parsed.Hostname)
	domainName := seg.RegistrableDomain

	values := lexicalFeatures(raw, parsed, seg, e.resolver)

	// Trust and similarity
	whitelisted := e.resolver.IsWhitelisted(domainName, seg.Subdomain)
	trustedSub := e.resolver.HasTrustedSubdomain(domainName, seg.Subdomain)
	minDistance := MinDistance(domainName, e.resolver.LegitimateDomains())
	suspicious := IsSuspiciousSimilarity(whitelisted, minDistance)

	values["min_domain_distance"] = minDistance
	values["is_whitelisted"] = boolFeature(whitelisted)
	values["allows_long_urls"] = boolFeature(whitelisted)
	values["is_suspicious_similarity"] = boolFeature(suspicious)
	values["has_trusted_subdomain"] = boolFeature(trustedSub)

	// Scripts and obfuscation
	scripts := ScriptInfo(parsed.Hostname)
	leet := LeetSpeakCount(parsed.Hostname)
	values["has_unicode"] = boolFeature(scripts.HasUnicode)
	values["has_cyrillic"] = boolFeature(scripts.HasCyrillic)
	values["has_mixed_scripts"] = boolFeature(scripts.HasMixedScripts)
	values["leet_speak_count"] = float64(leet)

	// External signals
	ageDays, cert := e.externalSignals(ctx, parsed, domainName, whitelisted, opts)
	values["domain_age_days"] = float64(ageDays)
	values["is_new_domain"] = boolFeature(ageDays >= 0 && ageDays < newDomainDays)
	values["is_very_new_domain"] = boolFeature(ageDays >= 0 && ageDays < veryNewDomainDays)
	values["has_valid_ssl"] = boolFeature(cert.Valid)
	if cert.Valid {
		values["ssl_days_until_expiry"] = float64(cert.DaysUntilExpiry)
	}

	unicodeHost, punycode := DecodePunycode(parsed.Hostname)

	return Extraction{
		URL:                    raw,
		Parsed:                 parsed,
		Segments:               seg,
		Vector:                 Assemble(values),
		IsWhitelisted:          whitelisted,
		HasTrustedSubdomain:    trustedSub,
		IsSuspiciousSimilarity: suspicious,
		MinDistance:            minDistance,
		Explanation: domain.Explanation{
			IsWhitelisted:          whitelisted,
			HasTrustedSubdomain:    trustedSub,
			IsSuspiciousSimilarity: suspicious,
			MinDomainDistance:      minDistance,
			HasUnicode:             scripts.HasUnicode,
			LeetSpeakCount:         leet,
			HasHTTPS:               values["has_https"] == 1,
			NumSubdomains:          seg.SubdomainCount,
			URLLength:              int(values["url_length"]),
			RegistrableDomain:      domainName,
			PublicSuffixDomain:     PublicSuffixDomain(parsed.Hostname),
			IsPunycode:             punycode,
			UnicodeHostname:        unicodeIfDifferent(unicodeHost, parsed.Hostname),
			ConfusableWith:         e.resolver.ConfusableWith(Segment(unicodeHost).RegistrableDomain),
		},
	}
}

// externalSignals runs the enabled adapters, concurrently when both apply.
// Whitelisted domains never trigger an age lookup.
func (e *Extractor) externalSignals(
	ctx context.Context,
	parsed ParsedURL,
	domainName string,
	whitelisted bool,
	opts Options,
) (int, domain.CertificateStatus) {
	ageDays := ports.UnknownDomainAge
	var cert domain.CertificateStatus

	runAge := opts.EnableDomainAge && e.age != nil && domainName != "" && !whitelisted
	runTLS := opts.EnableTLSCheck && e.certs != nil && domainName != "" && parsed.Scheme == "https"
	if !runAge && !runTLS {
		return ageDays, cert
	}

	// Adapters never return errors, the group only bounds their lifetime
	g, gctx := errgroup.WithContext(ctx)
	if runAge {
		g.Go(func() error {
			ageDays = e.age.DomainAgeDays(gctx, domainName)
			if ageDays < 0 {
				ageDays = ports.UnknownDomainAge
			}
			return nil
		})
	}
	if runTLS {
		g.Go(func() error {
			cert = e.certs.CheckCertificate(gctx, domainName)
			return nil
		})
	}
	_ = g.Wait()

	return ageDays, cert
}

func unicodeIfDifferent(unicodeHost, hostname string) string {
	if unicodeHost == hostname {
		return ""
	}
	return unicodeHost
}
