package ports

import (
	"context"

	"github.com/stoik/url-guard/internal/domain"
)

// UnknownDomainAge is returned by DomainAgeLookup when the age cannot be
// determined (disabled, network error, unparseable record)
const UnknownDomainAge = -1

// DomainAgeLookup resolves how many days ago a domain was registered
type DomainAgeLookup interface {
	// DomainAgeDays returns a non-negative day count, or UnknownDomainAge.
	// Implementations must not return errors: failures degrade to the sentinel.
	DomainAgeDays(ctx context.Context, domain string) int
}

// CertificateChecker inspects the TLS certificate served for a domain
type CertificateChecker interface {
	// CheckCertificate returns {Valid: false} on any connection, handshake or
	// verification failure
	CheckCertificate(ctx context.Context, domain string) domain.CertificateStatus
}
