package signals

import (
	"context"

	"github.com/stoik/url-guard/internal/domain"
	"github.com/stoik/url-guard/internal/ports"
)

// NoopAgeLookup implements ports.DomainAgeLookup for offline and batch runs
type NoopAgeLookup struct{}

// DomainAgeDays always reports an unknown age
func (NoopAgeLookup) DomainAgeDays(context.Context, string) int {
	return ports.UnknownDomainAge
}

// NoopCertificateChecker implements ports.CertificateChecker for offline and batch runs
type NoopCertificateChecker struct{}

// CheckCertificate always reports an invalid certificate
func (NoopCertificateChecker) CheckCertificate(context.Context, string) domain.CertificateStatus {
	return domain.CertificateStatus{}
}
