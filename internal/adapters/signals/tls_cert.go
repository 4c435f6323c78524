package signals

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"net"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/stoik/url-guard/internal/domain"
)

// DefaultTLSTimeout bounds dial plus handshake
const DefaultTLSTimeout = 3 * time.Second

// TLSChecker implements ports.CertificateChecker with a verified handshake
type TLSChecker struct {
	timeout time.Duration
	roots   *x509.CertPool // nil means system roots
	addr    func(domain string) string
	now     func() time.Time
	logger  logrus.FieldLogger
}

// NewTLSChecker creates a checker dialing domain:443
func NewTLSChecker(timeout time.Duration, logger logrus.FieldLogger) *TLSChecker {
	if timeout <= 0 {
		timeout = DefaultTLSTimeout
	}
	return &TLSChecker{
		timeout: timeout,
		addr: func(domain string) string {
			return net.JoinHostPort(domain, "443")
		},
		now:    time.Now,
		logger: logger,
	}
}

// CheckCertificate dials domain and verifies its certificate chain and name.
// The certificate is valid only when verification succeeds and it has not
// yet expired.
func (c *TLSChecker) CheckCertificate(ctx context.Context, domainName string) domain.CertificateStatus {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	dialer := &tls.Dialer{
		NetDialer: &net.Dialer{Timeout: c.timeout},
		Config: &tls.Config{
			ServerName: domainName,
			RootCAs:    c.roots,
			MinVersion: tls.VersionTLS12,
		},
	}

	conn, err := dialer.DialContext(ctx, "tcp", c.addr(domainName))
	if err != nil {
		c.logger.WithField("domain", domainName).WithError(err).Debug("TLS check failed")
		return domain.CertificateStatus{}
	}
	defer conn.Close()

	state := conn.(*tls.Conn).ConnectionState()
	if len(state.PeerCertificates) == 0 {
		return domain.CertificateStatus{}
	}

	days := int(state.PeerCertificates[0].NotAfter.Sub(c.now()).Hours() / 24)
	if days <= 0 {
		return domain.CertificateStatus{}
	}
	return domain.CertificateStatus{Valid: true, DaysUntilExpiry: days}
}
