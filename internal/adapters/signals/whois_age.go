package signals

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/likexian/whois"
	whoisparser "github.com/likexian/whois-parser"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/stoik/url-guard/internal/ports"
)

var errNoCreationDate = errors.New("whois record has no creation date")

// Registries format creation dates inconsistently
var creationLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05Z",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02-Jan-2006",
	"2006.01.02",
	"2006/01/02",
}

// WhoisConfig controls WHOIS lookups
type WhoisConfig struct {
	Timeout       time.Duration // per lookup, including rate limiter wait
	QueriesPerSec float64       // outbound query budget shared by all callers
}

// WhoisAgeLookup implements ports.DomainAgeLookup on top of WHOIS
//
// Concurrent lookups of the same domain share one query, and each caller
// waits on it only as long as its own context allows. Lookups are never
// retried: a failure is logged and reported as an unknown age.
type WhoisAgeLookup struct {
	query   func(domain string) (string, error)
	limiter *rate.Limiter
	flight  singleflight.Group
	timeout time.Duration
	now     func() time.Time
	logger  logrus.FieldLogger
}

// NewWhoisAgeLookup creates a WHOIS-backed age lookup
func NewWhoisAgeLookup(cfg WhoisConfig, logger logrus.FieldLogger) *WhoisAgeLookup {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	limit := rate.Inf
	if cfg.QueriesPerSec > 0 {
		limit = rate.Limit(cfg.QueriesPerSec)
	}

	client := whois.NewClient().SetTimeout(cfg.Timeout)

	return &WhoisAgeLookup{
		query: func(domain string) (string, error) {
			return client.Whois(domain)
		},
		limiter: rate.NewLimiter(limit, 1),
		timeout: cfg.Timeout,
		now:     time.Now,
		logger:  logger,
	}
}

// DomainAgeDays returns the age of domain in days, or ports.UnknownDomainAge
func (l *WhoisAgeLookup) DomainAgeDays(ctx context.Context, domain string) int {
	domain = strings.ToLower(strings.TrimSpace(domain))
	if domain == "" {
		return ports.UnknownDomainAge
	}

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	// The shared query must outlive any single caller, so it runs on a
	// detached context bounded by its own timeout
	ch := l.flight.DoChan(domain, func() (any, error) {
		qctx, qcancel := context.WithTimeout(context.WithoutCancel(ctx), l.timeout)
		defer qcancel()
		if err := l.limiter.Wait(qctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
		return l.creationDate(qctx, domain)
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		l.logger.WithField("domain", domain).WithError(ctx.Err()).Debug("WHOIS lookup abandoned")
		return ports.UnknownDomainAge
	case res = <-ch:
	}
	if res.Err != nil {
		l.logger.WithField("domain", domain).WithError(res.Err).Warn("WHOIS lookup failed")
		return ports.UnknownDomainAge
	}

	created := res.Val.(time.Time)
	age := int(l.now().Sub(created).Hours() / 24)
	if age < 0 {
		return ports.UnknownDomainAge
	}
	return age
}

// creationDate queries WHOIS for domain, falling back to its parent when a
// subdomain has no record of its own
func (l *WhoisAgeLookup) creationDate(ctx context.Context, domain string) (time.Time, error) {
	raw, err := l.queryContext(ctx, domain)
	if err != nil {
		return time.Time{}, err
	}

	created, err := parseCreationDate(raw)
	if err != nil {
		parts := strings.Split(domain, ".")
		if len(parts) > 2 {
			return l.creationDate(ctx, strings.Join(parts[1:], "."))
		}
		return time.Time{}, err
	}
	return created, nil
}

// queryContext runs the blocking WHOIS query, abandoning it when ctx ends
func (l *WhoisAgeLookup) queryContext(ctx context.Context, domain string) (string, error) {
	type result struct {
		raw string
		err error
	}
	done := make(chan result, 1)
	go func() {
		raw, err := l.query(domain)
		done <- result{raw, err}
	}()

	select {
	case <-ctx.Done():
		return "", fmt.Errorf("whois %s: %w", domain, ctx.Err())
	case res := <-done:
		if res.err != nil {
			return "", fmt.Errorf("whois %s: %w", domain, res.err)
		}
		return res.raw, nil
	}
}

// parseCreationDate extracts the registration date from a raw WHOIS record
func parseCreationDate(raw string) (time.Time, error) {
	info, err := whoisparser.Parse(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse whois record: %w", err)
	}
	if info.Domain == nil {
		return time.Time{}, errNoCreationDate
	}

	created := strings.TrimSpace(info.Domain.CreatedDate)
	for _, layout := range creationLayouts {
		if t, err := time.Parse(layout, created); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: unrecognized date %q", errNoCreationDate, created)
}
