package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/stoik/url-guard/internal/adapters/storage"
	"github.com/stoik/url-guard/internal/domain"
	"github.com/stoik/url-guard/internal/domain/decision"
	"github.com/stoik/url-guard/internal/domain/features"
	"github.com/stoik/url-guard/internal/ports"
)

// ErrNoStore is returned by history and flag operations when no store is configured
var ErrNoStore = errors.New("no scan store configured")

// ScanService orchestrates feature extraction, classification and the
// override rules for incoming URLs
type ScanService struct {
	extractor  *features.Extractor
	scaler     ports.Scaler
	classifier ports.Classifier
	store      ports.ScanStore // optional
	logger     logrus.FieldLogger

	// Upper bound on URLs analysed in parallel by ScanBatch
	concurrency int
}

// NewScanService creates a scan service with dependency injection
//
// A nil scaler passes vectors through unchanged. A nil classifier is allowed
// so that the service can start without a model; every scan then fails with
// domain.ErrClassifierUnavailable. A nil store disables history and flags.
// Only a nil interface value counts as absent; a typed nil pointer is called.
// A nil logger falls back to the logrus standard logger.
func NewScanService(
	extractor *features.Extractor,
	scaler ports.Scaler,
	classifier ports.Classifier,
	store ports.ScanStore,
	logger logrus.FieldLogger,
	concurrency int,
) *ScanService {
	if concurrency <= 0 {
		concurrency = 1
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &ScanService{
		extractor:   extractor,
		scaler:      scaler,
		classifier:  classifier,
		store:       store,
		logger:      logger,
		concurrency: concurrency,
	}
}

// BatchResult is the outcome for one URL of ScanBatch
type BatchResult struct {
	Result domain.ScanResult
	Err    error
}

// Scan analyses a single URL
//
// Error handling strategy:
//   - Malformed URLs are not errors; they are scored from empty components
//   - Adapter failures are absorbed by the adapters themselves
//   - A missing or failing classifier is returned to the caller, wrapped in
//     domain.ErrClassifierUnavailable
//   - Store failures are logged and do not fail the scan
func (s *ScanService) Scan(ctx context.Context, rawURL string, opts features.Options) (domain.ScanResult, error) {
	url := CanonicalizeInput(rawURL)
	log := s.logger.WithField("url", url)

	extraction := s.extractor.Extract(ctx, url, opts)

	p, err := s.predict(ctx, extraction.Vector)
	if err != nil {
		return domain.ScanResult{}, err
	}

	verdict, err := decision.Decide(p, decision.Signals{
		HasTrustedSubdomain:    extraction.HasTrustedSubdomain,
		IsWhitelisted:          extraction.IsWhitelisted,
		IsSuspiciousSimilarity: extraction.IsSuspiciousSimilarity,
		MinDistance:            extraction.MinDistance,
	})
	if err != nil {
		return domain.ScanResult{}, fmt.Errorf("%w: %w", domain.ErrClassifierUnavailable, err)
	}

	result := domain.ScanResult{
		ID:          uuid.New(),
		URL:         url,
		Verdict:     verdict,
		Explanation: extraction.Explanation,
		ScannedAt:   time.Now(),
	}

	if s.store != nil {
		normalized := storage.NormalizeURL(url)

		flagged, err := s.store.IsFlagged(ctx, normalized)
		if err != nil {
			log.WithError(err).Warn("Failed to check flagged status")
		}
		result.Explanation.UserFlagged = flagged

		record := &domain.ScanRecord{
			ID:          result.ID,
			URL:         normalized,
			Label:       verdict.Label,
			Probability: verdict.Probability,
			Confidence:  verdict.Confidence,
			Override:    verdict.Override,
			FeatureSet:  features.FeatureSetVersion,
			Features:    extraction.Vector.Map(),
			ScannedAt:   result.ScannedAt,
		}
		if err := s.store.SaveScan(ctx, record); err != nil {
			log.WithError(err).Warn("Failed to store scan")
		}
	}

	entry := log.WithFields(logrus.Fields{
		"prediction":  verdict.Label,
		"probability": verdict.Probability,
		"override":    verdict.Override,
	})
	if verdict.IsPhishing() {
		entry.Info("Phishing URL detected")
	} else {
		entry.Debug("URL scanned")
	}

	return result, nil
}

// ScanBatch analyses urls in parallel, bounded by the configured
// concurrency. Results are returned in input order and one URL failing does
// not stop the others.
func (s *ScanService) ScanBatch(ctx context.Context, urls []string, opts features.Options) []BatchResult {
	results := make([]BatchResult, len(urls))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, url := range urls {
		g.Go(func() error {
			result, err := s.Scan(gctx, url, opts)
			results[i] = BatchResult{Result: result, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// FlagURL records a user report for url
func (s *ScanService) FlagURL(ctx context.Context, url, reason string) error {
	if s.store == nil {
		return ErrNoStore
	}
	flag := &domain.FlaggedURL{
		URL:    storage.NormalizeURL(CanonicalizeInput(url)),
		Reason: reason,
	}
	if err := s.store.FlagURL(ctx, flag); err != nil {
		return fmt.Errorf("failed to flag url: %w", err)
	}
	return nil
}

// UnflagURL removes a user report for url
func (s *ScanService) UnflagURL(ctx context.Context, url string) error {
	if s.store == nil {
		return ErrNoStore
	}
	if err := s.store.UnflagURL(ctx, storage.NormalizeURL(CanonicalizeInput(url))); err != nil {
		return fmt.Errorf("failed to unflag url: %w", err)
	}
	return nil
}

// RecentScans retrieves the latest scan history rows
func (s *ScanService) RecentScans(ctx context.Context, limit int) ([]domain.ScanRecord, error) {
	if s.store == nil {
		return nil, ErrNoStore
	}
	return s.store.RecentScans(ctx, limit)
}

// predict scales the vector and asks the classifier for P(legitimate)
func (s *ScanService) predict(ctx context.Context, vec features.Vector) (float64, error) {
	if s.classifier == nil {
		return 0, domain.ErrClassifierUnavailable
	}

	input := []float64(vec)
	if s.scaler != nil {
		scaled, err := s.scaler.Transform(input)
		if err != nil {
			return 0, fmt.Errorf("%w: scaling failed: %w", domain.ErrClassifierUnavailable, err)
		}
		input = scaled
	}

	p, err := s.classifier.PredictLegitimate(ctx, input)
	if err != nil {
		if errors.Is(err, domain.ErrClassifierUnavailable) {
			return 0, err
		}
		return 0, fmt.Errorf("%w: %w", domain.ErrClassifierUnavailable, err)
	}
	return p, nil
}

// CanonicalizeInput trims whitespace and prepends http:// when the URL has no
// http or https scheme. Empty input stays empty.
func CanonicalizeInput(raw string) string {
	url := strings.TrimSpace(raw)
	if url == "" {
		return ""
	}
	lower := strings.ToLower(url)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		url = "http://" + url
	}
	return url
}
