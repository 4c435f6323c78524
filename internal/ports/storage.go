package ports

import (
	"context"

	"github.com/stoik/url-guard/internal/domain"
)

// ScanStore defines the contract for persisting scan history and user flags
type ScanStore interface {
	// Scan history
	SaveScan(ctx context.Context, record *domain.ScanRecord) error
	RecentScans(ctx context.Context, limit int) ([]domain.ScanRecord, error)

	// Flagged URLs, keyed by normalized URL
	FlagURL(ctx context.Context, flag *domain.FlaggedURL) error
	UnflagURL(ctx context.Context, url string) error
	IsFlagged(ctx context.Context, url string) (bool, error)

	// Lifecycle
	Close() error
}
