package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/stoik/url-guard/internal/domain"
)

// MemoryStore implements ports.ScanStore in process memory. It backs the CLI
// when no database is configured and the application tests.
type MemoryStore struct {
	mu      sync.RWMutex
	scans   []domain.ScanRecord
	flagged map[string]domain.FlaggedURL
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{flagged: make(map[string]domain.FlaggedURL)}
}

// SaveScan appends a scan history row
func (s *MemoryStore) SaveScan(_ context.Context, record *domain.ScanRecord) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if record.ScannedAt.IsZero() {
		record.ScannedAt = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.scans = append(s.scans, *record)
	return nil
}

// RecentScans returns up to limit scans, most recent first
func (s *MemoryStore) RecentScans(_ context.Context, limit int) ([]domain.ScanRecord, error) {
	s.mu.RLock()
	records := append([]domain.ScanRecord(nil), s.scans...)
	s.mu.RUnlock()

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].ScannedAt.After(records[j].ScannedAt)
	})
	if limit >= 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// FlagURL records a user report
func (s *MemoryStore) FlagURL(_ context.Context, flag *domain.FlaggedURL) error {
	if flag.FlaggedAt.IsZero() {
		flag.FlaggedAt = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.flagged[flag.URL] = *flag
	return nil
}

// UnflagURL removes a user report
func (s *MemoryStore) UnflagURL(_ context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.flagged, url)
	return nil
}

// IsFlagged reports whether url has been flagged
func (s *MemoryStore) IsFlagged(_ context.Context, url string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.flagged[url]
	return ok, nil
}

// Close is a no-op
func (s *MemoryStore) Close() error {
	return nil
}
