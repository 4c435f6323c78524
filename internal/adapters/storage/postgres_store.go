package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/stoik/url-guard/internal/domain"
)

// PostgresStore implements ports.ScanStore for PostgreSQL
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a new PostgreSQL storage instance
func NewPostgresStore(connStr string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Scans are written once per analysed URL; a small pool is enough
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)

	return &PostgresStore{db: db}, nil
}

// Close closes the database connection
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// InitSchema creates database tables if they don't exist
// In production, use proper migration tools
func (s *PostgresStore) InitSchema() error {
	schema := `
	-- ============================================================================
	-- URL_SCANS TABLE
	-- ============================================================================
	-- One row per analysed URL. url is the normalized form (see NormalizeURL)
	-- so repeated scans of the same page group together.
	--
	-- features holds the full named feature map as JSONB, tagged with the
	-- feature_set version that produced it. Rows from different versions are
	-- not comparable position by position.
	CREATE TABLE IF NOT EXISTS url_scans (
		id UUID PRIMARY KEY,
		url TEXT NOT NULL,
		prediction VARCHAR(10) NOT NULL CHECK (prediction IN ('Legitimate', 'Phishing')),
		probability DECIMAL(6,5) NOT NULL,
		confidence DECIMAL(6,5) NOT NULL,
		override_reason VARCHAR(32),
		feature_set VARCHAR(32) NOT NULL,
		features JSONB,
		scanned_at TIMESTAMP NOT NULL DEFAULT NOW()
	);

	-- Backs RecentScans
	CREATE INDEX IF NOT EXISTS idx_url_scans_scanned_at ON url_scans(scanned_at DESC);
	-- History of a single URL
	CREATE INDEX IF NOT EXISTS idx_url_scans_url ON url_scans(url);

	-- ============================================================================
	-- FLAGGED_URLS TABLE
	-- ============================================================================
	-- URLs a user reported as phishing. The flag is advisory: it is surfaced in
	-- the explanation but never changes the verdict.
	CREATE TABLE IF NOT EXISTS flagged_urls (
		url TEXT PRIMARY KEY,
		reason TEXT,
		flagged_at TIMESTAMP NOT NULL DEFAULT NOW()
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// SaveScan inserts a scan history row
func (s *PostgresStore) SaveScan(ctx context.Context, record *domain.ScanRecord) error {
	featuresJSON, err := json.Marshal(record.Features)
	if err != nil {
		return fmt.Errorf("failed to marshal features: %w", err)
	}

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if record.ScannedAt.IsZero() {
		record.ScannedAt = time.Now()
	}

	query := `
		INSERT INTO url_scans (
			id, url, prediction, probability, confidence,
			override_reason, feature_set, features, scanned_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err = s.db.ExecContext(ctx, query,
		record.ID, record.URL, record.Label, record.Probability, record.Confidence,
		nullString(string(record.Override)), record.FeatureSet, featuresJSON, record.ScannedAt,
	)
	return err
}

// RecentScans retrieves the latest scans, most recent first
func (s *PostgresStore) RecentScans(ctx context.Context, limit int) ([]domain.ScanRecord, error) {
	query := `
		SELECT id, url, prediction, probability, confidence,
		       override_reason, feature_set, features, scanned_at
		FROM url_scans
		ORDER BY scanned_at DESC
		LIMIT $1
	`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]domain.ScanRecord, 0)
	for rows.Next() {
		var record domain.ScanRecord
		var override sql.NullString
		var featuresJSON []byte

		err := rows.Scan(
			&record.ID, &record.URL, &record.Label, &record.Probability, &record.Confidence,
			&override, &record.FeatureSet, &featuresJSON, &record.ScannedAt,
		)
		if err != nil {
			return nil, err
		}

		record.Override = domain.OverrideReason(override.String)
		if err := json.Unmarshal(featuresJSON, &record.Features); err != nil {
			return nil, fmt.Errorf("failed to unmarshal features of scan %s: %w", record.ID, err)
		}

		records = append(records, record)
	}

	return records, rows.Err()
}

// FlagURL records a user report; flagging twice refreshes the reason and time
func (s *PostgresStore) FlagURL(ctx context.Context, flag *domain.FlaggedURL) error {
	if flag.FlaggedAt.IsZero() {
		flag.FlaggedAt = time.Now()
	}

	query := `
		INSERT INTO flagged_urls (url, reason, flagged_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (url) DO UPDATE
		SET reason = EXCLUDED.reason,
		    flagged_at = EXCLUDED.flagged_at
	`
	_, err := s.db.ExecContext(ctx, query, flag.URL, nullString(flag.Reason), flag.FlaggedAt)
	return err
}

// UnflagURL removes a user report. Unflagging an unknown URL is not an error.
func (s *PostgresStore) UnflagURL(ctx context.Context, url string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM flagged_urls WHERE url = $1`, url)
	return err
}

// IsFlagged reports whether a user has flagged url
func (s *PostgresStore) IsFlagged(ctx context.Context, url string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM flagged_urls WHERE url = $1)`, url,
	).Scan(&exists)
	return exists, err
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
