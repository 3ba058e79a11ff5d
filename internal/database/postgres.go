package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	_ "github.com/lib/pq"

	apperrors "github.com/ICTMAXELO2025/Maxelobs-applications/internal/errors"
)

const pingTimeout = 5 * time.Second

// RetryPolicy bounds connection acquisition: Attempts tries with Backoff
// between them.
type RetryPolicy struct {
	Attempts int
	Backoff  time.Duration
}

// DefaultRetryPolicy matches the documented defaults (3 attempts, 2s apart).
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{Attempts: 3, Backoff: 2 * time.Second}
}

type DB struct {
	*sql.DB
}

// NormalizeURL prepares a configured connection target for use: trims
// stray whitespace and rewrites the legacy postgres:// scheme alias to the
// canonical postgresql:// form some hosting environments still emit.
func NormalizeURL(raw string) string {
	url := strings.TrimSpace(raw)
	if rest, ok := strings.CutPrefix(url, "postgres://"); ok {
		url = "postgresql://" + rest
	}
	return url
}

// Connect opens the database and verifies it with a ping, retrying per the
// policy. Callers get a plain error when every attempt fails; nothing
// panics past this boundary.
func Connect(ctx context.Context, rawURL string, policy RetryPolicy, clock clockwork.Clock) (*DB, error) {
	url := NormalizeURL(rawURL)

	if policy.Attempts < 1 {
		policy.Attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= policy.Attempts; attempt++ {
		db, err := open(ctx, url)
		if err == nil {
			return db, nil
		}
		lastErr = err
		slog.Warn("Database connection attempt failed",
			"attempt", attempt, "max_attempts", policy.Attempts, "error", err)

		if attempt < policy.Attempts {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-clock.After(policy.Backoff):
			}
		}
	}

	return nil, apperrors.ConnectionError(
		fmt.Sprintf("failed to connect after %d attempts", policy.Attempts), lastErr)
}

func open(ctx context.Context, url string) (*DB, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Connection pool settings for production use
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{DB: db}, nil
}

// HealthCheck reports whether a store connection can currently be acquired.
func (db *DB) HealthCheck(ctx context.Context) error {
	return db.PingContext(ctx)
}

// RunMigrations creates the schema idempotently. There is no migration
// framework; changes beyond table creation are applied manually.
func (db *DB) RunMigrations(ctx context.Context) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS applications (
			id BIGSERIAL PRIMARY KEY,
			full_name TEXT NOT NULL,
			email TEXT NOT NULL,
			phone TEXT NOT NULL,
			institution TEXT NOT NULL,
			course TEXT NOT NULL,
			position TEXT NOT NULL,
			cv_filename TEXT NOT NULL,
			cv_data BYTEA NOT NULL,
			application_date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			status TEXT NOT NULL DEFAULT 'Pending'
		)`,
		`CREATE INDEX IF NOT EXISTS idx_applications_application_date ON applications(application_date DESC)`,
		`CREATE TABLE IF NOT EXISTS admins (
			id BIGSERIAL PRIMARY KEY,
			email TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	}

	for _, migration := range migrations {
		if _, err := db.ExecContext(ctx, migration); err != nil {
			return fmt.Errorf("failed to run migration: %w", err)
		}
	}

	slog.Info("Database migrations completed")
	return nil
}
