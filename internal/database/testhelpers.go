package database

import (
	"context"
	"os"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
)

// setupTestDB connects to the database named by TEST_DATABASE_URL, runs
// migrations and truncates both tables. Tests calling it are skipped when
// the variable is unset.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping database integration test")
	}

	ctx := context.Background()
	db, err := Connect(ctx, url, DefaultRetryPolicy(), clockwork.NewRealClock())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.RunMigrations(ctx))

	_, err = db.ExecContext(ctx, `TRUNCATE applications, admins RESTART IDENTITY`)
	require.NoError(t, err)

	return db
}
