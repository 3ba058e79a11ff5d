package database

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/ICTMAXELO2025/Maxelobs-applications/internal/errors"
)

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "legacy scheme alias rewritten",
			in:   "postgres://user:pw@host:5432/db",
			want: "postgresql://user:pw@host:5432/db",
		},
		{
			name: "canonical scheme untouched",
			in:   "postgresql://user:pw@host:5432/db",
			want: "postgresql://user:pw@host:5432/db",
		},
		{
			name: "surrounding whitespace stripped",
			in:   "  postgres://user:pw@host/db \n",
			want: "postgresql://user:pw@host/db",
		},
		{
			name: "keyword DSN passes through",
			in:   "host=localhost dbname=wil sslmode=disable",
			want: "host=localhost dbname=wil sslmode=disable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeURL(tt.in))
		})
	}
}

func TestDefaultRetryPolicy(t *testing.T) {
	policy := DefaultRetryPolicy()
	assert.Equal(t, 3, policy.Attempts)
	assert.Equal(t, 2*time.Second, policy.Backoff)
}

func TestConnectExhaustsAttempts(t *testing.T) {
	// Port 1 on loopback refuses immediately; zero backoff keeps the test fast.
	policy := RetryPolicy{Attempts: 3, Backoff: 0}

	_, err := Connect(context.Background(),
		"postgresql://postgres@127.0.0.1:1/nope?sslmode=disable&connect_timeout=1",
		policy, clockwork.NewRealClock())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 3 attempts")
	assert.Equal(t, apperrors.TypeConnection, apperrors.AsStructuredError(err).Type)
}

func TestConnectHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Connect(ctx,
		"postgresql://postgres@127.0.0.1:1/nope?sslmode=disable&connect_timeout=1",
		RetryPolicy{Attempts: 5, Backoff: time.Minute}, clockwork.NewRealClock())

	require.Error(t, err)
}
