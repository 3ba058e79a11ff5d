package server

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthOK(t *testing.T) {
	s := newTestServer(t, nil, &mockHealthChecker{})

	rec := doRequest(s, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestHealthDatabaseDown(t *testing.T) {
	s := newTestServer(t, nil, &mockHealthChecker{err: errors.New("connection refused")})

	rec := doRequest(s, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Database unavailable", rec.Body.String())
}

func TestLivenessReportsUptime(t *testing.T) {
	s := newTestServer(t, nil, nil)

	rec := doRequest(s, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"alive"`)
	assert.Contains(t, rec.Body.String(), `"uptime_seconds"`)
}

func TestVersionEndpoint(t *testing.T) {
	s := newTestServer(t, nil, nil)

	rec := doRequest(s, httptest.NewRequest(http.MethodGet, "/version", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"version"`)
}
