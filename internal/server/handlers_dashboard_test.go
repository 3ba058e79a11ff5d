package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ICTMAXELO2025/Maxelobs-applications/internal/domain"
)

func sampleApplications() []domain.Application {
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	return []domain.Application{
		{ID: 3, FullName: "Carol King", Status: domain.StatusPending, ApplicationDate: base.Add(2 * time.Hour)},
		{ID: 2, FullName: "Bob Stone", Status: domain.StatusAccepted, ApplicationDate: base.Add(time.Hour)},
		{ID: 1, FullName: "Alice Moyo", Status: domain.StatusPending, ApplicationDate: base},
	}
}

func TestDashboardListsApplications(t *testing.T) {
	s := newTestServer(t, &mockPortalService{
		listFunc: func(ctx context.Context) ([]domain.Application, error) {
			return sampleApplications(), nil
		},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	setSessionAdmin(t, s, req, 7, "admin@maxelo.co.za")
	rec := doRequest(s, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "total:3")
	assert.Contains(t, body, "pending:2")
	assert.Contains(t, body, "app:3:Carol King:Pending")
	assert.Contains(t, body, "app:2:Bob Stone:Accepted")
	assert.Contains(t, body, "csrf:test-csrf-token")
}

func TestDashboardStatusFilter(t *testing.T) {
	s := newTestServer(t, &mockPortalService{
		listFunc: func(ctx context.Context) ([]domain.Application, error) {
			return sampleApplications(), nil
		},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard?status=Accepted", nil)
	setSessionAdmin(t, s, req, 7, "admin@maxelo.co.za")
	rec := doRequest(s, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "app:2:Bob Stone:Accepted")
	assert.NotContains(t, body, "Carol King")
	// Counts stay global while the table narrows.
	assert.Contains(t, body, "total:3")
}

func TestDashboardUnknownFilterShowsAll(t *testing.T) {
	s := newTestServer(t, &mockPortalService{
		listFunc: func(ctx context.Context) ([]domain.Application, error) {
			return sampleApplications(), nil
		},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard?status=Bogus", nil)
	setSessionAdmin(t, s, req, 7, "admin@maxelo.co.za")
	rec := doRequest(s, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "app:1:Alice Moyo:Pending")
	assert.Contains(t, rec.Body.String(), "app:2:Bob Stone:Accepted")
}

func TestDashboardListFailure(t *testing.T) {
	s := newTestServer(t, &mockPortalService{
		listFunc: func(ctx context.Context) ([]domain.Application, error) {
			return nil, errors.New("pq: connection refused")
		},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	setSessionAdmin(t, s, req, 7, "admin@maxelo.co.za")
	rec := doRequest(s, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "pq:")
}

func TestUpdateStatusRedirectsWithFlash(t *testing.T) {
	var gotID int64
	var gotStatus string
	s := newTestServer(t, &mockPortalService{
		updateStatusFunc: func(ctx context.Context, id int64, status string) error {
			gotID, gotStatus = id, status
			return nil
		},
	}, nil)

	req := postForm("/admin/update-status/5", url.Values{"status": {"Reviewed"}})
	setSessionAdmin(t, s, req, 7, "admin@maxelo.co.za")
	rec := doRequest(s, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/admin/dashboard", rec.Header().Get("Location"))
	assert.Equal(t, int64(5), gotID)
	assert.Equal(t, "Reviewed", gotStatus)
}

func TestUpdateStatusUnknownValue(t *testing.T) {
	s := newTestServer(t, &mockPortalService{
		updateStatusFunc: func(ctx context.Context, id int64, status string) error {
			return domain.ErrApplicationNotFound
		},
	}, nil)

	req := postForm("/admin/update-status/999", url.Values{"status": {"Reviewed"}})
	setSessionAdmin(t, s, req, 7, "admin@maxelo.co.za")
	rec := doRequest(s, req)

	// Not-found still lands back on the dashboard with a notice.
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/admin/dashboard", rec.Header().Get("Location"))
}

func TestUpdateStatusBadID(t *testing.T) {
	called := false
	s := newTestServer(t, &mockPortalService{
		updateStatusFunc: func(ctx context.Context, id int64, status string) error {
			called = true
			return nil
		},
	}, nil)

	req := postForm("/admin/update-status/abc", url.Values{"status": {"Reviewed"}})
	setSessionAdmin(t, s, req, 7, "admin@maxelo.co.za")
	rec := doRequest(s, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.False(t, called)
}

func TestDownloadCVSetsAttachmentHeaders(t *testing.T) {
	s := newTestServer(t, &mockPortalService{
		resumeFunc: func(ctx context.Context, id int64) (*domain.Resume, error) {
			assert.Equal(t, int64(4), id)
			return &domain.Resume{Filename: "jane_doe_cv.pdf", Data: []byte("%PDF-1.4 content")}, nil
		},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/admin/download-cv/4", nil)
	setSessionAdmin(t, s, req, 7, "admin@maxelo.co.za")
	rec := doRequest(s, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="jane_doe_cv.pdf"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "application/octet-stream", rec.Header().Get("Content-Type"))
	assert.Equal(t, "%PDF-1.4 content", rec.Body.String())
}

func TestDownloadCVNotFoundReturnsToDashboard(t *testing.T) {
	s := newTestServer(t, &mockPortalService{
		resumeFunc: func(ctx context.Context, id int64) (*domain.Resume, error) {
			return nil, domain.ErrApplicationNotFound
		},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/admin/download-cv/999", nil)
	setSessionAdmin(t, s, req, 7, "admin@maxelo.co.za")
	rec := doRequest(s, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/admin/dashboard", rec.Header().Get("Location"))

	// Following the redirect with the rewritten session cookie (it keeps
	// the admin identity and carries the flash) shows the notice.
	req2 := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	for _, cookie := range rec.Result().Cookies() {
		req2.AddCookie(cookie)
	}
	rec2 := doRequest(s, req2)
	assert.Equal(t, http.StatusOK, rec2.Code)
	assert.Contains(t, rec2.Body.String(), "CV not found")
}

func TestDownloadCVBadIDReturnsToDashboard(t *testing.T) {
	called := false
	s := newTestServer(t, &mockPortalService{
		resumeFunc: func(ctx context.Context, id int64) (*domain.Resume, error) {
			called = true
			return nil, nil
		},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/admin/download-cv/abc", nil)
	setSessionAdmin(t, s, req, 7, "admin@maxelo.co.za")
	rec := doRequest(s, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/admin/dashboard", rec.Header().Get("Location"))
	assert.False(t, called)
}
