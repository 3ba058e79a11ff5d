package server

import (
	"context"
	"html/template"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/ICTMAXELO2025/Maxelobs-applications/internal/config"
	"github.com/ICTMAXELO2025/Maxelobs-applications/internal/domain"
)

// mockPortalService lets each test plug in just the behaviour it needs.
type mockPortalService struct {
	submitFunc        func(ctx context.Context, sub domain.Submission) (*domain.Application, error)
	listFunc          func(ctx context.Context) ([]domain.Application, error)
	updateStatusFunc  func(ctx context.Context, id int64, status string) error
	resumeFunc        func(ctx context.Context, id int64) (*domain.Resume, error)
	authenticateFunc  func(ctx context.Context, email, password string) (*domain.Admin, error)
	resetPasswordFunc func(ctx context.Context, email, newPassword string) error
}

func (m *mockPortalService) SubmitApplication(ctx context.Context, sub domain.Submission) (*domain.Application, error) {
	if m.submitFunc != nil {
		return m.submitFunc(ctx, sub)
	}
	return &domain.Application{ID: 1, Status: domain.StatusPending}, nil
}

func (m *mockPortalService) ListApplications(ctx context.Context) ([]domain.Application, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, nil
}

func (m *mockPortalService) UpdateStatus(ctx context.Context, id int64, status string) error {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, status)
	}
	return nil
}

func (m *mockPortalService) Resume(ctx context.Context, id int64) (*domain.Resume, error) {
	if m.resumeFunc != nil {
		return m.resumeFunc(ctx, id)
	}
	return &domain.Resume{Filename: "cv.pdf", Data: []byte("%PDF-1.4")}, nil
}

func (m *mockPortalService) Authenticate(ctx context.Context, email, password string) (*domain.Admin, error) {
	if m.authenticateFunc != nil {
		return m.authenticateFunc(ctx, email, password)
	}
	return nil, domain.ErrInvalidCredentials
}

func (m *mockPortalService) ResetPassword(ctx context.Context, email, newPassword string) error {
	if m.resetPasswordFunc != nil {
		return m.resetPasswordFunc(ctx, email, newPassword)
	}
	return nil
}

// mockHealthChecker is a configurable store health check.
type mockHealthChecker struct {
	err error
}

func (m *mockHealthChecker) HealthCheck(ctx context.Context) error { return m.err }

// newTestServer builds a Server with inline templates so handler tests
// need neither the disk templates nor a database.
func newTestServer(t *testing.T, svc domain.PortalService, store storeHealthChecker) *Server {
	t.Helper()

	if svc == nil {
		svc = &mockPortalService{}
	}
	if store == nil {
		store = &mockHealthChecker{}
	}

	cfg := &config.Config{
		AppEnv:        "test",
		Port:          "8080",
		SessionSecret: "test-secret-key-32-bytes-long!!!",
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	sessionStore := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	sessionStore.Options = &sessions.Options{Path: "/", MaxAge: 3600, HttpOnly: true}

	srv := &Server{
		echo:         e,
		config:       cfg,
		app:          svc,
		store:        store,
		sessionStore: sessionStore,
		// Tests exercise handlers, not token plumbing; the real CSRF
		// config is covered by NewServer.
		csrfMiddleware: func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error {
				c.Set("csrf", "test-csrf-token")
				return next(c)
			}
		},
		startTime: time.Now(),

		indexTemplate: template.Must(template.New("index").Parse(
			`index{{range .Successes}} success:{{.}}{{end}}{{range .Errors}} error:{{.}}{{end}}`)),
		applicationTemplate: template.Must(template.New("application").Parse(
			`application{{range .Errors}} error:{{.}}{{end}} name:{{.Form.FullName}}`)),
		loginTemplate: template.Must(template.New("login").Parse(
			`login{{range .Successes}} success:{{.}}{{end}}{{range .Errors}} error:{{.}}{{end}}`)),
		forgotTemplate: template.Must(template.New("forgot").Parse(
			`forgot{{range .Successes}} success:{{.}}{{end}}{{range .Errors}} error:{{.}}{{end}}`)),
		dashboardTemplate: template.Must(template.New("dashboard").Parse(
			`dashboard admin:{{.AdminEmail}} total:{{.Total}} pending:{{.PendingCount}} csrf:{{.CSRFToken}}` +
				`{{range .Applications}} app:{{.ID}}:{{.FullName}}:{{.Status}}{{end}}` +
				`{{range .Successes}} success:{{.}}{{end}}{{range .Errors}} error:{{.}}{{end}}`)),
	}
	srv.registerRoutes()
	return srv
}

// setSessionAdmin signs a request with an authenticated admin session.
func setSessionAdmin(t *testing.T, s *Server, req *http.Request, id int64, email string) {
	t.Helper()

	rec := httptest.NewRecorder()
	session, err := s.sessionStore.New(req, sessionName)
	require.NoError(t, err)
	session.Values[sessionKeyAdminID] = id
	session.Values[sessionKeyAdminEmail] = email
	require.NoError(t, session.Save(req, rec))

	for _, cookie := range rec.Result().Cookies() {
		req.AddCookie(cookie)
	}
}

func doRequest(s *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	return rec
}
