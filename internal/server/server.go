package server

import (
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/ICTMAXELO2025/Maxelobs-applications/internal/config"
	"github.com/ICTMAXELO2025/Maxelobs-applications/internal/domain"
	apperrors "github.com/ICTMAXELO2025/Maxelobs-applications/internal/errors"
)

const sessionMaxAgeDays = 7

// storeHealthChecker is a minimal interface for store health checks.
type storeHealthChecker interface {
	HealthCheck(ctx context.Context) error
}

type Server struct {
	echo           *echo.Echo
	config         *config.Config
	app            domain.PortalService
	store          storeHealthChecker
	sessionStore   *sessions.CookieStore
	csrfMiddleware echo.MiddlewareFunc
	startTime      time.Time

	indexTemplate       *template.Template
	applicationTemplate *template.Template
	loginTemplate       *template.Template
	forgotTemplate      *template.Template
	dashboardTemplate   *template.Template
}

func NewServer(cfg *config.Config, app domain.PortalService, store storeHealthChecker) (*Server, error) {
	// Parse templates once at startup
	indexTmpl, err := template.ParseFiles("web/templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse index template: %w", err)
	}
	applicationTmpl, err := template.ParseFiles("web/templates/application.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse application template: %w", err)
	}
	loginTmpl, err := template.ParseFiles("web/templates/admin_login.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse login template: %w", err)
	}
	forgotTmpl, err := template.ParseFiles("web/templates/forgot_password.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse forgot-password template: %w", err)
	}
	dashboardTmpl, err := template.ParseFiles("web/templates/dashboard.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse dashboard template: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(apperrors.Middleware())

	// Session store
	sessionStore := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	sessionStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * sessionMaxAgeDays,
		HttpOnly: true,
		Secure:   cfg.AppEnv == "production",
		SameSite: http.SameSiteLaxMode,
	}

	srv := &Server{
		echo:         e,
		config:       cfg,
		app:          app,
		store:        store,
		sessionStore: sessionStore,
		csrfMiddleware: middleware.CSRFWithConfig(middleware.CSRFConfig{
			TokenLookup:    "form:csrf",
			CookiePath:     "/",
			CookieHTTPOnly: true,
			CookieSameSite: http.SameSiteLaxMode,
			CookieSecure:   cfg.AppEnv == "production",
		}),
		startTime:           time.Now(),
		indexTemplate:       indexTmpl,
		applicationTemplate: applicationTmpl,
		loginTemplate:       loginTmpl,
		forgotTemplate:      forgotTmpl,
		dashboardTemplate:   dashboardTmpl,
	}

	// Register routes
	srv.registerRoutes()

	return srv, nil
}

func (s *Server) Start() error {
	slog.Info("Starting server", "port", s.config.Port)
	return s.echo.Start(fmt.Sprintf(":%s", s.config.Port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
