package server

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) registerRoutes() {
	// Observability endpoints (no auth required)
	s.echo.GET("/health", s.handleHealth)
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	s.echo.GET("/version", s.handleVersion)

	// Public intake
	s.echo.GET("/", s.handleIndex)
	s.echo.GET("/apply", func(c echo.Context) error {
		return c.Redirect(302, "/application")
	})
	s.echo.GET("/application", s.handleApplicationForm)
	s.echo.POST("/application", s.handleApplicationSubmit)

	// Admin auth (entry points, not gated)
	s.echo.GET("/admin/login", s.handleLoginPage)
	s.echo.POST("/admin/login", s.handleLogin)
	s.echo.GET("/admin/forgot-password", s.handleForgotPasswordPage)
	s.echo.POST("/admin/forgot-password", s.handleForgotPassword)

	// Admin review area (hard-gated; status form is CSRF protected)
	s.echo.GET("/admin/dashboard", s.handleDashboard, s.requireAdmin, s.csrfMiddleware)
	s.echo.POST("/admin/update-status/:id", s.handleUpdateStatus, s.requireAdmin, s.csrfMiddleware)
	s.echo.GET("/admin/download-cv/:id", s.handleDownloadCV, s.requireAdmin)
	s.echo.GET("/admin/logout", s.handleLogout, s.requireAdmin)
}
