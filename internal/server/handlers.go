package server

import (
	"bytes"
	"html/template"
	"log/slog"

	"github.com/labstack/echo/v4"
)

// Session keys
const (
	sessionName          = "wil-admin-session"
	sessionKeyAdminID    = "admin_id"
	sessionKeyAdminEmail = "admin_email"
)

// Flash categories
const (
	flashSuccess = "success"
	flashError   = "error"
)

// --- Template rendering helper ---

// renderTemplate renders a template to a buffer first to prevent partial HTML
// from being sent if template execution fails.
func renderTemplate(c echo.Context, tmpl *template.Template, data interface{}) error {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		slog.Error("Template execution failed", "path", c.Request().URL.Path, "error", err)
		return c.String(500, "Failed to render page")
	}
	return c.HTMLBlob(200, buf.Bytes())
}

// --- Auth middleware ---

// requireAdmin is the hard gate in front of the review area: without a valid
// session the request is redirected to the login page, never executed.
func (s *Server) requireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		session, err := s.sessionStore.Get(c.Request(), sessionName)
		if err != nil {
			return c.Redirect(302, "/admin/login")
		}

		adminID, ok := session.Values[sessionKeyAdminID].(int64)
		if !ok || adminID == 0 {
			return c.Redirect(302, "/admin/login")
		}

		adminEmail, ok := session.Values[sessionKeyAdminEmail].(string)
		if !ok {
			return c.Redirect(302, "/admin/login")
		}

		c.Set("adminID", adminID)
		c.Set("adminEmail", adminEmail)
		return next(c)
	}
}

// --- Flash helpers ---

// addFlash queues a one-shot notice under the given category.
func (s *Server) addFlash(c echo.Context, category, message string) {
	session, err := s.sessionStore.Get(c.Request(), sessionName)
	if err != nil {
		slog.Warn("Failed to get session for flash", "error", err)
	}
	session.AddFlash(message, category)
	if err := session.Save(c.Request(), c.Response().Writer); err != nil {
		slog.Warn("Failed to save flash session", "error", err)
	}
}

// takeFlashes drains queued notices; reading flashes requires a save to
// clear them from the cookie.
func (s *Server) takeFlashes(c echo.Context) (successes, errors []string) {
	session, err := s.sessionStore.Get(c.Request(), sessionName)
	if err != nil {
		return nil, nil
	}

	for _, f := range session.Flashes(flashSuccess) {
		if msg, ok := f.(string); ok {
			successes = append(successes, msg)
		}
	}
	for _, f := range session.Flashes(flashError) {
		if msg, ok := f.(string); ok {
			errors = append(errors, msg)
		}
	}

	if err := session.Save(c.Request(), c.Response().Writer); err != nil {
		slog.Warn("Failed to save session after draining flashes", "error", err)
	}
	return successes, errors
}
