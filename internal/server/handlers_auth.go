package server

import (
	"errors"
	"log/slog"

	"github.com/labstack/echo/v4"

	"github.com/ICTMAXELO2025/Maxelobs-applications/internal/domain"
	apperrors "github.com/ICTMAXELO2025/Maxelobs-applications/internal/errors"
)

func (s *Server) handleLoginPage(c echo.Context) error {
	successes, errs := s.takeFlashes(c)
	return renderTemplate(c, s.loginTemplate, map[string]any{
		"Successes": successes,
		"Errors":    errs,
	})
}

func (s *Server) handleLogin(c echo.Context) error {
	email := c.FormValue("email")
	password := c.FormValue("password")

	if email == "" || password == "" {
		return renderTemplate(c, s.loginTemplate, map[string]any{
			"Errors": []string{"Please enter both email and password"},
		})
	}

	admin, err := s.app.Authenticate(c.Request().Context(), email, password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return renderTemplate(c, s.loginTemplate, map[string]any{
				"Errors": []string{"Invalid email or password"},
			})
		}
		slog.Error("Admin login failed", "error", err)
		return renderTemplate(c, s.loginTemplate, map[string]any{
			"Errors": []string{"Login error. Please try again."},
		})
	}

	session, err := s.sessionStore.Get(c.Request(), sessionName)
	if err != nil {
		slog.Warn("Failed to get session during login, starting fresh", "error", err)
	}
	session.Values[sessionKeyAdminID] = admin.ID
	session.Values[sessionKeyAdminEmail] = admin.Email
	session.AddFlash("Login successful!", flashSuccess)
	if err := session.Save(c.Request(), c.Response().Writer); err != nil {
		slog.Error("Failed to save login session", "error", err)
		return renderTemplate(c, s.loginTemplate, map[string]any{
			"Errors": []string{"Login error. Please try again."},
		})
	}

	return c.Redirect(302, "/admin/dashboard")
}

func (s *Server) handleLogout(c echo.Context) error {
	session, err := s.sessionStore.Get(c.Request(), sessionName)
	if err != nil {
		slog.Warn("Failed to get session during logout", "error", err)
		session, err = s.sessionStore.New(c.Request(), sessionName)
		if err != nil {
			slog.Error("Failed to create new session during logout", "error", err)
		}
	}
	// Expiring the cookie alone is not enough: the replacement cookie the
	// browser receives must not encode the admin identity, or replaying it
	// would reopen the dashboard.
	session.Values = map[interface{}]interface{}{}
	session.Options.MaxAge = -1

	if err := session.Save(c.Request(), c.Response().Writer); err != nil {
		slog.Error("Failed to save logout session", "error", err)
		return c.String(500, "Failed to log out due to a session error. Please clear your browser cookies.")
	}

	return c.Redirect(302, "/admin/login")
}

func (s *Server) handleForgotPasswordPage(c echo.Context) error {
	successes, errs := s.takeFlashes(c)
	return renderTemplate(c, s.forgotTemplate, map[string]any{
		"Successes": successes,
		"Errors":    errs,
	})
}

func (s *Server) handleForgotPassword(c echo.Context) error {
	email := c.FormValue("email")
	newPassword := c.FormValue("new_password")
	confirmPassword := c.FormValue("confirm_password")

	if email == "" || newPassword == "" || confirmPassword == "" {
		return renderTemplate(c, s.forgotTemplate, map[string]any{
			"Errors": []string{"Please fill in all fields"},
		})
	}
	if newPassword != confirmPassword {
		return renderTemplate(c, s.forgotTemplate, map[string]any{
			"Errors": []string{"Passwords do not match"},
		})
	}

	if err := s.app.ResetPassword(c.Request().Context(), email, newPassword); err != nil {
		if errors.Is(err, domain.ErrAdminNotFound) {
			return renderTemplate(c, s.forgotTemplate, map[string]any{
				"Errors": []string{"Email not found"},
			})
		}
		structured := apperrors.AsStructuredError(err)
		if structured.Type == apperrors.TypeValidation {
			return renderTemplate(c, s.forgotTemplate, map[string]any{
				"Errors": []string{structured.Message},
			})
		}
		slog.Error("Password reset failed", "error", err)
		return renderTemplate(c, s.forgotTemplate, map[string]any{
			"Errors": []string{"Error resetting password. Please try again."},
		})
	}

	s.addFlash(c, flashSuccess, "Password reset successfully. Please log in.")
	return c.Redirect(302, "/admin/login")
}
