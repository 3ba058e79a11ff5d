package server

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/ICTMAXELO2025/Maxelobs-applications/internal/domain"
	apperrors "github.com/ICTMAXELO2025/Maxelobs-applications/internal/errors"
)

func (s *Server) handleDashboard(c echo.Context) error {
	apps, err := s.app.ListApplications(c.Request().Context())
	if err != nil {
		slog.Error("Failed to list applications", "error", err)
		return c.String(500, "Error loading applications")
	}

	// Counts are computed over the full set so the summary cards stay
	// correct while a filter narrows the table.
	counts := map[domain.Status]int{}
	for _, a := range apps {
		counts[a.Status]++
	}

	filter := c.QueryParam("status")
	filtered := apps
	if filter != "" {
		if status, err := domain.ParseStatus(filter); err == nil {
			filtered = make([]domain.Application, 0, counts[status])
			for _, a := range apps {
				if a.Status == status {
					filtered = append(filtered, a)
				}
			}
			filter = string(status)
		} else {
			filter = ""
		}
	}

	successes, errs := s.takeFlashes(c)
	return renderTemplate(c, s.dashboardTemplate, map[string]any{
		"AdminEmail":    c.Get("adminEmail"),
		"Applications":  filtered,
		"Total":         len(apps),
		"PendingCount":  counts[domain.StatusPending],
		"ReviewedCount": counts[domain.StatusReviewed],
		"AcceptedCount": counts[domain.StatusAccepted],
		"RejectedCount": counts[domain.StatusRejected],
		"Statuses":      domain.Statuses,
		"StatusFilter":  filter,
		"CSRFToken":     c.Get("csrf"),
		"Successes":     successes,
		"Errors":        errs,
	})
}

func (s *Server) handleUpdateStatus(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		s.addFlash(c, flashError, "Invalid application ID")
		return c.Redirect(302, "/admin/dashboard")
	}

	status := c.FormValue("status")
	if err := s.app.UpdateStatus(c.Request().Context(), id, status); err != nil {
		switch {
		case errors.Is(err, domain.ErrApplicationNotFound):
			s.addFlash(c, flashError, "Application not found")
		case apperrors.AsStructuredError(err).Type == apperrors.TypeValidation:
			s.addFlash(c, flashError, apperrors.AsStructuredError(err).Message)
		default:
			slog.Error("Failed to update application status",
				"application_id", id, "status", status, "error", err)
			s.addFlash(c, flashError, "Error updating status. Please try again.")
		}
		return c.Redirect(302, "/admin/dashboard")
	}

	s.addFlash(c, flashSuccess, fmt.Sprintf("Application #%d marked as %s", id, status))
	return c.Redirect(302, "/admin/dashboard")
}

// handleDownloadCV streams the stored resume. Failures land back on the
// dashboard with a notice rather than a bare error page.
func (s *Server) handleDownloadCV(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		s.addFlash(c, flashError, "Invalid application ID")
		return c.Redirect(302, "/admin/dashboard")
	}

	resume, err := s.app.Resume(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrApplicationNotFound) {
			s.addFlash(c, flashError, "CV not found")
		} else {
			slog.Error("Failed to fetch CV", "application_id", id, "error", err)
			s.addFlash(c, flashError, "Error downloading CV. Please try again.")
		}
		return c.Redirect(302, "/admin/dashboard")
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", resume.Filename))
	return c.Blob(200, "application/octet-stream", resume.Data)
}
