package server

import (
	"io"
	"log/slog"

	"github.com/labstack/echo/v4"

	"github.com/ICTMAXELO2025/Maxelobs-applications/internal/app"
	"github.com/ICTMAXELO2025/Maxelobs-applications/internal/domain"
	apperrors "github.com/ICTMAXELO2025/Maxelobs-applications/internal/errors"
)

// intakeForm echoes submitted values back so a rejected form keeps its input.
type intakeForm struct {
	FullName    string
	Email       string
	Phone       string
	Institution string
	Course      string
	Position    string
}

func (s *Server) handleIndex(c echo.Context) error {
	successes, errors := s.takeFlashes(c)
	return renderTemplate(c, s.indexTemplate, map[string]any{
		"Successes": successes,
		"Errors":    errors,
	})
}

func (s *Server) handleApplicationForm(c echo.Context) error {
	successes, errors := s.takeFlashes(c)
	return renderTemplate(c, s.applicationTemplate, map[string]any{
		"Successes": successes,
		"Errors":    errors,
		"Form":      intakeForm{},
	})
}

func (s *Server) handleApplicationSubmit(c echo.Context) error {
	sub := domain.Submission{
		FullName:    c.FormValue("full_name"),
		Email:       c.FormValue("email"),
		Phone:       c.FormValue("phone"),
		Institution: c.FormValue("institution"),
		Course:      c.FormValue("course"),
		Position:    c.FormValue("position"),
	}

	if file, err := c.FormFile("cv_file"); err == nil {
		src, err := file.Open()
		if err != nil {
			slog.Error("Failed to open uploaded CV", "error", err)
			return s.rerenderIntake(c, sub, "Error reading your CV. Please try again.")
		}
		defer src.Close()

		// One byte past the limit is enough for the size check to fail
		// without buffering an arbitrarily large upload.
		data, err := io.ReadAll(io.LimitReader(src, app.MaxResumeSize+1))
		if err != nil {
			slog.Error("Failed to read uploaded CV", "error", err)
			return s.rerenderIntake(c, sub, "Error reading your CV. Please try again.")
		}

		sub.CVFilename = file.Filename
		sub.CVData = data
	}

	if _, err := s.app.SubmitApplication(c.Request().Context(), sub); err != nil {
		structured := apperrors.AsStructuredError(err)
		message := "Error submitting application. Please try again."
		if structured.Type == apperrors.TypeValidation {
			message = structured.Message
		} else {
			slog.Error("Intake submission failed", "error", err)
		}
		return s.rerenderIntake(c, sub, message)
	}

	s.addFlash(c, flashSuccess, "Application submitted successfully! We will contact you soon.")
	return c.Redirect(302, "/")
}

func (s *Server) rerenderIntake(c echo.Context, sub domain.Submission, message string) error {
	return renderTemplate(c, s.applicationTemplate, map[string]any{
		"Errors": []string{message},
		"Form": intakeForm{
			FullName:    sub.FullName,
			Email:       sub.Email,
			Phone:       sub.Phone,
			Institution: sub.Institution,
			Course:      sub.Course,
			Position:    sub.Position,
		},
	})
}
