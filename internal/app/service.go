package app

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"github.com/ICTMAXELO2025/Maxelobs-applications/internal/crypto"
	"github.com/ICTMAXELO2025/Maxelobs-applications/internal/domain"
	apperrors "github.com/ICTMAXELO2025/Maxelobs-applications/internal/errors"
	"github.com/ICTMAXELO2025/Maxelobs-applications/internal/logging"
	"github.com/ICTMAXELO2025/Maxelobs-applications/internal/metrics"
)

// MaxResumeSize is the upload ceiling. Oversized files are rejected, never
// truncated.
const MaxResumeSize = 5 * 1024 * 1024

const minPasswordLength = 6

var allowedExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

// Service implements domain.PortalService on top of the repositories.
type Service struct {
	admins domain.AdminRepository
	apps   domain.ApplicationRepository
}

func NewService(admins domain.AdminRepository, apps domain.ApplicationRepository) *Service {
	return &Service{admins: admins, apps: apps}
}

// Bootstrap seeds the default admin identity. Idempotent; called once at
// startup before the server accepts logins.
func (s *Service) Bootstrap(ctx context.Context, email, password string) error {
	hash, err := crypto.HashPassword(password)
	if err != nil {
		return err
	}
	return s.admins.EnsureDefault(ctx, email, hash)
}

// SubmitApplication runs the intake validation chain and persists the
// submission. The first failing check wins; nothing is written on failure.
func (s *Service) SubmitApplication(ctx context.Context, sub domain.Submission) (*domain.Application, error) {
	sub.FullName = strings.TrimSpace(sub.FullName)
	sub.Email = strings.TrimSpace(sub.Email)
	sub.Phone = strings.TrimSpace(sub.Phone)
	sub.Institution = strings.TrimSpace(sub.Institution)
	sub.Course = strings.TrimSpace(sub.Course)
	sub.Position = strings.TrimSpace(sub.Position)

	if sub.FullName == "" || sub.Email == "" || sub.Phone == "" ||
		sub.Institution == "" || sub.Course == "" || sub.Position == "" {
		metrics.IntakeRejections.WithLabelValues("missing_fields").Inc()
		return nil, apperrors.ValidationError("Please fill in all required fields")
	}

	if strings.TrimSpace(sub.CVFilename) == "" || len(sub.CVData) == 0 {
		metrics.IntakeRejections.WithLabelValues("missing_resume").Inc()
		return nil, apperrors.ValidationError("Please attach your CV")
	}

	if !allowedExtensions[strings.ToLower(filepath.Ext(sub.CVFilename))] {
		metrics.IntakeRejections.WithLabelValues("bad_extension").Inc()
		return nil, apperrors.ValidationError("Only PDF, DOC and DOCX files are allowed")
	}

	if len(sub.CVData) > MaxResumeSize {
		metrics.IntakeRejections.WithLabelValues("too_large").Inc()
		return nil, apperrors.ValidationError("CV file is too large (maximum 5 MB)")
	}

	sub.CVFilename = SanitizeFilename(sub.CVFilename)

	app, err := s.apps.Insert(ctx, sub)
	if err != nil {
		metrics.IntakeRejections.WithLabelValues("store_failure").Inc()
		return nil, apperrors.InternalError("failed to save application", err)
	}

	metrics.ApplicationsSubmitted.Inc()
	logging.WithApplication(app.ID).Info("Application submitted", "position", app.Position)
	return app, nil
}

func (s *Service) ListApplications(ctx context.Context) ([]domain.Application, error) {
	apps, err := s.apps.List(ctx)
	if err != nil {
		return nil, apperrors.InternalError("failed to list applications", err)
	}
	return apps, nil
}

// UpdateStatus validates the status against the closed set, then delegates
// to the store. Unknown ids surface as domain.ErrApplicationNotFound.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status string) error {
	parsed, err := domain.ParseStatus(status)
	if err != nil {
		return apperrors.ValidationError("Unknown status value")
	}

	if err := s.apps.UpdateStatus(ctx, id, parsed); err != nil {
		if errors.Is(err, domain.ErrApplicationNotFound) {
			return apperrors.NotFoundError("Application not found", err)
		}
		return apperrors.InternalError("failed to update status", err).
			WithContext("application_id", id)
	}

	metrics.StatusUpdates.WithLabelValues(parsed.String()).Inc()
	logging.WithApplication(id).Info("Application status updated", "status", parsed)
	return nil
}

func (s *Service) Resume(ctx context.Context, id int64) (*domain.Resume, error) {
	resume, err := s.apps.Resume(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrApplicationNotFound) {
			return nil, apperrors.NotFoundError("CV not found", err)
		}
		return nil, apperrors.InternalError("failed to load resume", err).
			WithContext("application_id", id)
	}

	metrics.ResumeDownloads.Inc()
	return resume, nil
}

// Authenticate verifies the admin credentials. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*domain.Admin, error) {
	admin, err := s.admins.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, domain.ErrAdminNotFound) {
			metrics.AdminLogins.WithLabelValues("failure").Inc()
			return nil, apperrors.AuthError("Invalid email or password", domain.ErrInvalidCredentials)
		}
		return nil, apperrors.InternalError("failed to look up admin", err)
	}

	if err := crypto.CheckPassword(admin.PasswordHash, password); err != nil {
		metrics.AdminLogins.WithLabelValues("failure").Inc()
		return nil, apperrors.AuthError("Invalid email or password", domain.ErrInvalidCredentials)
	}

	metrics.AdminLogins.WithLabelValues("success").Inc()
	return admin, nil
}

// ResetPassword enforces the minimum length, then overwrites the stored
// hash. Unknown emails surface as domain.ErrAdminNotFound.
func (s *Service) ResetPassword(ctx context.Context, email, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return apperrors.ValidationError("Password must be at least 6 characters long")
	}

	hash, err := crypto.HashPassword(newPassword)
	if err != nil {
		return apperrors.InternalError("failed to hash password", err)
	}

	if err := s.admins.ResetPassword(ctx, strings.TrimSpace(email), hash); err != nil {
		if errors.Is(err, domain.ErrAdminNotFound) {
			return apperrors.NotFoundError("Email not found", err)
		}
		return apperrors.InternalError("failed to reset password", err)
	}

	logging.WithAdmin(email).Info("Admin password reset")
	return nil
}
