package domain

import (
	"context"
	"time"
)

// Admin is an administrator identity. The password is held only as a
// one-way hash.
type Admin struct {
	ID           int64     `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

// AdminRepository abstracts administrator persistence.
type AdminRepository interface {
	// EnsureDefault inserts the bootstrap identity if no row with that
	// email exists. Idempotent.
	EnsureDefault(ctx context.Context, email, passwordHash string) error
	GetByEmail(ctx context.Context, email string) (*Admin, error)
	ResetPassword(ctx context.Context, email, passwordHash string) error
}

// PortalService is the use-case surface the HTTP layer depends on.
type PortalService interface {
	// Intake
	SubmitApplication(ctx context.Context, sub Submission) (*Application, error)

	// Review
	ListApplications(ctx context.Context) ([]Application, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	Resume(ctx context.Context, id int64) (*Resume, error)

	// Credentials
	Authenticate(ctx context.Context, email, password string) (*Admin, error)
	ResetPassword(ctx context.Context, email, newPassword string) error
}
