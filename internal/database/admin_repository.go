package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ICTMAXELO2025/Maxelobs-applications/internal/domain"
)

// adminColumns must match the Scan order in scanAdmin.
const adminColumns = `id, email, password_hash, created_at`

// AdminRepo implements domain.AdminRepository backed by PostgreSQL.
type AdminRepo struct {
	db *sql.DB
}

// NewAdminRepo creates an AdminRepo from the shared DB connection.
func NewAdminRepo(db *DB) *AdminRepo {
	return &AdminRepo{db: db.DB}
}

func scanAdmin(row *sql.Row) (*domain.Admin, error) {
	var admin domain.Admin
	err := row.Scan(&admin.ID, &admin.Email, &admin.PasswordHash, &admin.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAdminNotFound
		}
		return nil, err
	}
	return &admin, nil
}

// EnsureDefault inserts the bootstrap identity only when no row with that
// email exists. Safe to call on every startup.
func (r *AdminRepo) EnsureDefault(ctx context.Context, email, passwordHash string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO admins (email, password_hash, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (email) DO NOTHING
	`, email, passwordHash)
	if err != nil {
		return fmt.Errorf("failed to ensure default admin: %w", err)
	}
	return nil
}

func (r *AdminRepo) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	return scanAdmin(r.db.QueryRowContext(ctx,
		`SELECT `+adminColumns+` FROM admins WHERE email = $1`, email))
}

func (r *AdminRepo) ResetPassword(ctx context.Context, email, passwordHash string) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE admins
		SET password_hash = $1
		WHERE email = $2
	`, passwordHash, email)
	if err != nil {
		return fmt.Errorf("failed to reset password: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrAdminNotFound
	}
	return nil
}
