package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jonboulle/clockwork"

	"github.com/ICTMAXELO2025/Maxelobs-applications/internal/domain"
)

// summaryColumns excludes cv_data so listings never drag resume blobs
// through memory; octet_length reports the stored size instead.
const summaryColumns = `id, full_name, email, phone, institution, course, position, cv_filename, octet_length(cv_data), application_date, status`

// ApplicationRepo implements domain.ApplicationRepository backed by PostgreSQL.
type ApplicationRepo struct {
	db    *sql.DB
	clock clockwork.Clock
}

// NewApplicationRepo creates an ApplicationRepo from the shared DB connection.
// The clock stamps application_date at insert.
func NewApplicationRepo(db *DB, clock clockwork.Clock) *ApplicationRepo {
	return &ApplicationRepo{db: db.DB, clock: clock}
}

func (r *ApplicationRepo) Insert(ctx context.Context, sub domain.Submission) (*domain.Application, error) {
	app := domain.Application{
		FullName:        sub.FullName,
		Email:           sub.Email,
		Phone:           sub.Phone,
		Institution:     sub.Institution,
		Course:          sub.Course,
		Position:        sub.Position,
		CVFilename:      sub.CVFilename,
		CVSize:          int64(len(sub.CVData)),
		ApplicationDate: r.clock.Now().UTC(),
		Status:          domain.StatusPending,
	}

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO applications
			(full_name, email, phone, institution, course, position, cv_filename, cv_data, application_date, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`, app.FullName, app.Email, app.Phone, app.Institution, app.Course, app.Position,
		app.CVFilename, sub.CVData, app.ApplicationDate, app.Status.String(),
	).Scan(&app.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert application: %w", err)
	}

	return &app, nil
}

// List returns all applications, newest application_date first. Re-querying
// always reflects the current table state.
func (r *ApplicationRepo) List(ctx context.Context) ([]domain.Application, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+summaryColumns+`
		FROM applications
		ORDER BY application_date DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	var apps []domain.Application
	for rows.Next() {
		var app domain.Application
		err := rows.Scan(
			&app.ID, &app.FullName, &app.Email, &app.Phone, &app.Institution,
			&app.Course, &app.Position, &app.CVFilename, &app.CVSize,
			&app.ApplicationDate, &app.Status,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate applications: %w", err)
	}

	return apps, nil
}

func (r *ApplicationRepo) UpdateStatus(ctx context.Context, id int64, status domain.Status) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE applications
		SET status = $1
		WHERE id = $2
	`, status.String(), id)
	if err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrApplicationNotFound
	}
	return nil
}

func (r *ApplicationRepo) Resume(ctx context.Context, id int64) (*domain.Resume, error) {
	var resume domain.Resume
	err := r.db.QueryRowContext(ctx, `
		SELECT cv_filename, cv_data
		FROM applications
		WHERE id = $1
	`, id).Scan(&resume.Filename, &resume.Data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to load resume: %w", err)
	}
	return &resume, nil
}
