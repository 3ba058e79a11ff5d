package domain

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Status is the review lifecycle state of an application.
// The set is closed: anything outside it is rejected at the service layer
// before reaching the store.
type Status string

const (
	StatusPending  Status = "Pending"
	StatusReviewed Status = "Reviewed"
	StatusAccepted Status = "Accepted"
	StatusRejected Status = "Rejected"
)

// Statuses lists all valid states in dashboard display order.
var Statuses = []Status{StatusPending, StatusReviewed, StatusAccepted, StatusRejected}

// ParseStatus maps a form value to its canonical Status, case-insensitively.
func ParseStatus(s string) (Status, error) {
	for _, known := range Statuses {
		if strings.EqualFold(strings.TrimSpace(s), string(known)) {
			return known, nil
		}
	}
	return "", fmt.Errorf("unknown status %q", s)
}

func (s Status) String() string { return string(s) }

// Application is one candidate submission. CVData is only populated on
// resume fetches; listings carry CVFilename and CVSize instead.
type Application struct {
	ID              int64     `db:"id"`
	FullName        string    `db:"full_name"`
	Email           string    `db:"email"`
	Phone           string    `db:"phone"`
	Institution     string    `db:"institution"`
	Course          string    `db:"course"`
	Position        string    `db:"position"`
	CVFilename      string    `db:"cv_filename"`
	CVSize          int64     `db:"cv_size"`
	ApplicationDate time.Time `db:"application_date"`
	Status          Status    `db:"status"`
}

// Submission is the validated intake payload handed to the store.
type Submission struct {
	FullName    string
	Email       string
	Phone       string
	Institution string
	Course      string
	Position    string
	CVFilename  string
	CVData      []byte
}

// Resume is a stored resume payload, returned for download.
type Resume struct {
	Filename string
	Data     []byte
}

// ApplicationRepository abstracts application persistence.
type ApplicationRepository interface {
	Insert(ctx context.Context, sub Submission) (*Application, error)
	List(ctx context.Context) ([]Application, error)
	UpdateStatus(ctx context.Context, id int64, status Status) error
	Resume(ctx context.Context, id int64) (*Resume, error)
}
