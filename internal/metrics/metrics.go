// Package metrics defines the prometheus instrumentation for the portal.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Intake metrics
var (
	// ApplicationsSubmitted counts accepted intake submissions.
	ApplicationsSubmitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "applications_submitted_total",
			Help: "Total applications accepted by the intake workflow",
		},
	)

	// IntakeRejections counts rejected submissions by rejection reason.
	IntakeRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_rejections_total",
			Help: "Total intake submissions rejected, by reason",
		},
		[]string{"reason"},
	)
)

// Review metrics
var (
	// AdminLogins counts login attempts by outcome (success/failure).
	AdminLogins = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admin_logins_total",
			Help: "Total admin login attempts by outcome",
		},
		[]string{"outcome"},
	)

	// StatusUpdates counts status mutations by new status.
	StatusUpdates = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "application_status_updates_total",
			Help: "Total application status updates by new status",
		},
		[]string{"status"},
	)

	// ResumeDownloads counts resume downloads from the dashboard.
	ResumeDownloads = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "resume_downloads_total",
			Help: "Total resume downloads",
		},
	)
)
