// Package server implements the HTTP server using Echo framework.
//
// Routes: public intake (landing + application form), admin review (login,
// forgot-password, dashboard, status updates, resume download, logout) and
// observability (health, metrics, version).
// Handlers split by area: handlers_intake.go, handlers_auth.go,
// handlers_dashboard.go, handlers_health.go.
package server
