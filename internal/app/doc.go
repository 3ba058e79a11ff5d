// Package app provides the application service layer.
//
// Orchestrates use cases: intake submission, dashboard listing, status
// updates, resume fetches, admin authentication and password reset.
// Sits between HTTP handlers and domain repositories. Depends on domain
// interfaces, not concrete implementations.
package app
