// Package database provides PostgreSQL connectivity and repositories.
//
// Connect normalizes the configured URL and retries with a configurable
// policy before giving up. Repositories implement the domain interfaces:
// AdminRepository, ApplicationRepository. All statements are parameterized;
// user input never reaches a query string.
package database
