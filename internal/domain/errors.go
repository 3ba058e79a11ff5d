package domain

import "errors"

var (
	ErrAdminNotFound       = errors.New("admin not found")
	ErrApplicationNotFound = errors.New("application not found")
	ErrInvalidCredentials  = errors.New("invalid email or password")
)
